// Copyright 2018-2021 CERN
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// In applying this license, CERN does not waive the privileges and immunities
// granted to it by virtue of its status as an Intergovernmental Organization
// or submit itself to any jurisdiction.

// Package store persists archive bytes under <hash>.tar.gz in a
// dedicated directory and tracks known hashes in memory.
//
// The store never exposes a file under its canonical name whose bytes
// do not hash to that name: ingest verifies first and promotes with an
// atomic rename.
package store

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/extensionhub/hub/pkg/crypto"
	"github.com/extensionhub/hub/pkg/errtypes"
)

const (
	suffix = ".tar.gz"
	tmpDir = "__tmp__"
)

// Store is a content-addressed archive store rooted at a single
// directory. It is safe for concurrent use.
type Store struct {
	dir string

	mu    sync.RWMutex
	known map[string]struct{}
}

// New returns a store rooted at dir, creating it if missing. Archives
// already on disk are adopted into the known set, and temp files left
// behind by interrupted uploads are swept.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, tmpDir), 0755); err != nil {
		return nil, errors.Wrap(err, "store: error creating tar dir")
	}

	s := &Store{
		dir:   dir,
		known: map[string]struct{}{},
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "store: error reading tar dir")
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if h := strings.TrimSuffix(name, suffix); h != name && crypto.IsHash(h) {
			s.known[h] = struct{}{}
		}
	}

	s.sweepTmp()
	return s, nil
}

// sweepTmp removes leftovers from uploads that never completed. Racing
// with an in-flight upload is not a concern: sweep runs only at
// construction time, before any handler is wired.
func (s *Store) sweepTmp() {
	entries, err := os.ReadDir(filepath.Join(s.dir, tmpDir))
	if err != nil {
		return
	}
	for _, e := range entries {
		os.Remove(filepath.Join(s.dir, tmpDir, e.Name()))
	}
}

// Dir returns the store root.
func (s *Store) Dir() string { return s.dir }

func (s *Store) canonical(hash string) string {
	return filepath.Join(s.dir, hash+suffix)
}

// Has reports whether the archive is known and still present on disk.
// The disk check guards against out-of-band deletion.
func (s *Store) Has(hash string) bool {
	s.mu.RLock()
	_, ok := s.known[hash]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if _, err := os.Stat(s.canonical(hash)); err != nil {
		return false
	}
	return true
}

// Ingest verifies that b hashes to hash and persists it. Ingesting an
// archive that is already stored only refreshes the known set.
func (s *Store) Ingest(hash string, b []byte) error {
	if !crypto.IsHash(hash) {
		return errtypes.InvalidPath(hash)
	}

	if found := crypto.Blake3SumBytes(b); found != hash {
		return errtypes.HashNotMatch{Expected: hash, Found: found}
	}

	target := s.canonical(hash)
	if _, err := os.Stat(target); err != nil {
		if err := renameio.WriteFile(target, b, 0644, renameio.WithTempDir(filepath.Join(s.dir, tmpDir))); err != nil {
			return errtypes.IOError(err.Error())
		}
	}

	s.mu.Lock()
	s.known[hash] = struct{}{}
	s.mu.Unlock()
	return nil
}

// TempFile creates a fresh temp file for an upload of the given hash.
// Every concurrent upload gets a distinct name so racing writers can
// never trample each other; the winner is decided by the rename in
// Promote.
func (s *Store) TempFile(hash string) (*os.File, error) {
	if !crypto.IsHash(hash) {
		return nil, errtypes.InvalidPath(hash)
	}
	name := filepath.Join(s.dir, tmpDir, hash+"."+uuid.New().String()+suffix)
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, errtypes.IOError(err.Error())
	}
	return f, nil
}

// Promote verifies the temp file written by an upload and moves it to
// its canonical name. On hash mismatch the temp file is removed and
// nothing is committed.
func (s *Store) Promote(hash, tmpPath string) error {
	f, err := os.Open(tmpPath)
	if err != nil {
		return errtypes.IOError(err.Error())
	}
	found, err := crypto.Blake3Sum(f)
	f.Close()
	if err != nil {
		return errtypes.IOError(err.Error())
	}

	if found != hash {
		os.Remove(tmpPath)
		return errtypes.HashNotMatch{Expected: hash, Found: found}
	}

	if err := os.Rename(tmpPath, s.canonical(hash)); err != nil {
		return errtypes.IOError(err.Error())
	}

	s.mu.Lock()
	s.known[hash] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Open returns a stream of the stored archive bytes.
func (s *Store) Open(hash string) (io.ReadCloser, error) {
	if !s.Has(hash) {
		return nil, errtypes.TarNotExist(hash)
	}
	f, err := os.Open(s.canonical(hash))
	if err != nil {
		return nil, errtypes.TarNotExist(hash)
	}
	return f, nil
}

// Path returns the on-disk location of the stored archive so callers
// can stream it without buffering.
func (s *Store) Path(hash string) (string, error) {
	if !s.Has(hash) {
		return "", errtypes.TarNotExist(hash)
	}
	return s.canonical(hash), nil
}

// ReadAll is a convenience for tests and small archives.
func (s *Store) ReadAll(hash string) ([]byte, error) {
	rc, err := s.Open(hash)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, errtypes.IOError(err.Error())
	}
	return buf.Bytes(), nil
}
