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

package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extensionhub/hub/pkg/crypto"
	"github.com/extensionhub/hub/pkg/errtypes"
)

func TestIngestAndOpen(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	payload := []byte("bundle bytes")
	hash := crypto.Blake3SumBytes(payload)

	assert.False(t, s.Has(hash))

	require.NoError(t, s.Ingest(hash, payload))
	assert.True(t, s.Has(hash))

	rc, err := s.Open(hash)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// ingesting again is a no-op
	require.NoError(t, s.Ingest(hash, payload))
}

func TestIngestHashMismatch(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	payload := []byte("bundle bytes")
	wrong := crypto.Blake3SumBytes([]byte("other bytes"))

	err = s.Ingest(wrong, payload)
	var mismatch errtypes.HashNotMatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, wrong, mismatch.Expected)
	assert.False(t, s.Has(wrong))
}

func TestTempFileAndPromote(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	payload := []byte("streamed bundle")
	hash := crypto.Blake3SumBytes(payload)

	f, err := s.TempFile(hash)
	require.NoError(t, err)
	_, err = f.Write(payload)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, s.Promote(hash, f.Name()))
	assert.True(t, s.Has(hash))

	p, err := s.Path(hash)
	require.NoError(t, err)
	assert.Equal(t, hash+".tar.gz", filepath.Base(p))
}

func TestPromoteMismatchRemovesTemp(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	hash := crypto.Blake3SumBytes([]byte("announced"))

	f, err := s.TempFile(hash)
	require.NoError(t, err)
	_, err = f.Write([]byte("actually uploaded"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	err = s.Promote(hash, f.Name())
	var mismatch errtypes.HashNotMatch
	require.ErrorAs(t, err, &mismatch)
	assert.False(t, s.Has(hash))
	assert.NoFileExists(t, f.Name())
}

func TestConcurrentTempFilesAreDistinct(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	hash := crypto.Blake3SumBytes([]byte("raced bundle"))

	f1, err := s.TempFile(hash)
	require.NoError(t, err)
	f2, err := s.TempFile(hash)
	require.NoError(t, err)
	assert.NotEqual(t, f1.Name(), f2.Name())
	f1.Close()
	f2.Close()
}

func TestNewAdoptsExistingArchives(t *testing.T) {
	dir := t.TempDir()

	payload := []byte("pre-existing bundle")
	hash := crypto.Blake3SumBytes(payload)
	require.NoError(t, os.WriteFile(filepath.Join(dir, hash+".tar.gz"), payload, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	s, err := New(dir)
	require.NoError(t, err)
	assert.True(t, s.Has(hash))
	assert.False(t, s.Has(crypto.Blake3SumBytes([]byte("unknown"))))
}

func TestNewSweepsTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "__tmp__"), 0755))
	leftover := filepath.Join(dir, "__tmp__", "abandoned.tar.gz")
	require.NoError(t, os.WriteFile(leftover, []byte("partial"), 0644))

	_, err := New(dir)
	require.NoError(t, err)
	assert.NoFileExists(t, leftover)
}

func TestHasChecksDisk(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	payload := []byte("bundle removed behind our back")
	hash := crypto.Blake3SumBytes(payload)
	require.NoError(t, s.Ingest(hash, payload))

	p, err := s.Path(hash)
	require.NoError(t, err)
	require.NoError(t, os.Remove(p))

	assert.False(t, s.Has(hash))
	_, err = s.Open(hash)
	var notExist errtypes.TarNotExist
	assert.ErrorAs(t, err, &notExist)
}
