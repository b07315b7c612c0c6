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

// Package hub wires the store, the ticket registry and the extraction
// index into one engine shared by the RPC and bulk facades.
package hub

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/extensionhub/hub/pkg/errtypes"
	"github.com/extensionhub/hub/pkg/hub/index"
	"github.com/extensionhub/hub/pkg/hub/replace"
	"github.com/extensionhub/hub/pkg/hub/store"
	"github.com/extensionhub/hub/pkg/hub/ticket"
	"github.com/extensionhub/hub/pkg/hub/untar"
	"github.com/extensionhub/hub/pkg/sharedconf"
	"github.com/extensionhub/hub/pkg/utils"
)

// Config holds the engine directories. Both fall back to the shared
// config section when a service block leaves them empty.
type Config struct {
	BaseDir    string `mapstructure:"base_dir"`
	TarDirPath string `mapstructure:"tar_dir_path"`
}

func (c *Config) init() {
	c.BaseDir = sharedconf.GetBaseDir(c.BaseDir)
	c.TarDirPath = sharedconf.GetTarDirPath(c.TarDirPath)
	if c.TarDirPath == "" {
		c.TarDirPath = filepath.Join(c.BaseDir, "__tar")
	}
}

// Hub owns all shared state. Facade handlers hold a reference to a Hub
// and never touch each other's internals.
type Hub struct {
	baseDir string

	Store   *store.Store
	Tickets *ticket.Registry
	Index   *index.Index
}

var (
	poolMu sync.Mutex
	pool   = map[string]*Hub{}
)

// Get decodes a service config block and returns the Hub for its
// directories, creating it on first use. The gRPC and HTTP facades
// configured with the same directories share one engine.
func Get(m map[string]interface{}) (*Hub, error) {
	c := &Config{}
	if err := mapstructure.Decode(m, c); err != nil {
		return nil, errors.Wrap(err, "hub: error decoding conf")
	}
	c.init()

	key := c.BaseDir + "\x00" + c.TarDirPath
	poolMu.Lock()
	defer poolMu.Unlock()
	if h, ok := pool[key]; ok {
		return h, nil
	}
	h, err := New(c)
	if err != nil {
		return nil, err
	}
	pool[key] = h
	return h, nil
}

// New builds an engine, creating the base and tar directories.
func New(c *Config) (*Hub, error) {
	if err := os.MkdirAll(c.BaseDir, 0755); err != nil {
		return nil, errors.Wrap(err, "hub: error creating base dir")
	}
	s, err := store.New(c.TarDirPath)
	if err != nil {
		return nil, err
	}
	return &Hub{
		baseDir: c.BaseDir,
		Store:   s,
		Tickets: ticket.NewRegistry(),
		Index:   index.New(),
	}, nil
}

// BaseDir returns the root for extracted trees.
func (h *Hub) BaseDir() string { return h.baseDir }

// CheckTar verifies that the archive is stored and, when dir is given,
// that it was extracted into dir and the directory is still on disk.
// Both directory failures report FileNotExist so clients see one code
// whether the extraction never happened or its result was removed.
func (h *Hub) CheckTar(hash, dir string) error {
	if dir != "" && !utils.IsValidPathComponent(dir) {
		return errtypes.InvalidPath(dir)
	}
	if !h.Store.Has(hash) {
		return errtypes.TarNotExist(hash)
	}
	if dir == "" {
		return nil
	}
	if !h.Index.Contains(hash, dir) {
		return errtypes.FileNotExist(dir)
	}
	if !utils.IsDir(filepath.Join(h.baseDir, dir)) {
		return errtypes.FileNotExist(dir)
	}
	return nil
}

// Extract unpacks the stored archive into base_dir/dir. An existing
// destination fails with DirHasExist unless overwrite is set, in which
// case it is removed first. On success the extraction is recorded in
// the index.
func (h *Hub) Extract(hash, dir string, overwrite bool) error {
	if !utils.IsValidPathComponent(dir) {
		return errtypes.InvalidPath(dir)
	}
	dest := filepath.Join(h.baseDir, dir)

	if utils.Exists(dest) && !overwrite {
		return errtypes.DirHasExist(dir)
	}

	rc, err := h.Store.Open(hash)
	if err != nil {
		return err
	}
	defer rc.Close()

	if utils.Exists(dest) {
		if err := os.RemoveAll(dest); err != nil {
			return errtypes.IOError(err.Error())
		}
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return errtypes.IOError(err.Error())
	}

	if err := untar.Extract(rc, dest); err != nil {
		return err
	}

	h.Index.Record(hash, dir)
	return nil
}

// ReplaceText runs a literal substitution pass over base_dir/dir. The
// replacer supports a separate output root; here it equals the source
// root, so files are rewritten in place.
func (h *Hub) ReplaceText(dir, old, new string, suffixes []string) error {
	if !utils.IsValidPathComponent(dir) {
		return errtypes.InvalidPath(dir)
	}
	root := filepath.Join(h.baseDir, dir)
	if !utils.IsDir(root) {
		return errtypes.DirNotExist(dir)
	}
	_, err := replace.Run(replace.Request{
		Root:       root,
		OutputRoot: root,
		Old:        old,
		New:        new,
		Suffixes:   suffixes,
	})
	return err
}
