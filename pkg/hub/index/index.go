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

// Package index remembers which archives were extracted into which
// directories. The index lives in memory only: it resets on restart,
// and a directory counts as extracted again only after a new UnTar.
package index

import "sync"

// Index maps archive hash to the set of directory names it was
// extracted into. Safe for concurrent use.
type Index struct {
	mu   sync.RWMutex
	dirs map[string]map[string]struct{}
}

// New returns an empty index.
func New() *Index {
	return &Index{dirs: map[string]map[string]struct{}{}}
}

// Record notes that the archive was extracted into dir.
func (i *Index) Record(hash, dir string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.dirs[hash] == nil {
		i.dirs[hash] = map[string]struct{}{}
	}
	i.dirs[hash][dir] = struct{}{}
}

// Contains reports whether the archive was extracted into dir during
// this process lifetime.
func (i *Index) Contains(hash, dir string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.dirs[hash][dir]
	return ok
}

// Dirs returns the directories the archive was extracted into.
func (i *Index) Dirs(hash string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]string, 0, len(i.dirs[hash]))
	for d := range i.dirs[hash] {
		out = append(out, d)
	}
	return out
}
