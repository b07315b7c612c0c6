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

package index

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAndContains(t *testing.T) {
	idx := New()

	assert.False(t, idx.Contains("h1", "ext"))

	idx.Record("h1", "ext")
	assert.True(t, idx.Contains("h1", "ext"))
	assert.False(t, idx.Contains("h1", "other"))
	assert.False(t, idx.Contains("h2", "ext"))
}

func TestDirs(t *testing.T) {
	idx := New()
	idx.Record("h1", "a")
	idx.Record("h1", "b")
	idx.Record("h1", "b")

	assert.ElementsMatch(t, []string{"a", "b"}, idx.Dirs("h1"))
	assert.Empty(t, idx.Dirs("unknown"))
}

func TestConcurrentAccess(t *testing.T) {
	idx := New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx.Record("h", "dir")
			idx.Contains("h", "dir")
			idx.Dirs("h")
		}()
	}
	wg.Wait()
	assert.True(t, idx.Contains("h", "dir"))
}
