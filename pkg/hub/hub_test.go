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

package hub

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extensionhub/hub/pkg/crypto"
	"github.com/extensionhub/hub/pkg/errtypes"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	base := t.TempDir()
	h, err := New(&Config{
		BaseDir:    base,
		TarDirPath: filepath.Join(base, "__tar"),
	})
	require.NoError(t, err)
	return h
}

// bundle builds a .tar.gz from the given files and ingests it into the
// hub's store, returning the archive hash.
func bundle(t *testing.T, h *Hub, files map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	gz := pgzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0644,
			Size: int64(len(body)),
		}))
		_, err := tw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	hash := crypto.Blake3SumBytes(buf.Bytes())
	require.NoError(t, h.Store.Ingest(hash, buf.Bytes()))
	return hash
}

func TestExtractAndCheckTar(t *testing.T) {
	h := newTestHub(t)
	hash := bundle(t, h, map[string]string{"main.js": "console.log(1)"})

	// stored but not extracted yet
	require.NoError(t, h.CheckTar(hash, ""))
	var fileNotExist errtypes.FileNotExist
	require.ErrorAs(t, h.CheckTar(hash, "myext"), &fileNotExist)
	assert.Equal(t, errtypes.CodeFileNotExist, errtypes.Code(h.CheckTar(hash, "myext")))

	require.NoError(t, h.Extract(hash, "myext", false))
	require.NoError(t, h.CheckTar(hash, "myext"))

	got, err := os.ReadFile(filepath.Join(h.BaseDir(), "myext", "main.js"))
	require.NoError(t, err)
	assert.Equal(t, "console.log(1)", string(got))
}

func TestCheckTarUnknownHash(t *testing.T) {
	h := newTestHub(t)

	var tarNotExist errtypes.TarNotExist
	assert.ErrorAs(t, h.CheckTar("0000000000000000000000000000000000000000000000000000000000000000", ""), &tarNotExist)
}

func TestCheckTarInvalidDir(t *testing.T) {
	h := newTestHub(t)
	hash := bundle(t, h, map[string]string{"f": "x"})

	var invalid errtypes.InvalidPath
	assert.ErrorAs(t, h.CheckTar(hash, "../escape"), &invalid)
}

func TestCheckTarDirRemovedFromDisk(t *testing.T) {
	h := newTestHub(t)
	hash := bundle(t, h, map[string]string{"f": "x"})
	require.NoError(t, h.Extract(hash, "myext", false))

	require.NoError(t, os.RemoveAll(filepath.Join(h.BaseDir(), "myext")))

	var fileNotExist errtypes.FileNotExist
	assert.ErrorAs(t, h.CheckTar(hash, "myext"), &fileNotExist)
}

func TestExtractRefusesExistingDir(t *testing.T) {
	h := newTestHub(t)
	hash := bundle(t, h, map[string]string{"f": "new"})
	require.NoError(t, os.MkdirAll(filepath.Join(h.BaseDir(), "taken"), 0755))

	var dirHasExist errtypes.DirHasExist
	assert.ErrorAs(t, h.Extract(hash, "taken", false), &dirHasExist)
}

func TestExtractOverwriteReplacesDir(t *testing.T) {
	h := newTestHub(t)
	hash := bundle(t, h, map[string]string{"f": "new"})

	dest := filepath.Join(h.BaseDir(), "myext")
	require.NoError(t, os.MkdirAll(dest, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "stale.txt"), []byte("old"), 0644))

	require.NoError(t, h.Extract(hash, "myext", true))

	assert.NoFileExists(t, filepath.Join(dest, "stale.txt"))
	got, err := os.ReadFile(filepath.Join(dest, "f"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestExtractInvalidDirCreatesNothing(t *testing.T) {
	h := newTestHub(t)
	hash := bundle(t, h, map[string]string{"f": "x"})

	var invalid errtypes.InvalidPath
	require.ErrorAs(t, h.Extract(hash, "../escape", false), &invalid)
	assert.NoDirExists(t, filepath.Join(filepath.Dir(h.BaseDir()), "escape"))
}

func TestExtractUnknownHash(t *testing.T) {
	h := newTestHub(t)

	var tarNotExist errtypes.TarNotExist
	require.ErrorAs(t, h.Extract("0000000000000000000000000000000000000000000000000000000000000000", "myext", false), &tarNotExist)
	assert.NoDirExists(t, filepath.Join(h.BaseDir(), "myext"))
}

func TestReplaceText(t *testing.T) {
	h := newTestHub(t)
	hash := bundle(t, h, map[string]string{
		"a.js":  "console.log('hi')",
		"a.txt": "console.log('hi')",
	})
	require.NoError(t, h.Extract(hash, "myext", false))

	require.NoError(t, h.ReplaceText("myext", "log", "warn", []string{"js"}))

	got, err := os.ReadFile(filepath.Join(h.BaseDir(), "myext", "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "console.warn('hi')", string(got))
	got, err = os.ReadFile(filepath.Join(h.BaseDir(), "myext", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "console.log('hi')", string(got))
}

func TestReplaceTextMissingDir(t *testing.T) {
	h := newTestHub(t)

	var dirNotExist errtypes.DirNotExist
	assert.ErrorAs(t, h.ReplaceText("nope", "a", "b", nil), &dirNotExist)
}

func TestGetPoolsByDirectories(t *testing.T) {
	base := t.TempDir()
	m := map[string]interface{}{
		"base_dir":     base,
		"tar_dir_path": filepath.Join(base, "__tar"),
	}

	h1, err := Get(m)
	require.NoError(t, err)
	h2, err := Get(m)
	require.NoError(t, err)
	assert.Same(t, h1, h2)

	other := t.TempDir()
	h3, err := Get(map[string]interface{}{
		"base_dir":     other,
		"tar_dir_path": filepath.Join(other, "__tar"),
	})
	require.NoError(t, err)
	assert.NotSame(t, h1, h3)
}
