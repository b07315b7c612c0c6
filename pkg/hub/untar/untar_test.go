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

package untar

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extensionhub/hub/pkg/errtypes"
)

type entry struct {
	name     string
	typeflag byte
	body     string
	linkname string
	mode     int64
}

func buildArchive(t *testing.T, entries []entry) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	gz := pgzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		mode := e.mode
		if mode == 0 {
			mode = 0644
		}
		hdr := &tar.Header{
			Name:     e.name,
			Typeflag: e.typeflag,
			Linkname: e.linkname,
			Mode:     mode,
			Size:     int64(len(e.body)),
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if e.typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return &buf
}

func TestExtractFilesAndDirs(t *testing.T) {
	dest := t.TempDir()
	buf := buildArchive(t, []entry{
		{name: "ext/", typeflag: tar.TypeDir, mode: 0755},
		{name: "ext/main.js", typeflag: tar.TypeReg, body: "console.log(1)"},
		{name: "ext/sub/util.js", typeflag: tar.TypeReg, body: "exports.x = 1"},
	})

	require.NoError(t, Extract(buf, dest))

	got, err := os.ReadFile(filepath.Join(dest, "ext", "main.js"))
	require.NoError(t, err)
	assert.Equal(t, "console.log(1)", string(got))

	// parent dirs are created even without an explicit dir entry
	got, err = os.ReadFile(filepath.Join(dest, "ext", "sub", "util.js"))
	require.NoError(t, err)
	assert.Equal(t, "exports.x = 1", string(got))
}

func TestExtractSymlinkInsideDest(t *testing.T) {
	dest := t.TempDir()
	buf := buildArchive(t, []entry{
		{name: "ext/real.txt", typeflag: tar.TypeReg, body: "data"},
		{name: "ext/alias.txt", typeflag: tar.TypeSymlink, linkname: "real.txt"},
	})

	require.NoError(t, Extract(buf, dest))

	got, err := os.ReadFile(filepath.Join(dest, "ext", "alias.txt"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}

func TestExtractHardlink(t *testing.T) {
	dest := t.TempDir()
	buf := buildArchive(t, []entry{
		{name: "a.txt", typeflag: tar.TypeReg, body: "shared"},
		{name: "b.txt", typeflag: tar.TypeLink, linkname: "a.txt"},
	})

	require.NoError(t, Extract(buf, dest))

	got, err := os.ReadFile(filepath.Join(dest, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "shared", string(got))
}

func TestExtractRejectsTraversalName(t *testing.T) {
	dest := t.TempDir()
	buf := buildArchive(t, []entry{
		{name: "../outside.txt", typeflag: tar.TypeReg, body: "evil"},
	})

	err := Extract(buf, dest)
	var invalid errtypes.InvalidPath
	require.ErrorAs(t, err, &invalid)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dest), "outside.txt"))
}

func TestExtractRejectsAbsoluteName(t *testing.T) {
	dest := t.TempDir()
	buf := buildArchive(t, []entry{
		{name: "/etc/evil.txt", typeflag: tar.TypeReg, body: "evil"},
	})

	err := Extract(buf, dest)
	var invalid errtypes.InvalidPath
	assert.ErrorAs(t, err, &invalid)
}

func TestExtractRejectsEscapingSymlink(t *testing.T) {
	dest := t.TempDir()
	buf := buildArchive(t, []entry{
		{name: "ext/evil", typeflag: tar.TypeSymlink, linkname: "../../outside"},
	})

	err := Extract(buf, dest)
	var invalid errtypes.InvalidPath
	require.ErrorAs(t, err, &invalid)
	assert.NoFileExists(t, filepath.Join(dest, "ext", "evil"))
}

func TestExtractRejectsEscapingHardlink(t *testing.T) {
	dest := t.TempDir()
	buf := buildArchive(t, []entry{
		{name: "evil", typeflag: tar.TypeLink, linkname: "../secret"},
	})

	err := Extract(buf, dest)
	var invalid errtypes.InvalidPath
	assert.ErrorAs(t, err, &invalid)
}

func TestExtractRejectsGarbage(t *testing.T) {
	dest := t.TempDir()

	err := Extract(bytes.NewReader([]byte("this is not gzip")), dest)
	var decode errtypes.DecodeError
	assert.ErrorAs(t, err, &decode)
}

func TestExtractSkipsSpecialEntries(t *testing.T) {
	dest := t.TempDir()
	buf := buildArchive(t, []entry{
		{name: "fifo", typeflag: tar.TypeFifo},
		{name: "ok.txt", typeflag: tar.TypeReg, body: "kept"},
	})

	require.NoError(t, Extract(buf, dest))
	assert.NoFileExists(t, filepath.Join(dest, "fifo"))
	assert.FileExists(t, filepath.Join(dest, "ok.txt"))
}
