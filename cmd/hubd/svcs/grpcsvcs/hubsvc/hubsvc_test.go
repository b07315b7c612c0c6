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

package hubsvc

import (
	"archive/tar"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	hubv1 "github.com/extensionhub/hub/api/hub/v1"
	"github.com/extensionhub/hub/pkg/crypto"
	"github.com/extensionhub/hub/pkg/hub"
)

const zeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

func newTestService(t *testing.T) *service {
	t.Helper()
	base := t.TempDir()
	h, err := hub.New(&hub.Config{
		BaseDir:    base,
		TarDirPath: filepath.Join(base, "__tar"),
	})
	require.NoError(t, err)
	return &service{hub: h}
}

func ingestBundle(t *testing.T, s *service, files map[string]string) string {
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
	require.NoError(t, s.hub.Store.Ingest(hash, buf.Bytes()))
	return hash
}

func TestCheckTar(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	hash := ingestBundle(t, s, map[string]string{"main.js": "x"})

	_, err := s.CheckTar(ctx, &hubv1.CheckTarRequest{TarHash: hash})
	require.NoError(t, err)

	_, err = s.CheckTar(ctx, &hubv1.CheckTarRequest{TarHash: zeroHash})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.CheckTar(ctx, &hubv1.CheckTarRequest{TarHash: hash, FilePath: "../escape"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.CheckTar(ctx, &hubv1.CheckTarRequest{TarHash: hash, FilePath: "never-extracted"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestUnTar(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	hash := ingestBundle(t, s, map[string]string{"main.js": "console.log(1)"})

	_, err := s.UnTar(ctx, &hubv1.UnTarRequest{TarHash: hash, TargetDir: "myext"})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(s.hub.BaseDir(), "myext", "main.js"))
	require.NoError(t, err)
	assert.Equal(t, "console.log(1)", string(got))

	// second extraction without overwrite fails
	_, err = s.UnTar(ctx, &hubv1.UnTarRequest{TarHash: hash, TargetDir: "myext"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.UnTar(ctx, &hubv1.UnTarRequest{TarHash: hash, TargetDir: "myext", Overwrite: true})
	require.NoError(t, err)

	_, err = s.UnTar(ctx, &hubv1.UnTarRequest{TarHash: zeroHash, TargetDir: "other"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestUploadTarIssuesSingleUseTicket(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	res, err := s.UploadTar(ctx, &hubv1.UploadTarRequest{
		TarHash: zeroHash,
		UnTar:   &hubv1.UnTarRequest{TargetDir: "myext", Overwrite: true},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Data)
	token := res.Data.UploadUrl
	require.Len(t, token, 64)

	u, err := s.hub.Tickets.TakeUpload(token)
	require.NoError(t, err)
	assert.Equal(t, zeroHash, u.Hash)
	require.NotNil(t, u.PostExtract)
	assert.Equal(t, "myext", u.PostExtract.TargetDir)
	assert.True(t, u.PostExtract.Overwrite)

	_, err = s.hub.Tickets.TakeUpload(token)
	assert.Error(t, err)
}

func TestDownloadTarIssuesTicket(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	hash := ingestBundle(t, s, map[string]string{"main.js": "x"})

	res, err := s.DownloadTar(ctx, &hubv1.DownloadTarRequest{TarHash: hash})
	require.NoError(t, err)
	require.NotNil(t, res.Data)

	d, err := s.hub.Tickets.PeekDownload(res.Data.DownloadUrl)
	require.NoError(t, err)
	assert.Equal(t, hash, d.Hash)
}

func TestReplaceText(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	hash := ingestBundle(t, s, map[string]string{"a.js": "console.log('hi')"})

	_, err := s.UnTar(ctx, &hubv1.UnTarRequest{TarHash: hash, TargetDir: "myext"})
	require.NoError(t, err)

	_, err = s.ReplaceText(ctx, &hubv1.ReplaceTextRequest{
		TargetDir: "myext",
		OldText:   "log",
		NewText:   "warn",
		Suffix:    []string{"js"},
	})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(s.hub.BaseDir(), "myext", "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "console.warn('hi')", string(got))

	_, err = s.ReplaceText(ctx, &hubv1.ReplaceTextRequest{TargetDir: "missing", OldText: "a", NewText: "b"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestClearCallsAreReserved(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	res1, err := s.ClearTarDir(ctx, &hubv1.ClearTarDirRequest{})
	require.NoError(t, err)
	assert.NotNil(t, res1)

	res2, err := s.ClearDir(ctx, &hubv1.ClearDirRequest{})
	require.NoError(t, err)
	assert.NotNil(t, res2)
}
