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

package filesvc

import (
	"archive/tar"
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/extensionhub/hub/pkg/crypto"
	"github.com/extensionhub/hub/pkg/hub"
	"github.com/extensionhub/hub/pkg/hub/ticket"
)

func newTestSvc(t *testing.T) (*svc, *hub.Hub, *httptest.Server) {
	t.Helper()
	base := t.TempDir()
	m := map[string]interface{}{
		"base_dir":     base,
		"tar_dir_path": filepath.Join(base, "__tar"),
	}
	s, err := New(m)
	require.NoError(t, err)
	fs := s.(*svc)

	srv := httptest.NewServer(fs.Handler())
	t.Cleanup(srv.Close)
	return fs, fs.hub, srv
}

func makeBundle(t *testing.T, files map[string]string) ([]byte, string) {
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
	return buf.Bytes(), crypto.Blake3SumBytes(buf.Bytes())
}

func postBundle(t *testing.T, url string, payload []byte) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "bundle.tar.gz")
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	res, err := http.Post(url, mw.FormDataContentType(), &body)
	require.NoError(t, err)
	return res
}

func TestUploadStoresBundle(t *testing.T) {
	_, h, srv := newTestSvc(t)
	payload, hash := makeBundle(t, map[string]string{"main.js": "x"})

	token, err := h.Tickets.IssueUpload(ticket.Upload{Hash: hash})
	require.NoError(t, err)

	res := postBundle(t, srv.URL+"/"+token, payload)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, h.Store.Has(hash))
}

func TestUploadTokenIsSingleUse(t *testing.T) {
	_, h, srv := newTestSvc(t)
	payload, hash := makeBundle(t, map[string]string{"main.js": "x"})

	token, err := h.Tickets.IssueUpload(ticket.Upload{Hash: hash})
	require.NoError(t, err)

	res := postBundle(t, srv.URL+"/"+token, payload)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = postBundle(t, srv.URL+"/"+token, payload)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "1009", res.Header.Get(CodeHeader))
}

func TestUploadUnknownToken(t *testing.T) {
	_, _, srv := newTestSvc(t)
	payload, _ := makeBundle(t, map[string]string{"main.js": "x"})

	res := postBundle(t, srv.URL+"/nosuchtoken", payload)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "1009", res.Header.Get(CodeHeader))
}

func TestUploadHashMismatchKeepsStoreClean(t *testing.T) {
	_, h, srv := newTestSvc(t)
	payload, _ := makeBundle(t, map[string]string{"main.js": "x"})
	announced := crypto.Blake3SumBytes([]byte("something else entirely"))

	token, err := h.Tickets.IssueUpload(ticket.Upload{Hash: announced})
	require.NoError(t, err)

	res := postBundle(t, srv.URL+"/"+token, payload)
	res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "1008", res.Header.Get(CodeHeader))
	assert.False(t, h.Store.Has(announced))
}

func TestUploadBadAnnouncedHashIsBadRequest(t *testing.T) {
	_, h, srv := newTestSvc(t)
	payload, _ := makeBundle(t, map[string]string{"main.js": "x"})

	token, err := h.Tickets.IssueUpload(ticket.Upload{Hash: "not-a-hash"})
	require.NoError(t, err)

	res := postBundle(t, srv.URL+"/"+token, payload)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "1010", res.Header.Get(CodeHeader))
}

func TestUploadBadExtractDirIsBadRequest(t *testing.T) {
	_, h, srv := newTestSvc(t)
	payload, hash := makeBundle(t, map[string]string{"main.js": "x"})

	token, err := h.Tickets.IssueUpload(ticket.Upload{
		Hash:        hash,
		PostExtract: &ticket.PostExtract{TargetDir: "../escape"},
	})
	require.NoError(t, err)

	res := postBundle(t, srv.URL+"/"+token, payload)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "1010", res.Header.Get(CodeHeader))
	assert.NoDirExists(t, filepath.Join(filepath.Dir(h.BaseDir()), "escape"))
	// the bytes were fine, only the extraction target was rejected
	assert.True(t, h.Store.Has(hash))
}

func TestUploadSkipsToFileField(t *testing.T) {
	_, h, srv := newTestSvc(t)
	payload, hash := makeBundle(t, map[string]string{"main.js": "x"})

	token, err := h.Tickets.IssueUpload(ticket.Upload{Hash: hash})
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("comment", "ignored"))
	fw, err := mw.CreateFormFile("file", "bundle.tar.gz")
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	res, err := http.Post(srv.URL+"/"+token, mw.FormDataContentType(), &body)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, h.Store.Has(hash))
}

func TestUploadWithoutFileField(t *testing.T) {
	_, h, srv := newTestSvc(t)
	_, hash := makeBundle(t, map[string]string{"main.js": "x"})

	token, err := h.Tickets.IssueUpload(ticket.Upload{Hash: hash})
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("comment", "no bundle here"))
	require.NoError(t, mw.Close())

	res, err := http.Post(srv.URL+"/"+token, mw.FormDataContentType(), &body)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "1200", res.Header.Get(CodeHeader))
	assert.False(t, h.Store.Has(hash))
}

func TestUploadAlreadyStoredIsIdempotent(t *testing.T) {
	_, h, srv := newTestSvc(t)
	payload, hash := makeBundle(t, map[string]string{"main.js": "x"})
	require.NoError(t, h.Store.Ingest(hash, payload))

	token, err := h.Tickets.IssueUpload(ticket.Upload{Hash: hash})
	require.NoError(t, err)

	// no body needed, the bytes are already stored
	res, err := http.Post(srv.URL+"/"+token, "multipart/form-data", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestUploadWithPostExtract(t *testing.T) {
	_, h, srv := newTestSvc(t)
	payload, hash := makeBundle(t, map[string]string{"main.js": "console.log(1)"})

	token, err := h.Tickets.IssueUpload(ticket.Upload{
		Hash:        hash,
		PostExtract: &ticket.PostExtract{TargetDir: "myext"},
	})
	require.NoError(t, err)

	res := postBundle(t, srv.URL+"/"+token, payload)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	got, err := os.ReadFile(filepath.Join(h.BaseDir(), "myext", "main.js"))
	require.NoError(t, err)
	assert.Equal(t, "console.log(1)", string(got))
	require.NoError(t, h.CheckTar(hash, "myext"))
}

func TestDownload(t *testing.T) {
	_, h, srv := newTestSvc(t)
	payload, hash := makeBundle(t, map[string]string{"main.js": "x"})
	require.NoError(t, h.Store.Ingest(hash, payload))

	token, err := h.Tickets.IssueDownload(ticket.Download{Hash: hash})
	require.NoError(t, err)

	// download tokens are reusable
	for i := 0; i < 2; i++ {
		res, err := http.Get(srv.URL + "/" + token)
		require.NoError(t, err)
		got, err := io.ReadAll(res.Body)
		res.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "application/gzip", res.Header.Get("Content-Type"))
		assert.Contains(t, res.Header.Get("Content-Disposition"), hash+".tar.gz")
		assert.Equal(t, payload, got)
	}
}

func TestDownloadUnknownToken(t *testing.T) {
	_, _, srv := newTestSvc(t)

	res, err := http.Get(srv.URL + "/nosuchtoken")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "1009", res.Header.Get(CodeHeader))
}

func TestDownloadArchiveRemovedBehindTicket(t *testing.T) {
	_, h, srv := newTestSvc(t)
	payload, hash := makeBundle(t, map[string]string{"main.js": "x"})
	require.NoError(t, h.Store.Ingest(hash, payload))

	token, err := h.Tickets.IssueDownload(ticket.Download{Hash: hash})
	require.NoError(t, err)

	p, err := h.Store.Path(hash)
	require.NoError(t, err)
	require.NoError(t, os.Remove(p))

	res, err := http.Get(srv.URL + "/" + token)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "1000", res.Header.Get(CodeHeader))
}

func TestPrefixDefault(t *testing.T) {
	s, _, _ := newTestSvc(t)
	assert.Equal(t, "file", s.Prefix())
}
