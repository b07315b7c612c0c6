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
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/extensionhub/hub/pkg/appctx"
	"github.com/extensionhub/hub/pkg/errtypes"
	"github.com/extensionhub/hub/pkg/hub/ticket"
)

// doUpload redeems the single-use upload token, streams the multipart
// body into a temp file, verifies the digest and promotes the file to
// its canonical name. The whole body never sits in memory.
func (s *svc) doUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := appctx.GetLogger(ctx)
	token := chi.URLParam(r, "token")

	t, err := s.hub.Tickets.TakeUpload(token)
	if err != nil {
		log.Debug().Err(err).Msg("upload token rejected")
		writeError(w, err)
		return
	}

	// idempotent re-upload: the bytes are already here
	if s.hub.Store.Has(t.Hash) {
		if err := s.postExtract(t); err != nil {
			log.Error().Err(err).Str("hash", t.Hash).Msg("error extracting stored bundle")
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.conf.MaxBodySize)

	mr, err := r.MultipartReader()
	if err != nil {
		writeError(w, errtypes.DecodeError(err.Error()))
		return
	}

	// the bundle travels in the form field named "file", skip anything
	// sent before it
	var part *multipart.Part
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			writeError(w, errtypes.DecodeError("multipart body carries no file field"))
			return
		}
		if err != nil {
			writeError(w, errtypes.DecodeError(err.Error()))
			return
		}
		if p.FormName() == "file" {
			part = p
			break
		}
		p.Close()
	}
	defer part.Close()

	tmp, err := s.hub.Store.TempFile(t.Hash)
	if err != nil {
		writeError(w, err)
		return
	}
	tmpPath := tmp.Name()

	_, cpErr := io.Copy(tmp, part)
	clErr := tmp.Close()
	if cpErr != nil || clErr != nil {
		// aborted stream, drop the temp file
		os.Remove(tmpPath)
		if cpErr == nil {
			cpErr = clErr
		}
		log.Error().Err(cpErr).Str("hash", t.Hash).Msg("error streaming upload to temp file")
		writeError(w, errtypes.IOError(cpErr.Error()))
		return
	}

	if err := s.hub.Store.Promote(t.Hash, tmpPath); err != nil {
		log.Error().Err(err).Str("hash", t.Hash).Msg("error promoting upload")
		writeError(w, err)
		return
	}
	log.Info().Str("hash", t.Hash).Msg("bundle stored")

	if err := s.postExtract(t); err != nil {
		log.Error().Err(err).Str("hash", t.Hash).Msg("error extracting uploaded bundle")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *svc) postExtract(t ticket.Upload) error {
	if t.PostExtract == nil {
		return nil
	}
	return s.hub.Extract(t.Hash, t.PostExtract.TargetDir, t.PostExtract.Overwrite)
}
