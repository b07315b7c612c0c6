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
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/extensionhub/hub/pkg/appctx"
)

// doDownload streams a stored bundle. Download tokens are reusable
// until they expire.
func (s *svc) doDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := appctx.GetLogger(ctx)
	token := chi.URLParam(r, "token")

	t, err := s.hub.Tickets.PeekDownload(token)
	if err != nil {
		log.Debug().Err(err).Msg("download token rejected")
		writeError(w, err)
		return
	}

	path, err := s.hub.Store.Path(t.Hash)
	if err != nil {
		// the ticket outlived the archive
		writeError(w, err)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		writeError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+t.Hash+`.tar.gz"`)
	if fi, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(fi.Size(), 10))
	}

	if _, err := io.Copy(w, f); err != nil {
		log.Error().Err(err).Str("hash", t.Hash).Msg("error streaming bundle to client")
		return
	}
	log.Info().Str("hash", t.Hash).Msg("bundle served")
}
