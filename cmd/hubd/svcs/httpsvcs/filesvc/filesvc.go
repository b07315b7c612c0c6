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

// Package filesvc is the bulk plane: token-keyed upload and download
// of archive bytes over HTTP. The token in the URL is the only access
// control; it comes from a prior UploadTar or DownloadTar RPC.
package filesvc

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"

	"github.com/extensionhub/hub/cmd/hubd/httpserver"
	"github.com/extensionhub/hub/cmd/hubd/svcs/httpsvcs"
	"github.com/extensionhub/hub/pkg/errtypes"
	"github.com/extensionhub/hub/pkg/hub"
)

// CodeHeader carries the decimal wire code of a failed transfer.
const CodeHeader = "X-Hub-Code"

// defaultMaxBodySize caps an upload request body at 250 MiB.
const defaultMaxBodySize = 250 * 1024 * 1024

func init() {
	httpserver.Register("filesvc", New)
}

type config struct {
	Prefix      string `mapstructure:"prefix"`
	MaxBodySize int64  `mapstructure:"max_body_size"`
}

type svc struct {
	conf    *config
	hub     *hub.Hub
	handler http.Handler
}

// New returns the bulk-plane service.
func New(m map[string]interface{}) (httpsvcs.Service, error) {
	conf := &config{}
	if err := mapstructure.Decode(m, conf); err != nil {
		return nil, err
	}

	if conf.Prefix == "" {
		conf.Prefix = "file"
	}
	if conf.MaxBodySize == 0 {
		conf.MaxBodySize = defaultMaxBodySize
	}

	h, err := hub.Get(m)
	if err != nil {
		return nil, err
	}

	s := &svc{conf: conf, hub: h}
	s.setHandler()
	return s, nil
}

func (s *svc) Prefix() string {
	return s.conf.Prefix
}

func (s *svc) Handler() http.Handler {
	return s.handler
}

func (s *svc) Close() error {
	return s.hub.Tickets.Close()
}

func (s *svc) setHandler() {
	r := chi.NewRouter()
	r.Post("/{token}", s.doUpload)
	r.Get("/{token}", s.doDownload)
	s.handler = r
}

// writeError maps a typed error onto the bulk plane: missing or
// expired resources are 404, a rejected path or hash shape is 400,
// everything else is 500. The wire code always travels in the
// X-Hub-Code header.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set(CodeHeader, strconv.FormatUint(uint64(errtypes.Code(err)), 10))
	switch err.(type) {
	case errtypes.IsNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case errtypes.InvalidPath:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
