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

// Package versionsvc reports the daemon version over HTTP.
package versionsvc

import (
	"encoding/json"
	"net/http"

	"github.com/mitchellh/mapstructure"

	"github.com/extensionhub/hub/cmd/hubd/httpserver"
	"github.com/extensionhub/hub/cmd/hubd/svcs/httpsvcs"
	"github.com/extensionhub/hub/pkg/appctx"
)

func init() {
	httpserver.Register("versionsvc", New)
}

// Version is stamped at build time with -ldflags.
var Version = "devel"

type config struct {
	Prefix string `mapstructure:"prefix"`
}

type svc struct {
	conf *config
}

// New returns the version service.
func New(m map[string]interface{}) (httpsvcs.Service, error) {
	conf := &config{}
	if err := mapstructure.Decode(m, conf); err != nil {
		return nil, err
	}
	if conf.Prefix == "" {
		conf.Prefix = "version"
	}
	return &svc{conf: conf}, nil
}

func (s *svc) Prefix() string {
	return s.conf.Prefix
}

func (s *svc) Close() error {
	return nil
}

func (s *svc) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"version": Version}); err != nil {
			appctx.GetLogger(r.Context()).Error().Err(err).Msg("error encoding version")
		}
	})
}
