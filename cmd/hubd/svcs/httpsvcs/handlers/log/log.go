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

// Package log logs every HTTP request with its method, path, status
// and duration.
package log

import (
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/extensionhub/hub/cmd/hubd/httpserver"
	"github.com/extensionhub/hub/pkg/appctx"
)

func init() {
	httpserver.RegisterMiddleware("log", New)
}

type config struct {
	Priority int `mapstructure:"priority"`
}

// New returns a middleware that logs requests.
func New(m map[string]interface{}) (httpserver.Middleware, int, error) {
	conf := &config{}
	if err := mapstructure.Decode(m, conf); err != nil {
		return nil, 0, err
	}

	mw := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			h.ServeHTTP(rw, r)

			log := appctx.GetLogger(r.Context())
			var event = log.Info()
			if rw.status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.status).
				Dur("duration", time.Since(start)).
				Msg("http")
		})
	}
	return mw, conf.Priority, nil
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
