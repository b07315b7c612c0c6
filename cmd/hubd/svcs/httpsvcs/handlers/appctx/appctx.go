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

// Package appctx attaches a request-scoped logger and request id to
// every incoming HTTP request.
package appctx

import (
	"net/http"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/metadata"

	"github.com/extensionhub/hub/pkg/appctx"
	"github.com/extensionhub/hub/pkg/reqid"
)

// New returns a new HTTP middleware that stores the log in the context
// with request ID information.
func New(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return handler(log, h)
	}
}

func handler(log zerolog.Logger, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := getReqID(r)

		ctx = reqid.ContextSetReqID(ctx, reqID)
		ctx = metadata.AppendToOutgoingContext(ctx, reqid.ReqIDHeaderName, reqID) // for grpc

		sub := log.With().Str("reqid", reqID).Logger()
		ctx = appctx.WithLogger(ctx, &sub)

		r = r.WithContext(ctx)
		h.ServeHTTP(w, r)
	})
}

func getReqID(r *http.Request) string {
	if val, ok := reqid.ContextGetReqID(r.Context()); ok && val != "" {
		return val
	}
	if reqID := r.Header.Get(reqid.ReqIDHeaderName); reqID != "" {
		return reqID
	}
	return reqid.MintReqID()
}
