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

// Package httpsvcs defines the contract HTTP services implement to be
// mounted on the hubd HTTP server.
package httpsvcs

import (
	"net/http"
	"path"
	"strings"
)

// Service is the interface a service needs to implement to be exposed
// under a URL prefix.
type Service interface {
	Prefix() string
	Handler() http.Handler
	Close() error
}

// ShiftPath splits off the first component of p, which will be cleaned
// of relative components before processing. The returned head never
// contains a slash and the tail always starts with one.
func ShiftPath(p string) (head, tail string) {
	p = path.Clean("/" + p)
	i := strings.Index(p[1:], "/") + 1
	if i <= 0 {
		return p[1:], "/"
	}
	return p[1:i], p[i:]
}
