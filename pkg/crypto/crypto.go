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

// Package crypto computes the content digests that identify bundles.
// BLAKE3 is the wire format: changing it breaks every stored hash.
package crypto

import (
	"encoding/hex"
	"io"
	"regexp"

	"lukechampine.com/blake3"
)

var hashRegexp = regexp.MustCompile("^[0-9a-f]{64}$")

// Blake3Sum consumes r and returns the lowercase hex BLAKE3 digest of
// its bytes.
func Blake3Sum(r io.Reader) (string, error) {
	h := blake3.New(32, nil)
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Blake3SumBytes returns the lowercase hex BLAKE3 digest of b.
func Blake3SumBytes(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// IsHash reports whether s looks like a bundle identifier: 64
// lowercase hex characters.
func IsHash(s string) bool {
	return hashRegexp.MatchString(s)
}
