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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPathComponent(t *testing.T) {
	valid := []string{
		"plug",
		"my-extension",
		"a.b.c",
		"..hidden",
		"name with spaces",
	}
	for _, p := range valid {
		assert.True(t, IsValidPathComponent(p), "expected %q to be valid", p)
	}

	invalid := []string{
		"",
		".",
		"..",
		"/",
		"/etc",
		"a/b",
		"../escape",
		"a/../b",
		"dir/",
	}
	for _, p := range invalid {
		assert.False(t, IsValidPathComponent(p), "expected %q to be invalid", p)
	}
}
