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

// Package utils provides small path and filesystem helpers shared by
// the hub core. Everything that joins client input with a
// server-controlled directory goes through IsValidPathComponent first.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// IsValidPathComponent reports whether p is exactly one normal path
// component: not empty, not "." or "..", not absolute and carrying no
// separator. Client-supplied target directories and file names must
// pass this check before they are joined with a base directory.
func IsValidPathComponent(p string) bool {
	if p == "" || p == "." || p == ".." {
		return false
	}
	if filepath.IsAbs(p) {
		return false
	}
	if strings.ContainsRune(p, '/') || strings.ContainsRune(p, os.PathSeparator) {
		return false
	}
	// a volume name like "C:" is not a normal component either
	if filepath.VolumeName(p) != "" {
		return false
	}
	return true
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// ResolvePath expands a leading ~ to the user home directory and
// returns an absolute path.
func ResolvePath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Abs(p)
}
