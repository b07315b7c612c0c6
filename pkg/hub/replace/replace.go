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

// Package replace performs literal text substitution over a directory
// tree. Matching is plain byte equality, never a pattern: the old text
// is replaced wherever it appears in a selected file.
package replace

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"

	"github.com/extensionhub/hub/pkg/errtypes"
)

// Paths matching this pattern are never touched, on top of whatever
// the caller excludes.
const defaultExclude = `\.git$`

// Request describes one substitution pass.
type Request struct {
	// Root is the directory tree to read.
	Root string
	// OutputRoot, when set, receives the rewritten files at mirrored
	// relative paths while Root stays untouched. Empty means rewrite
	// in place.
	OutputRoot string
	// Old is the literal byte sequence to search for. New replaces it.
	Old string
	New string
	// Suffixes restricts the pass to files with one of the given
	// extensions, with or without a leading dot. Empty means every file.
	Suffixes []string
	// Exclude holds extra regular expressions matched against the
	// slash-separated path relative to Root.
	Exclude []string
}

// Run walks the tree and applies the substitution. It returns the
// number of files rewritten.
func Run(req Request) (int, error) {
	excludes, err := compileExcludes(req.Exclude)
	if err != nil {
		return 0, errtypes.ConfigureError(err.Error())
	}

	old := []byte(req.Old)
	repl := []byte(req.New)
	changed := 0

	walkErr := godirwalk.Walk(req.Root, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			rel, err := filepath.Rel(req.Root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if matchAny(excludes, rel) {
				if de.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if de.IsDir() || !de.IsRegular() {
				return nil
			}
			if !hasSuffix(rel, req.Suffixes) {
				return nil
			}

			ok, err := rewrite(path, rel, req.OutputRoot, old, repl)
			if err != nil {
				return err
			}
			if ok {
				changed++
			}
			return nil
		},
	})
	if walkErr != nil {
		var coder errtypes.Coder
		if errors.As(walkErr, &coder) {
			return changed, walkErr
		}
		return changed, errtypes.IOError(walkErr.Error())
	}
	return changed, nil
}

// rewrite applies the substitution to one file. It reports whether the
// file contained the old text. Files without a match are not rewritten
// and, with an output root set, not copied either.
func rewrite(path, rel, outputRoot string, old, repl []byte) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, errtypes.IOError(err.Error())
	}
	if !bytes.Contains(b, old) {
		return false, nil
	}

	fi, err := os.Stat(path)
	if err != nil {
		return false, errtypes.IOError(err.Error())
	}

	out := path
	if outputRoot != "" {
		out = filepath.Join(outputRoot, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return false, errtypes.IOError(err.Error())
		}
	}

	if err := os.WriteFile(out, bytes.ReplaceAll(b, old, repl), fi.Mode().Perm()); err != nil {
		return false, errtypes.IOError(err.Error())
	}
	return true, nil
}

func compileExcludes(extra []string) ([]*regexp.Regexp, error) {
	patterns := append([]string{defaultExclude}, extra...)
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "replace: bad exclude pattern %q", p)
		}
		out = append(out, re)
	}
	return out, nil
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func hasSuffix(rel string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	for _, s := range suffixes {
		if strings.HasSuffix(rel, "."+strings.TrimPrefix(s, ".")) {
			return true
		}
	}
	return false
}
