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

package main

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

// packDir bundles dir into a gzip compressed tar in the system temp
// directory and returns its path. Entry names are relative to dir.
func packDir(dir string) (string, error) {
	out, err := os.CreateTemp("", "hub-bundle-*.tar.gz")
	if err != nil {
		return "", errors.Wrap(err, "error creating bundle file")
	}
	defer out.Close()

	gz := pgzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	walkErr := godirwalk.Walk(dir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			if rel == "." {
				return nil
			}
			return addEntry(tw, path, filepath.ToSlash(rel), de)
		},
	})
	if walkErr != nil {
		os.Remove(out.Name())
		return "", errors.Wrap(walkErr, "error packing directory")
	}

	if err := tw.Close(); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	if err := gz.Close(); err != nil {
		os.Remove(out.Name())
		return "", err
	}

	return out.Name(), nil
}

func addEntry(tw *tar.Writer, path, rel string, de *godirwalk.Dirent) error {
	fi, err := os.Lstat(path)
	if err != nil {
		return err
	}

	var link string
	if de.IsSymlink() {
		if link, err = os.Readlink(path); err != nil {
			return err
		}
	}

	hdr, err := tar.FileInfoHeader(fi, link)
	if err != nil {
		return err
	}
	hdr.Name = rel
	if de.IsDir() {
		hdr.Name += "/"
	}

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	if !de.IsRegular() {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}
