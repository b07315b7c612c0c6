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

// Package untar extracts gzip compressed tar streams below a
// destination directory.
//
// Every entry name and link target is checked before anything touches
// the filesystem: an archive can never write or point outside dest, no
// matter how its paths are crafted.
package untar

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/extensionhub/hub/pkg/errtypes"
)

// Extract reads a .tar.gz stream from r and materializes it under dest.
// dest must already exist. Regular files, directories, symlinks and
// hardlinks are supported; other entry types are skipped.
func Extract(r io.Reader, dest string) error {
	gz, err := pgzip.NewReader(r)
	if err != nil {
		return errtypes.DecodeError(err.Error())
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errtypes.DecodeError(err.Error())
		}
		if err := writeEntry(tr, hdr, dest); err != nil {
			return err
		}
	}
}

func writeEntry(tr *tar.Reader, hdr *tar.Header, dest string) error {
	target, err := contain(dest, hdr.Name)
	if err != nil {
		return err
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, os.FileMode(hdr.Mode)|0700); err != nil {
			return errtypes.IOError(err.Error())
		}
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errtypes.IOError(err.Error())
		}
		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(hdr.Mode))
		if err != nil {
			return errtypes.IOError(err.Error())
		}
		if _, err := io.Copy(f, tr); err != nil {
			f.Close()
			return errtypes.IOError(err.Error())
		}
		if err := f.Close(); err != nil {
			return errtypes.IOError(err.Error())
		}
	case tar.TypeSymlink:
		// the link target resolves relative to the entry's directory
		linked := hdr.Linkname
		if !filepath.IsAbs(linked) {
			linked = filepath.Join(filepath.Dir(hdr.Name), hdr.Linkname)
		}
		if _, err := contain(dest, linked); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errtypes.IOError(err.Error())
		}
		if err := os.Symlink(hdr.Linkname, target); err != nil {
			return errtypes.IOError(err.Error())
		}
	case tar.TypeLink:
		source, err := contain(dest, hdr.Linkname)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errtypes.IOError(err.Error())
		}
		if err := os.Link(source, target); err != nil {
			return errtypes.IOError(err.Error())
		}
	default:
		// char/block devices, fifos and the like are not extracted
	}
	return nil
}

// contain joins name under dest and fails with InvalidPath when the
// result would land outside dest.
func contain(dest, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || !filepath.IsLocal(filepath.Clean(name)) {
		return "", errtypes.InvalidPath(name)
	}
	target := filepath.Join(dest, name)
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return "", errtypes.InvalidPath(name)
	}
	return target, nil
}
