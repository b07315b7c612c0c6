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
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	hubv1 "github.com/extensionhub/hub/api/hub/v1"
	"github.com/extensionhub/hub/pkg/crypto"
	"github.com/extensionhub/hub/pkg/errtypes"
	"github.com/extensionhub/hub/pkg/utils"
)

func publishCommand() *command {
	cmd := newCommand("publish")
	cmd.Description = func() string { return "upload a local directory or .tar.gz bundle to the hub" }
	cmd.Usage = func() string { return "Usage: hub publish [-untar-to dir] [-overwrite] <dir-or-tar.gz>" }
	untarToFlag := cmd.String("untar-to", "", "extract into this directory right after the upload")
	overwriteFlag := cmd.Bool("overwrite", false, "overwrite the extraction directory if it exists")
	cmd.Action = func() error {
		if cmd.NArg() < 1 {
			fmt.Println(cmd.Usage())
			return fmt.Errorf("missing local path")
		}

		absPath, err := utils.ResolvePath(cmd.Args()[0])
		if err != nil {
			return err
		}

		bundle := absPath
		if utils.IsDir(absPath) {
			fmt.Printf("packing %s ...\n", absPath)
			bundle, err = packDir(absPath)
			if err != nil {
				return err
			}
			defer os.Remove(bundle)
		} else if !strings.HasSuffix(bundle, ".tar.gz") {
			return fmt.Errorf("%s is neither a directory nor a .tar.gz bundle", absPath)
		}

		hash, err := hashFile(bundle)
		if err != nil {
			return err
		}
		fmt.Printf("bundle hash: %s\n", hash)

		token, err := requestUploadToken(hash, *untarToFlag, *overwriteFlag)
		if err != nil {
			return err
		}

		if err := uploadBundle(token, hash, bundle); err != nil {
			return err
		}

		fmt.Println("published")
		return nil
	}
	return cmd
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return crypto.Blake3Sum(f)
}

func requestUploadToken(hash, untarTo string, overwrite bool) (string, error) {
	client, err := getClient()
	if err != nil {
		return "", err
	}

	req := &hubv1.UploadTarRequest{TarHash: hash}
	if untarTo != "" {
		req.UnTar = &hubv1.UnTarRequest{
			TarHash:   hash,
			TargetDir: untarTo,
			Overwrite: overwrite,
		}
	}

	var trailer metadata.MD
	res, err := client.UploadTar(context.Background(), req, grpc.Trailer(&trailer))
	if err != nil {
		return "", formatError(err, trailer)
	}
	if res.GetData() == nil {
		return "", errtypes.MalformedAPIResponse("UploadTar")
	}
	return res.GetData().GetUploadUrl(), nil
}

// uploadBundle streams the bundle as a multipart POST, showing a
// progress bar. The body is piped, never buffered whole.
func uploadBundle(token, hash, bundle string) error {
	f, err := os.Open(bundle)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	bar := pb.Full.Start64(fi.Size())
	defer bar.Finish()
	reader := bar.NewProxyReader(f)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", hash+".tar.gz")
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, reader); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.Close(); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.Close()
	}()

	res, err := http.Post(dataURL+"/file/"+token, mw.FormDataContentType(), pr)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return httpError(res)
	}
	return nil
}

// httpError decodes a failed bulk-plane response into a readable error
// using the X-Hub-Code header.
func httpError(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	code := res.Header.Get("X-Hub-Code")
	if code == "" {
		return fmt.Errorf("error: http status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}
	return fmt.Errorf("error: http status %d, code %s: %s", res.StatusCode, code, strings.TrimSpace(string(body)))
}
