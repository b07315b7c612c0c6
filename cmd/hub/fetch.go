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
	"net/http"
	"os"

	"github.com/cheggaaa/pb/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	hubv1 "github.com/extensionhub/hub/api/hub/v1"
	"github.com/extensionhub/hub/pkg/errtypes"
)

func fetchCommand() *command {
	cmd := newCommand("fetch")
	cmd.Description = func() string { return "download a stored bundle into a local file" }
	cmd.Usage = func() string { return "Usage: hub fetch <tar-hash> <local-file>" }
	cmd.Action = func() error {
		if cmd.NArg() < 2 {
			fmt.Println(cmd.Usage())
			return fmt.Errorf("missing tar hash or local file")
		}

		hash := cmd.Args()[0]
		local := cmd.Args()[1]

		client, err := getClient()
		if err != nil {
			return err
		}

		var trailer metadata.MD
		res, err := client.DownloadTar(context.Background(), &hubv1.DownloadTarRequest{TarHash: hash}, grpc.Trailer(&trailer))
		if err != nil {
			return formatError(err, trailer)
		}
		if res.GetData() == nil {
			return errtypes.MalformedAPIResponse("DownloadTar")
		}
		token := res.GetData().GetDownloadUrl()

		httpRes, err := http.Get(dataURL + "/file/" + token)
		if err != nil {
			return err
		}
		defer httpRes.Body.Close()

		if httpRes.StatusCode != http.StatusOK {
			return httpError(httpRes)
		}

		fd, err := os.OpenFile(local, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer fd.Close()

		bar := pb.Full.Start64(httpRes.ContentLength)
		defer bar.Finish()
		reader := bar.NewProxyReader(httpRes.Body)

		if _, err := io.Copy(fd, reader); err != nil {
			return err
		}

		fmt.Printf("fetched %s\n", local)
		return nil
	}
	return cmd
}
