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

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	hubv1 "github.com/extensionhub/hub/api/hub/v1"
)

func untarCommand() *command {
	cmd := newCommand("untar")
	cmd.Description = func() string { return "extract a stored bundle into a directory on the server" }
	cmd.Usage = func() string { return "Usage: hub untar [-overwrite] <tar-hash> <target-dir>" }
	overwriteFlag := cmd.Bool("overwrite", false, "remove the target directory first if it exists")
	cmd.Action = func() error {
		if cmd.NArg() < 2 {
			fmt.Println(cmd.Usage())
			return fmt.Errorf("missing tar hash or target dir")
		}

		req := &hubv1.UnTarRequest{
			TarHash:   cmd.Args()[0],
			TargetDir: cmd.Args()[1],
			Overwrite: *overwriteFlag,
		}

		client, err := getClient()
		if err != nil {
			return err
		}

		var trailer metadata.MD
		if _, err := client.UnTar(context.Background(), req, grpc.Trailer(&trailer)); err != nil {
			return formatError(err, trailer)
		}

		fmt.Printf("extracted into %s\n", req.TargetDir)
		return nil
	}
	return cmd
}
