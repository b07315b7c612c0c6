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

func checkCommand() *command {
	cmd := newCommand("check")
	cmd.Description = func() string { return "check that a bundle is stored and extracted" }
	cmd.Usage = func() string { return "Usage: hub check <tar-hash> [<target-dir>]" }
	cmd.Action = func() error {
		if cmd.NArg() < 1 {
			fmt.Println(cmd.Usage())
			return fmt.Errorf("missing tar hash")
		}

		req := &hubv1.CheckTarRequest{TarHash: cmd.Args()[0]}
		if cmd.NArg() > 1 {
			req.FilePath = cmd.Args()[1]
		}

		client, err := getClient()
		if err != nil {
			return err
		}

		var trailer metadata.MD
		if _, err := client.CheckTar(context.Background(), req, grpc.Trailer(&trailer)); err != nil {
			return formatError(err, trailer)
		}

		fmt.Println("ok")
		return nil
	}
	return cmd
}
