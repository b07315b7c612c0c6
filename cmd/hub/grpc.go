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
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	hubv1 "github.com/extensionhub/hub/api/hub/v1"
	"github.com/extensionhub/hub/pkg/errtypes"
)

// codeTrailer is the response trailer the server uses to convey the
// 4-byte big-endian wire code of a failed call.
const codeTrailer = "x-hub-code-bin"

func getClient() (hubv1.ExtensionHubClient, error) {
	conn, err := grpc.Dial(host, grpc.WithInsecure())
	if err != nil {
		return nil, err
	}
	return hubv1.NewExtensionHubClient(conn), nil
}

// formatError turns a failed call into a readable error, decoding the
// wire code from the response trailer when the server sent one.
func formatError(err error, trailer metadata.MD) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	vals := trailer.Get(codeTrailer)
	if len(vals) == 0 {
		return fmt.Errorf("error: status=%s msg=%q", st.Code(), st.Message())
	}

	code, derr := errtypes.DecodeCode([]byte(vals[0]))
	if derr != nil {
		return fmt.Errorf("error: status=%s msg=%q (undecodable error code)", st.Code(), st.Message())
	}

	name := errtypes.NameOf(code)
	if name == "" {
		name = "unknown"
	}
	return fmt.Errorf("error: code=%d (%s) msg=%q", code, name, st.Message())
}
