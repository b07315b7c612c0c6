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

// hub is the command-line client for the extension hub daemon.
package main

import (
	"flag"
	"fmt"
	"os"
)

var (
	host    string
	dataURL string
)

func init() {
	flag.StringVar(&host, "host", "localhost:9999", "address of the hubd grpc endpoint")
	flag.StringVar(&dataURL, "url", "http://localhost:9998", "base url of the hubd http endpoint")
	flag.Parse()
}

func main() {
	cmds := []*command{
		checkCommand(),
		publishCommand(),
		fetchCommand(),
		untarCommand(),
		replaceTextCommand(),
	}

	mainUsage := createMainUsage(cmds)

	if len(flag.Args()) < 1 {
		fmt.Println(mainUsage)
		os.Exit(1)
	}

	action := flag.Args()[0]
	for _, v := range cmds {
		if v.Name == action {
			if err := v.Parse(flag.Args()[1:]); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			if err := v.Action(); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			os.Exit(0)
		}
	}

	fmt.Println(mainUsage)
	os.Exit(1)
}

func createMainUsage(cmds []*command) string {
	n := 0
	for _, cmd := range cmds {
		if l := len(cmd.Name); l > n {
			n = l
		}
	}

	usage := "Command line client for the extension hub\n\nAvailable commands:\n"
	for _, cmd := range cmds {
		usage += fmt.Sprintf("  %s%s%s\n", cmd.Name, spaces(n-len(cmd.Name)+4), cmd.Description())
	}
	usage += "\nGlobal flags:\n  -host  grpc endpoint (default localhost:9999)\n  -url   http endpoint (default http://localhost:9998)\n"
	return usage
}

func spaces(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += " "
	}
	return s
}
