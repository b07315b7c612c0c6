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

// Package sharedconf holds the config values every service can fall
// back to when its own section does not set them.
package sharedconf

import "github.com/mitchellh/mapstructure"

var sharedConf = &conf{}

type conf struct {
	BaseDir    string `mapstructure:"base_dir"`
	TarDirPath string `mapstructure:"tar_dir_path"`
}

// Decode decodes the configuration.
func Decode(v map[string]interface{}) error {
	if err := mapstructure.Decode(v, sharedConf); err != nil {
		return err
	}

	if sharedConf.BaseDir == "" {
		sharedConf.BaseDir = "/var/lib/extension_hub"
	}
	return nil
}

// GetBaseDir returns the base directory for extracted trees.
func GetBaseDir(val string) string {
	if val == "" {
		return sharedConf.BaseDir
	}
	return val
}

// GetTarDirPath returns the directory for stored archives.
func GetTarDirPath(val string) string {
	if val == "" {
		return sharedConf.TarDirPath
	}
	return val
}
