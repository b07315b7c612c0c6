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

// Package config reads the hubd configuration with viper. The config
// is looked up in the working directory, the user config directory and
// /etc/extension_hub unless an explicit file is given, and any key can
// be overridden with a HUB_ prefixed env var.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

var v *viper.Viper

func init() {
	v = viper.New()
	v.SetEnvPrefix("hub")                              // uppercased automatically
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // HUB_GRPC_ADDRESS overrides grpc.address
	v.AutomaticEnv()
}

// SetFile points the loader at an explicit config file.
func SetFile(fn string) {
	v.SetConfigFile(fn)
}

// SetDefaultPaths configures the search locations used when no
// explicit file was set.
func SetDefaultPaths() {
	v.SetConfigName("server")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/extension_hub")
	v.AddConfigPath("/etc/extension_hub")
}

// Read loads the configuration from disk.
func Read() error {
	return v.ReadInConfig()
}

// reGet recursively walks the given map and executes viper's Get
// method to allow overwriting config vars with env variables.
func reGet(prefix string, kv *map[string]interface{}) {
	for k, val := range *kv {
		if c, ok := val.(map[string]interface{}); ok {
			reGet(prefix+"."+k, &c)
		} else {
			(*kv)[k] = v.Get(prefix + "." + k)
		}
	}
}

// Get returns the config section under key with env overrides applied.
func Get(key string) map[string]interface{} {
	kv := v.GetStringMap(key)
	// GetStringMap does not run the automatic env mapping, re-walk the
	// keys with Get
	reGet(key, &kv)
	return kv
}

// Dump returns all settings.
func Dump() map[string]interface{} {
	return v.AllSettings()
}
