// Copyright 2025 OpenPubkey
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
// SPDX-License-Identifier: Apache-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed default-config.yml
var defaultConfig []byte

// Config holds the defaults used when a command line argument or flag is
// not given.
type Config struct {
	DefaultPath             string `yaml:"default_path"`
	DefaultPermissionString string `yaml:"default_permission_string"`
	Quote                   string `yaml:"quote"`
	Output                  string `yaml:"output"`
	Strict                  bool   `yaml:"strict"`
}

// NewConfig parses c on top of the embedded defaults, so keys missing from
// c keep their default value.
func NewConfig(c []byte) (*Config, error) {
	config, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(c, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

func DefaultConfig() (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(defaultConfig, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// DefaultConfigBytes returns the embedded default config file.
func DefaultConfigBytes() []byte {
	return defaultConfig
}

// DefaultConfigPath returns the per-user config file location, e.g.
// ~/.config/chmodkit/config.yml on Linux.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(dir, "chmodkit", "config.yml"), nil
}

// Load reads the config file at path from vfs. If path is empty the default
// location is tried and, when no file exists there, the embedded defaults
// are returned. An explicitly given path must exist.
func Load(vfs afero.Fs, path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return DefaultConfig()
		}
	}

	exists, err := afero.Exists(vfs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file %s: %w", path, err)
	}
	if !exists {
		if explicit {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		return DefaultConfig()
	}

	content, err := afero.ReadFile(vfs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return NewConfig(content)
}
