/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v2"
)

// Config holds everything CompressAll needs, merged from an optional YAML
// file on disk and the command-line flags that override it. Flags always
// win over the file: a config file sets defaults for a batch job, flags
// let a single invocation deviate from it without editing the file.
type Config struct {
	Inputs      []string `yaml:"inputs"`
	Output      string   `yaml:"output"`
	Mode        string   `yaml:"mode"`       // "stored", "fixed" or "dynamic"
	WindowBits  int      `yaml:"windowBits"` // 8..15
	Jobs        int      `yaml:"jobs"`
	Recursive   bool     `yaml:"recursive"`
	IgnoreLinks bool     `yaml:"ignoreLinks"`
	IgnoreDot   bool     `yaml:"ignoreDotFiles"`
	Overwrite   bool     `yaml:"overwrite"`
	Verbosity   uint     `yaml:"verbosity"`
}

func defaultConfig() Config {
	return Config{
		Mode:       "dynamic",
		WindowBits: 15,
		Jobs:       1,
		Verbosity:  1,
	}
}

// LoadConfig reads a YAML config file, if path is non-empty, layering it
// over defaultConfig(). A missing path is not an error: the caller is
// expected to fill in the rest from flags.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config file %q", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config file %q", path)
	}

	return cfg, nil
}
