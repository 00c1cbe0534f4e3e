// Package config loads the optional idfilter configuration file.
//
// The file is YAML. Before it is decoded into Config it is checked against
// an embedded JSON Schema, so unknown keys and bad values are reported with
// their location instead of being silently ignored.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/opal-lang/idfilter/core/invariant"
)

// SupportedMajor is the configuration major version this build reads.
const SupportedMajor = "v1"

//go:embed schema.json
var schemaJSON string

// Config holds settings that can also be given as command-line flags.
type Config struct {
	Version string `yaml:"version"`
	Format  string `yaml:"format"`
	Escapes string `yaml:"escapes"`
	Digest  bool   `yaml:"digest"`
	Stats   bool   `yaml:"stats"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Format:  "text",
		Escapes: "abort",
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse validates and decodes YAML configuration. Keys absent from data keep
// their Default values.
func Parse(data []byte) (Config, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("invalid YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	doc, err := toJSONValue(raw)
	if err != nil {
		return Config{}, err
	}
	if err := compiledSchema().Validate(doc); err != nil {
		return Config{}, convertValidationError(err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Version != "" && semver.Major(cfg.Version) != SupportedMajor {
		return Config{}, fmt.Errorf("unsupported configuration version %s (this build reads %s.x)",
			cfg.Version, SupportedMajor)
	}
	return cfg, nil
}

// toJSONValue normalizes a decoded YAML value into the shapes produced by
// encoding/json, which is what the schema validator expects.
func toJSONValue(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("configuration is not representable as JSON: %w", err)
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
)

func compiledSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true

		if compiler.Formats == nil {
			compiler.Formats = make(map[string]func(interface{}) bool)
		}
		compiler.Formats["semver"] = isSemver

		// The schema is embedded; nothing else may be loaded.
		compiler.LoadURL = func(url string) (io.ReadCloser, error) {
			return nil, fmt.Errorf("$ref not allowed: %s", url)
		}

		const url = "schema://idfilter/config.json"
		err := compiler.AddResource(url, strings.NewReader(schemaJSON))
		invariant.ExpectNoError(err, "adding embedded config schema")

		schema, err = compiler.Compile(url)
		invariant.ExpectNoError(err, "compiling embedded config schema")
	})
	return schema
}

// isSemver accepts "v1.2.3"-style versions. Non-strings are left to the
// schema's type checks.
func isSemver(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return true
	}
	return semver.IsValid(s)
}

// convertValidationError flattens a schema validation error into one line
// per failing location.
func convertValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var msgs []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, fmt.Sprintf("%s: %s", loc, e.Message))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)

	return fmt.Errorf("configuration does not match schema:\n  %s", strings.Join(msgs, "\n  "))
}
