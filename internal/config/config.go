// Package config loads tap's layered configuration: defaults, then the
// global file, then the project-local file, then TAP_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	tapenv "github.com/tapbuild/tap/internal/env"
	"github.com/tapbuild/tap/internal/mode"
)

// localFile is the project-local configuration file name, looked up in
// the directory tap was invoked from.
const localFile = ".tap.json"

// ModeSpec declares a custom build mode and its per-backend mapping.
type ModeSpec struct {
	CMakeBuildType string            `koanf:"cmake_build_type"`
	MesonBuildType string            `koanf:"meson_buildtype"`
	MakeArgs       []string          `koanf:"make_args"`
	Env            map[string]string `koanf:"env"`
}

// Configuration is tap's user-tunable state. Flags override it; it
// overrides built-in defaults.
type Configuration struct {
	DefaultMode   string              `koanf:"default_mode" validate:"omitempty,alphanum,lowercase"`
	DefaultPrefix string              `koanf:"default_prefix"`
	Backend       string              `koanf:"backend" validate:"omitempty,oneof=make cmake meson"`
	Verbose       bool                `koanf:"verbose"`
	Modes         map[string]ModeSpec `koanf:"modes" validate:"dive,keys,alphanum,lowercase,endkeys"`
}

// Load reads configuration for an invocation started in dir. Missing
// files are fine; malformed ones are not.
func Load(dir string) (*Configuration, error) {
	k := koanf.New(".")

	if configDir, err := tapenv.ConfigDir(); err == nil {
		if err := loadFile(k, filepath.Join(configDir, "config.json")); err != nil {
			return nil, err
		}
	}
	if err := loadFile(k, filepath.Join(dir, localFile)); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("TAP_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Registry builds the mode registry for this configuration: built-ins
// plus custom modes. DefaultMode must resolve against the result.
func (c *Configuration) Registry() (*mode.Registry, error) {
	r := mode.NewRegistry()
	for name, spec := range c.Modes {
		err := r.Add(mode.Mode{
			Name:           name,
			CMakeBuildType: spec.CMakeBuildType,
			MesonBuildType: spec.MesonBuildType,
			MakeArgs:       spec.MakeArgs,
			Env:            spec.Env,
		})
		if err != nil {
			return nil, err
		}
	}
	if c.DefaultMode != "" {
		if _, err := r.Resolve(c.DefaultMode); err != nil {
			return nil, fmt.Errorf("default_mode: %w", err)
		}
	}
	return r, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	return nil
}

// envTransform maps TAP_DEFAULT_MODE to default_mode and so on. Mode
// tables come from files only.
func envTransform(key string) string {
	key = strings.TrimPrefix(key, "TAP_")
	return strings.ToLower(key)
}
