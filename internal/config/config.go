// Package config loads CLI defaults from CUE, YAML or JSON files.
//
// Files are parsed with CUE and unified with an embedded schema, so a typo in
// a field name or an out-of-range value is rejected at load time with a CUE
// position. Environment variables override file values; command-line flags
// override both (applied by the cli package).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/encoding/yaml"

	"github.com/roach88/bits/internal/packet"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel = "BITS_LOG_LEVEL"
	EnvNoColor  = "BITS_NO_COLOR"
	EnvMaxDepth = "BITS_MAX_DEPTH"
)

// MaxDepthLimit is the largest nesting limit a config may request.
const MaxDepthLimit = 4096

// DefaultFiles are probed, in order, when no explicit config path is given.
var DefaultFiles = []string{"bits.cue", "bits.yaml", "bits.yml", "bits.json"}

// Config holds CLI defaults.
type Config struct {
	Format   string `json:"format"`
	MaxDepth int    `json:"max_depth"`
	LogLevel string `json:"log_level"`
	NoColor  bool   `json:"no_color"`
}

// schema constrains every config file. Fields are optional; defaults fill
// what the file leaves out.
const schema = `
#Config: {
	format:    *"text" | "json" | "yaml"
	max_depth: *256 | (int & >=1 & <=4096)
	log_level: *"warn" | "debug" | "info" | "error"
	no_color:  *false | bool
}
`

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Format:   "text",
		MaxDepth: packet.DefaultMaxDepth,
		LogLevel: "warn",
	}
}

// Load reads the config at path. An empty path probes DefaultFiles in dir and
// returns Default() when none exist.
func Load(path, dir string) (Config, error) {
	if path == "" {
		found, ok := findDefault(dir)
		if !ok {
			return Default(), nil
		}
		path = found
	}

	ctx := cuecontext.New()
	val, err := loadValue(ctx, path)
	if err != nil {
		return Config{}, err
	}

	def := ctx.CompileString(schema).LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return Config{}, fmt.Errorf("config schema: %w", err)
	}
	unified := def.Unify(val)
	if err := unified.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

func findDefault(dir string) (string, bool) {
	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// loadValue parses one file: .cue through load.Instances so imports work,
// .json via CompileBytes, anything else as YAML.
func loadValue(ctx *cue.Context, path string) (cue.Value, error) {
	if strings.EqualFold(filepath.Ext(path), ".cue") {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return cue.Value{}, fmt.Errorf("failed to resolve path: %w", err)
		}
		instances := load.Instances([]string{absPath}, &load.Config{Dir: filepath.Dir(absPath)})
		if len(instances) == 0 {
			return cue.Value{}, fmt.Errorf("no instances loaded from %s", path)
		}
		if err := instances[0].Err; err != nil {
			return cue.Value{}, fmt.Errorf("failed to load config: %w", err)
		}
		val := ctx.BuildInstance(instances[0])
		if err := val.Err(); err != nil {
			return cue.Value{}, fmt.Errorf("failed to build CUE value: %w", err)
		}
		return val, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	var val cue.Value
	if strings.EqualFold(filepath.Ext(path), ".json") {
		val = ctx.CompileBytes(data, cue.Filename(path))
	} else {
		file, err := yaml.Extract(path, data)
		if err != nil {
			return cue.Value{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
		val = ctx.BuildFile(file)
	}
	if err := val.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("failed to build CUE value: %w", err)
	}
	return val, nil
}

// ApplyEnv overlays BITS_* environment variables onto cfg. Unparseable
// values are reported rather than ignored.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvNoColor)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvNoColor, err)
		}
		cfg.NoColor = b
	}
	if v := strings.TrimSpace(getenv(EnvMaxDepth)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxDepth, err)
		}
		cfg.MaxDepth = n
	}
	return nil
}

// Validate applies the schema's constraints to a Config assembled in Go,
// after env and flag overrides.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q: must be one of text, json, yaml", c.Format)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.MaxDepth < 1 || c.MaxDepth > MaxDepthLimit {
		return fmt.Errorf("max depth %d out of range [1, %d]", c.MaxDepth, MaxDepthLimit)
	}
	return nil
}
