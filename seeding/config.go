package seeding

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fbaltor/generators"
	"github.com/fbaltor/generators/internal/utils"
	"github.com/fbaltor/generators/script"
)

// KindScript is the generator kind backed by a Lua object.
const KindScript = "script"

// Defaults applied to unset configuration values.
const (
	DefaultCount   = 32
	DefaultMaxSize = 64
	DefaultObject  = "generator"
)

// ErrInvalidConfig is returned for configuration files that cannot be used.
var ErrInvalidConfig = errors.New("invalid seeding config")

// Config describes one seeding run.
type Config struct {
	Count      int             `toml:"count"`
	Workers    int             `toml:"workers"`
	Seed       uint64          `toml:"seed"`
	HasSeed    bool            `toml:"-"`
	Dummy      bool            `toml:"dummy"`
	MaxRetries int             `toml:"max_retries"`
	Generator  GeneratorConfig `toml:"generator"`

	// Dir is the directory relative script paths are resolved against.
	Dir string `toml:"-"`
}

// GeneratorConfig selects the generator.
type GeneratorConfig struct {
	Kind    string `toml:"kind"`
	MaxSize int    `toml:"max_size"`
	// Script and Object are used by the script kind: the Lua file to run
	// and the global holding the generator object.
	Script string `toml:"script"`
	Object string `toml:"object"`
}

// LoadConfig reads a TOML seeding configuration.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Dir = filepath.Dir(path)
	if err := finish(&cfg, meta); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig is LoadConfig for in-memory TOML. Relative script paths are
// resolved against the working directory.
func ParseConfig(data string) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err := finish(&cfg, meta); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func finish(cfg *Config, meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("generator", "kind") {
		return fmt.Errorf("%w: [generator] kind is required", ErrInvalidConfig)
	}
	cfg.HasSeed = meta.IsDefined("seed")
	if !meta.IsDefined("count") {
		cfg.Count = DefaultCount
	}
	if !meta.IsDefined("generator", "max_size") {
		cfg.Generator.MaxSize = DefaultMaxSize
	}
	cfg.Generator.Object = utils.Or(cfg.Generator.Object, DefaultObject)
	return cfg.Validate()
}

// Validate checks value ranges and the generator kind.
func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("%w: count must not be negative", ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	case c.MaxRetries < 0:
		return fmt.Errorf("%w: max_retries must not be negative", ErrInvalidConfig)
	case c.Generator.MaxSize < 0:
		return fmt.Errorf("%w: max_size must not be negative", ErrInvalidConfig)
	}
	if c.Generator.Kind == KindScript {
		if c.Generator.Script == "" {
			return fmt.Errorf("%w: script kind needs a script path", ErrInvalidConfig)
		}
		return nil
	}
	if !slices.Contains(generators.Kinds(), c.Generator.Kind) {
		return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, generators.ErrUnknownKind, c.Generator.Kind)
	}
	return nil
}

// ScriptPath returns the script path resolved against Dir.
func (c Config) ScriptPath() string {
	if c.Generator.Script == "" || filepath.IsAbs(c.Generator.Script) {
		return c.Generator.Script
	}
	return filepath.Join(c.Dir, c.Generator.Script)
}

// Build returns the generator described by c. Script generators are loaded
// into rt, which must stay open while the generator is used; native kinds
// ignore rt.
func (c Config) Build(rt *script.Runtime) (generators.Generator[generators.BytesInput, *generators.StdState], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Generator.Kind != KindScript {
		g, err := generators.NewKind(c.Generator.Kind, c.Generator.MaxSize)
		if err != nil {
			return nil, err
		}
		if b, err := script.NewBridge(g); err == nil {
			return b, nil
		}
		return g, nil
	}
	if rt == nil {
		return nil, fmt.Errorf("%w: script kind needs a runtime", ErrInvalidConfig)
	}
	if err := rt.Register(); err != nil {
		return nil, err
	}
	if err := rt.DoFile(c.ScriptPath()); err != nil {
		return nil, fmt.Errorf("load %s: %w", c.ScriptPath(), err)
	}
	obj, err := rt.Global(c.Generator.Object)
	if err != nil {
		return nil, err
	}
	b, err := rt.BridgeFrom(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Generator.Object, err)
	}
	return b, nil
}

// Options converts the run settings into Seeder options.
func (c Config) Options() []Option {
	opts := []Option{
		WithWorkers(c.Workers),
		WithRetries(c.MaxRetries),
		WithDummy(c.Dummy),
	}
	if c.HasSeed {
		opts = append(opts, WithSeed(c.Seed))
	}
	return opts
}
