package seeding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbaltor/generators"
	"github.com/fbaltor/generators/script"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig(`
[generator]
kind = "rand_bytes"
`)
	require.NoError(t, err)
	assert.Equal(t, DefaultCount, cfg.Count)
	assert.Equal(t, DefaultMaxSize, cfg.Generator.MaxSize)
	assert.Equal(t, DefaultObject, cfg.Generator.Object)
	assert.False(t, cfg.HasSeed)

	gen, err := cfg.Build(nil)
	require.NoError(t, err)
	b, ok := gen.(*script.Bridge)
	require.True(t, ok)
	assert.Equal(t, script.VariantRandBytes, b.Variant())
}

func TestParseConfig_Explicit(t *testing.T) {
	cfg, err := ParseConfig(`
count = 0
seed = 0
max_retries = 3

[generator]
kind = "rand_printables"
max_size = 0
`)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Count)
	assert.True(t, cfg.HasSeed)
	assert.Equal(t, 0, cfg.Generator.MaxSize)
	assert.Len(t, cfg.Options(), 4)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing kind", "count = 1\n[generator]\nmax_size = 3\n"},
		{"unknown kind", "[generator]\nkind = \"grammar\"\n"},
		{"unknown key", "colour = 1\n[generator]\nkind = \"rand_bytes\"\n"},
		{"negative size", "[generator]\nkind = \"rand_bytes\"\nmax_size = -1\n"},
		{"negative count", "count = -1\n[generator]\nkind = \"rand_bytes\"\n"},
		{"script without path", "[generator]\nkind = \"script\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseConfig_UnknownKindWrapsRegistryError(t *testing.T) {
	_, err := ParseConfig("[generator]\nkind = \"grammar\"\n")
	assert.ErrorIs(t, err, generators.ErrUnknownKind)
}

func TestBuild_ScriptNeedsRuntime(t *testing.T) {
	cfg, err := ParseConfig("[generator]\nkind = \"script\"\nscript = \"x.lua\"\n")
	require.NoError(t, err)
	_, err = cfg.Build(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBuild_ValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative max size", Config{Generator: GeneratorConfig{Kind: generators.KindRandBytes, MaxSize: -1}}},
		{"unknown kind", Config{Generator: GeneratorConfig{Kind: "grammar", MaxSize: 8}}},
		{"script without path", Config{Generator: GeneratorConfig{Kind: KindScript}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g generators.Generator[generators.BytesInput, *generators.StdState]
			var err error
			assert.NotPanics(t, func() { g, err = tt.cfg.Build(nil) })
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, g)
		})
	}
}

func TestConfig_ScriptPath(t *testing.T) {
	cfg := Config{Dir: "/etc/seeds", Generator: GeneratorConfig{Script: "gen.lua"}}
	assert.Equal(t, "/etc/seeds/gen.lua", cfg.ScriptPath())
	cfg.Generator.Script = "/abs/gen.lua"
	assert.Equal(t, "/abs/gen.lua", cfg.ScriptPath())
}
