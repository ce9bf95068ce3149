package seeding

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fbaltor/generators"
	"github.com/fbaltor/generators/script"
)

var errFlaky = errors.New("flaky")

// flakyGenerator fails its first `failures` calls.
type flakyGenerator struct {
	failures atomic.Int32
}

func (g *flakyGenerator) Generate(*generators.StdState) (generators.BytesInput, error) {
	if g.failures.Add(-1) >= 0 {
		return generators.BytesInput{}, errFlaky
	}
	return generators.NewBytesInput([]byte("ok")), nil
}

func (g *flakyGenerator) GenerateDummy(*generators.StdState) generators.BytesInput {
	return generators.NewBytesInput(nil)
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newSeeder(t *testing.T, gen Generator, opts ...Option) *Seeder {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger()), WithClock(clockwork.NewFakeClock())}, opts...)
	s, err := New(gen, opts...)
	require.NoError(t, err)
	return s
}

func TestNew_NoGenerator(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoGenerator)
}

func TestRun_Native(t *testing.T) {
	gen := generators.NewRandBytesGenerator[*generators.StdState](16)
	s := newSeeder(t, gen, WithWorkers(3), WithSeed(7))
	seeds, err := s.Run(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, seeds, 10)
	for i, seed := range seeds {
		assert.Equal(t, i, seed.Index)
		assert.Equal(t, i%3, seed.Worker)
		assert.GreaterOrEqual(t, len(seed.Input), 1)
		assert.Less(t, len(seed.Input), 16)
	}
	report := s.Report()
	assert.Equal(t, 10, report.Generated)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, time.Duration(0), report.Elapsed)

	again, err := newSeeder(t, gen, WithWorkers(3), WithSeed(7)).Run(context.Background(), 10)
	require.NoError(t, err)
	for i := range seeds {
		assert.Equal(t, seeds[i].Input, again[i].Input)
	}
}

func TestRun_SingleWorkerMatchesDirectCalls(t *testing.T) {
	gen := generators.NewRandPrintablesGenerator[*generators.StdState](24)
	seeds, err := newSeeder(t, gen, WithSeed(3)).Run(context.Background(), 5)
	require.NoError(t, err)
	state := generators.NewStdState(generators.WithSeed(3))
	for _, seed := range seeds {
		want, err := gen.Generate(state)
		require.NoError(t, err)
		assert.Equal(t, want.Bytes(), seed.Input)
	}
}

func TestRun_Dummy(t *testing.T) {
	gen := generators.NewRandBytesGenerator[*generators.StdState](100)
	seeds, err := newSeeder(t, gen, WithDummy(true), WithWorkers(2)).Run(context.Background(), 4)
	require.NoError(t, err)
	for _, seed := range seeds {
		assert.True(t, seed.Dummy)
		assert.Equal(t, make([]byte, generators.DummyBytesMax), seed.Input)
	}
}

func TestRun_Retries(t *testing.T) {
	gen := &flakyGenerator{}
	gen.failures.Store(2)
	s := newSeeder(t, gen, WithRetries(2))
	sub := s.Subscribe(EventFailed)
	defer sub.Close()
	seeds, err := s.Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, seeds, 3)
	assert.Equal(t, 2, s.Report().Failed)
	for i := 0; i < 2; i++ {
		typ, evt, err := sub.ReceiveTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, EventFailed, typ)
		assert.ErrorIs(t, evt.Err, errFlaky)
		assert.Equal(t, 0, evt.Index)
	}
}

func TestRun_AbortsOnError(t *testing.T) {
	gen := &flakyGenerator{}
	gen.failures.Store(100)
	s := newSeeder(t, gen, WithRetries(1))
	sub := s.Subscribe(EventDone)
	defer sub.Close()
	_, err := s.Run(context.Background(), 3)
	assert.ErrorIs(t, err, errFlaky)
	_, evt, rerr := sub.ReceiveTimeout(time.Second)
	require.NoError(t, rerr)
	assert.ErrorIs(t, evt.Err, errFlaky)
}

func TestRun_Events(t *testing.T) {
	gen := generators.NewRandBytesGenerator[*generators.StdState](8)
	s := newSeeder(t, gen, WithWorkers(2))
	sub := s.Subscribe(EventGenerated, EventDone)
	defer sub.Close()
	_, err := s.Run(context.Background(), 5)
	require.NoError(t, err)
	generated := 0
	for {
		typ, evt, err := sub.ReceiveTimeout(time.Second)
		require.NoError(t, err)
		if typ == EventDone {
			assert.NoError(t, evt.Err)
			break
		}
		require.NotNil(t, evt.Seed)
		generated++
	}
	assert.Equal(t, 5, generated)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen := generators.NewRandBytesGenerator[*generators.StdState](8)
	_, err := newSeeder(t, gen).Run(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ScriptConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gen.lua"), []byte(`
local inner = RandPrintablesGenerator.new(12)
generator = {}
function generator:generate(state)
	return "#" .. inner:generate(state)
end
function generator:generate_dummy(state)
	return "#"
end
`), 0o644))
	cfgPath := filepath.Join(dir, "seeds.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
count = 6
workers = 2
seed = 99

[generator]
kind = "script"
script = "gen.lua"
`), 0o644))

	cfg, err := LoadConfig(cfgPath)
	require.NoError(t, err)
	rt := script.NewRuntime(script.WithLogger(quietLogger()))
	defer rt.Close()
	gen, err := cfg.Build(rt)
	require.NoError(t, err)
	b, ok := gen.(*script.Bridge)
	require.True(t, ok)
	assert.Equal(t, script.VariantForeign, b.Variant())

	seeds, err := newSeeder(t, gen, cfg.Options()...).Run(context.Background(), cfg.Count)
	require.NoError(t, err)
	require.Len(t, seeds, 6)
	for _, seed := range seeds {
		assert.Equal(t, byte('#'), seed.Input[0])
		assert.GreaterOrEqual(t, len(seed.Input), 2)
	}

	dummy := cfg
	dummy.Dummy = true
	seeds, err = newSeeder(t, gen, dummy.Options()...).Run(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("#"), seeds[0].Input)
}
