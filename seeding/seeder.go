// Package seeding fills an initial corpus from a generator.
//
// A Seeder splits the requested seeds across worker goroutines, each with
// its own state, so native generators run in parallel while Lua generators
// are serialized by the script package's interpreter lock.
package seeding

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/fbaltor/generators"
	"github.com/fbaltor/generators/internal/core"
	"github.com/fbaltor/generators/internal/mtx"
	"github.com/fbaltor/generators/internal/pubsub"
	"github.com/fbaltor/generators/internal/utils"
)

// ErrNoGenerator is returned by New when no generator is given.
var ErrNoGenerator = errors.New("no generator")

// Generator is the generator shape the seeder drives.
type Generator = generators.Generator[generators.BytesInput, *generators.StdState]

// dummyTrier is implemented by generators whose dummy path can fail, such
// as script.Bridge.
type dummyTrier interface {
	TryGenerateDummy(*generators.StdState) (generators.BytesInput, error)
}

// Seed is one generated input.
type Seed struct {
	ID     uuid.UUID `msgpack:"id"`
	Index  int       `msgpack:"index"`
	Worker int       `msgpack:"worker"`
	Dummy  bool      `msgpack:"dummy"`
	Input  []byte    `msgpack:"input"`
}

// Report summarizes a run.
type Report struct {
	Generated int
	Failed    int
	Elapsed   time.Duration
}

// Seeder generates seed inputs.
type Seeder struct {
	gen     Generator
	workers int
	seed    uint64
	dummy   bool
	retries int
	clock   clockwork.Clock
	logger  *log.Logger
	events  *pubsub.PubSub[EventType, Event]
	report  mtx.RWMtx[Report]
}

type config struct {
	workers int
	seed    *uint64
	dummy   bool
	retries int
	clock   clockwork.Clock
	logger  *log.Logger
}

// Option configures a Seeder.
type Option func(*config)

// WithWorkers sets the number of goroutines. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithSeed makes runs reproducible. Worker w seeds its state with seed+w.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = &seed
	}
}

// WithDummy makes the seeder produce dummy inputs.
func WithDummy(dummy bool) Option {
	return func(c *config) {
		c.dummy = dummy
	}
}

// WithRetries sets how many times a failed generation is retried before the
// run is aborted.
func WithRetries(n int) Option {
	return func(c *config) {
		c.retries = n
	}
}

// WithClock overrides the clock used to time runs.
func WithClock(clock clockwork.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New returns a Seeder driving gen. With more than one worker gen must be
// safe for concurrent use with distinct states, which holds for the native
// generators and script.Bridge.
func New(gen Generator, opts ...Option) (*Seeder, error) {
	if gen == nil {
		return nil, ErrNoGenerator
	}
	cfg := utils.BuildConfig(opts)
	return &Seeder{
		gen:     gen,
		workers: max(cfg.workers, 1),
		seed:    utils.Default(cfg.seed, core.NewSeed()),
		dummy:   cfg.dummy,
		retries: max(cfg.retries, 0),
		clock:   utils.Or(cfg.clock, clockwork.NewRealClock()),
		logger:  utils.Or(cfg.logger, log.New(os.Stderr, "seeding ", log.LstdFlags)),
		events:  pubsub.NewPubSub[EventType, Event](),
	}, nil
}

// Subscribe returns a subscriber for the given event types. Events are
// dropped for subscribers that fall behind.
func (s *Seeder) Subscribe(types ...EventType) *pubsub.Sub[EventType, Event] {
	return s.events.Subscribe(types)
}

// Report returns the statistics of the last run.
func (s *Seeder) Report() Report {
	return s.report.Get()
}

// Run generates count seeds. Seeds are returned in index order. The first
// generation that still fails after the configured retries aborts the run.
func (s *Seeder) Run(ctx context.Context, count int) ([]Seed, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative seed count %d", count)
	}
	start := s.clock.Now()
	s.report.Set(Report{})
	out := make([]Seed, count)
	workers := min(s.workers, max(count, 1))

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			state := generators.NewStdState(generators.WithSeed(s.seed + uint64(w)))
			for i := w; i < count; i += workers {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				in, err := s.generate(state, i)
				if err != nil {
					return err
				}
				out[i] = Seed{ID: uuid.New(), Index: i, Worker: w, Dummy: s.dummy, Input: in.Bytes()}
				s.report.With(func(r *Report) { r.Generated++ })
				s.publish(EventGenerated, Event{Seed: &out[i]})
			}
			return nil
		})
	}
	err := g.Wait()

	elapsed := s.clock.Since(start)
	s.report.With(func(r *Report) { r.Elapsed = elapsed })
	report := s.Report()
	s.publish(EventDone, Event{Err: err})
	if err != nil {
		s.logger.Printf("seeding aborted after %d seeds: %v", report.Generated, err)
		return nil, err
	}
	s.logger.Printf("generated %d seeds in %s (%d failed attempts)", report.Generated, elapsed, report.Failed)
	return out, nil
}

func (s *Seeder) generate(state *generators.StdState, index int) (generators.BytesInput, error) {
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		var in generators.BytesInput
		in, err = s.once(state)
		if err == nil {
			return in, nil
		}
		s.report.With(func(r *Report) { r.Failed++ })
		s.publish(EventFailed, Event{Index: index, Err: err})
	}
	return generators.BytesInput{}, fmt.Errorf("seed %d: %w", index, err)
}

func (s *Seeder) once(state *generators.StdState) (generators.BytesInput, error) {
	if !s.dummy {
		return s.gen.Generate(state)
	}
	if t, ok := s.gen.(dummyTrier); ok {
		return t.TryGenerateDummy(state)
	}
	return s.gen.GenerateDummy(state), nil
}

func (s *Seeder) publish(typ EventType, evt Event) {
	evt.Type = typ
	evt.CreatedAt = s.clock.Now()
	s.events.Pub(typ, evt)
}
