// Package generate runs the asynchronous seed → decode → produce → append
// pipeline behind the generate and variant controls.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/genwaves/internal/params"
	"github.com/llehouerou/genwaves/internal/playback"
	"github.com/llehouerou/genwaves/internal/playlist"
	"github.com/llehouerou/genwaves/internal/producer"
)

// ErrBusy is returned when a request arrives while the control is not Ready.
var ErrBusy = errors.New("generate: control is busy")

// ErrNoSeed is returned by Variant when the base track carries no seed.
var ErrNoSeed = errors.New("generate: base track has no seed")

// Decoder turns a latent seed into track parameters.
type Decoder interface {
	Decode(ctx context.Context, seed []float64) (params.OutputParams, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(ctx context.Context, seed []float64) (params.OutputParams, error)

// Decode calls f(ctx, seed).
func (f DecoderFunc) Decode(ctx context.Context, seed []float64) (params.OutputParams, error) {
	return f(ctx, seed)
}

// Result is the outcome of an asynchronous generation.
type Result struct {
	Track playlist.Track
	Err   error
}

// Pipeline generates tracks and appends them to the session playlist.
//
// At most one generation runs at a time. A failed decode or produce leaves
// the control in Failed and it stays disabled.
type Pipeline struct {
	decoder  Decoder
	producer producer.Producer
	service  playback.Service
	logger   *log.Logger
	source   params.NormalSource

	mu      sync.Mutex
	state   ControlState
	lastErr error
}

// New creates a pipeline in the Ready state. A nil logger discards output.
func New(dec Decoder, prod producer.Producer, svc playback.Service, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Pipeline{
		decoder:  dec,
		producer: prod,
		service:  svc,
		logger:   logger,
		source:   params.DefaultSource,
	}
}

// SetSource replaces the random source used for new seeds and variants.
func (p *Pipeline) SetSource(src params.NormalSource) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = src
}

// Generate decodes seed (a fresh random seed when empty), produces the track
// and appends it to the playlist.
func (p *Pipeline) Generate(ctx context.Context, seed []float64) (playlist.Track, error) {
	src, ok := p.acquire()
	if !ok {
		return playlist.Track{}, ErrBusy
	}
	if len(seed) == 0 {
		seed = params.NewSeed(src)
	}
	return p.run(ctx, seed)
}

// Variant generates a track from a perturbed copy of base's seed, which
// keeps its length. A base without a seed is rejected before the control
// changes state.
func (p *Pipeline) Variant(ctx context.Context, base playlist.Track) (playlist.Track, error) {
	if len(base.Params.InputList) == 0 {
		return playlist.Track{}, ErrNoSeed
	}
	src, ok := p.acquire()
	if !ok {
		return playlist.Track{}, ErrBusy
	}
	return p.run(ctx, params.Variant(base.Params.InputList, src))
}

// Start runs Generate on its own goroutine. The channel receives exactly
// one Result and is then closed.
func (p *Pipeline) Start(ctx context.Context, seed []float64) <-chan Result {
	return p.async(func() (playlist.Track, error) { return p.Generate(ctx, seed) })
}

// StartVariant runs Variant on its own goroutine.
func (p *Pipeline) StartVariant(ctx context.Context, base playlist.Track) <-chan Result {
	return p.async(func() (playlist.Track, error) { return p.Variant(ctx, base) })
}

func (p *Pipeline) async(fn func() (playlist.Track, error)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		t, err := fn()
		ch <- Result{Track: t, Err: err}
	}()
	return ch
}

// acquire moves the control Ready → Busy. The lock is held only for the check.
func (p *Pipeline) acquire() (params.NormalSource, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Ready {
		return nil, false
	}
	p.state = Busy
	return p.source, true
}

func (p *Pipeline) run(ctx context.Context, seed []float64) (playlist.Track, error) {
	p.service.SetLoading(true)
	defer p.service.SetLoading(false)

	out, err := p.decoder.Decode(ctx, seed)
	if err != nil {
		return playlist.Track{}, p.finish(ctx, fmt.Errorf("decode: %w", err))
	}

	track, err := p.producer.Produce(out)
	if err != nil {
		return playlist.Track{}, p.finish(ctx, fmt.Errorf("produce %q: %w", out.Title, err))
	}

	// Do not mutate the playlist for a request nobody is waiting for.
	if err := ctx.Err(); err != nil {
		return playlist.Track{}, p.finish(ctx, err)
	}

	p.service.AddTrack(track)
	p.logger.Info("track generated", "title", track.Title(), "length", track.Length)
	return track, p.finish(ctx, nil)
}

// finish records the outcome. Cancellation returns the control to Ready;
// any other error leaves it Failed.
func (p *Pipeline) finish(ctx context.Context, err error) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case err == nil:
		p.state = Ready
		p.lastErr = nil
	case ctx.Err() != nil:
		p.state = Ready
		p.logger.Debug("generation canceled", "err", err)
	default:
		p.state = Failed
		p.lastErr = err
		p.logger.Error("generation failed", "err", err)
	}
	return err
}

// Control returns the control state.
func (p *Pipeline) Control() ControlState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Label returns the control label for the current state.
func (p *Pipeline) Label() string {
	return p.Control().Label()
}

// Err returns the error that put the control in Failed, if any.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
