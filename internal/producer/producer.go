// Package producer turns OutputParams into playable tracks.
package producer

import (
	"errors"
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"

	"github.com/llehouerou/genwaves/internal/params"
	"github.com/llehouerou/genwaves/internal/playlist"
)

// Producer builds a playable Track from its parameters.
type Producer interface {
	Produce(p params.OutputParams) (playlist.Track, error)
}

// Func adapts a function to the Producer interface.
type Func func(p params.OutputParams) (playlist.Track, error)

// Produce calls f(p).
func (f Func) Produce(p params.OutputParams) (playlist.Track, error) { return f(p) }

const (
	defaultBPM  = 100
	minBPM      = 30
	maxBPM      = 300
	maxNotes    = 256
	noteGain    = 0.2
	fadeSeconds = 0.01
	rootFreq    = 220.0 // A3
)

// pentatonic holds semitone offsets of a two-octave minor pentatonic scale.
var pentatonic = []int{0, 3, 5, 7, 10, 12, 15, 17, 19, 22}

// ErrNoNotes is returned when params carry neither notes nor an input list.
var ErrNoNotes = errors.New("producer: nothing to synthesize")

// Synth renders tracks procedurally: one sine note per eighth.
type Synth struct {
	Format beep.Format
}

// NewSynth returns a stereo 44.1kHz synthesizer.
func NewSynth() *Synth {
	return &Synth{
		Format: beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2},
	}
}

// Produce renders p into an in-memory buffer.
func (s *Synth) Produce(p params.OutputParams) (playlist.Track, error) {
	if p.Title == "" {
		return playlist.Track{}, params.ErrNoTitle
	}
	degrees := Degrees(p)
	if len(degrees) == 0 {
		return playlist.Track{}, ErrNoNotes
	}

	bpm := p.BPM
	if bpm <= 0 {
		bpm = defaultBPM
	}
	bpm = min(max(bpm, minBPM), maxBPM)
	noteLen := s.Format.SampleRate.N(time.Duration(float64(time.Minute) / bpm / 2))

	notes := make([]beep.Streamer, 0, len(degrees))
	for _, d := range degrees {
		tone, err := generators.SineTone(s.Format.SampleRate, frequency(d))
		if err != nil {
			return playlist.Track{}, fmt.Errorf("producer: note %d: %w", d, err)
		}
		notes = append(notes, &envelope{
			Streamer: beep.Take(noteLen, tone),
			total:    noteLen,
			fade:     s.Format.SampleRate.N(time.Duration(fadeSeconds * float64(time.Second))),
			gain:     noteGain,
		})
	}

	buf := beep.NewBuffer(s.Format)
	buf.Append(beep.Seq(notes...))

	return playlist.Track{
		Params:   p,
		Gradient: Gradient(p),
		Length:   s.Format.SampleRate.D(buf.Len()),
		Audio:    buf,
	}, nil
}

// Degrees returns the scale degrees to play: p.Notes when present, otherwise
// each InputList value mapped through the normal CDF onto the scale.
func Degrees(p params.OutputParams) []int {
	if len(p.Notes) > 0 {
		return p.Notes[:min(len(p.Notes), maxNotes)]
	}
	n := min(len(p.InputList), maxNotes)
	degrees := make([]int, n)
	for i := range n {
		idx := int(normalCDF(p.InputList[i]) * float64(len(pentatonic)))
		degrees[i] = min(max(idx, 0), len(pentatonic)-1)
	}
	return degrees
}

func frequency(degree int) float64 {
	octave := 0
	for degree < 0 {
		degree += len(pentatonic)
		octave--
	}
	octave += degree / len(pentatonic)
	semitones := pentatonic[degree%len(pentatonic)] + 24*octave
	return rootFreq * pow2(float64(semitones)/12)
}

// envelope applies a fixed gain with short linear fades to avoid clicks.
type envelope struct {
	beep.Streamer
	total int
	fade  int
	gain  float64
	pos   int
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.Streamer.Stream(samples)
	for i := range samples[:n] {
		g := e.gain
		if e.fade > 0 {
			if e.pos < e.fade {
				g *= float64(e.pos) / float64(e.fade)
			} else if rem := e.total - e.pos; rem < e.fade {
				g *= float64(rem) / float64(e.fade)
			}
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}
