package audio

import (
	"log"
	"math"
	"sync/atomic"
)

const (
	blockSize  = 16 // this gives about 0.35ms accuracy for scheduled events
	sampleRate = 44100
	bufferSize = 512
)

const numVoices = 12

type voiceState int

const (
	stateFree voiceState = iota
	stateActive
	stateReleased
)

// event is one scheduled voice start, flattened out of a pattern event so
// it can cross the lock-free buffer into the audio thread.
type event struct {
	offset   int // sample offset into the current buffer
	duration int // samples until release

	freq    float64
	gain    float64
	pan     float64
	attack  float64
	decay   float64
	sustain float64
	release float64
	cutoff  float64
	speed   float64
	sound   string
	index   int
}

type Voice interface {
	Play(ev event)
	Process(left, right []float64)
	State() voiceState
}

// Instrument owns a fixed pool of voices and a queue of pending events.
// Play may be called from any thread; Process runs on the audio thread.
type Instrument struct {
	*Props
	voices []Voice
	events *eventBuffer
	bufL   []float64
	bufR   []float64
	level  *atomic.Value
}

const propLevel = "level"

func NewInstrument(props *Props, voices []Voice) *Instrument {
	instrument := &Instrument{
		events: newEventBuffer(64),
		bufL:   make([]float64, bufferSize),
		bufR:   make([]float64, bufferSize),
		Props:  props,
		level:  props.MustRegister(propLevel, setLevel, 0.),
	}
	instrument.voices = append(instrument.voices, voices...)
	return instrument
}

func (i *Instrument) Play(ev event) {
	i.events.push(ev)
}

func (i *Instrument) Process(samples [][]float32) {
	for n := 0; n < len(samples[0]); n += blockSize {
		i.events.iter(n+blockSize, func(ev event) {
			voice := i.findFreeVoice()
			if voice == nil {
				// TODO: implement some kind of voice stealing mechanism
				log.Printf("instrument: no free voice available")
				return
			}
			voice.Play(ev)
		})
		for _, voice := range i.voices {
			if voice.State() == stateFree {
				continue
			}
			voice.Process(i.bufL[n:n+blockSize], i.bufR[n:n+blockSize])
		}
	}
	db := i.level.Load().(float64)
	gain := math.Pow(10, db/20.0)
	for n := range i.bufL {
		samples[0][n] += float32(gain * i.bufL[n])
		samples[1][n] += float32(gain * i.bufR[n])
		i.bufL[n] = 0
		i.bufR[n] = 0
	}
}

// panGains converts a pan position in [-1, 1] to equal-power channel
// gains; 0 is center.
func panGains(pan float64) (left, right float64) {
	if pan < -1 {
		pan = -1
	}
	if pan > 1 {
		pan = 1
	}
	theta := (pan + 1) * math.Pi / 4
	return math.Cos(theta), math.Sin(theta)
}

func (i *Instrument) findFreeVoice() Voice {
	for _, voice := range i.voices {
		if voice.State() == stateFree {
			return voice
		}
	}
	return nil
}
