package audio

import (
	"fmt"
	"sync/atomic"

	"github.com/loomlang/loom/pattern"
)

const (
	// PropPattern is the live pattern; swapping it takes effect at the next
	// buffer.
	PropPattern = "pattern"
	// PropCPS is the tempo in cycles per second.
	PropCPS = "cps"
)

// DefaultCPS plays one cycle every two seconds, one bar at 120 bpm.
const DefaultCPS = 0.5

// Player drives playback: it converts the sample clock into cycle time at
// the current tempo, queries the live pattern for the arc covered by each
// audio buffer, and schedules the events that start inside it. All pattern
// state lives in lock-free properties so the REPL can swap patterns and
// tempo mid-performance.
type Player struct {
	*Props
	cps *atomic.Value
	pat *atomic.Value

	sampleRate    float64
	samplesPlayed uint64

	synth   Target
	sampler Target
}

// Target consumes the events the player schedules. Instruments implement
// it; tests substitute recorders.
type Target interface {
	Play(ev event)
}

// patternHolder gives atomic.Value the single concrete type it requires.
type patternHolder struct {
	pat pattern.Pattern
}

func NewPlayer(props *Props, synth, sampler Target) *Player {
	p := &Player{
		Props:      props,
		sampleRate: sampleRate,
		synth:      synth,
		sampler:    sampler,
	}
	p.cps = props.MustRegister(PropCPS, setFloat64(0.05, 10), DefaultCPS)
	p.pat = props.MustRegister(PropPattern, setPattern, patternHolder{pattern.Silence})
	return p
}

// SetPattern installs a new live pattern.
func (p *Player) SetPattern(pat pattern.Pattern) error {
	return p.Set(PropPattern, pat)
}

// Hush swaps in silence.
func (p *Player) Hush() error {
	return p.SetPattern(pattern.Silence)
}

// Pattern returns the live pattern.
func (p *Player) Pattern() pattern.Pattern {
	return p.pat.Load().(patternHolder).pat
}

// Tick schedules all pattern events whose onsets fall within the next
// numSamples samples. Fragments without an onset in the window are skipped:
// they were already scheduled by the buffer containing their start.
func (p *Player) Tick(numSamples int) {
	cps := p.cps.Load().(float64)
	pat := p.pat.Load().(patternHolder).pat

	samplesPerCycle := p.sampleRate / cps
	from := float64(p.samplesPlayed) / samplesPerCycle
	to := float64(p.samplesPlayed+uint64(numSamples)) / samplesPerCycle

	for _, ev := range pat.Query(pattern.Arc{Begin: from, End: to}) {
		if !ev.HasOnset() {
			continue
		}
		offset := int((ev.Part.Begin - from) * samplesPerCycle)
		if offset < 0 || offset >= numSamples {
			continue
		}
		e := voiceEvent(ev, offset, samplesPerCycle)
		switch {
		case e.sound != "":
			p.sampler.Play(e)
		case e.freq > 0:
			p.synth.Play(e)
		}
	}
	p.samplesPlayed += uint64(numSamples)
}

// voiceEvent flattens a pattern event into the fixed shape the audio thread
// consumes, filling in playable defaults for anything resolution left
// unset.
func voiceEvent(ev pattern.Event, offset int, samplesPerCycle float64) event {
	v := ev.Voice
	legato := paramDefault(v, "legato", 0.9)
	e := event{
		offset:   offset,
		duration: int(ev.Whole.Duration() * samplesPerCycle * legato),
		freq:     v.Freq,
		gain:     0.8,
		attack:   0.002,
		decay:    0.05,
		sustain:  0.7,
		release:  0.05,
		speed:    paramDefault(v, "speed", 1),
		sound:    v.Sound,
	}
	if v.Gain != nil {
		e.gain = *v.Gain
	}
	if v.Pan != nil {
		e.pan = *v.Pan
	}
	if v.Attack != nil {
		e.attack = *v.Attack
	}
	if v.Decay != nil {
		e.decay = *v.Decay
	}
	if v.Sustain != nil {
		e.sustain = *v.Sustain
	}
	if v.Release != nil {
		e.release = *v.Release
	}
	if v.Index != nil {
		e.index = *v.Index
	}
	for _, f := range v.Filters {
		if f.Kind == "lp" {
			e.cutoff = f.Cutoff
		}
	}
	return e
}

func paramDefault(v pattern.Voice, name string, def float64) float64 {
	if val, ok := v.Param(name); ok {
		return val
	}
	return def
}

func setPattern(v interface{}, dest *atomic.Value) error {
	if p, ok := v.(pattern.Pattern); ok {
		dest.Store(patternHolder{p})
		return nil
	}
	if h, ok := v.(patternHolder); ok {
		dest.Store(h)
		return nil
	}
	return fmt.Errorf("value is not a pattern: %v", v)
}
