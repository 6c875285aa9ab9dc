package audio

// envelope is a per-voice ADSR. Every stage time comes from the scheduled
// event, so the envelope of each onset can be patterned independently.
// Times are in seconds; level runs 0..1.
type envelopeState int

const (
	stateInit envelopeState = iota
	stateAttack
	stateDecay
	stateSustain
	stateRelease
)

type envelope struct {
	attack  float64
	decay   float64
	sustain float64
	release float64

	attackRate  float64
	decayRate   float64
	releaseRate float64

	level float64
	state envelopeState
}

// value advances the envelope by one sample and returns the new level.
func (e *envelope) value() float64 {
	switch e.state {
	case stateInit:
		return 0.
	case stateAttack:
		e.level += e.attackRate
		if e.level >= 1 {
			e.level = 1.0
			if e.decayRate > 0 {
				e.state = stateDecay
			} else {
				e.state = stateSustain
			}
		}
	case stateDecay:
		e.level -= e.decayRate
		if e.level <= e.sustain {
			e.level = e.sustain
			e.state = stateSustain
		}
	case stateSustain:
		if e.sustain == 0 {
			e.state = stateInit
		} else {
			e.level = e.sustain
		}
	case stateRelease:
		e.level -= e.releaseRate
		if e.level <= 0 {
			e.level = 0
			e.state = stateInit
		}
	}
	return e.level
}

func (e *envelope) process(buf []float64) {
	for n := range buf {
		buf[n] *= e.value()
	}
}

func (e *envelope) startAttack() {
	e.level = 0
	e.state = stateAttack
	e.attackRate = 1.0 / (e.attack * sampleRate)
	if e.sustain > 0 {
		e.decayRate = 1.0 - e.sustain/(e.decay*sampleRate)
	} else {
		e.decayRate = 1.0 / (e.decay * sampleRate)
	}
}

// startRelease ramps down from wherever the level is, so a voice cut short
// mid-attack doesn't click.
func (e *envelope) startRelease() {
	e.state = stateRelease
	e.releaseRate = e.level / (e.release * sampleRate)
}
