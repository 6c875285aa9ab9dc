package audio

import "math"

// NewSynth builds the instrument that plays note-driven voices: a sine
// oscillator per voice with an ADSR envelope and an optional lowpass
// filter. Every parameter comes from the scheduled event, not from
// instrument-wide settings, so it can be driven by a pattern upstream.
func NewSynth(props *Props) *Instrument {
	voices := make([]Voice, numVoices)
	for n := range voices {
		voices[n] = &synthVoice{
			state:  stateFree,
			osc:    &osc{},
			filter: &filter{coefficients: make([]float64, numCoefficients)},
			env:    &envelope{},
			buf:    make([]float64, bufferSize),
		}
	}
	return NewInstrument(props, voices)
}

type synthVoice struct {
	buf    []float64
	osc    *osc
	filter *filter
	env    *envelope
	state  voiceState

	gain          float64
	gainL         float64
	gainR         float64
	cutoff        float64
	duration      int
	samplesPlayed int
}

func (v *synthVoice) Play(ev event) {
	v.gain = ev.gain
	v.gainL, v.gainR = panGains(ev.pan)
	v.cutoff = ev.cutoff
	v.duration = ev.duration
	v.samplesPlayed = 0

	v.env.attack = ev.attack
	v.env.decay = ev.decay
	v.env.sustain = ev.sustain
	v.env.release = ev.release
	v.env.startAttack()

	v.osc.freq = ev.freq
	v.osc.phase = 0
	v.osc.phaseDelta = ev.freq * twoPi / sampleRate
	if v.cutoff > 0 {
		v.filter.calculateCoefficients(v.cutoff)
	}
	v.state = stateActive
}

func (v *synthVoice) Process(left, right []float64) {
	tmp := v.buf[:len(left)]
	v.osc.process(tmp)
	if v.cutoff > 0 {
		v.filter.process(tmp)
	}
	v.env.process(tmp)
	v.samplesPlayed += len(left)

	for n := range left {
		sample := v.gain * 0.1 * tmp[n]
		left[n] += sample * v.gainL
		right[n] += sample * v.gainR
		tmp[n] = 0
	}
	if v.samplesPlayed >= v.duration && v.state != stateReleased {
		v.state = stateReleased
		v.env.startRelease()
	}
	if v.state == stateReleased && v.env.state == stateInit {
		v.reset()
	}
}

func (v *synthVoice) reset() {
	v.filter.y1 = 0.
	v.filter.y2 = 0.
	v.state = stateFree
}

func (v *synthVoice) State() voiceState { return v.state }

const (
	twoPi           = 2 * math.Pi
	numCoefficients = 5
)

type osc struct {
	phase      float64
	phaseDelta float64
	freq       float64
}

func (o *osc) process(buf []float64) {
	for n := range buf {
		buf[n] += math.Sin(o.phase)
		o.phase += o.phaseDelta
		if o.phase >= twoPi {
			o.phase -= twoPi
		}
	}
}

type filter struct {
	coefficients []float64

	// state
	y1, y2 float64 // y[n-1] y[n-2]
}

// Lowpass filter based on https://www.w3.org/2011/audio/audio-eq-cookbook.html
func (f *filter) process(buf []float64) {
	c0 := f.coefficients[0]
	c1 := f.coefficients[1]
	c2 := f.coefficients[2]
	c3 := f.coefficients[3]
	c4 := f.coefficients[4]

	for n := range buf {
		in := buf[n]
		out := c0*in + f.y1
		buf[n] = out
		f.y1 = c1*in - c3*out + f.y2
		f.y2 = c2*in - c4*out
	}
}

func (f *filter) calculateCoefficients(freq float64) {
	omega := 2 * math.Pi * freq / sampleRate
	cos := math.Cos(omega)
	sin := math.Sin(omega)

	const q = 1
	alpha := sin / (2. * q)

	b0 := (1 - cos) / 2
	b1 := 1 - cos
	b2 := b0
	a0 := 1 + alpha
	a1 := -2 * cos
	a2 := 1 - alpha

	f.coefficients[0] = b0 / a0
	f.coefficients[1] = b1 / a0
	f.coefficients[2] = b2 / a0
	f.coefficients[3] = a1 / a0
	f.coefficients[4] = a2 / a0
}
