package audio

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	wav "github.com/youpy/go-wav"
)

// Library maps sound names to their loaded variations. "bd" with index 2
// plays the third file whose base name is "bd" (or "bd2" etc.); indexes
// wrap instead of failing so a patterned index can run free.
type Library struct {
	sounds map[string][]*Sound
}

// LoadLibrary loads every wav file matched by the glob. Files group under
// the letters of their base name: bd.wav, bd2.wav and bd-3.wav all become
// variations of "bd".
func LoadLibrary(glob string) (*Library, error) {
	files, err := filepath.Glob(glob)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	lib := &Library{sounds: make(map[string][]*Sound)}
	for _, file := range files {
		snd, err := LoadSound(file)
		if err != nil {
			// A single bad file shouldn't abort the whole session.
			log.Printf("library: skipping %s: %v", file, err)
			continue
		}
		name := soundName(file)
		lib.sounds[name] = append(lib.sounds[name], snd)
	}
	return lib, nil
}

func (l *Library) lookup(name string, index int) *Sound {
	variations := l.sounds[name]
	if len(variations) == 0 {
		return nil
	}
	if index < 0 {
		index = -index
	}
	return variations[index%len(variations)]
}

// Names lists the loaded sound names, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.sounds))
	for name := range l.sounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func soundName(file string) string {
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimRight(base, "-_0123456789")
}

type Sound struct {
	buf  []float64
	file string
}

// LoadSound reads a wav file into a mono float buffer.
func LoadSound(file string) (*Sound, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snd := Sound{file: file}
	r := wav.NewReader(f)
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for _, sample := range samples {
			snd.buf = append(snd.buf, r.FloatValue(sample, 0))
		}
	}
	return &snd, nil
}

// NewSampler builds the instrument that plays sound-driven voices from the
// library.
func NewSampler(props *Props, lib *Library) *Instrument {
	voices := make([]Voice, numVoices)
	for n := range voices {
		voices[n] = &samplerVoice{
			state: stateFree,
			lib:   lib,
			env:   &envelope{},
		}
	}
	return NewInstrument(props, voices)
}

type samplerVoice struct {
	lib   *Library
	env   *envelope
	state voiceState

	buf   []float64
	pos   float64
	speed float64
	gain  float64
	gainL float64
	gainR float64
}

func (v *samplerVoice) Play(ev event) {
	snd := v.lib.lookup(ev.sound, ev.index)
	if snd == nil {
		log.Printf("sampler: no sound named %q", ev.sound)
		return
	}
	v.buf = snd.buf
	v.pos = 0
	v.speed = ev.speed
	if v.speed == 0 {
		v.speed = 1
	}
	v.gain = ev.gain
	v.gainL, v.gainR = panGains(ev.pan)
	v.env.attack = ev.attack
	v.env.decay = 10 // long enough to let any sample play out
	v.env.sustain = 0
	v.env.release = ev.release
	v.env.startAttack()
	v.state = stateActive
}

func (v *samplerVoice) Process(left, right []float64) {
	for n := range left {
		i := int(v.pos)
		if i >= len(v.buf) {
			break
		}
		sample := v.buf[i] * v.env.value() * v.gain
		left[n] += sample * v.gainL
		right[n] += sample * v.gainR
		v.pos += v.speed
	}
	if int(v.pos) >= len(v.buf) {
		v.buf = nil
		v.pos = 0
		v.state = stateFree
	}
}

func (v *samplerVoice) State() voiceState { return v.state }
