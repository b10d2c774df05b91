// Package sound turns simulation cues into short synthesized effects.
package sound

import (
	"encoding/binary"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/Garsondee/Bottle-Shot/internal/game"
)

// SampleRate is the rate every effect is rendered at.
const SampleRate = beep.SampleRate(44100)

// bytesPerFrame is one stereo frame of signed 16-bit samples.
const bytesPerFrame = 4

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is an endless oscillator; callers bound it with beep.Take.
type tone struct {
	freq  float64
	slide float64 // Hz added per sample
	phase float64
	wave  Wave
	rate  beep.SampleRate
	rng   *rand.Rand
}

// NewTone returns an unbounded oscillator streamer. slide bends the pitch by
// that many Hz per second.
func NewTone(freq, slide float64, wave Wave, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return &tone{freq: freq, slide: slide / float64(rate), wave: wave, rate: rate, rng: rng}
}

func (o *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		if f := o.freq + o.slide; f > 0 {
			o.freq = f
		}
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

// envelope fades a stream in over attack samples and out over the last
// release samples of total.
type envelope struct {
	s       beep.Streamer
	pos     int
	total   int
	attack  int
	release int
}

func newEnvelope(s beep.Streamer, total, attack, release int) beep.Streamer {
	if attack+release > total {
		attack, release = total/2, total-total/2
	}
	return &envelope{s: s, total: total, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.pos < e.attack:
			vol = float64(e.pos) / float64(e.attack)
		case e.pos >= e.total-e.release && e.release > 0:
			vol = math.Max(0, float64(e.total-e.pos)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// gain scales a stream linearly. Zero or less silences it.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Synth builds cue effects. Noise is drawn from a seeded source so renders
// are repeatable.
type Synth struct {
	rate beep.SampleRate
	rng  *rand.Rand
}

// NewSynth returns a synth rendering at rate.
func NewSynth(rate beep.SampleRate, seed int64) *Synth {
	return &Synth{rate: rate, rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- audio noise only
}

// Rate returns the synth's sample rate.
func (s *Synth) Rate() beep.SampleRate { return s.rate }

// voice is one enveloped note of length d.
func (s *Synth) voice(freq, slide float64, wave Wave, d, attack, release time.Duration, vol float64) beep.Streamer {
	n := s.rate.N(d)
	osc := beep.Take(n, NewTone(freq, slide, wave, s.rate, s.rng))
	return gain(newEnvelope(osc, n, s.rate.N(attack), s.rate.N(release)), vol)
}

// Streamer returns the effect for c. Charge and launch pitch rise with power.
func (s *Synth) Streamer(c game.Cue, power int) beep.Streamer {
	ms := time.Millisecond
	p := float64(power)
	switch c {
	case game.CueCharge:
		return s.voice(220+p*6, 0, WaveSquare, 40*ms, 2*ms, 20*ms, 0.25)
	case game.CueLaunch:
		return beep.Mix(
			s.voice(0, 0, WaveNoise, 120*ms, 5*ms, 90*ms, 0.35),
			s.voice(260+p*2, -900, WaveSine, 120*ms, 2*ms, 80*ms, 0.4),
		)
	case game.CueHit:
		return s.voice(140, -300, WaveSquare, 70*ms, 1*ms, 50*ms, 0.4)
	case game.CueBreak:
		return beep.Mix(
			s.voice(0, 0, WaveNoise, 260*ms, 1*ms, 220*ms, 0.5),
			s.voice(1800, 0, WaveSine, 180*ms, 1*ms, 160*ms, 0.25),
			s.voice(2637, 0, WaveSine, 140*ms, 1*ms, 120*ms, 0.15),
		)
	case game.CueLevelUp:
		return beep.Seq(
			s.voice(523.25, 0, WaveSine, 100*ms, 5*ms, 40*ms, 0.4),
			s.voice(659.25, 0, WaveSine, 100*ms, 5*ms, 40*ms, 0.4),
			s.voice(783.99, 0, WaveSine, 180*ms, 5*ms, 120*ms, 0.4),
		)
	case game.CueGameOver:
		return beep.Seq(
			s.voice(392, 0, WaveSaw, 180*ms, 5*ms, 60*ms, 0.3),
			s.voice(311.13, 0, WaveSaw, 180*ms, 5*ms, 60*ms, 0.3),
			s.voice(261.63, -40, WaveSaw, 400*ms, 5*ms, 300*ms, 0.3),
		)
	}
	return nil
}

// Render streams the effect for c into signed 16-bit little-endian stereo
// PCM. Unknown cues render to nil.
func (s *Synth) Render(c game.Cue, power int) []byte {
	st := s.Streamer(c, power)
	if st == nil {
		return nil
	}
	return Encode(st)
}

// Encode drains st into 16-bit little-endian stereo PCM, clipping at full
// scale.
func Encode(st beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := st.Stream(buf)
		for _, fr := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(fr[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(fr[1])))
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	switch {
	case v >= 1:
		return math.MaxInt16
	case v <= -1:
		return -math.MaxInt16
	}
	return int16(v * math.MaxInt16)
}
