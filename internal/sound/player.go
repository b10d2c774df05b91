package sound

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/Garsondee/Bottle-Shot/internal/game"
)

// ErrSampleRate is returned when an audio context already exists at a
// different rate.
var ErrSampleRate = errors.New("sample rate mismatch")

// chargeBucket quantizes charge power so the cache stays small.
const chargeBucket = 10

type cacheKey struct {
	cue    game.Cue
	bucket int
}

// Player plays cues through ebiten's audio context. It implements
// game.CueSink. Rendered effects are cached per cue and power bucket.
type Player struct {
	ctx    *audio.Context
	synth  *Synth
	log    *slog.Logger
	volume float64

	mu     sync.Mutex
	cache  map[cacheKey][]byte
	voices []*audio.Player
}

// NewPlayer opens, or reuses, the process-wide audio context.
func NewPlayer(log *slog.Logger, volume float64) (*Player, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(int(SampleRate))
	}
	if ctx.SampleRate() != int(SampleRate) {
		return nil, fmt.Errorf("sound: context at %d Hz: %w", ctx.SampleRate(), ErrSampleRate)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("sound: audio context: %w", err)
	}
	return &Player{
		ctx:    ctx,
		synth:  NewSynth(SampleRate, 1),
		log:    log,
		volume: volume,
		cache:  make(map[cacheKey][]byte),
	}, nil
}

// Play starts the effect for c. Overlapping cues mix.
func (p *Player) Play(c game.Cue, power int) {
	pcm := p.buffer(c, power)
	if len(pcm) == 0 {
		return
	}
	v := p.ctx.NewPlayerFromBytes(pcm)
	v.SetVolume(p.volume)
	v.Play()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.reap()
	p.voices = append(p.voices, v)
}

// Preload renders every fixed cue ahead of the first shot.
func (p *Player) Preload() {
	for c := game.CueLaunch; c < game.CueCount; c++ {
		p.buffer(c, 0)
	}
}

// Close stops and releases every live voice.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var errs []error
	for _, v := range p.voices {
		if err := v.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	p.voices = nil
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("sound: close voices: %w", err)
	}
	return nil
}

func (p *Player) buffer(c game.Cue, power int) []byte {
	key := cacheKey{cue: c}
	if c == game.CueCharge || c == game.CueLaunch {
		key.bucket = power / chargeBucket
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if pcm, ok := p.cache[key]; ok {
		return pcm
	}
	pcm := p.synth.Render(c, key.bucket*chargeBucket)
	p.cache[key] = pcm
	p.log.Debug("rendered cue", "cue", c.String(), "bucket", key.bucket, "bytes", len(pcm))
	return pcm
}

// reap closes voices that finished. Caller holds p.mu.
func (p *Player) reap() {
	live := p.voices[:0]
	for _, v := range p.voices {
		if v.IsPlaying() {
			live = append(live, v)
			continue
		}
		if err := v.Close(); err != nil {
			p.log.Debug("close voice", "err", err)
		}
	}
	clear(p.voices[len(live):])
	p.voices = live
}
