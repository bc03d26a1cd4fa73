package client

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/lao-tseu-is-alive/go-slither/pkg/simulation"
)

const (
	SampleRate = 44100
	queueSize  = 32
)

var _ simulation.Audio = (*Sound)(nil)

// Sound plays procedurally generated effects. PlaySfx may be called from any goroutine;
// the cues are queued and only played by Flush, on the ebiten goroutine.
type Sound struct {
	ctx     *audio.Context // nil keeps the game silent
	Volume  float64
	queue   chan string
	clips   map[string][]byte
	playing []*audio.Player
}

// NewSound renders every effect up front.
func NewSound(ctx *audio.Context) *Sound {
	return &Sound{
		ctx:    ctx,
		Volume: 0.6,
		queue:  make(chan string, queueSize),
		clips: map[string][]byte{
			simulation.SfxStart: genStart(),
			simulation.SfxEat:   genEat(),
			simulation.SfxDeath: genDeath(),
		},
	}
}

// PlaySfx never blocks. Cues are dropped while the queue is full.
func (s *Sound) PlaySfx(name string) {
	select {
	case s.queue <- name:
	default:
	}
}

// Flush starts every queued effect and releases the players that have finished.
func (s *Sound) Flush() {
	for {
		select {
		case name := <-s.queue:
			s.play(name)
		default:
			s.prune()
			return
		}
	}
}

func (s *Sound) play(name string) {
	clip, ok := s.clips[name]
	if !ok || s.ctx == nil {
		return
	}
	p := s.ctx.NewPlayerF32FromBytes(clip)
	p.SetVolume(s.Volume)
	p.Play()
	s.playing = append(s.playing, p)
}

func (s *Sound) prune() {
	kept := s.playing[:0]
	for _, p := range s.playing {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	clear(s.playing[len(kept):])
	s.playing = kept
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < 2; ch++ {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// makeBuf allocates a stereo float32 buffer for n frames.
func makeBuf(n int) []byte { return make([]byte, n*8) }

func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack, decay and release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns a frequency modulated sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

type note struct{ freq, onset float64 }

// arpeggio mixes staggered FM notes that ring until the end of the clip.
func arpeggio(dur float64, notes []note, env func(p float64) float64, gain float64) []byte {
	n := int(dur * SampleRate)
	mix := make([]float64, n)
	for _, nt := range notes {
		start := int(nt.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			e := env(float64(i-start) / float64(n-start))
			mix[i] += fm(t, nt.freq, 2.0, 2.5*e) * e * gain
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genStart is a rising major triad.
func genStart() []byte {
	return arpeggio(0.45, []note{
		{261.63, 0.00}, // C4
		{329.63, 0.08}, // E4
		{392.00, 0.16}, // G4
	}, func(p float64) float64 { return adsr(p, 0.01, 0.4, 0.3, 0.4) }, 0.28)
}

// genEat is a short upward chirp.
func genEat() []byte {
	n := int(0.09 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		freq := 480 + 720*p
		s := fm(t, freq, 2.0, 3.5*env) * env * 0.5
		s += math.Sin(2*math.Pi*freq*3*t) * env * 0.06
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genDeath is a slow descending minor chord.
func genDeath() []byte {
	return arpeggio(0.75, []note{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}, func(p float64) float64 { return adsr(p, 0.008, 0.25, 0.3, 0.45) }, 0.32)
}
