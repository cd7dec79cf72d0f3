package game

import (
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// AudioSystem holds the oto context, the looping engine-hum player and the
// serialized explosion one-shots.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
	hum   oto.Player
}

var globalAudio *AudioSystem

// engineLevelBits carries the current 0..1 engine level as float64 bits; the
// hum generator goroutine reads it lock-free.
var engineLevelBits atomic.Uint64

// InitAudio initializes the audio context. Failure is non-fatal for the game;
// callers log and continue silent.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// SetEngineLevel feeds the hum generator the current thrust (0..1, with
// afterburner pushing past 1 for a harsher tone).
func SetEngineLevel(level float64) {
	engineLevelBits.Store(math.Float64bits(clampF(level, 0, 1.4)))
}

// StartEngineHum begins the continuous engine loop. Safe to call once.
func StartEngineHum() {
	if globalAudio == nil {
		return
	}
	go func() {
		<-globalAudio.ready
		p := globalAudio.ctx.NewPlayer(&humReader{})
		p.SetVolume(0.55)
		globalAudio.hum = p
		p.Play()
	}()
}

// humReader synthesizes an endless engine tone: two detuned saws through a
// one-pole lowpass plus filtered noise, all scaled by the live engine level.
type humReader struct {
	phase1 float64
	phase2 float64
	level  float64
	lp     float64
	noise  uint64
}

func (h *humReader) Read(p []byte) (int, error) {
	if h.noise == 0 {
		h.noise = 0x9E3779B97F4A7C15
	}
	frames := len(p) / 8
	target := math.Float64frombits(engineLevelBits.Load())
	for i := 0; i < frames; i++ {
		// Smooth level per sample so throttle changes don't click.
		h.level += (target - h.level) * 0.0004

		base := 42.0 + 150.0*h.level
		h.phase1 += base / SampleRate
		h.phase2 += base * 1.011 / SampleRate
		saw1 := 2*math.Mod(h.phase1, 1) - 1
		saw2 := 2*math.Mod(h.phase2, 1) - 1

		h.lp = h.lp*0.92 + lcg(&h.noise)*0.08
		s := (saw1*0.4+saw2*0.4)*h.level + h.lp*0.35*h.level*h.level
		putStereoF32(p, i, softSat(s*0.8))
	}
	return frames * 8, nil
}

// PlayExplosion fires the crash boom one-shot.
func PlayExplosion() {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	samples := genExplosion()
	go func() {
		player := globalAudio.ctx.NewPlayer(&soundReader{data: samples})
		player.SetVolume(0.9)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation to avoid harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// genExplosion renders the crash boom: sub sweep, transient crack, bandpassed
// body and a rumble tail.
func genExplosion() []byte {
	const dur = 0.9
	n := int(dur * SampleRate)
	buf := make([]byte, n*8)
	seed := uint64(time.Now().UnixNano()) | 1
	lp1, lp2 := 0.0, 0.0
	rumLP := 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subFreq := 110.0 * math.Pow(22.0/110.0, p*2.4)
		subPhase += 2 * math.Pi * subFreq / SampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*4.2) * 0.66

		crack := 0.0
		if p < 0.02 {
			crack = lcg(&seed) * (1 - p/0.02) * 0.7
		}

		raw := lcg(&seed)
		lp1 = lp1*0.78 + raw*0.22
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*4.6) * 0.4

		rumLP = rumLP*0.95 + lcg(&seed)*0.05
		rumble := rumLP * math.Exp(-p*2.0) * 0.22

		putStereoF32(buf, i, softSat((sub+crack+body+rumble)*0.9))
	}
	return buf
}
