package audio

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/san-kum/kinetype/internal/physics"
	"github.com/san-kum/kinetype/internal/session"
)

const (
	SampleRate = beep.SampleRate(48000)

	// MaxVoices caps the thuds started by a single tick.
	MaxVoices = 6

	thudDuration = 180 * time.Millisecond
	thudDecay    = 22.0
	thudLowHz    = 70.0
	thudHighHz   = 140.0
	maxIntensity = 1.5
)

// SoundManager plays a short thud for every impact it observes. It
// satisfies [session.Observer] and stays silent until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	seed        int64
	initialized bool
}

func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: math.Max(0, math.Min(1, volume)),
		seed:   1,
	}
}

// Initialize opens the speaker. It fails on machines without an audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func (sm *SoundManager) OnTick(f session.Frame) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || len(f.Impacts) == 0 {
		return
	}

	thuds := Thuds(f.Impacts, f.Width, sm.volume, sm.seed)
	sm.seed += int64(len(thuds))

	speaker.Lock()
	for _, th := range thuds {
		sm.mixer.Add(beep.Take(SampleRate.N(thudDuration), th))
	}
	speaker.Unlock()
}

// Thuds builds one voice per impact, strongest first, keeping at most
// MaxVoices. Width pans each voice by the impact's x position.
func Thuds(impacts []physics.Impact, width, volume float64, seed int64) []*Thud {
	order := make([]physics.Impact, len(impacts))
	copy(order, impacts)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Intensity > order[j].Intensity })
	if len(order) > MaxVoices {
		order = order[:MaxVoices]
	}

	thuds := make([]*Thud, len(order))
	for i, im := range order {
		pan := 0.0
		if width > 0 {
			pan = math.Max(-1, math.Min(1, 2*im.X/width-1))
		}
		thuds[i] = NewThud(SampleRate, im.Intensity, pan, volume, seed+int64(i))
	}
	return thuds
}

// Thud is a decaying low sine with a burst of noise on the attack.
type Thud struct {
	sr    beep.SampleRate
	pos   int
	freq  float64
	amp   float64
	left  float64
	right float64
	seed  int64
}

func NewThud(sr beep.SampleRate, intensity, pan, volume float64, seed int64) *Thud {
	k := math.Max(0, math.Min(1, intensity/maxIntensity))
	return &Thud{
		sr:    sr,
		freq:  thudHighHz - (thudHighHz-thudLowHz)*k,
		amp:   volume * (0.2 + 0.8*k),
		left:  math.Sqrt((1 - pan) / 2),
		right: math.Sqrt((1 + pan) / 2),
		seed:  seed&0x7fffffff + 1,
	}
}

func (t *Thud) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		ts := float64(t.pos) / float64(t.sr)
		env := math.Exp(-ts * thudDecay)

		t.seed = (t.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(t.seed)/float64(0x7fffffff)*2 - 1
		click := math.Exp(-ts*200) * 0.3 * noise

		s := t.amp * env * (0.7*math.Sin(2*math.Pi*t.freq*ts) + click)
		samples[i][0] = s * t.left
		samples[i][1] = s * t.right
		t.pos++
	}
	return len(samples), true
}

func (t *Thud) Err() error {
	return nil
}
