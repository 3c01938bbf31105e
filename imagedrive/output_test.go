package imagedrive

import (
	"sync"

	"github.com/faiface/beep"
)

// pullOutput mixes played streamers and lets a test pull samples from
// them, standing in for the speaker's playback goroutine.
type pullOutput struct {
	mu     sync.Mutex
	mixer  beep.Mixer
	format beep.Format
	inits  int
	closes int
}

func (o *pullOutput) Init(format beep.Format) error {
	o.format = format
	o.inits++
	return nil
}

func (o *pullOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	o.mixer.Add(s)
	o.mu.Unlock()
}

func (o *pullOutput) Clear() {
	o.mu.Lock()
	o.mixer.Clear()
	o.mu.Unlock()
}

func (o *pullOutput) Lock() { o.mu.Lock() }

func (o *pullOutput) Unlock() { o.mu.Unlock() }

func (o *pullOutput) Close() error {
	o.closes++
	return nil
}

// pull streams n samples the way the speaker would.
func (o *pullOutput) pull(n int) [][2]float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	samples := make([][2]float64, n)
	o.mixer.Stream(samples)
	return samples
}

func (o *pullOutput) playing() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mixer.Len()
}
