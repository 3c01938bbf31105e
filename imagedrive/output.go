package imagedrive

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/rabidaudio/cdaudio/audiocd"
)

// Format is the Red Book stream format every drive plays at.
var Format = beep.Format{
	SampleRate:  audiocd.SampleRate,
	NumChannels: audiocd.Channels,
	Precision:   audiocd.BytesPerSample,
}

// Output is where drives send their audio. Streamers handed to Play are
// pulled from another goroutine while the output's lock is held, so
// state they share with the caller must be touched under Lock.
type Output interface {
	Init(format beep.Format) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
	Close() error
}

// Speaker plays through the host sound card.
type Speaker struct {
	// Buffer is the latency of the output buffer. Zero means 100ms.
	Buffer time.Duration
}

var _ Output = Speaker{}

func (s Speaker) Init(format beep.Format) error {
	buf := s.Buffer
	if buf == 0 {
		buf = 100 * time.Millisecond
	}
	return speaker.Init(format.SampleRate, format.SampleRate.N(buf))
}

func (Speaker) Play(s beep.Streamer) { speaker.Play(s) }

func (Speaker) Clear() { speaker.Clear() }

func (Speaker) Lock() { speaker.Lock() }

func (Speaker) Unlock() { speaker.Unlock() }

func (Speaker) Close() error {
	speaker.Close()
	return nil
}
