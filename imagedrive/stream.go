package imagedrive

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/rabidaudio/cdaudio/audiocd"
)

const bytesPerFrame = audiocd.Channels * audiocd.BytesPerSample

// rawStreamer reads headerless little-endian 16-bit stereo PCM, the
// layout of a CD-DA sector dump.
type rawStreamer struct {
	f    *os.File
	size int64
	pos  int
	buf  []byte
	err  error
}

func newRawStreamer(path string) (*rawStreamer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &rawStreamer{f: f, size: stat.Size()}, nil
}

func (s *rawStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	b := len(samples) * bytesPerFrame
	if cap(s.buf) < b {
		s.buf = make([]byte, b)
	}
	nn, err := io.ReadFull(s.f, s.buf[:b])
	n = nn / bytesPerFrame
	for i := range n {
		samples[i][0], samples[i][1] = decodeFrame(s.buf[i*bytesPerFrame:])
	}
	s.pos += n
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		s.err = err
	}
	return n, n > 0
}

func decodeFrame(p []byte) (l, r float64) {
	li := int16(binary.LittleEndian.Uint16(p[0:]))
	ri := int16(binary.LittleEndian.Uint16(p[2:]))
	return float64(li) / (1 << 15), float64(ri) / (1 << 15)
}

func (s *rawStreamer) Err() error {
	return s.err
}

func (s *rawStreamer) Len() int {
	return int(s.size / bytesPerFrame)
}

func (s *rawStreamer) Position() int {
	return s.pos
}

func (s *rawStreamer) Seek(p int) error {
	_, err := s.f.Seek(int64(p)*bytesPerFrame, io.SeekStart)
	if err != nil {
		return err
	}
	s.pos = p
	return nil
}

func (s *rawStreamer) Close() error {
	return s.f.Close()
}

var _ beep.StreamSeekCloser = (*rawStreamer)(nil)

// counter tallies the samples that pass through it.
type counter struct {
	beep.Streamer
	n int
}

func (c *counter) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = c.Streamer.Stream(samples)
	c.n += n
	return n, ok
}

// session is one Play request. Once cancelled it reports itself
// drained so the output drops it.
type session struct {
	beep.Streamer
	ctrl      *beep.Ctrl
	vol       *effects.Volume
	pos       *counter
	start     int32
	closers   []io.Closer
	cancelled bool
}

func (s *session) Stream(samples [][2]float64) (n int, ok bool) {
	if s.cancelled {
		return 0, false
	}
	return s.Streamer.Stream(samples)
}

// frame is the absolute sector the session has reached.
func (s *session) frame() int32 {
	return s.start + int32(s.pos.n/audiocd.SamplesPerFrame)
}

func (s *session) cancel() {
	if s.cancelled {
		return
	}
	s.cancelled = true
	for _, c := range s.closers {
		c.Close()
	}
	s.closers = nil
}
