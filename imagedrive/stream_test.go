package imagedrive

import (
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/rabidaudio/cdaudio/audiocd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrame(t *testing.T) {
	l, r := decodeFrame([]byte{0x00, 0x40, 0x00, 0xc0})
	assert.Equal(t, 0.5, l)
	assert.Equal(t, -0.5, r)

	l, r = decodeFrame([]byte{0xff, 0x7f, 0x00, 0x80})
	assert.InDelta(t, 1.0, l, 1e-4)
	assert.Equal(t, -1.0, r)
}

func TestRawStreamer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.cdda")
	writeCDDA(t, path, 2, -16384)

	s, err := newRawStreamer(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, 2*audiocd.SamplesPerFrame, s.Len())

	buf := make([][2]float64, 100)
	n, ok := s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 100, n)
	assert.Equal(t, [2]float64{-0.5, -0.5}, buf[99])
	assert.Equal(t, 100, s.Position())

	require.NoError(t, s.Seek(s.Len()-10))
	n, ok = s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	n, ok = s.Stream(buf)
	assert.False(t, ok)
	assert.Equal(t, 0, n)
	assert.NoError(t, s.Err())
}

func TestSessionCancel(t *testing.T) {
	pos := &counter{Streamer: beep.Silence(-1)}
	sess := &session{Streamer: pos, pos: pos, start: 10}
	buf := make([][2]float64, audiocd.SamplesPerFrame*3)

	_, ok := sess.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, int32(13), sess.frame())

	sess.cancel()
	sess.cancel()
	_, ok = sess.Stream(buf)
	assert.False(t, ok)
}
