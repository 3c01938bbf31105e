package cdaudio

import (
	"testing"

	"github.com/rabidaudio/cdaudio/audiocd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	f := openFixture(t, oneMinute, twoMinute, longTrack)

	require.NoError(t, f.c.Command("play", "2"))
	s := f.c.Snapshot()
	assert.Equal(t, 2, s.Track)
	assert.False(t, s.Looping)

	require.NoError(t, f.c.Command("LOOP", "3"))
	s = f.c.Snapshot()
	assert.Equal(t, 3, s.Track)
	assert.True(t, s.Looping)

	require.NoError(t, f.c.Command("next"))
	assert.Equal(t, 1, f.c.Snapshot().Track)
	require.NoError(t, f.c.Command("prev"))
	assert.Equal(t, 3, f.c.Snapshot().Track)

	require.NoError(t, f.c.Command("pause"))
	assert.Equal(t, StatePaused, f.c.State())
	require.NoError(t, f.c.Command("resume"))
	assert.Equal(t, StatePlaying, f.c.State())

	require.NoError(t, f.c.Command("volume", "0.25"))
	assert.Equal(t, 0.25, f.vol.Value())
	assert.Equal(t, 0.25, f.c.Snapshot().Volume)

	f.console.Reset()
	require.NoError(t, f.c.Command("volume"))
	assert.Equal(t, []string{`"bgmvolume" is 0.25`}, f.console.Lines)

	f.console.Reset()
	require.NoError(t, f.c.Command("info"))
	assert.Equal(t, "3 tracks", f.console.Lines[0])

	require.NoError(t, f.c.Command("stop"))
	assert.Equal(t, StateIdle, f.c.State())
}

func TestCommandEject(t *testing.T) {
	f := openFixture(t, oneMinute)
	require.NoError(t, f.c.Command("play", "1"))
	require.NoError(t, f.c.Command("eject"))

	assert.Equal(t, StateIdle, f.c.State())
	assert.Equal(t, 1, f.drive.Stops)
	assert.Equal(t, audiocd.StatusTrayEmpty, f.drive.State)
}

func TestCommandReset(t *testing.T) {
	f := openFixture(t, oneMinute)
	require.NoError(t, f.c.Command("play", "1"))
	require.NoError(t, f.c.Command("reset"))

	assert.Equal(t, StateIdle, f.c.State())
	assert.Equal(t, 2, f.sys.Inits)
	assert.Equal(t, 1, f.sys.Quits)
	assert.Equal(t, 1, f.drive.Closes)
}

func TestCommandErrors(t *testing.T) {
	f := openFixture(t, oneMinute)

	assert.Error(t, f.c.Command())
	assert.Error(t, f.c.Command("play"))
	assert.Error(t, f.c.Command("play", "one"))
	assert.Error(t, f.c.Command("volume", "loud"))
	assert.Error(t, f.c.Command("rewind"))
	assert.ErrorIs(t, f.c.Command("play", "9"), ErrInvalidArgument)

	closed := New(nil, Config{Console: f.console})
	f.console.Reset()
	assert.ErrorIs(t, closed.Command("info"), ErrNotOpen)
	assert.Equal(t, []string{"No CD-ROM drive open"}, f.console.Lines)
}
