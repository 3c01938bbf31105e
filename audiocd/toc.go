package audiocd

import "time"

// Flag is a set of bit flags attached to a track in the CD's
// table of contents (the control nibble of the Q subchannel).
type Flag uint8

const (
	FlagPreemphasis   Flag = 0x01 // audio was mastered with pre-emphasis
	FlagCopyPermitted Flag = 0x02 // digital copy permitted
	FlagData          Flag = 0x04 // data track rather than audio
)

// IsAudio reports whether the flags describe an audio track.
func (f Flag) IsAudio() bool {
	return f&FlagData == 0
}

// TrackPosition reports the offset information for tracks
// from the table of contents.
type TrackPosition struct {
	Flags         Flag
	TrackNum      uint8 // index of the track, starting at 1
	StartSector   int32 // address of the sector where the data starts
	LengthSectors int32 // total number of sectors the track covers
}

// IsAudio reports wheither the track is an audio track.
// Mixed-mode disks can have data tracks in addition to audio tracks.
func (t TrackPosition) IsAudio() bool {
	return t.Flags.IsAudio()
}

// EndSector returns the first sector after the track.
func (t TrackPosition) EndSector() int32 {
	return t.StartSector + t.LengthSectors
}

// ContainsSector reports whether the given sector is within the track bounds.
func (t TrackPosition) ContainsSector(sector int32) bool {
	return sector >= t.StartSector && sector < t.EndSector()
}

// Duration is the play time of the track.
func (t TrackPosition) Duration() time.Duration {
	return FramesToDuration(t.LengthSectors)
}

// FramesToMSF splits a frame count into minutes, seconds and frames.
func FramesToMSF(frames int32) (m, s, f int) {
	value := int(frames)
	f = value % FramesPerSecond
	value /= FramesPerSecond
	s = value % 60
	m = value / 60
	return
}

// MSFToFrames is the inverse of [FramesToMSF].
func MSFToFrames(m, s, f int) int32 {
	return int32((m*60+s)*FramesPerSecond + f)
}

// FramesToDuration converts a frame count into play time.
func FramesToDuration(frames int32) time.Duration {
	m, s, f := FramesToMSF(frames)
	return time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(f)*time.Second/FramesPerSecond
}
