package audiocd

// Red Book audio is 16-bit signed stereo PCM at 44.1kHz.
const (
	SampleRate     = 44100
	BytesPerSample = 2
	Channels       = 2
)

// FramesPerSecond counts cd frames, the 1/75s unit that MSF addresses
// and track lengths are given in. For audio a frame and a sector are
// the same thing.
const FramesPerSecond = 75

// SamplesPerFrame is 588 stereo samples.
const SamplesPerFrame = SampleRate / FramesPerSecond

// BytesPerSector is the 2352 bytes of PCM in one audio sector.
const BytesPerSector = SamplesPerFrame * Channels * BytesPerSample

// DataSectorSize is the user data in a Mode 1 sector.
const DataSectorSize = 2048

// MaxTracks is the most tracks a disc can hold.
const MaxTracks = 99

// PregapFrames is the usual two seconds of gap before a track.
const PregapFrames = 2 * FramesPerSecond
