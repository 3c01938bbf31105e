// Package audiocd describes the device facility used to play the
// audio tracks of a CD-DA disc: enumerating drives, reading the
// table of contents and issuing transport commands.
//
// Drives address the disc in frames (also called sectors), 1/75th
// of a second each. Use [FramesToMSF] to convert to the MM:SS:FF
// notation Redbook uses.
package audiocd

// System is the device subsystem that enumerates and opens drives.
// A System must be initialized with Init before drives are queried
// and torn down with Quit afterwards.
type System interface {
	Init() error
	Quit()

	// NumDrives returns the number of detected drives.
	NumDrives() int
	// Name returns a human readable name for the drive at index i,
	// e.g. /dev/cdrom or D:\.
	Name(i int) string
	// Open opens the drive at index i.
	Open(i int) (Drive, error)
}

// Drive is an opened cd drive.
type Drive interface {
	// Status polls the drive.
	Status() Status
	// Tracks returns the table of contents of the disc in the drive.
	Tracks() []TrackPosition
	// CurrentFrame is the absolute frame the drive is positioned at.
	CurrentFrame() int32

	// Play plays length frames starting at the absolute frame start.
	Play(start, length int32) error
	Stop() error
	Pause() error
	Resume() error
	// Eject opens the tray.
	Eject() error

	// Close releases access to the drive.
	Close() error
}

// Labeler is implemented by drives that know the volume label of the
// disc in the tray.
type Labeler interface {
	Label() string
}

// VolumeControl is implemented by drives with a hardware volume.
// Levels are linear, 0 (silent) to 1 (full).
type VolumeControl interface {
	Volume() (float64, error)
	SetVolume(v float64) error
}
