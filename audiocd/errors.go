package audiocd

import (
	"fmt"
	"io/fs"
)

// ErrNoDrive is returned when no valid cd drive was found.
var ErrNoDrive = fs.ErrNotExist

// Errors returned by drive implementations.
type AudioCDError int

const (
	ErrIllegalTOC            AudioCDError = 9
	ErrNotInitialized        AudioCDError = 300
	ErrNotOpen               AudioCDError = 400
	ErrInvalidTrackNumber    AudioCDError = 401
	ErrInvalidSectorRange    AudioCDError = 402
	ErrNoAudioTracks         AudioCDError = 403
	ErrNoMediumPresent       AudioCDError = 404
	ErrOperationNotSupported AudioCDError = 405
	ErrNotPlaying            AudioCDError = 406
	ErrNotPaused             AudioCDError = 407
)

func (pe AudioCDError) Error() string {
	return fmt.Sprintf("audiocd: %v", pe.name())
}

func (pe AudioCDError) name() string {
	switch pe {
	case ErrIllegalTOC:
		return "cdrom reporting illegal table of contents"

	case ErrNotInitialized:
		return "cdrom subsystem not initialized"

	case ErrNotOpen:
		return "device not open"
	case ErrInvalidTrackNumber:
		return "invalid track number"
	case ErrInvalidSectorRange:
		return "sector range outside of disc"
	case ErrNoAudioTracks:
		return "no audio tracks on disc"
	case ErrNoMediumPresent:
		return "no medium present"
	case ErrOperationNotSupported:
		return "option not supported by drive"
	case ErrNotPlaying:
		return "drive is not playing"
	case ErrNotPaused:
		return "drive is not paused"
	default:
		return fmt.Sprintf("unknown error code: %v", int(pe))
	}
}
