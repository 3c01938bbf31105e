package audiocd

// Status is the state a drive reports when polled.
type Status int

const (
	StatusError     Status = -1
	StatusTrayEmpty Status = 0
	StatusStopped   Status = 1
	StatusPlaying   Status = 2
	StatusPaused    Status = 3
)

// InDrive reports whether a readable disc is present.
func (s Status) InDrive() bool {
	return s > StatusTrayEmpty
}

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusTrayEmpty:
		return "tray empty"
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}
