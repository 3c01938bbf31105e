package cdaudio

import "fmt"

// Kind classifies controller failures. None of them are fatal: every
// failure degrades to CD audio being unavailable.
type Kind int

const (
	// DeviceUnavailable means no drive is open. Transport operations
	// return it without printing anything.
	DeviceUnavailable Kind = iota + 1
	InvalidArgument
	MediaAbsentOrUnreadable
	DeviceCommandFailed
	SubsystemInitFailed
)

func (k Kind) String() string {
	switch k {
	case DeviceUnavailable:
		return "device unavailable"
	case InvalidArgument:
		return "invalid argument"
	case MediaAbsentOrUnreadable:
		return "no disc in drive"
	case DeviceCommandFailed:
		return "device command failed"
	case SubsystemInitFailed:
		return "cdrom subsystem unavailable"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

// Error is returned by controller operations.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cdaudio: %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("cdaudio: %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same Kind, so the sentinels below
// can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrNotOpen             = &Error{Kind: DeviceUnavailable}
	ErrInvalidArgument     = &Error{Kind: InvalidArgument}
	ErrNoDisc              = &Error{Kind: MediaAbsentOrUnreadable}
	ErrCommandFailed       = &Error{Kind: DeviceCommandFailed}
	ErrSubsystemInitFailed = &Error{Kind: SubsystemInitFailed}
)

func opError(op string, kind Kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}
