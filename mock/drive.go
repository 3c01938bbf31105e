// Package mock provides scripted stand-ins for a cd drive, the engine
// clock and the console.
package mock

import (
	"fmt"
	"strings"
	"time"

	"github.com/rabidaudio/cdaudio/audiocd"
)

// PlayCall records the arguments of a Play command.
type PlayCall struct {
	Start  int32
	Length int32
}

// Drive is an in-memory drive. Commands succeed and update State
// unless the matching error field is set, in which case State is left
// alone. With the tray empty, Play fails and the other commands are
// accepted without effect.
type Drive struct {
	TOC   []audiocd.TrackPosition
	State audiocd.Status
	Frame int32

	PlayErr   error
	StopErr   error
	PauseErr  error
	ResumeErr error
	EjectErr  error
	CloseErr  error

	Plays       []PlayCall
	Stops       int
	Pauses      int
	Resumes     int
	Ejects      int
	Closes      int
	StatusCalls int
}

var _ audiocd.Drive = (*Drive)(nil)

// NewDrive returns a stopped drive holding an audio disc with tracks of
// the given lengths in frames.
func NewDrive(lengths ...int32) *Drive {
	return &Drive{TOC: Disc(lengths...), State: audiocd.StatusStopped}
}

// Disc lays out audio tracks of the given lengths back to back.
func Disc(lengths ...int32) []audiocd.TrackPosition {
	toc := make([]audiocd.TrackPosition, len(lengths))
	var pos int32
	for i, l := range lengths {
		toc[i] = audiocd.TrackPosition{
			TrackNum:      uint8(i + 1),
			StartSector:   pos,
			LengthSectors: l,
		}
		pos += l
	}
	return toc
}

func (d *Drive) Status() audiocd.Status {
	d.StatusCalls++
	return d.State
}

func (d *Drive) Tracks() []audiocd.TrackPosition {
	if !d.State.InDrive() {
		return nil
	}
	return append([]audiocd.TrackPosition(nil), d.TOC...)
}

func (d *Drive) CurrentFrame() int32 {
	return d.Frame
}

func (d *Drive) Play(start, length int32) error {
	d.Plays = append(d.Plays, PlayCall{Start: start, Length: length})
	if d.PlayErr != nil {
		return d.PlayErr
	}
	if !d.State.InDrive() {
		return audiocd.ErrNoMediumPresent
	}
	d.State = audiocd.StatusPlaying
	d.Frame = start
	return nil
}

// LastPlay returns the most recent Play call.
func (d *Drive) LastPlay() (PlayCall, bool) {
	if len(d.Plays) == 0 {
		return PlayCall{}, false
	}
	return d.Plays[len(d.Plays)-1], true
}

func (d *Drive) Stop() error {
	d.Stops++
	if d.StopErr != nil {
		return d.StopErr
	}
	if d.State.InDrive() {
		d.State = audiocd.StatusStopped
	}
	return nil
}

func (d *Drive) Pause() error {
	d.Pauses++
	if d.PauseErr != nil {
		return d.PauseErr
	}
	if d.State.InDrive() {
		d.State = audiocd.StatusPaused
	}
	return nil
}

func (d *Drive) Resume() error {
	d.Resumes++
	if d.ResumeErr != nil {
		return d.ResumeErr
	}
	if d.State.InDrive() {
		d.State = audiocd.StatusPlaying
	}
	return nil
}

func (d *Drive) Eject() error {
	d.Ejects++
	if d.EjectErr != nil {
		return d.EjectErr
	}
	d.State = audiocd.StatusTrayEmpty
	return nil
}

func (d *Drive) Close() error {
	d.Closes++
	return d.CloseErr
}

// Finish simulates the drive reaching the end of what it was asked to
// play.
func (d *Drive) Finish() {
	d.State = audiocd.StatusStopped
}

// VolumeDrive is a Drive with hardware volume control.
type VolumeDrive struct {
	*Drive
	Level     float64
	GetErr    error
	SetErr    error
	LevelsSet []float64
}

var _ audiocd.VolumeControl = (*VolumeDrive)(nil)

func (d *VolumeDrive) Volume() (float64, error) {
	if d.GetErr != nil {
		return 0, d.GetErr
	}
	return d.Level, nil
}

func (d *VolumeDrive) SetVolume(v float64) error {
	if d.SetErr != nil {
		return d.SetErr
	}
	d.Level = v
	d.LevelsSet = append(d.LevelsSet, v)
	return nil
}

// System is an in-memory device subsystem.
type System struct {
	Drives  []audiocd.Drive
	Names   []string
	InitErr error
	OpenErr error

	Inits  int
	Quits  int
	Opened []int
}

var _ audiocd.System = (*System)(nil)

// NewSystem names the drives /dev/sr0, /dev/sr1, ...
func NewSystem(drives ...audiocd.Drive) *System {
	s := &System{Drives: drives}
	for i := range drives {
		s.Names = append(s.Names, fmt.Sprintf("/dev/sr%d", i))
	}
	return s
}

func (s *System) Init() error {
	s.Inits++
	return s.InitErr
}

func (s *System) Quit() {
	s.Quits++
}

func (s *System) NumDrives() int {
	return len(s.Drives)
}

func (s *System) Name(i int) string {
	if i < 0 || i >= len(s.Names) {
		return ""
	}
	return s.Names[i]
}

func (s *System) Open(i int) (audiocd.Drive, error) {
	s.Opened = append(s.Opened, i)
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	if i < 0 || i >= len(s.Drives) {
		return nil, audiocd.ErrNoDrive
	}
	return s.Drives[i], nil
}

// Clock is a manually advanced engine clock.
type Clock struct {
	T time.Duration
}

func (c *Clock) Now() time.Duration {
	return c.T
}

func (c *Clock) Advance(d time.Duration) {
	c.T += d
}

// Console collects printed lines.
type Console struct {
	Lines []string
}

func (c *Console) Printf(format string, args ...any) {
	c.Lines = append(c.Lines, fmt.Sprintf(format, args...))
}

// Contains reports whether any line contains substr.
func (c *Console) Contains(substr string) bool {
	for _, l := range c.Lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func (c *Console) Reset() {
	c.Lines = nil
}
