// Package cdaudio plays background music from the audio tracks of a
// cd in the drive.
//
// A Controller owns one opened drive and runs entirely on the engine's
// main loop: transport operations are synchronous and Update, called
// once per frame, is the only place time-driven transitions happen
// (track completion, looping and auto-advance). CD audio is optional,
// so no failure here is fatal: problems are printed to the console and
// the feature quietly becomes unavailable.
package cdaudio

import (
	"errors"
	"strings"
	"time"

	"github.com/rabidaudio/cdaudio/audiocd"
)

// Console receives diagnostic text, one message per call.
type Console interface {
	Printf(format string, args ...any)
}

// Clock reports engine time: monotonic, measured from engine start.
type Clock interface {
	Now() time.Duration
}

// Cvar is the configuration cell holding the music volume.
type Cvar interface {
	Name() string
	Value() float64
	SetValue(v float64)
}

// Args queries the startup command line, e.g. CheckParm("-nocdaudio")
// or ParmValue("-cddev").
type Args interface {
	CheckParm(name string) bool
	ParmValue(name string) (string, bool)
}

// Config wires a Controller to its collaborators. Nil fields get
// inert defaults.
type Config struct {
	Console   Console
	Clock     Clock
	Volume    Cvar
	Args      Args
	Validator DeviceNameValidator
	SafeMode  bool
}

// NoTime marks an unset end-of-track or pause time.
const NoTime time.Duration = -1

// pregap is added to every track's end time. The drive doesn't report
// the gap before the next track, so disc-at-once cds won't loop
// seamlessly.
const pregap = audiocd.PregapFrames * time.Second / audiocd.FramesPerSecond

var errDisabled = errors.New("disabled on the command line")

var errNotAudio = errors.New("not an audio track")

// State is the coarse playback state.
type State int

const (
	StateClosed State = iota
	StateIdle
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the controller's playback state.
type Snapshot struct {
	Enabled        bool
	DiskValid      bool
	Playing        bool
	WasPlaying     bool
	Looping        bool
	Track          int
	EndOfTrack     time.Duration
	PauseTime      time.Duration
	Volume         float64 // last volume applied
	HardwareVolume bool
}

// Controller drives cd audio playback. The zero value is not usable;
// create one with New.
type Controller struct {
	sys       audiocd.System
	console   Console
	clock     Clock
	vol       Cvar
	args      Args
	validator DeviceNameValidator
	safeMode  bool

	drive audiocd.Drive
	dev   int

	enabled    bool
	diskValid  bool
	playing    bool
	wasPlaying bool
	looping    bool
	track      int
	endOfTrack time.Duration
	pauseTime  time.Duration
	pausedEnd  time.Duration // endOfTrack as it was when paused

	oldVolume   float64
	hwVolume    bool
	savedVolume float64 // hardware level found at Init, restored on Shutdown
}

// New creates a closed Controller over the device subsystem sys.
func New(sys audiocd.System, cfg Config) *Controller {
	c := &Controller{
		sys:       sys,
		console:   cfg.Console,
		clock:     cfg.Clock,
		vol:       cfg.Volume,
		args:      cfg.Args,
		validator: cfg.Validator,
		safeMode:  cfg.SafeMode,
	}
	if c.console == nil {
		c.console = discard{}
	}
	if c.clock == nil {
		c.clock = monotonic{start: time.Now()}
	}
	if c.vol == nil {
		c.vol = &fixedVolume{value: 1}
	}
	if c.args == nil {
		c.args = noArgs{}
	}
	if c.validator == nil {
		c.validator = DefaultValidator()
	}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.drive = nil
	c.dev = -1
	c.enabled = false
	c.diskValid = false
	c.playing = false
	c.wasPlaying = false
	c.looping = false
	c.track = 0
	c.endOfTrack = NoTime
	c.pauseTime = NoTime
	c.pausedEnd = NoTime
	c.hwVolume = false
}

func (c *Controller) printf(format string, args ...any) {
	c.console.Printf(format, args...)
}

func (c *Controller) ready() bool {
	return c.drive != nil && c.enabled
}

// Init opens a drive. It fails, leaving the controller closed, when cd
// audio is disabled on the command line, the subsystem can't start, or
// no usable drive is found. A missing disc is not a failure.
func (c *Controller) Init() error {
	if c.drive != nil {
		return nil
	}
	if c.safeMode || c.args.CheckParm("-safe") || c.args.CheckParm("-nocdaudio") {
		return opError("init", SubsystemInitFailed, errDisabled)
	}

	userdev := ""
	if arg, ok := c.args.ParmValue("-cddev"); ok {
		dev, valid := c.validator(arg)
		if !valid {
			c.printf("Invalid argument to -cddev")
			return opError("init", InvalidArgument, errors.New("bad -cddev "+arg))
		}
		userdev = dev
	}

	if err := c.sys.Init(); err != nil {
		c.printf("Couldn't init cdrom subsystem: %v", err)
		return opError("init", SubsystemInitFailed, err)
	}

	n := c.sys.NumDrives()
	if n == 1 {
		c.printf("Detected 1 CD-ROM drive")
	} else {
		c.printf("Detected %d CD-ROM drives", n)
	}
	if n < 1 {
		c.sys.Quit()
		return opError("init", SubsystemInitFailed, audiocd.ErrNoDrive)
	}

	dev := 0
	if userdev != "" {
		dev = -1
		for i := 0; i < n; i++ {
			if strings.EqualFold(c.sys.Name(i), userdev) {
				dev = i
				break
			}
		}
		if dev == -1 {
			c.printf("Couldn't find cdrom device %s", userdev)
			c.sys.Quit()
			return opError("init", InvalidArgument, audiocd.ErrNoDrive)
		}
	}

	drive, err := c.sys.Open(dev)
	if err != nil {
		c.printf("CDAudio_Init: Unable to open CD-ROM drive %s (%v)", c.sys.Name(dev), err)
		c.sys.Quit()
		return opError("init", SubsystemInitFailed, err)
	}

	c.drive = drive
	c.dev = dev
	c.enabled = true
	c.oldVolume = c.vol.Value()

	c.printf("CDAudio initialized (using %s)", c.sys.Name(dev))

	if c.getAudioDiskInfo() != nil {
		c.printf("CDAudio_Init: No CD in drive")
	}

	if vc, ok := drive.(audiocd.VolumeControl); ok {
		if v, err := vc.Volume(); err == nil {
			c.savedVolume = v
			c.hwVolume = true
			c.hwVolume = c.applyVolume()
		}
	}
	return nil
}

// getAudioDiskInfo re-checks whether a disc is in the drive.
func (c *Controller) getAudioDiskInfo() error {
	c.diskValid = false
	if c.drive == nil {
		return ErrNotOpen
	}
	if !c.drive.Status().InDrive() {
		return opError("disk info", MediaAbsentOrUnreadable, audiocd.ErrNoMediumPresent)
	}
	c.diskValid = true
	return nil
}

// IsPlaying reports whether a track is playing (not paused).
func (c *Controller) IsPlaying() bool {
	return c.playing
}

// Play starts track (1-based), replacing whatever was playing. Asking
// for the track already playing does nothing. When looping, the track
// restarts when it ends; otherwise playback advances to the next track.
func (c *Controller) Play(track int, looping bool) error {
	if !c.ready() {
		return ErrNotOpen
	}
	if !c.diskValid {
		if err := c.getAudioDiskInfo(); err != nil {
			return err
		}
	}

	tracks := c.drive.Tracks()
	if track < 1 || track > len(tracks) {
		c.printf("CDAudio_Play: Bad track number %d.", track)
		return opError("play", InvalidArgument, audiocd.ErrInvalidTrackNumber)
	}
	tp := tracks[track-1]
	if !tp.IsAudio() {
		c.printf("CDAudio_Play: track %d is not audio", track)
		return opError("play", InvalidArgument, errNotAudio)
	}

	if c.playing {
		if c.track == track {
			return nil
		}
		_ = c.Stop()
	}

	if err := c.drive.Play(tp.StartSector, tp.LengthSectors); err != nil {
		// some drives report an error and start playing anyway
		if c.drive.Status() != audiocd.StatusPlaying {
			c.printf("CDAudio_Play: Unable to play %d: %v", track, err)
			return opError("play", DeviceCommandFailed, err)
		}
		c.printf("CDAudio_Play: ignoring error for track %d, drive is playing: %v", track, err)
	}

	c.looping = looping
	c.track = track
	c.playing = true
	c.wasPlaying = false
	c.endOfTrack = c.clock.Now() + tp.Duration() + pregap
	c.pauseTime = NoTime
	c.pausedEnd = NoTime

	if !c.hwVolume && c.vol.Value() == 0 {
		_ = c.Pause()
	}
	return nil
}

// Stop stops playback, including paused playback. The state is
// cleared even if the drive rejects the command.
func (c *Controller) Stop() error {
	if !c.ready() {
		return ErrNotOpen
	}
	if !c.playing && !c.wasPlaying {
		return nil
	}

	var err error
	if derr := c.drive.Stop(); derr != nil {
		c.printf("CDAudio_Stop: Unable to stop CD-ROM (%v)", derr)
		err = opError("stop", DeviceCommandFailed, derr)
	}

	c.wasPlaying = false
	c.playing = false
	c.pauseTime = NoTime
	c.pausedEnd = NoTime
	c.endOfTrack = NoTime
	return err
}

// Next plays the following track, wrapping from the last to the first.
func (c *Controller) Next() error {
	if !c.ready() {
		return ErrNotOpen
	}
	if !c.playing {
		return nil
	}
	return c.Play(c.nextTrack(), c.looping)
}

// Previous plays the preceding track, wrapping from the first to the last.
func (c *Controller) Previous() error {
	if !c.ready() {
		return ErrNotOpen
	}
	if !c.playing {
		return nil
	}
	track := c.track - 1
	if track < 1 {
		track = len(c.drive.Tracks())
	}
	return c.Play(track, c.looping)
}

func (c *Controller) nextTrack() int {
	track := c.track + 1
	if track > len(c.drive.Tracks()) {
		track = 1
	}
	return track
}

// Pause pauses playback, remembering when so Resume can push the end
// of the track back.
func (c *Controller) Pause() error {
	if !c.ready() {
		return ErrNotOpen
	}
	if !c.playing {
		return nil
	}

	var err error
	if derr := c.drive.Pause(); derr != nil {
		c.printf("Unable to pause CD-ROM: %v", derr)
		err = opError("pause", DeviceCommandFailed, derr)
	}

	c.wasPlaying = true
	c.playing = false
	c.pauseTime = c.clock.Now()
	c.pausedEnd = c.endOfTrack
	c.endOfTrack = NoTime
	return err
}

// Resume continues paused playback.
func (c *Controller) Resume() error {
	if !c.ready() {
		return ErrNotOpen
	}
	if !c.diskValid || !c.wasPlaying {
		return nil
	}

	var err error
	if derr := c.drive.Resume(); derr != nil {
		c.printf("Unable to resume CD-ROM: %v", derr)
		err = opError("resume", DeviceCommandFailed, derr)
	}

	now := c.clock.Now()
	c.playing = true
	c.wasPlaying = false
	c.endOfTrack = c.pausedEnd + (now - c.pauseTime)
	c.pausedEnd = NoTime
	c.pauseTime = NoTime
	return err
}

// SetVolume stores v into the volume cvar and applies it.
func (c *Controller) SetVolume(v float64) {
	c.vol.SetValue(v)
	if c.ready() {
		c.applyVolume()
	}
}

// applyVolume pushes the cvar to the drive, or emulates mute by pausing
// when the drive has no volume control. It reports whether the hardware
// level was set.
func (c *Controller) applyVolume() bool {
	v := c.vol.Value()
	if v < 0 {
		c.vol.SetValue(0)
	} else if v > 1 {
		c.vol.SetValue(1)
	}
	c.oldVolume = c.vol.Value()

	if c.hwVolume {
		vc := c.drive.(audiocd.VolumeControl)
		if err := vc.SetVolume(c.oldVolume); err != nil {
			c.printf("Unable to set CD-ROM volume: %v", err)
			return false
		}
		return true
	}

	if c.oldVolume == 0 {
		_ = c.Pause()
	} else {
		_ = c.Resume()
	}
	return false
}

// Update runs once per frame. It tracks volume changes and, once the
// current track should have ended and the drive agrees, loops it or
// moves on to the next one.
func (c *Controller) Update() {
	if !c.ready() {
		return
	}

	if c.oldVolume != c.vol.Value() {
		c.applyVolume()
	}

	if !c.playing || c.clock.Now() <= c.endOfTrack {
		return
	}
	switch c.drive.Status() {
	case audiocd.StatusPlaying, audiocd.StatusPaused:
		return
	}

	c.endOfTrack = NoTime
	track := c.track
	if !c.looping {
		track = c.nextTrack()
	}
	looping := c.looping
	_ = c.Stop()
	_ = c.Play(track, looping)
}

// Eject opens the drive tray.
func (c *Controller) Eject() error {
	if c.drive == nil {
		return ErrNotOpen
	}
	if err := c.drive.Eject(); err != nil {
		c.printf("Unable to eject CD-ROM: %v", err)
		return opError("eject", DeviceCommandFailed, err)
	}
	c.diskValid = false
	return nil
}

// Info prints the track count, what is playing and the volume.
func (c *Controller) Info() {
	if !c.ready() {
		return
	}
	tracks := c.drive.Tracks()
	c.printf("%d tracks", len(tracks))
	if l, ok := c.drive.(audiocd.Labeler); ok && l.Label() != "" {
		c.printf("Disc label is %s", l.Label())
	}

	mode := "playing"
	if c.looping {
		mode = "looping"
	}
	if c.playing {
		c.printf("Currently %s track %d", mode, c.track)
	} else if c.wasPlaying {
		c.printf("Paused %s track %d", mode, c.track)
	}

	if (c.playing || c.wasPlaying) && c.track >= 1 && c.track <= len(tracks) {
		tp := tracks[c.track-1]
		pos := c.drive.CurrentFrame() - tp.StartSector
		if pos < 0 {
			pos = 0
		}
		cm, cs, cf := audiocd.FramesToMSF(pos)
		lm, ls, lf := audiocd.FramesToMSF(tp.LengthSectors)
		c.printf("Current position: %d:%02d.%02d (of %d:%02d.%02d)",
			cm, cs, cf*60/audiocd.FramesPerSecond,
			lm, ls, lf*60/audiocd.FramesPerSecond)
	}
	c.printf("Volume is %f", c.vol.Value())
}

// Shutdown stops playback and closes the drive.
func (c *Controller) Shutdown() {
	if c.drive == nil {
		return
	}
	_ = c.Stop()
	if c.hwVolume {
		if err := c.drive.(audiocd.VolumeControl).SetVolume(c.savedVolume); err != nil {
			c.printf("Unable to restore CD-ROM volume: %v", err)
		}
	}
	if err := c.drive.Close(); err != nil {
		c.printf("CDAudio_Shutdown: %v", err)
	}
	c.reset()
	c.sys.Quit()
}

// State reports the coarse playback state.
func (c *Controller) State() State {
	switch {
	case c.drive == nil:
		return StateClosed
	case c.playing:
		return StatePlaying
	case c.wasPlaying:
		return StatePaused
	default:
		return StateIdle
	}
}

// Snapshot returns a copy of the playback state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Enabled:        c.enabled,
		DiskValid:      c.diskValid,
		Playing:        c.playing,
		WasPlaying:     c.wasPlaying,
		Looping:        c.looping,
		Track:          c.track,
		EndOfTrack:     c.endOfTrack,
		PauseTime:      c.pauseTime,
		Volume:         c.oldVolume,
		HardwareVolume: c.hwVolume,
	}
}

// DeviceName is the name of the open drive, or "" when closed.
func (c *Controller) DeviceName() string {
	if c.drive == nil {
		return ""
	}
	return c.sys.Name(c.dev)
}

type discard struct{}

func (discard) Printf(string, ...any) {}

type monotonic struct {
	start time.Time
}

func (m monotonic) Now() time.Duration {
	return time.Since(m.start)
}

type noArgs struct{}

func (noArgs) CheckParm(string) bool { return false }

func (noArgs) ParmValue(string) (string, bool) { return "", false }

type fixedVolume struct {
	value float64
}

func (*fixedVolume) Name() string { return "bgmvolume" }

func (v *fixedVolume) Value() float64 { return v.value }

func (v *fixedVolume) SetValue(f float64) { v.value = f }
