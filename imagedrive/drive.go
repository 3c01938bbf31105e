// Package imagedrive is a cd drive backed by disc images on disk. A
// disc is a directory holding one file per track: ISO-9660 images for
// data tracks, raw CD-DA dumps (.cdda) or wave files (.wav) for audio.
// Audio is played through an Output, by default the host speaker.
package imagedrive

import (
	"math"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
	"github.com/rabidaudio/cdaudio/audiocd"
	"github.com/sirupsen/logrus"
)

// DriveConfig names a drive and the disc directory it reads.
type DriveConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// System is the set of configured image drives sharing one Output.
type System struct {
	Drives []DriveConfig
	Output Output
	Log    logrus.FieldLogger

	initialized bool
}

var _ audiocd.System = (*System)(nil)

// NewSystem returns a system playing through out. A nil out uses the
// host speaker.
func NewSystem(out Output, drives ...DriveConfig) *System {
	if out == nil {
		out = Speaker{}
	}
	return &System{
		Drives: drives,
		Output: out,
		Log:    logrus.StandardLogger().WithField("subsystem", "imagedrive"),
	}
}

func (s *System) Init() error {
	if s.initialized {
		return nil
	}
	if err := s.Output.Init(Format); err != nil {
		return errors.Wrap(err, "init output")
	}
	s.initialized = true
	return nil
}

func (s *System) Quit() {
	if !s.initialized {
		return
	}
	s.Output.Clear()
	if err := s.Output.Close(); err != nil {
		s.Log.WithError(err).Warn("close output")
	}
	s.initialized = false
}

func (s *System) NumDrives() int {
	return len(s.Drives)
}

func (s *System) Name(i int) string {
	if i < 0 || i >= len(s.Drives) {
		return ""
	}
	return s.Drives[i].Name
}

// Open loads the disc in drive i.
func (s *System) Open(i int) (audiocd.Drive, error) {
	if !s.initialized {
		return nil, audiocd.ErrNotInitialized
	}
	if i < 0 || i >= len(s.Drives) {
		return nil, audiocd.ErrNoDrive
	}
	cfg := s.Drives[i]
	log := s.Log.WithField("drive", cfg.Name)
	d, err := loadDisc(cfg.Path, log)
	if err != nil {
		return nil, err
	}
	drv := &Drive{out: s.Output, log: log, disc: d, level: 1, open: true}
	if d != nil {
		drv.status = audiocd.StatusStopped
		log.WithFields(logrus.Fields{"label": d.label, "tracks": len(d.tracks)}).Debug("disc loaded")
	}
	return drv, nil
}

// Drive is an opened image drive. Its fields are shared with the output
// goroutine and guarded by the output lock.
type Drive struct {
	out Output
	log logrus.FieldLogger

	disc   *disc
	status audiocd.Status
	level  float64
	cur    *session
	last   int32
	open   bool
}

var (
	_ audiocd.Drive         = (*Drive)(nil)
	_ audiocd.VolumeControl = (*Drive)(nil)
	_ audiocd.Labeler       = (*Drive)(nil)
)

func (d *Drive) Status() audiocd.Status {
	d.out.Lock()
	defer d.out.Unlock()
	if !d.open {
		return audiocd.StatusError
	}
	return d.status
}

// Label is the volume label of the disc's data track, if any.
func (d *Drive) Label() string {
	d.out.Lock()
	defer d.out.Unlock()
	if d.disc == nil {
		return ""
	}
	return d.disc.label
}

func (d *Drive) Tracks() []audiocd.TrackPosition {
	d.out.Lock()
	defer d.out.Unlock()
	if d.disc == nil {
		return nil
	}
	return d.disc.toc()
}

// CurrentFrame is the absolute sector playback has reached.
func (d *Drive) CurrentFrame() int32 {
	d.out.Lock()
	defer d.out.Unlock()
	if d.cur != nil {
		return d.cur.frame()
	}
	return d.last
}

// Play streams length sectors starting at the absolute sector start.
// Data sectors play as silence.
func (d *Drive) Play(start, length int32) error {
	d.out.Lock()
	if err := d.check(); err != nil {
		d.out.Unlock()
		return err
	}
	if start < 0 || length <= 0 || start+length > d.disc.length() {
		d.out.Unlock()
		return audiocd.ErrInvalidSectorRange
	}
	d.stop()
	d.status = audiocd.StatusStopped
	sess, err := d.newSession(start, length)
	if err != nil {
		d.out.Unlock()
		return err
	}
	d.cur = sess
	d.status = audiocd.StatusPlaying
	d.out.Unlock()

	d.log.WithFields(logrus.Fields{"start": start, "length": length}).Debug("play")
	d.out.Play(sess)
	return nil
}

func (d *Drive) check() error {
	if !d.open {
		return audiocd.ErrNotOpen
	}
	if d.disc == nil {
		return audiocd.ErrNoMediumPresent
	}
	return nil
}

func (d *Drive) newSession(start, length int32) (*session, error) {
	sess := &session{start: start}
	var segments []beep.Streamer
	end := start + length
	for _, t := range d.disc.tracks {
		from, to := max(start, t.StartSector), min(end, t.EndSector())
		if from >= to {
			continue
		}
		s, err := d.segment(sess, t, from-t.StartSector, to-from)
		if err != nil {
			sess.cancel()
			return nil, err
		}
		segments = append(segments, s)
	}

	sess.pos = &counter{Streamer: beep.Seq(segments...)}
	sess.ctrl = &beep.Ctrl{Streamer: sess.pos}
	sess.vol = &effects.Volume{Streamer: sess.ctrl, Base: 2}
	setGain(sess.vol, d.level)
	sess.Streamer = beep.Seq(sess.vol, beep.Callback(func() {
		d.finish(sess)
	}))
	return sess, nil
}

// segment renders n sectors of t starting offset sectors into it.
func (d *Drive) segment(sess *session, t track, offset, n int32) (beep.Streamer, error) {
	samples := int(n) * audiocd.SamplesPerFrame
	switch t.kind {
	case kindRaw:
		s, err := newRawStreamer(t.path)
		if err != nil {
			return nil, errors.Wrap(err, "open track")
		}
		sess.closers = append(sess.closers, s)
		if err := s.Seek(int(offset) * audiocd.SamplesPerFrame); err != nil {
			return nil, errors.Wrapf(err, "seek track %d", t.TrackNum)
		}
		return beep.Take(samples, s), nil
	case kindWave:
		f, err := os.Open(t.path)
		if err != nil {
			return nil, errors.Wrap(err, "open track")
		}
		s, format, err := wav.Decode(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "decode track %d", t.TrackNum)
		}
		sess.closers = append(sess.closers, s)
		rate := int64(format.SampleRate)
		if err := s.Seek(int(int64(offset) * rate / audiocd.FramesPerSecond)); err != nil {
			return nil, errors.Wrapf(err, "seek track %d", t.TrackNum)
		}
		if format.SampleRate == Format.SampleRate {
			return beep.Take(samples, s), nil
		}
		return beep.Take(samples, beep.Resample(4, format.SampleRate, Format.SampleRate, s)), nil
	default:
		return beep.Silence(samples), nil
	}
}

// setGain maps a linear level in [0, 1] onto the base-2 gain of v.
func setGain(v *effects.Volume, level float64) {
	v.Silent = level <= 0
	if !v.Silent {
		v.Volume = math.Log2(level)
	}
}

// finish runs on the output goroutine, under the lock, when a session
// plays to its end.
func (d *Drive) finish(sess *session) {
	if d.cur != sess {
		return
	}
	d.last = sess.frame()
	sess.cancel()
	d.cur = nil
	d.status = audiocd.StatusStopped
	d.log.WithField("frame", d.last).Debug("end of stream")
}

// stop drops the current session. The caller holds the lock.
func (d *Drive) stop() {
	if d.cur == nil {
		return
	}
	d.last = d.cur.frame()
	d.cur.cancel()
	d.cur = nil
}

func (d *Drive) Stop() error {
	d.out.Lock()
	defer d.out.Unlock()
	if err := d.check(); err != nil {
		return err
	}
	d.stop()
	d.status = audiocd.StatusStopped
	return nil
}

func (d *Drive) Pause() error {
	d.out.Lock()
	defer d.out.Unlock()
	if err := d.check(); err != nil {
		return err
	}
	if d.status != audiocd.StatusPlaying {
		return audiocd.ErrNotPlaying
	}
	d.cur.ctrl.Paused = true
	d.status = audiocd.StatusPaused
	return nil
}

func (d *Drive) Resume() error {
	d.out.Lock()
	defer d.out.Unlock()
	if err := d.check(); err != nil {
		return err
	}
	if d.status != audiocd.StatusPaused {
		return audiocd.ErrNotPaused
	}
	d.cur.ctrl.Paused = false
	d.status = audiocd.StatusPlaying
	return nil
}

// Eject stops playback and empties the tray.
func (d *Drive) Eject() error {
	d.out.Lock()
	defer d.out.Unlock()
	if !d.open {
		return audiocd.ErrNotOpen
	}
	d.stop()
	d.disc = nil
	d.last = 0
	d.status = audiocd.StatusTrayEmpty
	return nil
}

func (d *Drive) Close() error {
	d.out.Lock()
	defer d.out.Unlock()
	if !d.open {
		return audiocd.ErrNotOpen
	}
	d.stop()
	d.open = false
	return nil
}

// Volume reports the linear output level in [0, 1].
func (d *Drive) Volume() (float64, error) {
	d.out.Lock()
	defer d.out.Unlock()
	if !d.open {
		return 0, audiocd.ErrNotOpen
	}
	return d.level, nil
}

// SetVolume sets the linear output level, clamped to [0, 1].
func (d *Drive) SetVolume(level float64) error {
	d.out.Lock()
	defer d.out.Unlock()
	if !d.open {
		return audiocd.ErrNotOpen
	}
	d.level = min(max(level, 0), 1)
	if d.cur != nil {
		setGain(d.cur.vol, d.level)
	}
	return nil
}
