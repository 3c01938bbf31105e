package imagedrive

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/diskfs/go-diskfs"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
	"github.com/rabidaudio/cdaudio/audiocd"
	"github.com/sirupsen/logrus"
)

type trackKind int

const (
	kindData trackKind = iota
	kindRaw
	kindWave
)

type track struct {
	audiocd.TrackPosition
	kind trackKind
	path string
}

// disc is a directory of track files, one per track in name order.
type disc struct {
	label  string
	tracks []track
}

func (d *disc) toc() []audiocd.TrackPosition {
	toc := make([]audiocd.TrackPosition, len(d.tracks))
	for i, t := range d.tracks {
		toc[i] = t.TrackPosition
	}
	return toc
}

// length is the total number of sectors on the disc.
func (d *disc) length() int32 {
	if len(d.tracks) == 0 {
		return 0
	}
	return d.tracks[len(d.tracks)-1].EndSector()
}

// loadDisc reads the track layout of dir. A missing directory is an
// empty tray and yields a nil disc.
func loadDisc(dir string, log logrus.FieldLogger) (*disc, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read disc %s", dir)
	}

	d := &disc{}
	var pos int32
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		var t track
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".iso":
			t, err = dataTrack(path)
			if err == nil && d.label == "" {
				d.label, err = readLabel(path)
				if err != nil {
					log.WithError(err).WithField("path", path).Debug("no volume label")
					err = nil
				}
			}
		case ".cdda":
			t, err = rawTrack(path)
		case ".wav":
			t, err = waveTrack(path)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		if t.LengthSectors == 0 {
			log.WithField("path", path).Debug("skipping empty track")
			continue
		}
		if len(d.tracks) == audiocd.MaxTracks {
			return nil, audiocd.ErrIllegalTOC
		}
		t.TrackNum = uint8(len(d.tracks) + 1)
		t.StartSector = pos
		pos += t.LengthSectors
		d.tracks = append(d.tracks, t)
	}
	if len(d.tracks) == 0 {
		return nil, nil
	}
	return d, nil
}

func fileSize(path string) (int64, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return 0, errors.Wrap(err, "stat track")
	}
	return stat.Size(), nil
}

func dataTrack(path string) (track, error) {
	size, err := fileSize(path)
	if err != nil {
		return track{}, err
	}
	return track{
		TrackPosition: audiocd.TrackPosition{
			Flags:         audiocd.FlagData,
			LengthSectors: int32(size / audiocd.DataSectorSize),
		},
		kind: kindData,
		path: path,
	}, nil
}

func rawTrack(path string) (track, error) {
	size, err := fileSize(path)
	if err != nil {
		return track{}, err
	}
	return track{
		TrackPosition: audiocd.TrackPosition{
			LengthSectors: int32(size / audiocd.BytesPerSector),
		},
		kind: kindRaw,
		path: path,
	}, nil
}

func waveTrack(path string) (track, error) {
	f, err := os.Open(path)
	if err != nil {
		return track{}, errors.Wrap(err, "open track")
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return track{}, errors.Wrapf(err, "decode %s", path)
	}
	defer s.Close()
	if format.SampleRate <= 0 {
		return track{}, errors.Errorf("%s: bad sample rate %d", path, format.SampleRate)
	}
	sectors := int64(s.Len()) * audiocd.FramesPerSecond / int64(format.SampleRate)
	return track{
		TrackPosition: audiocd.TrackPosition{LengthSectors: int32(sectors)},
		kind:          kindWave,
		path:          path,
	}, nil
}

// readLabel returns the ISO-9660 volume identifier of the image at path.
func readLabel(path string) (string, error) {
	img, err := diskfs.Open(path, diskfs.WithOpenMode(diskfs.ReadOnly))
	if err != nil {
		return "", errors.Wrap(err, "open image")
	}
	defer img.Close()
	fsys, err := img.GetFilesystem(0)
	if err != nil {
		return "", errors.Wrap(err, "read filesystem")
	}
	return strings.TrimSpace(fsys.Label()), nil
}
