package cdaudio

import (
	"fmt"
	"strconv"
	"strings"
)

// Command runs a "cd" console command, e.g. "play 2", "loop 3",
// "volume 0.5" or "info".
func (c *Controller) Command(args ...string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: cd <%s>", strings.Join(commandNames, "|"))
	}
	cmd := strings.ToLower(args[0])
	args = args[1:]

	switch cmd {
	case "play", "loop":
		if len(args) != 1 {
			return fmt.Errorf("usage: cd %s <track>", cmd)
		}
		track, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("cd %s: bad track %q", cmd, args[0])
		}
		return c.Play(track, cmd == "loop")
	case "stop":
		return c.Stop()
	case "pause":
		return c.Pause()
	case "resume":
		return c.Resume()
	case "next":
		return c.Next()
	case "prev":
		return c.Previous()
	case "eject":
		if c.playing || c.wasPlaying {
			_ = c.Stop()
		}
		return c.Eject()
	case "info":
		if !c.ready() {
			c.printf("No CD-ROM drive open")
			return ErrNotOpen
		}
		c.Info()
		return nil
	case "volume":
		if len(args) == 0 {
			c.printf("%q is %v", c.vol.Name(), c.vol.Value())
			return nil
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("cd volume: bad value %q", args[0])
		}
		c.SetVolume(v)
		return nil
	case "reset":
		c.Shutdown()
		return c.Init()
	default:
		return fmt.Errorf("cd: unknown command %q", cmd)
	}
}

// CommandNames lists the subcommands Command accepts.
func CommandNames() []string {
	return append([]string(nil), commandNames...)
}

var commandNames = []string{
	"play", "loop", "stop", "pause", "resume", "next", "prev",
	"eject", "info", "volume", "reset",
}
