package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/rabidaudio/cdaudio/cdaudio"
	"github.com/rabidaudio/cdaudio/cvar"
	"github.com/sirupsen/logrus"
)

// engine is the frame loop state: the cd controller plus the console
// variables the command line can reach.
type engine struct {
	cd   *cdaudio.Controller
	vars *cvar.Registry
	log  logrus.FieldLogger
}

// run calls Update once per frame and executes console lines between
// frames until quit, the line source closes or ctx is done.
func (e *engine) run(ctx context.Context, lines <-chan string, fps int) {
	if fps <= 0 {
		fps = defaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok || e.exec(line) {
				return
			}
		case <-ticker.C:
			e.cd.Update()
		}
	}
}

// exec runs one console line and reports whether it asked to quit.
func (e *engine) exec(line string) (quit bool) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}
	var err error
	switch strings.ToLower(args[0]) {
	case "quit", "exit":
		return true
	case "cd":
		err = e.cd.Command(args[1:]...)
	case "set":
		err = e.set(args[1:])
	case "cvarlist":
		for _, name := range e.vars.Names() {
			cv, _ := e.vars.Get(name)
			e.log.Info(cv.String())
		}
	case "exec":
		err = e.execFile(args[1:])
	default:
		err = e.cd.Command(args...)
	}
	var cdErr *cdaudio.Error
	if err != nil && !errors.As(err, &cdErr) {
		// controller errors have already been printed
		e.log.Warn(err)
	}
	return false
}

func (e *engine) set(args []string) error {
	switch len(args) {
	case 1:
		cv, ok := e.vars.Get(args[0])
		if !ok {
			return errors.Errorf("unknown variable %q", args[0])
		}
		e.log.Info(cv.String())
		return nil
	case 2:
		return e.vars.Set(args[0], args[1])
	default:
		return errors.New("usage: set <name> [value]")
	}
}

// execFile loads cvar values from a YAML file.
func (e *engine) execFile(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: exec <file>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "exec")
	}
	defer f.Close()
	return e.vars.LoadYAML(f)
}

func completer() readline.AutoCompleter {
	var cd []readline.PrefixCompleterInterface
	for _, name := range cdaudio.CommandNames() {
		cd = append(cd, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("cd", cd...),
		readline.PcItem("set"),
		readline.PcItem("cvarlist"),
		readline.PcItem("exec"),
		readline.PcItem("quit"),
	)
}

// readLines feeds prompt input to the returned channel until the
// prompt is closed or interrupted.
func readLines(ctx context.Context, rl *readline.Instance) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := rl.Readline()
			if err != nil {
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
