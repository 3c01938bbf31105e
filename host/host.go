// Package host adapts the process environment to the interfaces the
// cd audio controller consumes: a console sink, the engine clock and
// the startup command line.
package host

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Console prints diagnostics through logrus at info level.
type Console struct {
	Log logrus.FieldLogger
}

// NewConsole tags every message with the subsystem name.
func NewConsole(logger logrus.FieldLogger, subsystem string) *Console {
	return &Console{Log: logger.WithField("subsystem", subsystem)}
}

func (c *Console) Printf(format string, args ...any) {
	c.Log.Info(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// Clock measures engine time from its creation.
type Clock struct {
	start time.Time
}

func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

func (c *Clock) Now() time.Duration {
	return time.Since(c.start)
}

// CommandLine answers parameter queries over a raw argument vector the
// way the engine always has: a parameter's value is the argument that
// follows it.
type CommandLine []string

// CheckParm reports whether name appears in the arguments.
func (cl CommandLine) CheckParm(name string) bool {
	return cl.index(name) >= 0
}

// ParmValue returns the non-empty argument following name.
func (cl CommandLine) ParmValue(name string) (string, bool) {
	i := cl.index(name)
	if i < 0 || i+1 >= len(cl) || cl[i+1] == "" {
		return "", false
	}
	return cl[i+1], true
}

func (cl CommandLine) index(name string) int {
	for i, arg := range cl {
		if arg == name {
			return i
		}
	}
	return -1
}

// Params is a source of startup parameters.
type Params interface {
	CheckParm(name string) bool
	ParmValue(name string) (string, bool)
}

// ArgList asks each source in turn. The first source that has a
// parameter answers for it.
type ArgList []Params

func (al ArgList) CheckParm(name string) bool {
	for _, p := range al {
		if p.CheckParm(name) {
			return true
		}
	}
	return false
}

func (al ArgList) ParmValue(name string) (string, bool) {
	for _, p := range al {
		if v, ok := p.ParmValue(name); ok {
			return v, true
		}
	}
	return "", false
}

// FlagArgs answers parameter queries from parsed flags. Engine style
// names like "-cddev" map onto the long flag "cddev".
type FlagArgs struct {
	Flags *pflag.FlagSet
}

func (fa FlagArgs) lookup(name string) *pflag.Flag {
	if fa.Flags == nil {
		return nil
	}
	return fa.Flags.Lookup(strings.TrimLeft(name, "-"))
}

// CheckParm reports whether the flag was given. Boolean flags must
// also be true.
func (fa FlagArgs) CheckParm(name string) bool {
	f := fa.lookup(name)
	if f == nil || !f.Changed {
		return false
	}
	if f.Value.Type() == "bool" {
		return f.Value.String() == "true"
	}
	return true
}

// ParmValue returns the value of a flag that was given and non-empty.
func (fa FlagArgs) ParmValue(name string) (string, bool) {
	f := fa.lookup(name)
	if f == nil || !f.Changed || f.Value.String() == "" {
		return "", false
	}
	return f.Value.String(), true
}
