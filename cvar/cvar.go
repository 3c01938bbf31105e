// Package cvar holds console variables: named numeric settings the
// engine and its subsystems read every frame.
package cvar

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Cvar is a named float setting limited to [Min, Max].
type Cvar struct {
	name  string
	value float64
	Min   float64
	Max   float64
}

// New creates a cvar. The default value is clamped like any other.
func New(name string, def, min, max float64) *Cvar {
	cv := &Cvar{name: name, Min: min, Max: max}
	cv.SetValue(def)
	return cv
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float64 {
	return cv.value
}

// SetValue stores v clamped to the cvar's range.
func (cv *Cvar) SetValue(v float64) {
	if v < cv.Min {
		v = cv.Min
	} else if v > cv.Max {
		v = cv.Max
	}
	cv.value = v
}

func (cv *Cvar) String() string {
	return strconv.FormatFloat(cv.value, 'g', -1, 64)
}

// Registry indexes cvars by name.
type Registry struct {
	vars map[string]*Cvar
}

func NewRegistry() *Registry {
	return &Registry{vars: make(map[string]*Cvar)}
}

// Register adds cv to the registry. Registering a name twice is an error.
func (r *Registry) Register(cv *Cvar) error {
	if _, ok := r.vars[cv.name]; ok {
		return fmt.Errorf("cvar: %q already registered", cv.name)
	}
	r.vars[cv.name] = cv
	return nil
}

func (r *Registry) Get(name string) (*Cvar, bool) {
	cv, ok := r.vars[name]
	return cv, ok
}

// Set parses value and stores it into the named cvar.
func (r *Registry) Set(name, value string) error {
	cv, ok := r.vars[name]
	if !ok {
		return fmt.Errorf("cvar: unknown variable %q", name)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("cvar: %s: %w", name, err)
	}
	cv.SetValue(v)
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.vars))
	for name := range r.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadYAML reads a flat mapping of cvar name to number, e.g.
//
//	bgmvolume: 0.5
//
// Unknown names are an error.
func (r *Registry) LoadYAML(rd io.Reader) error {
	values := map[string]float64{}
	if err := yaml.NewDecoder(rd).Decode(&values); err != nil && err != io.EOF {
		return fmt.Errorf("cvar: %w", err)
	}
	return r.Apply(values)
}

// Apply stores every value in values into the matching cvar.
func (r *Registry) Apply(values map[string]float64) error {
	for name, v := range values {
		cv, ok := r.vars[name]
		if !ok {
			return fmt.Errorf("cvar: unknown variable %q", name)
		}
		cv.SetValue(v)
	}
	return nil
}
