package install

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownProcess = errors.New("unknown process")
	ErrInvalidInput   = errors.New("invalid input")
)

// Table is a process-time table keyed by the names in processTimes.
type Table map[string]float64

type Entry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Default returns a fresh copy of the built-in process times.
func Default() Table {
	t := make(Table, len(processTimes))
	for k, v := range processTimes {
		t[k] = v
	}
	return t
}

func (t Table) Lookup(name string) (float64, error) {
	v, ok := t[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProcess, name)
	}
	return v, nil
}

// With returns a copy of t with overrides applied. Only keys already present
// in t may be overridden.
func (t Table) With(overrides map[string]float64) (Table, error) {
	out := make(Table, len(t))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		if _, ok := t[k]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProcess, k)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, k)
		}
		out[k] = v
	}
	return out, nil
}

func (t Table) Entries() []Entry {
	names := make([]string, 0, len(t))
	for k := range t {
		names = append(names, k)
	}
	sort.Strings(names)
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		out = append(out, Entry{Name: n, Value: t[n], Unit: processUnits[n]})
	}
	return out
}
