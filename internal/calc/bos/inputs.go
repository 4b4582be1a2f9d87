package bos

import (
	"errors"
	"fmt"
)

var (
	ErrMissingKey   = errors.New("missing key")
	ErrWrongType    = errors.New("wrong type")
	ErrInvalidInput = errors.New("invalid input")
)

// Inputs and Outputs are the plain mappings a cost Module reads and writes.
type (
	Inputs  map[string]any
	Outputs map[string]any
)

func lookup(m map[string]any, key string) (any, error) {
	v, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	return v, nil
}

func (in Inputs) Float(key string) (float64, error) {
	v, err := lookup(in, key)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	}
	return 0, fmt.Errorf("%w: %q is %T, want number", ErrWrongType, key, v)
}

func (in Inputs) CableSpecs(key string) ([]CableSpec, error) {
	v, err := lookup(in, key)
	if err != nil {
		return nil, err
	}
	specs, ok := v.([]CableSpec)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want cable specs", ErrWrongType, key, v)
	}
	return specs, nil
}

func (in Inputs) CrewRates(key string) ([]CrewRate, error) {
	v, err := lookup(in, key)
	if err != nil {
		return nil, err
	}
	crews, ok := v.([]CrewRate)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want crew rates", ErrWrongType, key, v)
	}
	return crews, nil
}

func (out Outputs) Details(key string) ([]CostDetail, error) {
	v, err := lookup(out, key)
	if err != nil {
		return nil, err
	}
	rows, ok := v.([]CostDetail)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want cost details", ErrWrongType, key, v)
	}
	return rows, nil
}

func (out Outputs) TypeOperations(key string) ([]TypeOperation, error) {
	v, err := lookup(out, key)
	if err != nil {
		return nil, err
	}
	rows, ok := v.([]TypeOperation)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, want type operations", ErrWrongType, key, v)
	}
	return rows, nil
}
