// Package config loads parameter definitions from YAML and builds banks
// from them.
//
// A definition file lists the parameters of one bank:
//
//	bank: voice
//	parameters:
//	  - name: cutoff
//	    kind: float
//	    law: exponential
//	    min: 20
//	    max: 20000
//	    default: 1000
//	    unit: Hz
//	  - name: mute
//	    kind: bool
//
// Bool parameters default to the range false..true; min and max are
// ignored for them. The default is written in real units and parsed in the
// parameter's kind.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mikedotalmond/parameters/pkg/bank"
	"github.com/mikedotalmond/parameters/pkg/mapping"
	"github.com/mikedotalmond/parameters/pkg/parameter"
)

// Definition errors.
var (
	ErrMissingName  = errors.New("parameter definition has no name")
	ErrMissingRange = errors.New("numeric parameter needs min and max")
	ErrInvalidFile  = errors.New("invalid definition file")

	ErrNonIntegralBound = errors.New("int parameter bound is not a whole number")
)

// File is the top-level layout of a definition file.
type File struct {
	Bank       string       `yaml:"bank"`
	Parameters []Definition `yaml:"parameters"`
}

// Definition describes one parameter.
type Definition struct {
	Name        string   `yaml:"name"`
	Kind        string   `yaml:"kind"`
	Law         string   `yaml:"law"`
	Min         *float64 `yaml:"min"`
	Max         *float64 `yaml:"max"`
	Default     string   `yaml:"default"`
	Invert      bool     `yaml:"invert"`
	Unit        string   `yaml:"unit"`
	Description string   `yaml:"description"`
}

// Parse parses a definition file from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return &f, nil
}

// LoadFile reads and parses a definition file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Build creates a bank holding one parameter per definition.
// Options are applied to every parameter.
func (f *File) Build(opts ...parameter.Option) (*bank.Bank, error) {
	name := f.Bank
	if name == "" {
		name = "default"
	}
	b := bank.New(name)

	for i, def := range f.Parameters {
		c, err := def.Build(opts...)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		if err := b.Add(c); err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
	}
	return b, nil
}

// Build creates the parameter described by d and applies its default.
func (d Definition) Build(opts ...parameter.Option) (parameter.Control, error) {
	if d.Name == "" {
		return nil, ErrMissingName
	}

	kind, err := mapping.ParseKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	opts = append([]parameter.Option{
		parameter.WithUnit(d.Unit),
		parameter.WithDescription(d.Description),
	}, opts...)

	var c parameter.Control
	switch kind {
	case mapping.KindBool:
		c, err = parameter.NewBool(d.Name, d.Invert, !d.Invert, opts...)
	default:
		c, err = d.buildNumber(kind, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Name, err)
	}

	if d.Default != "" {
		if err := c.SetDefaultString(d.Default); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (d Definition) buildNumber(kind mapping.Kind, opts []parameter.Option) (parameter.Control, error) {
	if d.Min == nil || d.Max == nil {
		return nil, ErrMissingRange
	}
	law, err := mapping.ParseLaw(d.Law)
	if err != nil {
		return nil, err
	}
	lo, hi := *d.Min, *d.Max
	if d.Invert {
		lo, hi = hi, lo
	}

	if kind == mapping.KindInt {
		if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return nil, fmt.Errorf("%w: [%v, %v]", mapping.ErrNonFiniteBound, *d.Min, *d.Max)
		}
		if lo != math.Trunc(lo) || hi != math.Trunc(hi) {
			return nil, fmt.Errorf("%w: [%v, %v]", ErrNonIntegralBound, *d.Min, *d.Max)
		}
		return parameter.New(d.Name, law, int64(lo), int64(hi), opts...)
	}
	return parameter.New(d.Name, law, lo, hi, opts...)
}
