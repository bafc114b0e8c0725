// Package dists defines the timing-distribution vocabulary of the downstream
// discrete-event simulation engine. Values here are the compiled form of a
// model's distributions: immutable parameter carriers named after the engine's
// constructors, never samplers.
package dists

import (
	"encoding/json"
	"fmt"
)

// Object is a compiled timing distribution in the engine's vocabulary.
type Object interface {
	// Kind returns the engine-side constructor name.
	Kind() string
}

// Exponential holds the mean inter-event time. The modelling schema specifies
// a per-unit-time rate; the compiler converts to the mean the engine expects.
type Exponential struct {
	Mean float64 `json:"mean"`
}

// Kind returns the engine constructor name
func (Exponential) Kind() string { return "Exponential" }

func (d Exponential) String() string { return fmt.Sprintf("Exponential(mean=%g)", d.Mean) }

// MarshalJSON tags the value with its kind so the bundle stays self-describing.
func (d Exponential) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Distribution string  `json:"distribution"`
		Mean         float64 `json:"mean"`
	}{d.Kind(), d.Mean})
}

// Triangular carries the three positional bounds min, mode, max.
type Triangular struct {
	Min  float64 `json:"min"`
	Mode float64 `json:"mode"`
	Max  float64 `json:"max"`
}

// Kind returns the engine constructor name
func (Triangular) Kind() string { return "Triangular" }

func (d Triangular) String() string {
	return fmt.Sprintf("Triangular(min=%g, mode=%g, max=%g)", d.Min, d.Mode, d.Max)
}

// MarshalJSON tags the value with its kind so the bundle stays self-describing.
func (d Triangular) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Distribution string  `json:"distribution"`
		Min          float64 `json:"min"`
		Mode         float64 `json:"mode"`
		Max          float64 `json:"max"`
	}{d.Kind(), d.Min, d.Mode, d.Max})
}

// Uniform carries the two positional bounds min, max.
type Uniform struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Kind returns the engine constructor name
func (Uniform) Kind() string { return "Uniform" }

func (d Uniform) String() string { return fmt.Sprintf("Uniform(min=%g, max=%g)", d.Min, d.Max) }

// MarshalJSON tags the value with its kind so the bundle stays self-describing.
func (d Uniform) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Distribution string  `json:"distribution"`
		Min          float64 `json:"min"`
		Max          float64 `json:"max"`
	}{d.Kind(), d.Min, d.Max})
}

// Deterministic is a single fixed duration.
type Deterministic struct {
	Value float64 `json:"value"`
}

// Kind returns the engine constructor name
func (Deterministic) Kind() string { return "Deterministic" }

func (d Deterministic) String() string { return fmt.Sprintf("Deterministic(value=%g)", d.Value) }

// MarshalJSON tags the value with its kind so the bundle stays self-describing.
func (d Deterministic) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Distribution string  `json:"distribution"`
		Value        float64 `json:"value"`
	}{d.Kind(), d.Value})
}

// NoArrivals marks a node with no external arrivals. It is a real sentinel,
// distinct from any zero-parameter distribution: the arrival list keeps one
// entry per node whether or not the node admits arrivals.
type NoArrivals struct{}

// Kind returns the engine constructor name
func (NoArrivals) Kind() string { return "NoArrivals" }

func (NoArrivals) String() string { return "NoArrivals" }

// MarshalJSON encodes the sentinel as null, the encoding the engine's
// constructor historically accepted for "no external arrivals".
func (NoArrivals) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
