package compiler

import (
	"fmt"

	"github.com/qmodel/queuenet/pkg/dists"
	"github.com/qmodel/queuenet/pkg/model"
)

// dispatch converts one schema distribution into the engine's vocabulary.
// A nil input means the node admits no external arrivals and compiles to the
// NoArrivals sentinel, never to a zero-rate distribution.
//
// The mapping is deliberately a closed switch: the supported kinds are few and
// change rarely, and a kind the engine cannot express must fail here, where
// the offending node is still known, rather than inside the engine.
func dispatch(d *model.Distribution) (dists.Object, error) {
	if d == nil {
		return dists.NoArrivals{}, nil
	}

	switch d.Kind {
	case model.KindExponential:
		rate, err := param(d, "rate")
		if err != nil {
			return nil, err
		}
		if rate <= 0 {
			return nil, fmt.Errorf("%s distribution: rate must be positive, got %g", d.Kind, rate)
		}
		// The schema carries a per-unit-time rate; the engine expects the mean
		// inter-event time.
		return dists.Exponential{Mean: 1 / rate}, nil

	case model.KindTriangular:
		min, err := param(d, "min")
		if err != nil {
			return nil, err
		}
		mode, err := param(d, "mode")
		if err != nil {
			return nil, err
		}
		max, err := param(d, "max")
		if err != nil {
			return nil, err
		}
		if min > mode || mode > max {
			return nil, fmt.Errorf("%s distribution: needs min <= mode <= max, got min=%g mode=%g max=%g", d.Kind, min, mode, max)
		}
		return dists.Triangular{Min: min, Mode: mode, Max: max}, nil

	case model.KindUniform:
		min, err := param(d, "min")
		if err != nil {
			return nil, err
		}
		max, err := param(d, "max")
		if err != nil {
			return nil, err
		}
		if min > max {
			return nil, fmt.Errorf("%s distribution: needs min <= max, got min=%g max=%g", d.Kind, min, max)
		}
		return dists.Uniform{Min: min, Max: max}, nil

	case model.KindDeterministic:
		value, err := param(d, "value")
		if err != nil {
			return nil, err
		}
		if value < 0 {
			return nil, fmt.Errorf("%s distribution: value must not be negative, got %g", d.Kind, value)
		}
		return dists.Deterministic{Value: value}, nil

	default:
		return nil, fmt.Errorf("unsupported distribution type %q", d.Kind)
	}
}

// param fetches one required parameter by key.
func param(d *model.Distribution, key string) (float64, error) {
	v, ok := d.Parameters[key]
	if !ok {
		return 0, fmt.Errorf("%s distribution: missing required parameter %q", d.Kind, key)
	}
	return v, nil
}
