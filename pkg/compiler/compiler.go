// Package compiler maps a validated process model onto the index-based
// parameter bundle a discrete-event network simulation engine consumes.
package compiler

import (
	"fmt"

	"github.com/qmodel/queuenet/pkg/dists"
	"github.com/qmodel/queuenet/pkg/model"
)

// Params is the engine parameter bundle. Field keys match the engine
// constructor's keyword arguments; the bundle is handed to the engine as-is
// and never post-processed here. Every per-node list has exactly one entry
// per node, in node index order.
type Params struct {
	NumberOfServers      []int          `json:"number_of_servers"`
	ArrivalDistributions []dists.Object `json:"arrival_distributions"`
	ServiceDistributions []dists.Object `json:"service_distributions"`
	Routing              [][]float64    `json:"routing"`
}

// NodeCount returns the number of simulation nodes in the bundle.
func (p *Params) NodeCount() int {
	return len(p.NumberOfServers)
}

// Compile converts a process model into simulation parameters. Activity
// authoring order defines node index order, so compiling the same model twice
// yields identical bundles.
//
// The endpoint checks below repeat part of the model's construction-time
// validation on purpose: the compiler must not assume its input went through
// that exact gate.
func Compile(m *model.ProcessModel) (*Params, error) {
	// Index the nodes: the model's authoring order is the simulation's node
	// order, names resolve through one shared map.
	index := make(map[string]int, len(m.Activities))
	for i, act := range m.Activities {
		index[act.Name] = i
	}
	n := len(m.Activities)

	params := &Params{
		NumberOfServers:      make([]int, 0, n),
		ArrivalDistributions: make([]dists.Object, 0, n),
		ServiceDistributions: make([]dists.Object, 0, n),
		Routing:              make([][]float64, n),
	}

	// Per-node parameters, in index order.
	for _, act := range m.Activities {
		params.NumberOfServers = append(params.NumberOfServers, act.Resource.Capacity)

		service, err := dispatch(&act.ServiceDistribution)
		if err != nil {
			return nil, fmt.Errorf("activity %q: service distribution: %w", act.Name, err)
		}
		params.ServiceDistributions = append(params.ServiceDistributions, service)

		// A nil arrival distribution compiles to the explicit no-arrivals
		// sentinel; the list keeps one entry per node either way.
		arrival, err := dispatch(act.ArrivalDistribution)
		if err != nil {
			return nil, fmt.Errorf("activity %q: arrival distribution: %w", act.Name, err)
		}
		params.ArrivalDistributions = append(params.ArrivalDistributions, arrival)
	}

	// Routing matrix, zero-initialised. Transitions to the sink stay out of
	// the matrix: the engine derives the exit probability of a row as
	// 1 - sum(row).
	for i := range params.Routing {
		params.Routing[i] = make([]float64, n)
	}
	for _, t := range m.Transitions {
		if t.Target == model.SinkName {
			continue
		}

		src, ok := index[t.Source]
		if !ok {
			return nil, fmt.Errorf("transition %q -> %q references unknown node %q", t.Source, t.Target, t.Source)
		}
		dst, ok := index[t.Target]
		if !ok {
			return nil, fmt.Errorf("transition %q -> %q references unknown node %q", t.Source, t.Target, t.Target)
		}

		params.Routing[src][dst] = t.Probability
	}

	return params, nil
}
