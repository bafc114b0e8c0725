// Package datasets ships ready-made process models for demos and tests, plus
// a convenience loader for model documents.
package datasets

import (
	"github.com/qmodel/queuenet/pkg/model"
)

// CallCentre returns the bundled urgent-care call-centre model: phone
// operators triage every call, four in ten callers are routed on to a nurse
// callback, everyone else leaves the network. Times are in minutes.
func CallCentre() *model.ProcessModel {
	activities := []model.Activity{
		{
			Name: "Call Triage",
			Type: "service",
			Resource: model.Resource{
				Name:     "Call Operators",
				Capacity: 13,
			},
			ServiceDistribution: model.Distribution{
				Kind:       model.KindTriangular,
				Parameters: map[string]float64{"min": 5, "mode": 7, "max": 10},
			},
			ArrivalDistribution: &model.Distribution{
				Kind:       model.KindExponential,
				Parameters: map[string]float64{"rate": 2.0},
			},
		},
		{
			Name: "Nurse Callback",
			Type: "service",
			Resource: model.Resource{
				Name:     "Nurses",
				Capacity: 9,
			},
			ServiceDistribution: model.Distribution{
				Kind:       model.KindUniform,
				Parameters: map[string]float64{"min": 10, "max": 20},
			},
		},
	}

	transitions := []model.Transition{
		{Source: "Call Triage", Target: "Nurse Callback", Probability: 0.4},
		{Source: "Call Triage", Target: model.SinkName, Probability: 0.6},
		{Source: "Nurse Callback", Target: model.SinkName, Probability: 1.0},
	}

	m, err := model.New(
		"Urgent care call centre",
		"Callers are triaged by phone operators; 40% need a nurse callback.",
		activities,
		transitions,
	)
	if err != nil {
		// The bundled model is built from constants; failing to construct it
		// is a programming error, not a runtime condition.
		panic("datasets: call centre model is invalid: " + err.Error())
	}
	return m
}

// LoadFile reads and validates a process model document (JSON or YAML).
func LoadFile(path string) (*model.ProcessModel, error) {
	return model.Load(path)
}
