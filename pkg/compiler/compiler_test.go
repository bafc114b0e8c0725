package compiler

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/qmodel/queuenet/pkg/dists"
	"github.com/qmodel/queuenet/pkg/model"
)

// helpdeskModel builds a two-stage network: tickets arrive at Intake, a
// quarter continue to Escalation, everything eventually exits.
func helpdeskModel(t *testing.T) *model.ProcessModel {
	t.Helper()

	m, err := model.New("Support desk", "", []model.Activity{
		{
			Name:     "Intake",
			Resource: model.Resource{Name: "Agents", Capacity: 3},
			ServiceDistribution: model.Distribution{
				Kind:       model.KindExponential,
				Parameters: map[string]float64{"rate": 4.0},
			},
			ArrivalDistribution: &model.Distribution{
				Kind:       model.KindExponential,
				Parameters: map[string]float64{"rate": 2.0},
			},
		},
		{
			Name:     "Escalation",
			Resource: model.Resource{Name: "Engineers", Capacity: 2},
			ServiceDistribution: model.Distribution{
				Kind:       model.KindUniform,
				Parameters: map[string]float64{"min": 5, "max": 15},
			},
		},
	}, []model.Transition{
		{Source: "Intake", Target: "Escalation", Probability: 0.25},
		{Source: "Intake", Target: model.SinkName, Probability: 0.75},
		{Source: "Escalation", Target: model.SinkName, Probability: 1.0},
	})
	if err != nil {
		t.Fatalf("building model failed: %v", err)
	}
	return m
}

func TestCompileTwoStageNetwork(t *testing.T) {
	params, err := Compile(helpdeskModel(t))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if params.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", params.NodeCount())
	}
	if !reflect.DeepEqual(params.NumberOfServers, []int{3, 2}) {
		t.Errorf("NumberOfServers = %v, want [3 2]", params.NumberOfServers)
	}

	// Sink transitions stay out of the matrix: the engine reads the exit
	// probability as 1 - sum(row).
	wantRouting := [][]float64{
		{0, 0.25},
		{0, 0},
	}
	if !reflect.DeepEqual(params.Routing, wantRouting) {
		t.Errorf("Routing = %v, want %v", params.Routing, wantRouting)
	}

	service, ok := params.ServiceDistributions[1].(dists.Uniform)
	if !ok {
		t.Fatalf("ServiceDistributions[1] = %T, want dists.Uniform", params.ServiceDistributions[1])
	}
	if service.Min != 5 || service.Max != 15 {
		t.Errorf("Uniform bounds = (%g, %g), want (5, 15)", service.Min, service.Max)
	}
}

func TestCompileLinearPipeline(t *testing.T) {
	m, err := model.New("Linear", "", []model.Activity{
		{
			Name:     "A",
			Resource: model.Resource{Name: "A Pool", Capacity: 1},
			ServiceDistribution: model.Distribution{
				Kind:       model.KindDeterministic,
				Parameters: map[string]float64{"value": 2},
			},
		},
		{
			Name:     "B",
			Resource: model.Resource{Name: "B Pool", Capacity: 2},
			ServiceDistribution: model.Distribution{
				Kind:       model.KindDeterministic,
				Parameters: map[string]float64{"value": 3},
			},
		},
	}, []model.Transition{
		{Source: "A", Target: "B", Probability: 1.0},
		{Source: "B", Target: model.SinkName, Probability: 1.0},
	})
	if err != nil {
		t.Fatalf("building model failed: %v", err)
	}

	params, err := Compile(m)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if !reflect.DeepEqual(params.NumberOfServers, []int{1, 2}) {
		t.Errorf("NumberOfServers = %v, want [1 2]", params.NumberOfServers)
	}
	if !reflect.DeepEqual(params.Routing, [][]float64{{0, 1}, {0, 0}}) {
		t.Errorf("Routing = %v, want [[0 1] [0 0]]", params.Routing)
	}
}

func TestCompileConvertsRateToMean(t *testing.T) {
	params, err := Compile(helpdeskModel(t))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	arrival, ok := params.ArrivalDistributions[0].(dists.Exponential)
	if !ok {
		t.Fatalf("ArrivalDistributions[0] = %T, want dists.Exponential", params.ArrivalDistributions[0])
	}
	if arrival.Mean != 0.5 {
		t.Errorf("arrival Mean = %g, want 0.5 (rate 2.0 inverted)", arrival.Mean)
	}

	service, ok := params.ServiceDistributions[0].(dists.Exponential)
	if !ok {
		t.Fatalf("ServiceDistributions[0] = %T, want dists.Exponential", params.ServiceDistributions[0])
	}
	if service.Mean != 0.25 {
		t.Errorf("service Mean = %g, want 0.25 (rate 4.0 inverted)", service.Mean)
	}
}

func TestCompileMarksNodesWithoutArrivals(t *testing.T) {
	params, err := Compile(helpdeskModel(t))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if len(params.ArrivalDistributions) != 2 {
		t.Fatalf("arrival list has %d entries, want one per node", len(params.ArrivalDistributions))
	}
	if _, ok := params.ArrivalDistributions[1].(dists.NoArrivals); !ok {
		t.Errorf("ArrivalDistributions[1] = %T, want the NoArrivals sentinel", params.ArrivalDistributions[1])
	}
}

func TestCompileRejectsUnsupportedKind(t *testing.T) {
	// Built directly, bypassing the constructor: the compiler must still
	// refuse a kind the engine has no constructor for.
	m := &model.ProcessModel{
		Name: "Raw",
		Activities: []model.Activity{
			{
				Name:     "Intake",
				Resource: model.Resource{Name: "Agents", Capacity: 1},
				ServiceDistribution: model.Distribution{
					Kind:       "lognormal",
					Parameters: map[string]float64{"mu": 1.0},
				},
			},
		},
		Transitions: []model.Transition{
			{Source: "Intake", Target: model.SinkName, Probability: 1.0},
		},
	}

	_, err := Compile(m)
	if err == nil {
		t.Fatal("expected an error for an unsupported distribution kind")
	}
	want := `activity "Intake": service distribution: unsupported distribution type "lognormal"`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err, want)
	}
}

func TestCompileRejectsMissingParameter(t *testing.T) {
	m := &model.ProcessModel{
		Name: "Raw",
		Activities: []model.Activity{
			{
				Name:     "Intake",
				Resource: model.Resource{Name: "Agents", Capacity: 1},
				ServiceDistribution: model.Distribution{
					Kind:       model.KindTriangular,
					Parameters: map[string]float64{"min": 1, "max": 3},
				},
			},
		},
		Transitions: []model.Transition{
			{Source: "Intake", Target: model.SinkName, Probability: 1.0},
		},
	}

	_, err := Compile(m)
	if err == nil {
		t.Fatal("expected an error for a missing parameter")
	}
	if !strings.Contains(err.Error(), `missing required parameter "mode"`) {
		t.Errorf("error = %q, want it to name the missing parameter", err)
	}
}

func TestCompileRejectsBadParameterValues(t *testing.T) {
	tests := []struct {
		name    string
		dist    model.Distribution
		wantMsg string
	}{
		{
			name: "zero rate",
			dist: model.Distribution{
				Kind:       model.KindExponential,
				Parameters: map[string]float64{"rate": 0},
			},
			wantMsg: "rate must be positive",
		},
		{
			name: "negative rate",
			dist: model.Distribution{
				Kind:       model.KindExponential,
				Parameters: map[string]float64{"rate": -2},
			},
			wantMsg: "rate must be positive",
		},
		{
			name: "unordered triangular",
			dist: model.Distribution{
				Kind:       model.KindTriangular,
				Parameters: map[string]float64{"min": 5, "mode": 2, "max": 10},
			},
			wantMsg: "needs min <= mode <= max",
		},
		{
			name: "inverted uniform",
			dist: model.Distribution{
				Kind:       model.KindUniform,
				Parameters: map[string]float64{"min": 9, "max": 4},
			},
			wantMsg: "needs min <= max",
		},
		{
			name: "negative deterministic",
			dist: model.Distribution{
				Kind:       model.KindDeterministic,
				Parameters: map[string]float64{"value": -1},
			},
			wantMsg: "value must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &model.ProcessModel{
				Name: "Raw",
				Activities: []model.Activity{
					{
						Name:                "Intake",
						Resource:            model.Resource{Name: "Agents", Capacity: 1},
						ServiceDistribution: tt.dist,
					},
				},
				Transitions: []model.Transition{
					{Source: "Intake", Target: model.SinkName, Probability: 1.0},
				},
			}

			_, err := Compile(m)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestCompileRejectsUnknownNode(t *testing.T) {
	m := &model.ProcessModel{
		Name: "Raw",
		Activities: []model.Activity{
			{
				Name:     "Intake",
				Resource: model.Resource{Name: "Agents", Capacity: 1},
				ServiceDistribution: model.Distribution{
					Kind:       model.KindExponential,
					Parameters: map[string]float64{"rate": 1.0},
				},
			},
		},
		Transitions: []model.Transition{
			{Source: "Intake", Target: "Finish", Probability: 1.0},
		},
	}

	_, err := Compile(m)
	if err == nil {
		t.Fatal("expected an error for an unknown transition endpoint")
	}
	if !strings.Contains(err.Error(), `references unknown node "Finish"`) {
		t.Errorf("error = %q, want it to name the unknown node", err)
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	m := helpdeskModel(t)

	first, err := Compile(m)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	second, err := Compile(m)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two compilations of the same model differ")
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(firstJSON, secondJSON) {
		t.Error("two encodings of the same bundle differ")
	}
}

func TestParamsJSONShape(t *testing.T) {
	params, err := Compile(helpdeskModel(t))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	data, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for _, key := range []string{
		`"number_of_servers":[3,2]`,
		`"arrival_distributions":[{"distribution":"Exponential","mean":0.5},null]`,
		`"service_distributions":`,
		`"routing":[[0,0.25],[0,0]]`,
	} {
		if !strings.Contains(string(data), key) {
			t.Errorf("bundle %s\nmissing %s", data, key)
		}
	}
}
