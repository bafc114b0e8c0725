package model

// SinkName is the reserved transition target meaning the entity leaves the
// network. It is case-sensitive and must never be used as an activity name.
const SinkName = "Exit"

// Supported distribution kinds. The set is closed: which parameter keys each
// kind needs is compiler policy, so new kinds are added to the compiler's
// dispatcher first and here second.
const (
	KindExponential   = "exponential"
	KindTriangular    = "triangular"
	KindUniform       = "uniform"
	KindDeterministic = "deterministic"
)

// Distribution is a named family of timing distribution plus its numeric
// parameters. The required parameter keys depend on Kind and are checked at
// compile time, not here.
type Distribution struct {
	Kind       string             `json:"type" yaml:"type" validate:"required,oneof=exponential triangular uniform deterministic"`
	Parameters map[string]float64 `json:"parameters" yaml:"parameters" validate:"required"`
}

// Resource is a named capacity-limited server pool. Names are a display
// grouping key: two activities may legally share a pool name.
type Resource struct {
	Name     string `json:"name" yaml:"name" validate:"required"`
	Capacity int    `json:"capacity" yaml:"capacity" validate:"required,gt=0"`
}

// Activity is a single processing step in the network. An activity with an
// arrival distribution is an external entry point.
type Activity struct {
	Name                string        `json:"name" yaml:"name" validate:"required"`
	Type                string        `json:"type,omitempty" yaml:"type,omitempty"`
	Resource            Resource      `json:"resource" yaml:"resource"`
	ServiceDistribution Distribution  `json:"service_distribution" yaml:"service_distribution"`
	ArrivalDistribution *Distribution `json:"arrival_distribution,omitempty" yaml:"arrival_distribution,omitempty"`
}

// HasArrivals reports whether the activity admits externally-generated
// entities.
func (a *Activity) HasArrivals() bool {
	return a.ArrivalDistribution != nil
}

// Transition is a directed, probability-weighted edge between named nodes.
// Model documents address the endpoints with the "from"/"to" aliases; the
// target may be an activity name or the reserved sink literal.
type Transition struct {
	Source      string  `json:"from" yaml:"from" validate:"required"`
	Target      string  `json:"to" yaml:"to" validate:"required"`
	Probability float64 `json:"probability" yaml:"probability" validate:"gte=0,lte=1"`
}

// ProcessModel is the full queueing-network description. Activity order is
// significant: it defines the simulation node index order. Instances obtained
// from New, Parse, or Load satisfy the routing invariant; treat them as
// immutable once constructed.
type ProcessModel struct {
	Name        string       `json:"name" yaml:"name" validate:"required"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Activities  []Activity   `json:"activities" yaml:"activities" validate:"required,min=1,dive"`
	Transitions []Transition `json:"transitions" yaml:"transitions" validate:"omitempty,dive"`

	warnings []Violation
}

// ActivityNames returns the activity names in authoring order.
func (m *ProcessModel) ActivityNames() []string {
	names := make([]string, 0, len(m.Activities))
	for _, act := range m.Activities {
		names = append(names, act.Name)
	}
	return names
}

// EntryPoints returns the names of the activities that admit external
// arrivals, in authoring order.
func (m *ProcessModel) EntryPoints() []string {
	entries := []string{}
	for _, act := range m.Activities {
		if act.HasArrivals() {
			entries = append(entries, act.Name)
		}
	}
	return entries
}

// Warnings returns the non-fatal findings recorded during construction.
func (m *ProcessModel) Warnings() []Violation {
	return m.warnings
}
