// Package diagram renders a validated process model as a Graphviz flow
// diagram. It is a read-only consumer of the model and follows its naming
// conventions: entry activities get a synthesized arrival point, resources
// group by pool name, and the sink is a single terminal shape.
package diagram

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/qmodel/queuenet/pkg/model"
)

// Generator renders process models as Graphviz DOT text.
type Generator struct {
	rankDir string
}

// NewGenerator creates a generator with left-to-right flow.
func NewGenerator() *Generator {
	return &Generator{
		rankDir: "LR",
	}
}

// GenerateDOT returns the DOT rendering of the model. Output is deterministic
// for a given model: activities and transitions keep authoring order and
// resource pools are sorted by name.
func (g *Generator) GenerateDOT(m *model.ProcessModel) string {
	var sb strings.Builder

	sb.WriteString("digraph process {\n")
	fmt.Fprintf(&sb, "  label=%s;\n", quote(m.Name))
	fmt.Fprintf(&sb, "  rankdir=%s;\n", g.rankDir)
	sb.WriteString("  node [fontsize=11];\n\n")

	// One box per activity.
	for _, act := range m.Activities {
		fmt.Fprintf(&sb, "  %s [shape=box, label=%s];\n", activityID(act.Name), quote(act.Name))
	}
	sb.WriteString("\n")

	// One ellipse per resource pool name; activities sharing a name share the
	// shape. The dashed edge carries each activity's own server count, since
	// pool members may declare different capacities.
	for _, name := range poolNames(m) {
		fmt.Fprintf(&sb, "  %s [shape=ellipse, style=dashed, label=%s];\n", resourceID(name), quote(name))
	}
	for _, act := range m.Activities {
		fmt.Fprintf(&sb, "  %s -> %s [style=dashed, arrowhead=none, label=\"x%d\"];\n",
			activityID(act.Name), resourceID(act.Resource.Name), act.Resource.Capacity)
	}
	sb.WriteString("\n")

	// A synthesized arrival point per entry activity.
	for _, act := range m.Activities {
		if !act.HasArrivals() {
			continue
		}
		fmt.Fprintf(&sb, "  %s [shape=point];\n", arrivalID(act.Name))
		fmt.Fprintf(&sb, "  %s -> %s;\n", arrivalID(act.Name), activityID(act.Name))
	}

	// The sink shape, only when some transition actually exits the network.
	if exits(m) {
		fmt.Fprintf(&sb, "  %s [shape=doublecircle, label=%s];\n", sinkID(), quote(model.SinkName))
	}
	sb.WriteString("\n")

	// Transition edges, labeled with the probability when it is not certain.
	for _, t := range m.Transitions {
		target := activityID(t.Target)
		if t.Target == model.SinkName {
			target = sinkID()
		}
		if t.Probability == 1.0 {
			fmt.Fprintf(&sb, "  %s -> %s;\n", activityID(t.Source), target)
		} else {
			fmt.Fprintf(&sb, "  %s -> %s [label=\"%g\"];\n", activityID(t.Source), target, t.Probability)
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// poolNames returns the distinct resource pool names, sorted.
func poolNames(m *model.ProcessModel) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, act := range m.Activities {
		if !seen[act.Resource.Name] {
			seen[act.Resource.Name] = true
			names = append(names, act.Resource.Name)
		}
	}
	sort.Strings(names)
	return names
}

// exits reports whether any transition leaves the network.
func exits(m *model.ProcessModel) bool {
	for _, t := range m.Transitions {
		if t.Target == model.SinkName {
			return true
		}
	}
	return false
}

// Node identifiers are namespaced by shape family so an activity can never
// collide with its own arrival point or resource pool.

func activityID(name string) string { return quote("activity:" + name) }

func arrivalID(name string) string { return quote("arrivals:" + name) }

func resourceID(name string) string { return quote("resource:" + name) }

func sinkID() string { return quote("sink:" + model.SinkName) }

// quote renders a DOT double-quoted identifier or label.
func quote(s string) string { return strconv.Quote(s) }
