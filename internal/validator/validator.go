package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/portgraph/pkg/domain"
)

// Severity grades a finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rule names the check that produced a finding.
type Rule string

const (
	RuleUnconnectedInput  Rule = "unconnected-input"
	RuleUnconnectedOutput Rule = "unconnected-output"
	RuleIsolatedNode      Rule = "isolated-node"
	RuleUnreachable       Rule = "unreachable"
)

// Finding is a single lint result.
type Finding struct {
	Rule     Rule     `json:"rule"`
	Severity Severity `json:"severity"`
	Node     string   `json:"node"`
	Port     string   `json:"port,omitempty"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Rule, f.Message)
}

// Report aggregates the findings of one validation run.
type Report struct {
	Findings []Finding `json:"findings"`
}

// HasErrors reports whether any finding has error severity.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Nodes returns the distinct node names with findings, in report order.
func (r *Report) Nodes() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range r.Findings {
		if !seen[f.Node] {
			seen[f.Node] = true
			names = append(names, f.Node)
		}
	}
	return names
}

// Err returns the error-severity findings as a single error, or nil.
func (r *Report) Err() error {
	var errs []string
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			errs = append(errs, f.Message)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
}

func (r *Report) add(rule Rule, sev Severity, node, port, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Rule:     rule,
		Severity: sev,
		Node:     node,
		Port:     port,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Options tunes the checks.
type Options struct {
	// Strict turns unconnected inputs into errors.
	Strict bool
}

// ValidateGraph lints a built graph for ports left unwired, nodes without
// ports, and nodes no source node can reach through its outputs.
func ValidateGraph(g *domain.Graph, opts Options) (*Report, error) {
	if g == nil {
		return nil, domain.ErrNilGraph
	}

	report := &Report{}
	inputSeverity := SeverityWarning
	if opts.Strict {
		inputSeverity = SeverityError
	}

	for _, n := range g.Nodes() {
		if n.NumPorts(domain.Input) == 0 && n.NumPorts(domain.Output) == 0 {
			report.add(RuleIsolatedNode, SeverityWarning, n.Name(), "",
				"node '%s' declares no ports", n.Name())
			continue
		}
		for _, p := range n.Inputs() {
			if !p.Connected() {
				report.add(RuleUnconnectedInput, inputSeverity, n.Name(), p.Name(),
					"input '%s:%s' is not connected", n.Name(), p.Name())
			}
		}
		for _, p := range n.Outputs() {
			if !p.Connected() {
				report.add(RuleUnconnectedOutput, SeverityWarning, n.Name(), p.Name(),
					"output '%s:%s' is not connected", n.Name(), p.Name())
			}
		}
	}

	for _, name := range unreachable(g) {
		report.add(RuleUnreachable, SeverityWarning, name, "",
			"node '%s' cannot be reached from any source node", name)
	}

	return report, nil
}

// unreachable crawls outputs breadth-first from every node without inputs and
// returns the nodes with ports that were never visited.
func unreachable(g *domain.Graph) []string {
	visited := make([]bool, g.Len())
	var queue []int
	for i, n := range g.Nodes() {
		if n.NumPorts(domain.Input) == 0 {
			visited[i] = true
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		n, _ := g.Node(current)
		for _, p := range n.Outputs() {
			ref, ok := p.Peer()
			if !ok || visited[ref.Node] {
				continue
			}
			visited[ref.Node] = true
			queue = append(queue, ref.Node)
		}
	}

	var names []string
	for i, n := range g.Nodes() {
		if !visited[i] {
			names = append(names, n.Name())
		}
	}
	return names
}
