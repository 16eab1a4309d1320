package cask

// Validate runs static analysis over the registry and returns nil or a
// *ValidationError aggregating every defect found: mandatory dependencies
// with no registration, cycles in the dependency graph, and singletons that
// would capture scoped services. It never fails fast and constructs no
// service.
//
// Only declared dependencies are analyzed. A descriptor that declares
// nothing contributes a node without edges and is effectively opted out.
func Validate(r *Registry) error {
	g := buildGraph(r)

	var violations []error
	violations = append(violations, g.unregistered()...)
	violations = append(violations, g.cycles()...)
	violations = append(violations, g.captives()...)

	if len(violations) == 0 {
		return nil
	}

	return newValidationError(violations)
}

// depGraph is the contract-level dependency graph derived from a registry.
// Nodes are every contract that appears as a registration target or as a
// declared dependency; edges run from a descriptor's contract to each of
// its declared dependency contracts.
type depGraph struct {
	registry *Registry
	nodes    map[string]*graphNode
	order    []string // first-appearance order, keeps reports deterministic
}

type graphNode struct {
	contract   string
	edges      []Dependency
	lifetimes  []Lifetime // one per descriptor registered for this contract
	registered bool
}

func (n *graphNode) hasLifetime(l Lifetime) bool {
	for _, lt := range n.lifetimes {
		if lt == l {
			return true
		}
	}

	return false
}

func buildGraph(r *Registry) *depGraph {
	g := &depGraph{
		registry: r,
		nodes:    make(map[string]*graphNode),
	}

	for _, d := range r.descriptors {
		n := g.node(d.contract)
		n.registered = true
		n.lifetimes = append(n.lifetimes, d.lifetime)

		for _, dep := range d.dependencies {
			n.edges = append(n.edges, dep)
			g.node(dep.Contract)
		}
	}

	return g
}

func (g *depGraph) node(contract string) *graphNode {
	if n, ok := g.nodes[contract]; ok {
		return n
	}

	n := &graphNode{contract: contract}
	g.nodes[contract] = n
	g.order = append(g.order, contract)

	return n
}

// unregistered reports every mandatory dependency whose contract has no
// registration. ZeroOrOne and ZeroOrMore declarations tolerate absence;
// that tolerance is exactly what those cardinalities exist to express.
func (g *depGraph) unregistered() []error {
	var (
		errs     []error
		reported = make(map[[2]string]bool)
	)

	for _, d := range g.registry.descriptors {
		for _, dep := range d.dependencies {
			if dep.Cardinality != ExactlyOne {
				continue
			}

			if g.nodes[dep.Contract].registered {
				continue
			}

			pair := [2]string{d.contract, dep.Contract}
			if reported[pair] {
				continue
			}

			reported[pair] = true
			errs = append(errs, &UnregisteredDependencyError{Consumer: d.contract, Missing: dep.Contract})
		}
	}

	return errs
}

// Three-coloring for the depth-first cycle search.
type visitColor int

const (
	unvisited visitColor = iota
	visiting
	visited
)

// cycles reports every dependency cycle reachable in the graph. An edge
// into a node that is still in progress closes a cycle; the recorded stack
// yields the ordered path that triggered the detection.
func (g *depGraph) cycles() []error {
	colors := make(map[string]visitColor, len(g.nodes))

	var errs []error
	for _, contract := range g.order {
		g.visit(contract, colors, nil, &errs)
	}

	return errs
}

func (g *depGraph) visit(contract string, colors map[string]visitColor, stack []string, errs *[]error) {
	switch colors[contract] {
	case visiting:
		*errs = append(*errs, &CircularDependencyError{Cycle: cyclePath(stack, contract)})

		return
	case visited:
		return
	}

	colors[contract] = visiting
	stack = append(stack, contract)

	for _, dep := range g.nodes[contract].edges {
		g.visit(dep.Contract, colors, stack, errs)
	}

	colors[contract] = visited
}

// cyclePath trims the DFS stack to the segment that forms the cycle and
// closes it by repeating the entry contract.
func cyclePath(stack []string, contract string) []string {
	start := 0

	for i, c := range stack {
		if c == contract {
			start = i

			break
		}
	}

	path := make([]string, 0, len(stack)-start+1)
	path = append(path, stack[start:]...)
	path = append(path, contract)

	return path
}

// captives reports every singleton contract that reaches a scoped contract
// directly or through a chain of singleton-lifetime descriptors. The walk
// stops at non-singleton intermediaries: a transient link re-resolves its
// dependencies on every construction, so nothing is captured through it.
func (g *depGraph) captives() []error {
	var (
		errs     []error
		reported = make(map[[2]string]bool)
	)

	for _, contract := range g.order {
		if !g.nodes[contract].hasLifetime(Singleton) {
			continue
		}

		seen := map[string]bool{contract: true}
		g.captiveWalk(contract, contract, seen, reported, &errs)
	}

	return errs
}

func (g *depGraph) captiveWalk(root, contract string, seen map[string]bool, reported map[[2]string]bool, errs *[]error) {
	for _, dep := range g.nodes[contract].edges {
		target, ok := g.nodes[dep.Contract]
		if !ok {
			continue
		}

		if target.hasLifetime(Scoped) {
			pair := [2]string{root, dep.Contract}
			if !reported[pair] {
				reported[pair] = true
				*errs = append(*errs, &CapturedDependencyError{Singleton: root, Scoped: dep.Contract})
			}
		}

		if target.hasLifetime(Singleton) && !seen[dep.Contract] {
			seen[dep.Contract] = true
			g.captiveWalk(root, dep.Contract, seen, reported, errs)
		}
	}
}
