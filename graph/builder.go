package graph

// Edge is a directed link between two nodes. Unconditional edges always fire
// when the source completes; conditional edges fire only if their predicate
// evaluates true against the accumulated run state. Terminal marker edges
// never fire and exist purely to stop propagation.
type Edge struct {
	From string
	To   string
	// Condition gates firing; nil means unconditional.
	Condition Condition
	// Terminal marks this edge as a propagation stop; it never fires.
	Terminal bool
	// Input, when non-empty, is the fixed prompt passed to the target when
	// the edge fires.
	Input string
	// UseUpstreamOutput passes the source node's joined text output to the
	// target instead of a fixed prompt. Input takes precedence when set.
	UseUpstreamOutput bool

	exprSrc string // deferred expr compilation, resolved in Build
}

// EdgeOption customizes an edge added through Builder.AddEdge.
type EdgeOption func(*Edge)

// WithCondition attaches a predicate to the edge.
func WithCondition(c Condition) EdgeOption {
	return func(e *Edge) { e.Condition = c }
}

// WithExprCondition attaches an expr-lang predicate. The expression is
// compiled during Build so malformed sources fail fast as validation errors.
func WithExprCondition(src string) EdgeOption {
	return func(e *Edge) { e.exprSrc = src }
}

// WithEdgeInput fixes the prompt passed to the target node when the edge
// fires. This is the default input-threading policy of the pipeline.
func WithEdgeInput(prompt string) EdgeOption {
	return func(e *Edge) { e.Input = prompt }
}

// WithUpstreamInput threads the source node's text output into the target as
// its input. Deliberate extension point over the fixed-prompt default.
func WithUpstreamInput() EdgeOption {
	return func(e *Edge) { e.UseUpstreamOutput = true }
}

// Builder assembles a Graph incrementally. Construction problems are
// collected and surface from Build as a ValidationError.
type Builder struct {
	nodes   []Node
	byName  map[string]Node
	edges   []Edge
	entry   string
	dupes   []string
	entrySet bool
}

// NewBuilder creates an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{byName: map[string]Node{}}
}

// AddNode registers a node. Node names must be unique within the graph;
// duplicates are reported by Build.
func (b *Builder) AddNode(n Node) *Builder {
	if _, exists := b.byName[n.Name()]; exists {
		b.dupes = append(b.dupes, n.Name())
		return b
	}
	b.byName[n.Name()] = n
	b.nodes = append(b.nodes, n)
	return b
}

// AddEdge adds a directed edge from -> to. Edges fire in declaration order
// when the source completes.
func (b *Builder) AddEdge(from, to string, opts ...EdgeOption) *Builder {
	e := Edge{From: from, To: to}
	for _, opt := range opts {
		opt(&e)
	}
	b.edges = append(b.edges, e)
	return b
}

// AddTerminalEdge adds a terminal marker edge from -> to. The target stays
// reachable for validation purposes but the edge never fires, so the target
// ends a run as skipped unless another edge schedules it.
func (b *Builder) AddTerminalEdge(from, to string) *Builder {
	b.edges = append(b.edges, Edge{From: from, To: to, Terminal: true})
	return b
}

// SetEntry designates the entry node of the graph.
func (b *Builder) SetEntry(name string) *Builder {
	b.entry = name
	b.entrySet = true
	return b
}

// Build validates the assembled graph and returns it. Violations fail fast:
// missing or unknown entry, duplicate node ids, edges referencing unknown
// nodes, non-entry nodes unreachable from the entry, or malformed edge
// condition expressions.
func (b *Builder) Build() (*Graph, error) {
	if len(b.dupes) > 0 {
		return nil, validationErrorf("duplicate node id %q", b.dupes[0])
	}
	if !b.entrySet {
		return nil, validationErrorf("entry node not set")
	}
	if _, ok := b.byName[b.entry]; !ok {
		return nil, validationErrorf("entry node %q does not exist", b.entry)
	}
	if len(b.nodes) == 0 {
		return nil, validationErrorf("graph has no nodes")
	}

	edgesFrom := map[string][]Edge{}
	for i := range b.edges {
		e := b.edges[i]
		if _, ok := b.byName[e.From]; !ok {
			return nil, validationErrorf("edge references unknown source node %q", e.From)
		}
		if _, ok := b.byName[e.To]; !ok {
			return nil, validationErrorf("edge references unknown target node %q", e.To)
		}
		if e.exprSrc != "" {
			cond, err := NewExprCondition(e.exprSrc)
			if err != nil {
				return nil, validationErrorf("edge %s->%s: %v", e.From, e.To, err)
			}
			e.Condition = cond
		}
		edgesFrom[e.From] = append(edgesFrom[e.From], e)
	}

	// Every non-entry node must be reachable from the entry. Terminal and
	// conditional edges count: reachability is structural, not behavioral.
	reachable := map[string]bool{b.entry: true}
	frontier := []string{b.entry}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]
		for _, e := range edgesFrom[cur] {
			if !reachable[e.To] {
				reachable[e.To] = true
				frontier = append(frontier, e.To)
			}
		}
	}
	for _, n := range b.nodes {
		if !reachable[n.Name()] {
			return nil, validationErrorf("node %q is not reachable from entry %q", n.Name(), b.entry)
		}
	}

	order := make([]string, len(b.nodes))
	nodes := make(map[string]Node, len(b.nodes))
	for i, n := range b.nodes {
		order[i] = n.Name()
		nodes[n.Name()] = n
	}

	return &Graph{
		nodes:     nodes,
		order:     order,
		edgesFrom: edgesFrom,
		entry:     b.entry,
	}, nil
}
