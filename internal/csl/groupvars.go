package csl

// GroupVars summarizes whether a subtree's variable-bearing children
// rendered content. The zero value is NoneSeen.
type GroupVars int

const (
	// NoneSeen: no variable-bearing child encountered.
	NoneSeen GroupVars = iota
	// OnlyEmpty: at least one variable child, all empty.
	OnlyEmpty
	// DidRender: at least one variable child resolved to content.
	DidRender
	// Important: forced render (e.g. a text literal in a group that
	// must not be suppressed).
	Important
)

// rank orders the lattice for Join: DidRender and Important outrank
// OnlyEmpty, which outranks NoneSeen. Either DidRender or Important,
// once present, keeps the group rendering; Important ranks above
// DidRender so that Join of the two returns Important.
func (g GroupVars) rank() int {
	switch g {
	case Important:
		return 3
	case DidRender:
		return 2
	case OnlyEmpty:
		return 1
	default: // NoneSeen
		return 0
	}
}

// Join combines two GroupVars per the lattice above: DidRender/
// Important win over OnlyEmpty; OnlyEmpty wins over NoneSeen.
func Join(a, b GroupVars) GroupVars {
	if a.rank() >= b.rank() {
		return a
	}
	return b
}

// JoinAll folds Join over a sequence of child GroupVars, starting
// from NoneSeen.
func JoinAll(vs ...GroupVars) GroupVars {
	acc := NoneSeen
	for _, v := range vs {
		acc = Join(acc, v)
	}
	return acc
}

// ShouldRender reports whether a group whose children joined to this
// GroupVars should render at all: true for DidRender, Important, and
// NoneSeen (the "nothing variable-bearing was even attempted" case,
// which still renders literals); false only for OnlyEmpty, which
// suppresses the whole group.
func (g GroupVars) ShouldRender() bool {
	return g != OnlyEmpty
}
