// Package ir implements the IR evaluator: a recursive, side-effect-free
// tree walk that turns a style element into an intermediate-
// representation node plus a group-variables summary, querying the
// Locale Store for terms and a Database for reference data along the
// way.
package ir

import (
	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/format"
)

// Node is the tagged union of IR tree nodes.
type Node interface {
	isNode()
}

// Rendered is a leaf already materialized into an inline element, or
// no content at all when Inline is nil.
type Rendered struct {
	Inline format.Inline
}

// Seq is an ordered group produced by the sequence primitive: Children
// holds the non-empty child nodes; the flattening pass interleaves
// Delimiter between their renderings and wraps the whole group in
// Formatting and Affixes.
type Seq struct {
	Children   []Node
	Delimiter  string
	Formatting csl.Formatting
	Affixes    csl.Affixes
}

// ConditionalDisamb is a subtree shape whose re-evaluation may change
// after disambiguation runs. Disambiguation itself is not implemented;
// this shape exists so a future pass has somewhere to attach
// re-evaluation without changing the IR's type.
type ConditionalDisamb struct {
	Children []Node
}

// YearSuffix is a placeholder for later year-suffix insertion; Hook
// names what produced it and Placeholder is what renders until a
// suffix is assigned.
type YearSuffix struct {
	Hook        string
	Placeholder format.Inline
}

// NamesNode wraps the names sub-evaluator's rendering (internal/names)
// as its own IR variant, distinct from a plain Rendered leaf, so a
// future disambiguation pass can identify "this subtree came from a
// Names element" without inspecting Inline's shape.
type NamesNode struct {
	Inline format.Inline
}

// Quote wraps Inner so the flattening pass renders it through the
// output format's locale-aware quoted span instead of as plain inline
// content. It is what a <text quotes="true"> element produces.
type Quote struct {
	Inner     Node
	Localized format.LocaleQuoteInfo
}

func (Rendered) isNode()          {}
func (Seq) isNode()               {}
func (ConditionalDisamb) isNode() {}
func (YearSuffix) isNode()        {}
func (NamesNode) isNode()         {}
func (Quote) isNode()             {}
