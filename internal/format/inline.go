// Package format implements the output-format back-ends the IR
// evaluator and flattening pass consume, and defines the inline tree
// the punctuation mover (internal/punct) rewrites in place.
package format

import "github.com/citeproc-go/citeproc/internal/csl"

// LocaleQuoteInfo carries the quoting glyphs and punctuation-in-quote
// policy a Quoted inline was built with. The punctuation mover's
// locale gate checks PunctuationInQuote.
type LocaleQuoteInfo struct {
	PunctuationInQuote bool
	Open               string
	Close              string
	OpenInner          string
	CloseInner         string
}

// Inline is the tagged union of inline-level output nodes.
type Inline interface {
	isInline()
}

// MicroNode is the tagged union of nodes nested inside a Micro inline.
type MicroNode interface {
	isMicroNode()
}

// TextInline is a leaf run of literal text.
type TextInline struct{ Text string }

// Micro wraps a run of MicroNode children — the output format's way
// of grouping inline formatting marks below the Inline level (e.g. a
// formatted run inside a larger sentence).
type Micro struct{ Children []MicroNode }

// Quoted is an inline-level quoted span.
type Quoted struct {
	Localized LocaleQuoteInfo
	Inlines   []Inline
}

// Div is a block-ish wrapper tagged with a CSS-like class (e.g.
// "csl-entry"), carrying inline children.
type Div struct {
	Class   string
	Inlines []Inline
}

// Formatted is an inline-level formatting wrapper (bold, italic, …).
type Formatted struct {
	Inlines    []Inline
	Formatting csl.Formatting
}

// Other is a leaf inline the Punctuation Mover does not inspect
// (e.g. a hard line break), carried through untouched.
type Other struct{ Kind string }

func (TextInline) isInline() {}
func (Micro) isInline()      {}
func (Quoted) isInline()     {}
func (Div) isInline()        {}
func (Formatted) isInline()  {}
func (Other) isInline()      {}

// MicroText is a leaf run of literal text at the micro level.
type MicroText struct{ Text string }

// MicroQuoted is a quoted span nested inside a Micro.
type MicroQuoted struct {
	Localized LocaleQuoteInfo
	Children  []MicroNode
}

// MicroNoCase wraps children that must not be text-cased.
type MicroNoCase struct{ Children []MicroNode }

// MicroFormatted is a formatting wrapper nested inside a Micro.
type MicroFormatted struct {
	Children   []MicroNode
	Formatting csl.Formatting
}

func (MicroText) isMicroNode()       {}
func (MicroQuoted) isMicroNode()     {}
func (MicroNoCase) isMicroNode()     {}
func (MicroFormatted) isMicroNode()  {}
