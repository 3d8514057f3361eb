package ir

import (
	"context"

	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/format"
	"github.com/citeproc-go/citeproc/internal/locale"
)

// Database is the opaque handle the evaluator uses for reference and
// locale lookup.
type Database interface {
	Reference(ctx context.Context, id string) (*csl.Reference, error)
	Locale(ctx context.Context, tag csl.LanguageTag) (*locale.EffectiveLocale, error)
}

// IrState is the mutable record the evaluator threads through one
// cite's recursive walk. DisambTokens accumulates disambiguation
// tokens seen during the render; no disambiguation algorithm consumes
// it yet, but the evaluator's signature already accommodates one.
type IrState struct {
	DisambTokens map[string]struct{}
}

// NewIrState returns an empty, ready-to-use state.
func NewIrState() *IrState {
	return &IrState{DisambTokens: make(map[string]struct{})}
}

// CiteContext is immutable for the duration of one cite render: it
// carries the reference, the per-cite locator/position data, the
// output format, the effective locale to query terms against, and the
// style (for macro lookup).
type CiteContext struct {
	Reference *csl.Reference
	Cite      csl.Cite
	Format    format.Format
	Locale    *locale.EffectiveLocale
	Style     *csl.Style
}

// ResolveCiteLocale merges the store's MergedLocale(tag) result with
// any locale the style embeds for that exact tag, falling back to the
// style's root ("None") override when no tag-specific one exists. A
// style-embedded override is treated as more specific than anything
// the store fetched, since it is authored alongside the citation
// style itself and is meant to override the shared locale bundle's
// defaults.
func ResolveCiteLocale(ctx context.Context, store *locale.Store, style *csl.Style, tag csl.LanguageTag) (*locale.EffectiveLocale, error) {
	base, err := store.MergedLocale(ctx, tag)
	if err != nil {
		return nil, err
	}

	override, ok := style.LocaleOverrides[tag]
	if !ok {
		override, ok = style.LocaleOverrides[csl.RootTag]
	}
	if !ok || override == nil {
		return base, nil
	}

	merged := &locale.EffectiveLocale{
		Tag:         tag,
		Options:     csl.MergeOptions(base.Options, override.Options, override.OptionsDeclared),
		Terms:       make(map[csl.TermKey]csl.TermValue, len(base.Terms)+len(override.Terms)),
		DateFormats: make(map[string]csl.DateFormat, len(base.DateFormats)+len(override.DateFormats)),
	}
	for k, v := range base.Terms {
		merged.Terms[k] = v
	}
	for k, v := range override.Terms {
		merged.Terms[k] = v
	}
	for k, v := range base.DateFormats {
		merged.DateFormats[k] = v
	}
	for k, v := range override.DateFormats {
		merged.DateFormats[k] = v
	}
	return merged, nil
}
