package main

import (
	"context"
	"fmt"

	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/ir"
	"github.com/citeproc-go/citeproc/internal/locale"
)

// citeDatabase adapts a loaded reference set and a *locale.Store into
// the internal/ir.Database interface the evaluator requires.
type citeDatabase struct {
	style *csl.Style
	store *locale.Store
	refs  map[string]*csl.Reference
}

func newCiteDatabase(style *csl.Style, store *locale.Store, refs []*csl.Reference) *citeDatabase {
	byID := make(map[string]*csl.Reference, len(refs))
	for _, r := range refs {
		byID[r.ID] = r
	}
	return &citeDatabase{style: style, store: store, refs: byID}
}

// Reference implements internal/ir.Database.
func (d *citeDatabase) Reference(_ context.Context, id string) (*csl.Reference, error) {
	ref, ok := d.refs[id]
	if !ok {
		return nil, fmt.Errorf("citeproc: no reference with id %q: %w", id, ir.ErrMissingReference)
	}
	return ref, nil
}

// Locale implements internal/ir.Database, resolving the style's
// locale_overrides against the store per ir.ResolveCiteLocale.
func (d *citeDatabase) Locale(ctx context.Context, tag csl.LanguageTag) (*locale.EffectiveLocale, error) {
	return ir.ResolveCiteLocale(ctx, d.store, d.style, tag)
}
