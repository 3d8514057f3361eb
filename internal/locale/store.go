// Package locale implements the locale store: it merges a fallback
// chain of parsed locale documents into a single effective locale per
// requested language tag, memoizing the result, and resolves term
// selectors against it through the form-refinement fallback chain.
package locale

import (
	"context"
	"errors"
	"sync"

	"github.com/citeproc-go/citeproc/internal/csl"
)

// ErrLocaleNotFound is returned by a Fetcher when it has no document
// for the requested tag. The store treats this as "this link in the
// chain contributes nothing", never as a hard failure.
var ErrLocaleNotFound = errors.New("locale: no document for tag")

// Fetcher retrieves a raw locale document for a tag on demand, e.g.
// from an on-disk bundle or a remote cache (internal/localestore
// implements this against GORM). It returns ErrLocaleNotFound for a
// tag it has no document for.
type Fetcher interface {
	FetchLocale(ctx context.Context, tag csl.LanguageTag) (*csl.LocaleDocument, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, tag csl.LanguageTag) (*csl.LocaleDocument, error)

// FetchLocale implements Fetcher.
func (f FetcherFunc) FetchLocale(ctx context.Context, tag csl.LanguageTag) (*csl.LocaleDocument, error) {
	return f(ctx, tag)
}

// EffectiveLocale is the result of merging a fallback chain of locale
// documents: one options record and one term table, both already
// folded so that the most specific document wins per key.
type EffectiveLocale struct {
	Tag         csl.LanguageTag
	Options     csl.LocaleOptions
	Terms       map[csl.TermKey]csl.TermValue
	DateFormats map[string]csl.DateFormat
}

// Store owns the set of parsed locale documents supplied up front plus
// any fetched on demand, and memoizes MergedLocale(tag) results.
// MergedLocale is safe for concurrent callers; once computed for a
// tag, the returned *EffectiveLocale is immutable and shared by
// reference, so no further synchronization is needed by callers
// holding one.
type Store struct {
	mu      sync.RWMutex
	build   sync.Mutex
	docs    map[csl.LanguageTag]*csl.LocaleDocument
	merged  map[csl.LanguageTag]*EffectiveLocale
	fetcher Fetcher
}

// NewStore builds a store seeded with docs (e.g. the style-embedded
// locale and anything preloaded from disk). fetcher may be nil, in
// which case a chain link missing from docs is simply skipped.
func NewStore(docs map[csl.LanguageTag]*csl.LocaleDocument, fetcher Fetcher) *Store {
	seeded := make(map[csl.LanguageTag]*csl.LocaleDocument, len(docs))
	for tag, doc := range docs {
		seeded[tag] = doc
	}
	return &Store{
		docs:    seeded,
		merged:  make(map[csl.LanguageTag]*EffectiveLocale),
		fetcher: fetcher,
	}
}

// MergedLocale returns the effective locale for tag, computing and
// memoizing it on first request. The fallback chain is
// [root, ..., parent(parent(tag)), parent(tag), tag]; documents
// missing from the chain are skipped, never an error.
func (s *Store) MergedLocale(ctx context.Context, tag csl.LanguageTag) (*EffectiveLocale, error) {
	if eff, ok := s.cached(tag); ok {
		return eff, nil
	}

	// build serializes merges so each tag is merged (and its chain
	// fetched) once, even when first requests for it arrive together.
	s.build.Lock()
	defer s.build.Unlock()
	if eff, ok := s.cached(tag); ok {
		return eff, nil
	}

	chain := csl.FallbackChain(tag)
	eff := &EffectiveLocale{
		Tag:         tag,
		Terms:       make(map[csl.TermKey]csl.TermValue),
		DateFormats: make(map[string]csl.DateFormat),
	}
	for _, link := range chain {
		doc, err := s.documentFor(ctx, link)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		eff.Options = csl.MergeOptions(eff.Options, doc.Options, doc.OptionsDeclared)
		for k, v := range doc.Terms {
			eff.Terms[k] = v
		}
		for k, v := range doc.DateFormats {
			eff.DateFormats[k] = v
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.merged[tag]; ok {
		return existing, nil
	}
	s.merged[tag] = eff
	return eff, nil
}

func (s *Store) cached(tag csl.LanguageTag) (*EffectiveLocale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	eff, ok := s.merged[tag]
	return eff, ok
}

// documentFor returns the raw document for tag, fetching and caching
// it on demand if it is not already known and a fetcher is configured.
// A fetcher returning ErrLocaleNotFound is treated as "no document",
// not propagated.
func (s *Store) documentFor(ctx context.Context, tag csl.LanguageTag) (*csl.LocaleDocument, error) {
	s.mu.RLock()
	doc, ok := s.docs[tag]
	s.mu.RUnlock()
	if ok {
		return doc, nil
	}
	if s.fetcher == nil {
		return nil, nil
	}

	fetched, err := s.fetcher.FetchLocale(ctx, tag)
	if errors.Is(err, ErrLocaleNotFound) {
		s.mu.Lock()
		s.docs[tag] = nil
		s.mu.Unlock()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.docs[tag] = fetched
	s.mu.Unlock()
	return fetched, nil
}
