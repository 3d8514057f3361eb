package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/format"
	"github.com/citeproc-go/citeproc/internal/ir"
	"github.com/citeproc-go/citeproc/internal/locale"
	"github.com/citeproc-go/citeproc/internal/localestore"
	"github.com/citeproc-go/citeproc/internal/punct"
	"github.com/citeproc-go/citeproc/internal/refs"
	"github.com/citeproc-go/citeproc/internal/render"
	"github.com/citeproc-go/citeproc/internal/stylexml"
)

type renderOptions struct {
	stylePath string
	refsPath  string
	localeDir string
	localeDSN string
	lang      string
	format    string
	golden    string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [cite-id...]",
		Short: "Render one or more cites against a style and reference set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.stylePath, "style", "s", "", "path to the CSL style file (required)")
	flags.StringVarP(&opts.refsPath, "refs", "r", "", "path to the CSL-JSON reference file (required)")
	flags.StringVar(&opts.localeDir, "locale-dir", "", "directory of locale/style files (defaults to CITEPROC_LOCALE_DIR)")
	flags.StringVar(&opts.localeDSN, "locale-dsn", "", "locale cache DSN (defaults to CITEPROC_LOCALE_DSN)")
	flags.StringVarP(&opts.lang, "lang", "l", "", "language tag to render in (defaults to the style's default-locale, then CITEPROC_DEFAULT_LANG)")
	flags.StringVarP(&opts.format, "format", "f", "plain", "output format: plain, html, or markup")
	flags.StringVar(&opts.golden, "diff", "", "diff the rendered output against a golden file instead of printing it")
	cmd.MarkFlagRequired("style")
	cmd.MarkFlagRequired("refs")

	return cmd
}

func runRender(ctx context.Context, opts *renderOptions, citeIDs []string) error {
	style, db, err := loadRenderInputs(ctx, opts)
	if err != nil {
		return err
	}

	out, err := pickFormat(opts.format)
	if err != nil {
		return err
	}

	tag := resolveRenderTag(opts, style)
	eff, err := db.Locale(ctx, tag)
	if err != nil {
		return fmt.Errorf("citeproc: resolve locale %s: %w", tag, err)
	}

	rendered, err := renderCites(ctx, style, db, out, eff, citeIDs)
	if err != nil {
		return err
	}

	if opts.golden != "" {
		return diffAgainstGolden(rendered, opts.golden)
	}
	fmt.Println(rendered)
	return nil
}

func loadRenderInputs(ctx context.Context, opts *renderOptions) (*csl.Style, *citeDatabase, error) {
	styleFile, err := os.Open(opts.stylePath)
	if err != nil {
		return nil, nil, fmt.Errorf("citeproc: open style: %w", err)
	}
	defer styleFile.Close()
	style, err := stylexml.Decode(styleFile)
	if err != nil {
		return nil, nil, fmt.Errorf("citeproc: parse style: %w", err)
	}

	refsFile, err := os.Open(opts.refsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("citeproc: open refs: %w", err)
	}
	defer refsFile.Close()
	refList, err := refs.Decode(refsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("citeproc: parse refs: %w", err)
	}

	dsn := opts.localeDSN
	if dsn == "" {
		dsn = cfg.LocaleDSN
	}
	localeDir := opts.localeDir
	if localeDir == "" {
		localeDir = cfg.LocaleDir
	}

	gdb, err := localestore.Connect(dsn, cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("citeproc: connect locale cache: %w", err)
	}
	cache := localestore.NewCache(gdb, localeDir)
	store := locale.NewStore(nil, cache)

	db := newCiteDatabase(style, store, refList)
	slog.DebugContext(ctx, "loaded render inputs", "style", opts.stylePath, "refs", opts.refsPath, "references", len(refList))
	return style, db, nil
}

func resolveRenderTag(opts *renderOptions, style *csl.Style) csl.LanguageTag {
	if opts.lang != "" {
		return csl.ParseLanguageTag(opts.lang)
	}
	if !style.DefaultLocale.IsRoot() {
		return style.DefaultLocale
	}
	return csl.ParseLanguageTag(cfg.DefaultLang)
}

func pickFormat(name string) (format.Format, error) {
	switch name {
	case "", "plain":
		return format.PlainText{}, nil
	case "html":
		return format.HTML{}, nil
	case "markup":
		return format.Markup{}, nil
	default:
		return nil, fmt.Errorf("citeproc: unknown format %q (want plain, html, or markup)", name)
	}
}

func renderCites(ctx context.Context, style *csl.Style, db *citeDatabase, out format.Format, eff *locale.EffectiveLocale, citeIDs []string) (string, error) {
	layout := style.Citation.Layout
	var inlines []format.Inline
	for _, id := range citeIDs {
		ref, err := db.Reference(ctx, id)
		if err != nil {
			return "", err
		}

		cc := &ir.CiteContext{
			Reference: ref,
			Cite:      csl.Cite{ID: id},
			Format:    out,
			Locale:    eff,
			Style:     style,
		}
		state := ir.NewIrState()

		node, _, err := ir.Sequence(ctx, layout.Elements, layout.Delimiter, layout.Formatting, layout.Affixes, db, state, cc)
		if err != nil {
			return "", fmt.Errorf("citeproc: render cite %q: %w", id, err)
		}

		in := render.Flatten(node, out)
		if in == nil {
			continue
		}
		inlines = append(inlines, in)
	}

	punct.MovePunctuation(inlines)
	return out.Render(inlines), nil
}

func diffAgainstGolden(rendered, goldenPath string) error {
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		return fmt.Errorf("citeproc: read golden file: %w", err)
	}
	diff := format.UnifiedDiff(string(golden), rendered, goldenPath, 3)
	if diff == "" {
		fmt.Println("no differences")
		return nil
	}
	fmt.Print(diff)
	return nil
}
