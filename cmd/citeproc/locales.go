package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/citeproc-go/citeproc/internal/csl"
	"github.com/citeproc-go/citeproc/internal/localestore"
)

func newLocalesCmd() *cobra.Command {
	var (
		localeDir string
		localeDSN string
	)

	cmd := &cobra.Command{
		Use:   "locales",
		Short: "Inspect and populate the locale cache",
	}
	cmd.PersistentFlags().StringVar(&localeDir, "locale-dir", "", "directory of locale/style files (defaults to CITEPROC_LOCALE_DIR)")
	cmd.PersistentFlags().StringVar(&localeDSN, "locale-dsn", "", "locale cache DSN (defaults to CITEPROC_LOCALE_DSN)")

	fetchCmd := &cobra.Command{
		Use:   "fetch <tag>",
		Short: "Fetch and cache a locale document for a language tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocalesFetch(cmd.Context(), resolveLocaleDir(localeDir), resolveLocaleDSN(localeDSN), args[0])
		},
	}

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "List the language tags currently cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocalesCache(resolveLocaleDSN(localeDSN))
		},
	}

	cmd.AddCommand(fetchCmd, cacheCmd)
	return cmd
}

func resolveLocaleDir(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.LocaleDir
}

func resolveLocaleDSN(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.LocaleDSN
}

func runLocalesFetch(ctx context.Context, localeDir, dsn, tagStr string) error {
	gdb, err := localestore.Connect(dsn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("citeproc: connect locale cache: %w", err)
	}
	cache := localestore.NewCache(gdb, localeDir)

	tag := csl.ParseLanguageTag(tagStr)
	doc, err := cache.FetchLocale(ctx, tag)
	if err != nil {
		return fmt.Errorf("citeproc: fetch locale %s: %w", tag, err)
	}
	fmt.Printf("cached %s: %d terms\n", tag, len(doc.Terms))
	return nil
}

func runLocalesCache(dsn string) error {
	gdb, err := localestore.Connect(dsn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("citeproc: connect locale cache: %w", err)
	}

	var docs []localestore.LocaleDocument
	if err := gdb.Select("tag", "fetched_at").Find(&docs).Error; err != nil {
		return fmt.Errorf("citeproc: list locale cache: %w", err)
	}
	if len(docs) == 0 {
		fmt.Println("locale cache is empty")
		return nil
	}
	for _, d := range docs {
		fmt.Printf("%s\tfetched %s\n", d.Tag, d.FetchedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
