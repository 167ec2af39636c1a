// Command readdb prints the first rows of a loaded player table, as a quick
// check that an etl run landed where the pipeline says it should. A header
// line above the field names shows each column's category, read from the
// table's catalog when present.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"playeretl/internal/config"
	"playeretl/internal/schema"
	"playeretl/internal/storage"
	_ "playeretl/internal/storage/all"
	"playeretl/internal/value"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("readdb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "pipeline config path; empty uses the built-in defaults")
	table := fs.String("table", "", "table to read; defaults to the pipeline's storage.db.table")
	n := fs.Int("n", 5, "number of rows to print")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *n <= 0 {
		fmt.Fprintln(stderr, "readdb: -n must be positive")
		return 2
	}

	p, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "readdb: %v\n", err)
		return 1
	}
	if *table == "" {
		*table = p.Storage.DB.Table
	}

	repo, err := storage.New(ctx, storage.Config{Kind: p.Storage.Kind, DSN: p.Storage.DB.DSN})
	if err != nil {
		fmt.Fprintf(stderr, "readdb: %v\n", err)
		return 1
	}
	defer repo.Close()

	cols, rows, err := repo.Head(ctx, *table, *n)
	if err != nil {
		fmt.Fprintf(stderr, "readdb: %v\n", err)
		return 1
	}
	cats := categories(ctx, repo, *table, cols)
	if err := printTable(stdout, cats, cols, rows); err != nil {
		fmt.Fprintf(stderr, "readdb: %v\n", err)
		return 1
	}
	return 0
}

// categories maps cols to their categories using the catalog written next to
// table. Without a catalog the built-in player layout is used; fields it does
// not know get an empty category.
func categories(ctx context.Context, repo storage.Repository, table string, cols []string) []string {
	byField := make(map[string]string, len(cols))
	if _, rows, err := repo.Head(ctx, table+storage.CatalogSuffix, len(cols)); err == nil {
		for _, r := range rows {
			if len(r) == 3 {
				byField[value.FromAny(r[2]).String()] = value.FromAny(r[1]).String()
			}
		}
	}
	out := make([]string, len(cols))
	for i, c := range cols {
		cat, ok := byField[c]
		if !ok {
			cat, _ = schema.Players.CategoryOf(c)
		}
		out[i] = cat
	}
	return out
}

func printTable(w io.Writer, cats, cols []string, rows [][]any) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cats, "\t"))
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	cells := make([]string, len(cols))
	for _, r := range rows {
		for i := range cells {
			cells[i] = ""
			if i < len(r) {
				cells[i] = formatCell(r[i])
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// formatCell renders NULL as "NaN", the way the cleaned data is usually read.
func formatCell(v any) string {
	c := value.FromAny(v)
	if c.IsMissing() {
		return "NaN"
	}
	return c.String()
}
