package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"gstreco/internal"
	"gstreco/internal/config"
	"gstreco/internal/pipeline"
	"gstreco/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file2b := fs.String("2b", "", "GSTR-2B export (.xlsx or .csv)")
		fileBooks := fs.String("books", "", "purchase register (.xlsx or .csv)")
		out := fs.String("out", "", "output xlsx path (default under OUTPUT_DIR)")
		threshold := fs.Float64("threshold", cfg.DocSimilarityThreshold, "fuzzy document similarity threshold (0-100)")
		tolerance := fs.Float64("tolerance", cfg.ValueTolerance, "value tolerance in currency units")
		gstinTolerance := fs.Float64("gstin-tolerance", cfg.GSTINMismatchTolerance, "GSTIN mismatch tolerance in currency units")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file2b) == "" || strings.TrimSpace(*fileBooks) == "" {
			must(fmt.Errorf("--2b and --books are required"))
		}

		opts := pipeline.Options{
			DocSimilarityThreshold: *threshold,
			ValueTolerance:         decimal.NewFromFloat(*tolerance),
			GSTINMismatchTolerance: decimal.NewFromFloat(*gstinTolerance),
		}
		svc := pipeline.NewService(db, cfg)
		res, err := svc.RunFiles(*file2b, *fileBooks, *out, opts)
		must(err)

		fmt.Printf("run %s done rows=%d matched=%d warnings=%d output=%s\n",
			res.TraceID, res.Rows, res.Summary.Matched(), res.Warnings, res.Output)
		for _, status := range internal.AllStatuses {
			if n := res.Summary.Counts[status]; n > 0 {
				fmt.Printf("  %-28s %d\n", status, n)
			}
		}
	case "history":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs to list")
		_ = fs.Parse(os.Args[2:])
		runs, err := db.ListRuns(*limit)
		must(err)
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return
		}
		for _, run := range runs {
			fmt.Printf("%s  %s  matched=%d open2b=%d openBooks=%d warnings=%d  %s\n",
				run.CreatedAt, run.TraceID,
				run.Counts[internal.StatusExactMatch]+run.Counts[internal.StatusFuzzyMatch],
				run.Counts[internal.StatusOpenIn2B], run.Counts[internal.StatusOpenInBooks],
				run.Warnings, run.Output)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: gstreco <command>")
	fmt.Println("commands:")
	fmt.Println("  run --2b=<file> --books=<file> [--out=...xlsx] [--threshold=85] [--tolerance=10] [--gstin-tolerance=20]")
	fmt.Println("  history [--limit=20]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
