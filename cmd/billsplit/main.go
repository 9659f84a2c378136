// Command billsplit parses a mobile carrier PDF bill and splits the total
// fairly across the phone lines of a shared family plan.
//
// Usage:
//
//	billsplit [flags] <bill.pdf|bill.txt> [phone_names.txt]
//
// The split is printed as a table and written to <bill-basename>_split.csv.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/shopspring/decimal"

	"billsplit/internal/bill"
	"billsplit/internal/carrier"
	"billsplit/internal/directory"
	"billsplit/internal/pdftext"
	"billsplit/internal/report"
	"billsplit/internal/split"
	"billsplit/pkg/config"
)

func main() {
	cfg := config.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	carrierName := flag.String("carrier", cfg.Carrier, "carrier parser to use")
	listCarriers := flag.Bool("list-carriers", false, "list registered carrier parsers and exit")
	xlsx := flag.Bool("xlsx", false, "also write an XLSX workbook next to the CSV")
	outPath := flag.String("o", "", "CSV output path (default <bill-basename>_split.csv)")
	flag.Usage = usage
	flag.Parse()

	if *listCarriers {
		fmt.Println("Registered carrier parsers:")
		for _, name := range carrier.Names() {
			fmt.Printf("  - %s\n", name)
		}
		return
	}

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	bill.Tolerance = decimal.New(int64(cfg.ToleranceCents), -2)

	if err := run(logger, flag.Arg(0), flag.Arg(1), *carrierName, *outPath, *xlsx); err != nil {
		logger.Error("bill split failed", "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [flags] <bill.pdf|bill.txt> [phone_names.txt]\n\nFlags:\n",
		filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func run(logger *slog.Logger, billPath, mappingPath, carrierName, outPath string, xlsx bool) error {
	parser, err := carrier.Get(carrierName)
	if err != nil {
		return err
	}
	logger.Info("processing bill", "path", billPath, "carrier", parser.Name())

	dir, err := directory.Load(mappingPath, logger)
	if err != nil {
		return err
	}
	if len(dir) > 0 {
		logger.Info("loaded phone name mappings", "count", len(dir))
	}

	text, err := pdftext.Extract(billPath)
	if err != nil {
		return err
	}

	b, err := parser.Parse(text)
	if err != nil {
		return err
	}

	shares, err := split.Allocate(b)
	if err != nil {
		return err
	}
	if diff, err := split.Reconcile(b, shares); err != nil {
		// Validation already passed; drift beyond tolerance at this
		// point is worth surfacing but not worth withholding the split.
		logger.Warn("allocated totals drift from bill total", "diff", diff, "err", err)
	}

	rep := report.Build(b, shares, dir, parser.Name())

	if outPath == "" {
		base := strings.TrimSuffix(filepath.Base(billPath), filepath.Ext(billPath))
		outPath = base + "_split.csv"
	}
	if err := rep.WriteCSV(outPath); err != nil {
		return err
	}

	fmt.Print(rep.ConsoleText())
	fmt.Printf("\nResults written to: %s\n", outPath)

	if xlsx {
		xlsxPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".xlsx"
		if err := rep.WriteXLSX(xlsxPath); err != nil {
			return err
		}
		fmt.Printf("Workbook written to: %s\n", xlsxPath)
	}

	return nil
}
