/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/internal/ioexport"
	"github.com/gnames/retroshelf/pkg/report"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const exportDefault = "default"

// getReportCmd returns the report command.
func getReportCmd() *cobra.Command {
	var export, format string
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Show collection totals and the sale catalog",
		Long: `Report prints the number of items in the collection, the sum of
purchase prices and market values, and the items marked for sale.

With --export the sale catalog is written to a file. Without a file
name it goes to the temporary directory as
sale-catalog-YYYYMMDD-HHMM.<ext>.

Formats:
  text  fixed-width table in ISO-8859-1 with a TOTAL row
  csv   comma-separated values
  tsv   tab-separated values
  json  JSON document with count and total

Examples:
  retroshelf report
  retroshelf report --export
  retroshelf report --export catalog.csv --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, export, format)
		},
	}

	reportCmd.Flags().StringVarP(&export, "export", "e", "",
		"write the sale catalog to a file")
	reportCmd.Flags().Lookup("export").NoOptDefVal = exportDefault
	reportCmd.Flags().StringVarP(&format, "format", "f", "",
		"export format: text, csv, tsv, json (default from config)")

	return reportCmd
}

func runReport(cmd *cobra.Command, export, format string) error {
	ctx := context.Background()

	if format == "" {
		format = cfg.Report.Format
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	var stats schema.Stats
	var entries []schema.SaleEntry

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.store.Stats(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.store.SaleCatalog(gCtx)
		return err
	})
	if err = g.Wait(); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	catalog := report.Catalog{
		Entries:   entries,
		Currency:  cfg.Report.Currency,
		Generated: time.Now(),
	}
	printReport(cmd, stats, catalog)

	if export == "" {
		return nil
	}
	if export == exportDefault {
		export = ""
	}

	path, err := ioexport.Export(export, catalog, f)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Sale catalog saved to <em>%s</em>", path)
	return nil
}

func printReport(cmd *cobra.Command, stats schema.Stats, c report.Catalog) {
	cur := c.Currency
	w := newTable(cmd.OutOrStdout())
	fmt.Fprintf(w, "Items in collection:\t%s\n", humanize.Comma(int64(stats.Count)))
	// NULL totals mean an empty collection
	fmt.Fprintf(w, "Total paid:\t%s\n",
		report.Money(cur, stats.PurchaseTotal.Decimal))
	fmt.Fprintf(w, "Market value:\t%s\n",
		report.Money(cur, stats.MarketTotal.Decimal))
	fmt.Fprintf(w, "Items for sale:\t%s\n", humanize.Comma(int64(len(c.Entries))))
	fmt.Fprintf(w, "Asking total:\t%s\n", report.Money(cur, c.Total()))
	_ = w.Flush()

	if len(c.Entries) == 0 {
		return
	}

	fmt.Fprintln(cmd.OutOrStdout())
	w = newTable(cmd.OutOrStdout())
	fmt.Fprintln(w, "ITEM\tSYSTEM\tCATEGORY\tPRICE")
	for _, e := range c.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			report.Truncate(e.Name, 35),
			report.Truncate(e.SystemName, 15),
			report.Truncate(e.CategoryName, 15),
			report.Money(cur, e.SellingPrice),
		)
	}
	_ = w.Flush()
}
