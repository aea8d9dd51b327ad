/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/pkg/errcode"
	"github.com/gnames/retroshelf/pkg/report"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/gnames/retroshelf/pkg/shelf"
	"github.com/spf13/cobra"
)

// getItemCmd returns the item command with its subcommands.
func getItemCmd() *cobra.Command {
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Add, edit, browse and write off collection items",
		Long: `Manage items of the collection.

Systems, categories, regions and authenticity grades can be given by name
or by ID. See 'retroshelf taxonomy list system' for available names.

Examples:
  retroshelf item add -n "Chrono Trigger" -s "Super Nintendo" -c Game \
    --box --purchase 50 --market 120
  retroshelf item list
  retroshelf item list -s "Super Nintendo" -c Game
  retroshelf item search chrono
  retroshelf item writeoff ID --reason Sold --details "eBay"`,
	}

	itemCmd.AddCommand(
		getItemAddCmd(),
		getItemEditCmd(),
		getItemShowCmd(),
		getItemListCmd(),
		getItemSearchCmd(),
		getItemWriteOffCmd(),
		getItemDeleteCmd(),
	)
	return itemCmd
}

func getItemAddCmd() *cobra.Command {
	var f itemFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runItemAdd(cmd, &f)
		},
	}
	addItemFlags(cmd, &f)
	return cmd
}

func runItemAdd(cmd *cobra.Command, f *itemFlags) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	fields := schema.ItemFields{}
	if err = applyItemFlags(ctx, cmd, s.store, f, &fields); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	id, err := s.store.CreateItem(ctx, fields)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Added <em>%s</em>", fields.Name)
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func getItemEditCmd() *cobra.Command {
	var f itemFlags
	cmd := &cobra.Command{
		Use:   "edit ITEM_ID",
		Short: "Change fields of an item",
		Long: `Change fields of an item. Only given flags are changed.

Use 'retroshelf item writeoff' or 'retroshelf item delete' to take an item
out of the collection.

Examples:
  retroshelf item edit ID --market 150 --for-sale --price 180
  retroshelf item edit ID --for-sale=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemEdit(cmd, args[0], &f)
		},
	}
	addItemFlags(cmd, &f)
	return cmd
}

func runItemEdit(cmd *cobra.Command, id string, f *itemFlags) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	item, err := s.store.Item(ctx, id)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	fields := item.ItemFields
	if err = applyItemFlags(ctx, cmd, s.store, f, &fields); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = s.store.UpdateItem(ctx, id, fields); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Updated <em>%s</em>", fields.Name)
	return nil
}

// applyItemFlags copies changed flags into fields.
func applyItemFlags(
	ctx context.Context,
	cmd *cobra.Command,
	st shelf.Reader,
	f *itemFlags,
	fields *schema.ItemFields,
) error {
	var err error
	changed := cmd.Flags().Changed

	if changed("name") {
		fields.Name = f.name
	}

	lookups := []struct {
		flag  string
		tx    schema.Taxonomy
		value string
		dest  *string
	}{
		{"system", schema.System, f.system, &fields.SystemID},
		{"category", schema.Category, f.category, &fields.CategoryID},
		{"region", schema.Region, f.region, &fields.RegionID},
		{"authenticity", schema.Authenticity, f.authenticity, &fields.AuthenticityID},
	}
	for _, l := range lookups {
		if !changed(l.flag) {
			continue
		}
		if *l.dest, err = resolveLookup(ctx, st, l.tx, l.value); err != nil {
			return err
		}
	}

	if changed("box") {
		fields.HasBox = f.box
	}
	if changed("manual") {
		fields.HasManual = f.manual
	}
	if changed("for-sale") {
		fields.IsForSale = f.forSale
	}
	if changed("notes") {
		fields.ConditionNotes = f.notes
	}
	if changed("location") {
		fields.StorageLocation = f.location
	}

	if changed("purchase") {
		if fields.PurchasePrice, err = parseMoney("purchase price", f.purchase); err != nil {
			return err
		}
	}
	if changed("market") {
		if fields.MarketValue, err = parseMoney("market value", f.market); err != nil {
			return err
		}
	}
	if changed("price") {
		if fields.SellingPrice, err = parseMoney("selling price", f.price); err != nil {
			return err
		}
	}
	return nil
}

func getItemShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ITEM_ID",
		Short: "Show an item with its images and maintenance logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemShow(cmd, args[0])
		},
	}
}

func runItemShow(cmd *cobra.Command, id string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	item, err := s.store.Item(ctx, id)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	imgs, err := s.store.Images(ctx, id)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	logs, err := s.store.Logs(ctx, id)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	names := make(map[schema.Taxonomy]string)
	for tx, tid := range map[schema.Taxonomy]string{
		schema.System:       item.SystemID,
		schema.Category:     item.CategoryID,
		schema.Region:       item.RegionID,
		schema.Authenticity: item.AuthenticityID,
	} {
		names[tx] = lookupName(ctx, s.store, tx, tid)
	}

	cur := cfg.Report.Currency
	w := newTable(cmd.OutOrStdout())
	fmt.Fprintf(w, "ID:\t%s\n", item.ID)
	fmt.Fprintf(w, "Name:\t%s\n", item.Name)
	fmt.Fprintf(w, "System:\t%s\n", names[schema.System])
	fmt.Fprintf(w, "Category:\t%s\n", names[schema.Category])
	fmt.Fprintf(w, "Region:\t%s\n", names[schema.Region])
	fmt.Fprintf(w, "Authenticity:\t%s\n", names[schema.Authenticity])
	fmt.Fprintf(w, "Box / manual:\t%s / %s\n", yesNo(item.HasBox), yesNo(item.HasManual))
	fmt.Fprintf(w, "Condition:\t%s\n", item.ConditionNotes)
	fmt.Fprintf(w, "Location:\t%s\n", item.StorageLocation)
	fmt.Fprintf(w, "Purchase price:\t%s\n", report.Money(cur, item.PurchasePrice))
	fmt.Fprintf(w, "Market value:\t%s\n", report.Money(cur, item.MarketValue))
	fmt.Fprintf(w, "For sale:\t%s\n", yesNo(item.IsForSale))
	if item.IsForSale {
		fmt.Fprintf(w, "Selling price:\t%s\n", report.Money(cur, item.SellingPrice))
	}
	fmt.Fprintf(w, "Status:\t%s\n", item.Status)
	if item.Status == schema.StatusRemoved {
		fmt.Fprintf(w, "Exit:\t%s, %s\n", item.ExitDate, item.ExitReason)
	}
	if item.IsDeleted {
		fmt.Fprintf(w, "Deleted:\tyes\n")
	}
	if !item.LastModified.IsZero() {
		fmt.Fprintf(w, "Modified:\t%s\n", humanize.Time(item.LastModified))
	}
	if err = w.Flush(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nImages (%d/%d):\n", len(imgs), schema.MaxImagesPerItem)
	for _, img := range imgs {
		fmt.Fprintf(out, "  %s  %s\n", img.ID, img.Filename)
	}
	fmt.Fprintf(out, "\nMaintenance logs (%d):\n", len(logs))
	for _, l := range logs {
		fmt.Fprintf(out, "  %s  %s  %s\n", l.Date, l.ID, l.Description)
	}
	return nil
}

// lookupName finds the name of an entry for display. Unknown IDs of
// old databases are shown as is.
func lookupName(
	ctx context.Context,
	st shelf.Reader,
	tx schema.Taxonomy,
	id string,
) string {
	if id == "" {
		return "-"
	}
	entries, err := st.LookupEntries(ctx, tx)
	if err != nil {
		return id
	}
	for _, e := range entries {
		if e.ID == id {
			return e.Name
		}
	}
	return id + " (missing)"
}

func getItemListCmd() *cobra.Command {
	var system, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Browse the collection by system and category",
		Long: `Browse the collection.

Without flags lists systems with the number of items. With --system lists
categories of the system. With both --system and --category lists items.

Examples:
  retroshelf item list
  retroshelf item list -s "Mega Drive"
  retroshelf item list -s "Mega Drive" -c Game`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runItemList(cmd, system, category)
		},
	}
	cmd.Flags().StringVarP(&system, "system", "s", "", "system name or ID")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name or ID")
	return cmd
}

func runItemList(cmd *cobra.Command, system, category string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	err = listItems(ctx, cmd, s.store, system, category)
	if err != nil {
		gn.PrintErrorMessage(err)
	}
	return err
}

func listItems(
	ctx context.Context,
	cmd *cobra.Command,
	st shelf.Reader,
	system, category string,
) error {
	w := newTable(cmd.OutOrStdout())
	defer w.Flush()

	systemID, err := resolveLookup(ctx, st, schema.System, system)
	if err != nil {
		return err
	}
	categoryID, err := resolveLookup(ctx, st, schema.Category, category)
	if err != nil {
		return err
	}

	switch {
	case systemID == "" && categoryID != "":
		return &gn.Error{
			Code: errcode.StoreValidationError,
			Msg:  "Use --category together with --system",
			Err:  fmt.Errorf("category without system"),
		}
	case systemID == "":
		counts, err := st.SystemsWithCount(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "SYSTEM\tITEMS\tID")
		for _, c := range counts {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, humanize.Comma(int64(c.Count)), c.ID)
		}
	case categoryID == "":
		counts, err := st.CategoriesInSystem(ctx, systemID)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "CATEGORY\tITEMS\tID")
		for _, c := range counts {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, humanize.Comma(int64(c.Count)), c.ID)
		}
	default:
		items, err := st.ItemsByTaxonomy(ctx, systemID, categoryID)
		if err != nil {
			return err
		}
		printSummaries(w, items)
	}
	return nil
}

func printSummaries(w io.Writer, items []schema.ItemSummary) {
	fmt.Fprintln(w, "NAME\tSYSTEM\tID")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", it.Name, it.SystemName, it.ID)
	}
}

func getItemSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Find items by a part of the name",
		Long: `Find up to 50 items which names contain the query, ignoring case.
Written off and deleted items are not shown.

Examples:
  retroshelf item search chrono
  retroshelf item search "street fighter"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runItemSearch(cmd, strings.Join(args, " "))
		},
	}
}

func runItemSearch(cmd *cobra.Command, query string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	items, err := s.store.SearchItems(ctx, query)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	w := newTable(cmd.OutOrStdout())
	printSummaries(w, items)
	return w.Flush()
}

func getItemWriteOffCmd() *cobra.Command {
	var reason, details string
	cmd := &cobra.Command{
		Use:   "writeoff ITEM_ID",
		Short: "Record that an item left the collection",
		Long: fmt.Sprintf(`Mark an item as Removed with today's date and a reason.
The item disappears from listings and totals but stays in the database.

Common reasons: %s.

Examples:
  retroshelf item writeoff ID --reason Sold --details "local fair"`,
			strings.Join(schema.WriteOffReasons, ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runItemWriteOff(args[0], reason, details)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "why the item left (required)")
	cmd.Flags().StringVar(&details, "details", "", "free text details")
	return cmd
}

func runItemWriteOff(id, reason, details string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	if err = s.store.WriteOffItem(ctx, id, reason, details); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Item <em>%s</em> was written off.", id)
	return nil
}

func getItemDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ITEM_ID",
		Short: "Delete an item (it is hidden, not erased)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runItemDelete(args[0])
		},
	}
}

func runItemDelete(id string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	if err = s.store.SoftDeleteItem(ctx, id); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Item <em>%s</em> was deleted.", id)
	return nil
}
