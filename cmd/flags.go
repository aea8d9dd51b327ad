package cmd

import (
	"fmt"
	"os"

	app "github.com/gnames/retroshelf/pkg"
	"github.com/gnames/retroshelf/pkg/config"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// storageFlags converts persistent --db and --images flags to options.
func storageFlags(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if s, _ := cmd.Flags().GetString("db"); s != "" {
		res = append(res, config.OptStorageDBPath(s))
	}
	if s, _ := cmd.Flags().GetString("images"); s != "" {
		res = append(res, config.OptStorageImageDir(s))
	}
	return res
}

// itemFlags holds values of flags shared by 'item add' and 'item edit'.
type itemFlags struct {
	name         string
	system       string
	category     string
	region       string
	authenticity string
	box          bool
	manual       bool
	forSale      bool
	notes        string
	location     string
	purchase     string
	market       string
	price        string
}

func addItemFlags(cmd *cobra.Command, f *itemFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.name, "name", "n", "", "item name")
	fs.StringVarP(&f.system, "system", "s", "", "system name or ID")
	fs.StringVarP(&f.category, "category", "c", "", "category name or ID")
	fs.StringVarP(&f.region, "region", "r", "", "region name or ID")
	fs.StringVarP(&f.authenticity, "authenticity", "a", "",
		"authenticity name or ID")
	fs.BoolVar(&f.box, "box", false, "item has its box")
	fs.BoolVar(&f.manual, "manual", false, "item has its manual")
	fs.BoolVar(&f.forSale, "for-sale", false, "item is offered for sale")
	fs.StringVar(&f.notes, "notes", "", "condition notes")
	fs.StringVar(&f.location, "location", "", "storage location")
	fs.StringVar(&f.purchase, "purchase", "", "purchase price, e.g. 49.90")
	fs.StringVar(&f.market, "market", "", "market value")
	fs.StringVar(&f.price, "price", "", "selling price")
}
