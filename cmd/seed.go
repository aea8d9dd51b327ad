/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/internal/ioseed"
	"github.com/spf13/cobra"
)

// getSeedCmd returns the seed command.
func getSeedCmd() *cobra.Command {
	var file string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Add default systems, categories, regions and authenticity grades",
		Long: `Seed adds default taxonomy entries that are missing in the database.
Existing entries are never changed, so seed can run any number of times.

Use --file to seed from your own YAML file with the keys 'systems',
'categories', 'regions' and 'authenticities'.

Examples:
  retroshelf seed
  retroshelf seed --file my-taxonomies.yaml`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSeed(file)
		},
	}
	seedCmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with taxonomies")
	return seedCmd
}

func runSeed(file string) error {
	ctx := context.Background()

	data, err := ioseed.Default()
	if file != "" {
		data, err = ioseed.Load(file)
	}
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

	n, err := ioseed.New(s.op, data).Seed(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Added <em>%d</em> taxonomy entries.", n)
	return nil
}
