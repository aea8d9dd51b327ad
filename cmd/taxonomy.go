/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

const taxonomyHelp = `Taxonomies are: system, category, region, authenticity.`

// getTaxonomyCmd returns the taxonomy command with its subcommands.
func getTaxonomyCmd() *cobra.Command {
	taxCmd := &cobra.Command{
		Use:     "taxonomy",
		Aliases: []string{"tax"},
		Short:   "Manage systems, categories, regions and authenticity grades",
		Long: `Manage entries of the four lookup lists used to classify items.

` + taxonomyHelp + `

An entry used by items of the collection, written off ones included,
cannot be deleted.

Examples:
  retroshelf taxonomy list system
  retroshelf taxonomy add system "Neo Geo AES"
  retroshelf taxonomy rename region ID "NTSC-U/C"
  retroshelf taxonomy delete category ID`,
	}

	taxCmd.AddCommand(
		&cobra.Command{
			Use:   "list TAXONOMY",
			Short: "List entries of a taxonomy",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(func(ctx context.Context, s *session) error {
					tx, err := parseTaxonomy(args[0])
					if err != nil {
						return err
					}
					entries, err := s.store.LookupEntries(ctx, tx)
					if err != nil {
						return err
					}
					w := newTable(cmd.OutOrStdout())
					fmt.Fprintln(w, "NAME\tID")
					for _, e := range entries {
						fmt.Fprintf(w, "%s\t%s\n", e.Name, e.ID)
					}
					return w.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "add TAXONOMY NAME",
			Short: "Add an entry",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(func(ctx context.Context, s *session) error {
					tx, err := parseTaxonomy(args[0])
					if err != nil {
						return err
					}
					id, err := s.store.AddLookupEntry(ctx, tx, args[1])
					if err != nil {
						return err
					}
					gn.Info("Added %s <em>%s</em>", tx.String(), args[1])
					fmt.Fprintln(cmd.OutOrStdout(), id)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "rename TAXONOMY ID NAME",
			Short: "Rename an entry",
			Args:  cobra.ExactArgs(3),
			RunE: func(_ *cobra.Command, args []string) error {
				return withSession(func(ctx context.Context, s *session) error {
					tx, err := parseTaxonomy(args[0])
					if err != nil {
						return err
					}
					if err = s.store.RenameLookupEntry(ctx, tx, args[1], args[2]); err != nil {
						return err
					}
					gn.Info("Renamed %s to <em>%s</em>", tx.String(), args[2])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "delete TAXONOMY ID",
			Short: "Delete an entry that no item uses",
			Args:  cobra.ExactArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				return withSession(func(ctx context.Context, s *session) error {
					tx, err := parseTaxonomy(args[0])
					if err != nil {
						return err
					}
					if err = s.store.DeleteLookupEntry(ctx, tx, args[1]); err != nil {
						return err
					}
					gn.Info("Deleted %s <em>%s</em>", tx.String(), args[1])
					return nil
				})
			},
		},
	)
	return taxCmd
}
