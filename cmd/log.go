/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// getLogCmd returns the maintenance log command with its subcommands.
func getLogCmd() *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Keep a maintenance log of items",
		Long: `Record cleaning, repairs and other work done on items. Entries are
dated today and listed most recent first.

Examples:
  retroshelf log add ITEM_ID "Replaced the battery"
  retroshelf log list ITEM_ID
  retroshelf log delete LOG_ID`,
	}

	logCmd.AddCommand(
		&cobra.Command{
			Use:   "add ITEM_ID DESCRIPTION",
			Short: "Add a log entry",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(func(ctx context.Context, s *session) error {
					desc := strings.Join(args[1:], " ")
					id, err := s.store.AddLog(ctx, args[0], desc)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), id)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list ITEM_ID",
			Short: "List log entries of an item",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSession(func(ctx context.Context, s *session) error {
					logs, err := s.store.Logs(ctx, args[0])
					if err != nil {
						return err
					}
					w := newTable(cmd.OutOrStdout())
					fmt.Fprintln(w, "DATE\tDESCRIPTION\tID")
					for _, l := range logs {
						fmt.Fprintf(w, "%s\t%s\t%s\n", l.Date, l.Description, l.ID)
					}
					return w.Flush()
				})
			},
		},
		&cobra.Command{
			Use:   "delete LOG_ID",
			Short: "Delete a log entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return withSession(func(ctx context.Context, s *session) error {
					return s.store.DeleteLog(ctx, args[0])
				})
			},
		},
	)
	return logCmd
}
