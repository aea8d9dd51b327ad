/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Compact the database and refresh query statistics",
		Long: `Optimize runs VACUUM and ANALYZE on the collection database.

VACUUM rebuilds the file and reclaims space left by deleted images and
logs. ANALYZE refreshes statistics used by the query planner.

Examples:
  retroshelf optimize`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, args)
		},
	}

	return optimizeCmd
}

func runOptimize(
	_ *cobra.Command,
	_ []string,
) error {
	return withSession(func(ctx context.Context, s *session) error {
		gn.Info("Optimizing <em>%s</em>...", s.op.Path())
		if err := s.op.Vacuum(ctx); err != nil {
			return err
		}
		gn.Info("Database optimization is complete!")
		return nil
	})
}
