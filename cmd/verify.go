/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/internal/ioverify"
	"github.com/spf13/cobra"
)

// getVerifyCmd returns the verify command.
func getVerifyCmd() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that photos of items exist on disk",
		Long: `Verify compares image records of the database with files of the
image directory. It reports records whose files are missing and files
that no record refers to. Nothing is changed.

Files are checked by 'jobs_number' workers from the configuration.

Examples:
  retroshelf verify`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd)
		},
	}
	return verifyCmd
}

func runVerify(cmd *cobra.Command) error {
	return withSession(func(ctx context.Context, s *session) error {
		v := ioverify.New(s.store, cfg.ImageDir(), cfg.JobsNumber, true)
		res, err := v.Verify(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, img := range res.Missing {
			fmt.Fprintf(out, "missing\t%s\titem %s\timage %s\n",
				img.Filename, img.ItemID, img.ID)
		}
		for _, name := range res.Orphans {
			fmt.Fprintf(out, "orphan\t%s\n", name)
		}

		if len(res.Missing) == 0 && len(res.Orphans) == 0 {
			gn.Info("All <em>%d</em> images are in place.", res.Checked)
			return nil
		}
		gn.Warn("Checked %d images: %d missing, %d orphan files.",
			res.Checked, len(res.Missing), len(res.Orphans))
		return nil
	})
}
