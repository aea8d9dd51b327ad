/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/gnames/retroshelf/internal/iofs"
	"github.com/spf13/cobra"
)

// getImageCmd returns the image command with its subcommands.
func getImageCmd() *cobra.Command {
	imageCmd := &cobra.Command{
		Use:   "image",
		Short: "Attach photos to items",
		Long: `Manage photos of items. A photo is copied into the image directory
under a random name, the original file is not touched. An item can have
up to 5 photos.

Examples:
  retroshelf image add ITEM_ID ~/Pictures/front.jpg
  retroshelf image list ITEM_ID
  retroshelf image delete IMAGE_ID`,
	}

	imageCmd.AddCommand(
		&cobra.Command{
			Use:   "add ITEM_ID FILE",
			Short: "Copy a photo into the image directory and attach it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runImageAdd(cmd, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "list ITEM_ID",
			Short: "List photos of an item",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runImageList(cmd, args[0])
			},
		},
		&cobra.Command{
			Use:   "delete IMAGE_ID",
			Short: "Detach a photo and remove its file",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return runImageDelete(args[0])
			},
		},
	)
	return imageCmd
}

func runImageAdd(cmd *cobra.Command, itemID, src string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	// fail early instead of copying a file that cannot be attached
	if _, err = s.store.Item(ctx, itemID); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	name, err := iofs.CopyImage(cfg.ImageDir(), src)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	id, err := s.store.AddImage(ctx, itemID, name)
	if err != nil {
		if rmErr := iofs.RemoveImage(cfg.ImageDir(), name); rmErr != nil {
			slog.Warn("Cannot remove copied image", "file", name, "error", rmErr)
		}
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Attached <em>%s</em> as <em>%s</em>", filepath.Base(src), name)
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runImageList(cmd *cobra.Command, itemID string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	imgs, err := s.store.Images(ctx, itemID)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	w := newTable(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tPATH")
	for _, img := range imgs {
		fmt.Fprintf(w, "%s\t%s\n", img.ID, filepath.Join(cfg.ImageDir(), img.Filename))
	}
	return w.Flush()
}

func runImageDelete(imageID string) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.Close()

	img, err := s.store.Image(ctx, imageID)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = s.store.DeleteImage(ctx, imageID); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// the row is gone, a leftover file is reported by 'verify'
	if err = iofs.RemoveImage(cfg.ImageDir(), img.Filename); err != nil {
		gn.Warn("Image detached, but its file was not removed: %s", err)
		return nil
	}

	gn.Info("Deleted image <em>%s</em>", img.Filename)
	return nil
}
