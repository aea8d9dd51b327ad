// Package ioverify checks that every image row of the database has
// its file in the image directory, and finds files nobody refers to.
package ioverify

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/retroshelf/pkg/schema"
	"github.com/gnames/retroshelf/pkg/shelf"
	"golang.org/x/sync/errgroup"
)

type verifier struct {
	reader   shelf.Reader
	imageDir string
	jobs     int
	progress bool
}

// New creates a Verifier. Files are checked by jobs workers. When
// progress is true a progress bar is printed to stderr.
func New(
	reader shelf.Reader,
	imageDir string,
	jobs int,
	progress bool,
) shelf.Verifier {
	if jobs <= 0 {
		jobs = 1
	}
	return &verifier{
		reader:   reader,
		imageDir: imageDir,
		jobs:     jobs,
		progress: progress,
	}
}

// Verify runs the check. The database is only read once, stat calls
// run concurrently.
func (v *verifier) Verify(ctx context.Context) (shelf.VerifyResult, error) {
	var res shelf.VerifyResult

	imgs, err := v.reader.AllImages(ctx)
	if err != nil {
		return res, err
	}
	res.Checked = len(imgs)

	var bar *pb.ProgressBar
	if v.progress && len(imgs) > 0 {
		bar = newProgressBar(len(imgs), "Checking images: ")
		defer bar.Finish()
	}

	chIn := make(chan schema.ItemImage)
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for _, img := range imgs {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case chIn <- img:
			}
		}
		return nil
	})

	for range v.jobs {
		g.Go(func() error {
			for img := range chIn {
				exists, err := v.fileExists(img.Filename)
				if err != nil {
					return CheckError(img.Filename, err)
				}
				if bar != nil {
					bar.Increment()
				}
				if exists {
					continue
				}
				mu.Lock()
				res.Missing = append(res.Missing, img)
				mu.Unlock()
			}
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return res, err
	}

	sort.Slice(res.Missing, func(i, j int) bool {
		return res.Missing[i].Filename < res.Missing[j].Filename
	})

	res.Orphans, err = v.orphans(imgs)
	if err != nil {
		return res, err
	}

	slog.Info("Verified image files",
		"checked", res.Checked,
		"missing", len(res.Missing),
		"orphans", len(res.Orphans),
	)
	return res, nil
}

func (v *verifier) fileExists(name string) (bool, error) {
	fi, err := os.Stat(filepath.Join(v.imageDir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.Mode().IsRegular(), nil
}

func (v *verifier) orphans(imgs []schema.ItemImage) ([]string, error) {
	entries, err := os.ReadDir(v.imageDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, CheckError(v.imageDir, err)
	}

	known := make(map[string]struct{}, len(imgs))
	for _, img := range imgs {
		known[img.Filename] = struct{}{}
	}

	var res []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if _, ok := known[e.Name()]; !ok {
			res = append(res, e.Name())
		}
	}
	return res, nil
}
