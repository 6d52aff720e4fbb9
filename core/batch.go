package core

import (
	"context"
	"fmt"
	"image"
	"io"

	"golang.org/x/sync/errgroup"
)

// LoadBoundedAll runs LoadBounded over independent sources concurrently.
// Result i belongs to sources[i]. The first failure cancels sources that
// haven't started yet and is returned; no partial results are returned.
func (d *Decoder) LoadBoundedAll(ctx context.Context, sources []io.ReadSeeker, reqWidth int, reqHeight int) ([]*image.RGBA, error) {
	if err := validateRequested(reqWidth, reqHeight); err != nil {
		return nil, err
	}

	results := make([]*image.RGBA, len(sources))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			img, err := d.LoadBounded(src, reqWidth, reqHeight)
			if err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}
			results[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
