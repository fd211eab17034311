package parity

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/rbstable/internal/heapsim"
	"github.com/chazu/rbstable/rb"
)

// Pair is a reference implementation and the candidate checked against it.
// Both must describe the same interpreter version.
type Pair struct {
	Want, Got rb.API
}

// SweepHeaps runs each pair against the corpus built in its own simulated
// heap, laid out from the reference's facts. Pairs run concurrently; the
// reports come back in pair order.
func SweepHeaps(ctx context.Context, c *Corpus, pairs []Pair) ([]*Report, error) {
	reports := make([]*Report, len(pairs))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f := p.Want.Facts()
			h, err := heapsim.New(f, 0)
			if err != nil {
				return fmt.Errorf("ruby %s: %w", f.Version, err)
			}
			defer h.Close()

			samples, err := Build(c, HeapBuilder{Heap: h}, f)
			if err != nil {
				return fmt.Errorf("ruby %s: %w", f.Version, err)
			}
			reports[i] = Run(p.Want, p.Got, h, samples)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
