// Package stats summarizes the sample distribution of a coverage, band by
// band, skipping nodata.
package stats

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/wudi/rasterkit/coverage"
)

// BandStats is the per-band summary of the valid samples.
type BandStats struct {
	Band   int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	// Count is the number of valid (non-nodata) samples.
	Count int
}

// Summarize computes BandStats for every band of c. Bands are processed in
// parallel; a band with no valid samples reports Count zero and zeroed
// moments.
func Summarize(ctx context.Context, c *coverage.Coverage) ([]BandStats, error) {
	if c == nil {
		return nil, errors.New("nil coverage")
	}
	r := c.Raster
	out := make([]BandStats, r.NumBands())

	g, ctx := errgroup.WithContext(ctx)
	for b := 0; b < r.NumBands(); b++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			valid := make([]float64, 0, len(r.Bands[b]))
			for _, v := range r.Bands[b] {
				if !r.IsNoData(b, v) {
					valid = append(valid, v)
				}
			}
			bs := BandStats{Band: b, Count: len(valid)}
			if len(valid) > 0 {
				bs.Min, bs.Max = valid[0], valid[0]
				for _, v := range valid[1:] {
					if v < bs.Min {
						bs.Min = v
					}
					if v > bs.Max {
						bs.Max = v
					}
				}
				bs.Mean, bs.StdDev = stat.MeanStdDev(valid, nil)
				if len(valid) == 1 {
					bs.StdDev = 0
				}
			}
			out[b] = bs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
