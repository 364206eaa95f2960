// Package bandmath evaluates a JavaScript expression per pixel over the
// bands of a coverage, producing a single-band result. Band samples are
// exposed to the expression as b1..bN; pixels where any input band is
// nodata propagate nodata without evaluating.
package bandmath

import (
	"context"
	"errors"
	"fmt"

	"github.com/dop251/goja"

	"github.com/wudi/rasterkit/coverage"
	"github.com/wudi/rasterkit/raster"
)

// Config drives Run.
type Config struct {
	// Expression is a JavaScript expression over b1..bN, e.g.
	// "(b4 - b3) / (b4 + b3)".
	Expression string
	// NoData is the output nodata value.
	NoData float64
}

// Run evaluates the expression over every pixel of src. The returned
// coverage shares src's grid and CRS and carries one band.
func Run(ctx context.Context, src *coverage.Coverage, cfg Config) (*coverage.Coverage, error) {
	if src == nil {
		return nil, errors.New("nil source coverage")
	}
	if cfg.Expression == "" {
		return nil, errors.New("empty band math expression")
	}

	prog, err := goja.Compile("bandmath", cfg.Expression, true)
	if err != nil {
		return nil, fmt.Errorf("compile expression: %w", err)
	}

	vm := goja.New()
	done := make(chan struct{})
	defer close(done)
	defer vm.ClearInterrupt()
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	in := src.Raster
	bands := in.DataBands()
	out, err := raster.New(in.Width, in.Height, 1)
	if err != nil {
		return nil, err
	}
	out.NoData[0] = cfg.NoData

	names := make([]string, bands)
	for b := range names {
		names[b] = fmt.Sprintf("b%d", b+1)
	}

	for row := 0; row < in.Height; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for col := 0; col < in.Width; col++ {
			skip := false
			for b := 0; b < bands; b++ {
				v := in.At(b, col, row)
				if in.IsNoData(b, v) {
					skip = true
					break
				}
				if err := vm.Set(names[b], v); err != nil {
					return nil, err
				}
			}
			if skip {
				out.Set(0, col, row, cfg.NoData)
				continue
			}
			val, err := vm.RunProgram(prog)
			if err != nil {
				if interruptedErr, ok := err.(*goja.InterruptedError); ok {
					if cause := interruptedErr.Unwrap(); cause != nil {
						return nil, cause
					}
					return nil, context.Canceled
				}
				return nil, fmt.Errorf("evaluate expression: %w", err)
			}
			out.Set(0, col, row, val.ToFloat())
		}
	}
	return coverage.New(src.Name, out, src.Grid, src.CRS)
}
