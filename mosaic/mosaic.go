// Package mosaic combines georeferenced coverages sharing one CRS into a
// single output coverage. The output covers the union of the input
// envelopes (or a caller-imposed geometry), with the target resolution
// chosen by policy and uncovered pixels filled with a nodata value.
//
// Compositing is first-wins: for every output pixel the sources are probed
// in input order and the first valid sample is kept. Input order is the
// authoritative tie-break for overlapping sources.
package mosaic

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/wudi/rasterkit/coverage"
	"github.com/wudi/rasterkit/grid"
	"github.com/wudi/rasterkit/raster"
	"github.com/wudi/rasterkit/resample"
)

var (
	// ErrInvalidInput reports malformed arguments: no sources, degenerate
	// geometry, inconsistent band layouts.
	ErrInvalidInput = errors.New("invalid mosaic input")
	// ErrIncompatibleCRS reports sources whose CRS definitions differ.
	ErrIncompatibleCRS = errors.New("sources have incompatible CRS")
	// ErrMissingGeometry reports the external policy without a geometry.
	ErrMissingGeometry = errors.New("external policy requires a grid geometry")
)

// Policy selects the output resolution when sources disagree.
type Policy int

const (
	// PolicyFirst uses the first source's resolution.
	PolicyFirst Policy = iota
	// PolicyCoarse uses the largest pixel size among the sources.
	PolicyCoarse
	// PolicyFine uses the smallest pixel size among the sources.
	PolicyFine
	// PolicyExternal takes resolution and extent from Config.Geometry.
	PolicyExternal
)

func (p Policy) String() string {
	switch p {
	case PolicyFirst:
		return "first"
	case PolicyCoarse:
		return "coarse"
	case PolicyFine:
		return "fine"
	case PolicyExternal:
		return "external"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy maps the CLI spelling of a policy to its value.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "first", "":
		return PolicyFirst, nil
	case "coarse":
		return PolicyCoarse, nil
	case "fine":
		return PolicyFine, nil
	case "external":
		return PolicyExternal, nil
	}
	return 0, fmt.Errorf("unknown mosaic policy %q", s)
}

// Config enumerates every recognized option of the operation.
type Config struct {
	// Sources are probed in order; the slice must not be empty.
	Sources []*coverage.Coverage
	// Policy defaults to PolicyFirst.
	Policy Policy
	// Geometry imposes extent and resolution under PolicyExternal. Ignored
	// otherwise.
	Geometry *grid.Geometry
	// OutputNoData fills uncovered pixels. A single value broadcasts over
	// all output bands. Nil: the first source's nodata.
	OutputNoData []float64
	// Kernel is the resampling used to align sources; defaults to Nearest.
	Kernel resample.Kernel
	// Workers caps the compositing parallelism; defaults to GOMAXPROCS.
	Workers int
}

// Run executes the mosaic. It validates eagerly, resolves the target
// geometry, then composites row stripes in parallel. The result is
// deterministic for identical inputs.
func Run(ctx context.Context, cfg Config) (*coverage.Coverage, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	target, err := resolveGeometry(cfg)
	if err != nil {
		return nil, err
	}

	first := cfg.Sources[0]
	bands := first.Raster.DataBands()

	out, err := raster.New(target.Width, target.Height, bands)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	noData, err := outputNoData(cfg, bands)
	if err != nil {
		return nil, err
	}
	copy(out.NoData, noData)

	samplers := make([]*resample.Sampler, len(cfg.Sources))
	for i, src := range cfg.Sources {
		s, err := resample.NewSampler(src, cfg.Kernel, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: source %d: %v", ErrInvalidInput, i, err)
		}
		samplers[i] = s
	}

	if err := composite(ctx, cfg, samplers, out, target); err != nil {
		return nil, err
	}
	return coverage.New("mosaic", out, target, first.CRS)
}

func validate(cfg Config) error {
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("%w: no sources", ErrInvalidInput)
	}
	first := cfg.Sources[0]
	for i, src := range cfg.Sources {
		if src == nil || src.Raster == nil {
			return fmt.Errorf("%w: source %d is nil", ErrInvalidInput, i)
		}
		if err := src.Grid.Validate(); err != nil {
			return fmt.Errorf("%w: source %d: %v", ErrInvalidInput, i, err)
		}
		if !src.CRS.Equal(first.CRS) {
			return fmt.Errorf("%w: source %d (%q) does not match source 0 (%q)",
				ErrIncompatibleCRS, i, src.CRS.Name, first.CRS.Name)
		}
		if src.Raster.DataBands() != first.Raster.DataBands() {
			return fmt.Errorf("%w: source %d has %d data bands, source 0 has %d",
				ErrInvalidInput, i, src.Raster.DataBands(), first.Raster.DataBands())
		}
	}
	if cfg.Policy == PolicyExternal && cfg.Geometry == nil {
		return ErrMissingGeometry
	}
	if cfg.Geometry != nil {
		if err := cfg.Geometry.Validate(); err != nil {
			return fmt.Errorf("%w: external geometry: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

// resolveGeometry applies the resolution policy. Union policies anchor the
// grid at the union envelope and take the pixel sizes of the policy-selected
// source; the external policy uses the caller geometry verbatim.
func resolveGeometry(cfg Config) (grid.Geometry, error) {
	if cfg.Policy == PolicyExternal {
		return *cfg.Geometry, nil
	}
	env := cfg.Sources[0].Envelope()
	for _, src := range cfg.Sources[1:] {
		env = env.Union(src.Envelope())
	}
	ref := cfg.Sources[0]
	switch cfg.Policy {
	case PolicyCoarse:
		for _, src := range cfg.Sources[1:] {
			if src.Resolution() > ref.Resolution() {
				ref = src
			}
		}
	case PolicyFine:
		for _, src := range cfg.Sources[1:] {
			if src.Resolution() < ref.Resolution() {
				ref = src
			}
		}
	}
	g, err := grid.FromEnvelope(env, ref.Grid.ResX(), ref.Grid.ResY())
	if err != nil {
		return grid.Geometry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return g, nil
}

func outputNoData(cfg Config, bands int) ([]float64, error) {
	switch len(cfg.OutputNoData) {
	case 0:
		src := cfg.Sources[0].Raster
		out := make([]float64, bands)
		copy(out, src.NoData[:bands])
		return out, nil
	case 1:
		out := make([]float64, bands)
		for i := range out {
			out[i] = cfg.OutputNoData[0]
		}
		return out, nil
	case bands:
		return append([]float64(nil), cfg.OutputNoData...), nil
	}
	return nil, fmt.Errorf("%w: %d nodata values for %d output bands",
		ErrInvalidInput, len(cfg.OutputNoData), bands)
}

// composite runs the first-wins pass over disjoint row stripes. Workers
// never write overlapping output regions, so no locking is needed; the
// errgroup is the fan-in barrier.
func composite(ctx context.Context, cfg Config, samplers []*resample.Sampler, out *raster.Raster, target grid.Geometry) error {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > target.Height {
		workers = target.Height
	}

	g, ctx := errgroup.WithContext(ctx)
	stripe := (target.Height + workers - 1) / workers
	for start := 0; start < target.Height; start += stripe {
		end := start + stripe
		if end > target.Height {
			end = target.Height
		}
		g.Go(func() error {
			return compositeRows(ctx, cfg, samplers, out, target, start, end)
		})
	}
	return g.Wait()
}

func compositeRows(ctx context.Context, cfg Config, samplers []*resample.Sampler, out *raster.Raster, target grid.Geometry, startRow, endRow int) error {
	bands := out.NumBands()
	bufs := make([][]float64, len(cfg.Sources))
	for i, src := range cfg.Sources {
		bufs[i] = make([]float64, src.Raster.NumBands())
	}
	for row := startRow; row < endRow; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for col := 0; col < target.Width; col++ {
			x, y := target.PixelToWorld(float64(col)+0.5, float64(row)+0.5)
			written := false
			for i, sampler := range samplers {
				src := cfg.Sources[i].Raster
				buf := bufs[i]
				if !sampler.Sample(x, y, buf) {
					continue
				}
				if !validSample(src, buf) {
					continue
				}
				for b := 0; b < bands; b++ {
					out.Set(b, col, row, buf[b])
				}
				written = true
				break
			}
			if !written {
				for b := 0; b < bands; b++ {
					out.Set(b, col, row, out.NoData[b])
				}
			}
		}
	}
	return nil
}

// validSample decides whether a source contributes at a pixel: the alpha
// mask, when present, must be opaque, and at least one data band must carry
// a real measurement.
func validSample(src *raster.Raster, sample []float64) bool {
	if src.AlphaBand && sample[len(sample)-1] == 0 {
		return false
	}
	for b := 0; b < src.DataBands(); b++ {
		if !src.IsNoData(b, sample[b]) {
			return true
		}
	}
	return false
}
