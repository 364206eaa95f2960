// Package processing is the operation surface of the library: a Processor
// owning the named coverage operations (Mosaic, Resample, BandMath, Stats),
// each driven by its typed configuration and instrumented through the
// observability hooks.
package processing

import (
	"context"
	"time"

	"github.com/wudi/rasterkit/bandmath"
	"github.com/wudi/rasterkit/coverage"
	"github.com/wudi/rasterkit/mosaic"
	"github.com/wudi/rasterkit/observability"
	"github.com/wudi/rasterkit/resample"
	"github.com/wudi/rasterkit/stats"
)

// Processor runs coverage operations with shared logging and tracing.
// The zero value is not usable; construct through New.
type Processor struct {
	log    observability.Logger
	tracer observability.Tracer
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger installs the logger used by every operation.
func WithLogger(log observability.Logger) Option {
	return func(p *Processor) { p.log = log }
}

// WithTracer installs the tracer used by every operation.
func WithTracer(tracer observability.Tracer) Option {
	return func(p *Processor) { p.tracer = tracer }
}

// New builds a Processor. Without options all instrumentation is a no-op.
func New(opts ...Option) *Processor {
	p := &Processor{
		log:    observability.NopLogger{},
		tracer: observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Operations lists the operation names this processor understands.
func (p *Processor) Operations() []string {
	return []string{"Mosaic", "Resample", "BandMath", "Stats"}
}

// Mosaic combines the configured sources into one coverage.
func (p *Processor) Mosaic(ctx context.Context, cfg mosaic.Config) (*coverage.Coverage, error) {
	ctx, span := p.tracer.StartSpan(ctx, "Mosaic")
	defer span.Finish()
	span.SetTag("sources", len(cfg.Sources))
	span.SetTag("policy", cfg.Policy.String())

	start := time.Now()
	out, err := mosaic.Run(ctx, cfg)
	if err != nil {
		span.SetError(err)
		p.log.Error("mosaic failed",
			observability.Int(observability.MetricSourceCount, len(cfg.Sources)),
			observability.Error("error", err))
		return nil, err
	}
	p.log.Info("mosaic complete",
		observability.Int(observability.MetricSourceCount, len(cfg.Sources)),
		observability.Int(observability.MetricPixelCount, out.Grid.Width*out.Grid.Height),
		observability.Float64(observability.MetricMosaicTime, time.Since(start).Seconds()))
	return out, nil
}

// Resample warps a coverage onto a new grid geometry and/or CRS.
func (p *Processor) Resample(ctx context.Context, src *coverage.Coverage, cfg resample.Config) (*coverage.Coverage, error) {
	ctx, span := p.tracer.StartSpan(ctx, "Resample")
	defer span.Finish()
	span.SetTag("kernel", cfg.Kernel.String())

	start := time.Now()
	out, err := resample.Warp(ctx, src, cfg)
	if err != nil {
		span.SetError(err)
		p.log.Error("resample failed", observability.Error("error", err))
		return nil, err
	}
	p.log.Info("resample complete",
		observability.Int(observability.MetricPixelCount, out.Grid.Width*out.Grid.Height),
		observability.Float64(observability.MetricResampleTime, time.Since(start).Seconds()))
	return out, nil
}

// BandMath evaluates a per-pixel expression over the bands of a coverage.
func (p *Processor) BandMath(ctx context.Context, src *coverage.Coverage, cfg bandmath.Config) (*coverage.Coverage, error) {
	ctx, span := p.tracer.StartSpan(ctx, "BandMath")
	defer span.Finish()

	start := time.Now()
	out, err := bandmath.Run(ctx, src, cfg)
	if err != nil {
		span.SetError(err)
		p.log.Error("band math failed", observability.Error("error", err))
		return nil, err
	}
	p.log.Info("band math complete",
		observability.Float64(observability.MetricBandMathTime, time.Since(start).Seconds()))
	return out, nil
}

// Stats summarizes every band of a coverage.
func (p *Processor) Stats(ctx context.Context, src *coverage.Coverage) ([]stats.BandStats, error) {
	ctx, span := p.tracer.StartSpan(ctx, "Stats")
	defer span.Finish()

	start := time.Now()
	out, err := stats.Summarize(ctx, src)
	if err != nil {
		span.SetError(err)
		p.log.Error("stats failed", observability.Error("error", err))
		return nil, err
	}
	p.log.Info("stats complete",
		observability.Int(observability.MetricBandCount, len(out)),
		observability.Float64(observability.MetricStatsTime, time.Since(start).Seconds()))
	return out, nil
}
