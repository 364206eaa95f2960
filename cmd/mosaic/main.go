// Command mosaic combines georeferenced TIFF inputs (with sibling .tfw
// world files) into a single output image.
//
// Usage:
//
//	mosaic -out result.tif [-policy first|coarse|fine] [-kernel nearest|bilinear] [-nodata N] a.tif b.tif ...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/wudi/rasterkit/coverage"
	"github.com/wudi/rasterkit/mosaic"
	"github.com/wudi/rasterkit/processing"
	"github.com/wudi/rasterkit/rasterio"
	"github.com/wudi/rasterkit/render"
	"github.com/wudi/rasterkit/resample"
)

func main() {
	out := flag.String("out", "mosaic.tif", "output image path (.tif or .png)")
	policyName := flag.String("policy", "first", "resolution policy: first, coarse or fine")
	kernelName := flag.String("kernel", "nearest", "resampling kernel: nearest or bilinear")
	noData := flag.Float64("nodata", 0, "input and output nodata value")
	alpha := flag.Bool("alpha", false, "treat the input alpha channel as a coverage mask")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: mosaic -out result.tif a.tif b.tif ...")
		os.Exit(1)
	}

	policy, err := mosaic.ParsePolicy(*policyName)
	if err != nil {
		fatal(err)
	}
	kernel, err := resample.ParseKernel(*kernelName)
	if err != nil {
		fatal(err)
	}

	sources := make([]*coverage.Coverage, 0, flag.NArg())
	for _, path := range flag.Args() {
		c, err := rasterio.ReadFile(path, rasterio.ReadOptions{NoData: *noData, Alpha: *alpha})
		if err != nil {
			fatal(fmt.Errorf("read %s: %w", path, err))
		}
		sources = append(sources, c)
	}

	p := processing.New()
	result, err := p.Mosaic(context.Background(), mosaic.Config{
		Sources: sources,
		Policy:  policy,
		Kernel:  kernel,
	})
	if err != nil {
		fatal(err)
	}

	img, err := render.Image(result)
	if err != nil {
		fatal(err)
	}
	if err := rasterio.WriteImageFile(*out, img); err != nil {
		fatal(err)
	}

	env := result.Envelope()
	fmt.Printf("%s: %dx%d pixels, envelope [%g %g %g %g], resolution %g\n",
		*out, result.Grid.Width, result.Grid.Height,
		env.MinX, env.MinY, env.MaxX, env.MaxY, result.Resolution())
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "mosaic:", err)
	os.Exit(1)
}
