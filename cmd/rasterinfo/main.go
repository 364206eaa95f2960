// Command rasterinfo prints the geometry, CRS and band statistics of a
// georeferenced TIFF.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/wudi/rasterkit/processing"
	"github.com/wudi/rasterkit/rasterio"
)

func main() {
	noData := flag.Float64("nodata", 0, "nodata value of the input")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rasterinfo [-nodata N] input.tif")
		os.Exit(1)
	}

	c, err := rasterio.ReadFile(flag.Arg(0), rasterio.ReadOptions{NoData: *noData})
	if err != nil {
		fatal(err)
	}

	env := c.Envelope()
	fmt.Printf("name:       %s\n", c.Name)
	fmt.Printf("size:       %d x %d pixels, %d bands\n", c.Grid.Width, c.Grid.Height, c.Raster.NumBands())
	fmt.Printf("crs:        %s\n", c.CRS.Name)
	fmt.Printf("envelope:   [%g %g %g %g]\n", env.MinX, env.MinY, env.MaxX, env.MaxY)
	fmt.Printf("resolution: %g x %g\n", c.Grid.ResX(), c.Grid.ResY())

	summary, err := processing.New().Stats(context.Background(), c)
	if err != nil {
		fatal(err)
	}
	for _, bs := range summary {
		fmt.Printf("band %d:     min=%g max=%g mean=%.4f stddev=%.4f valid=%d\n",
			bs.Band+1, bs.Min, bs.Max, bs.Mean, bs.StdDev, bs.Count)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "rasterinfo:", err)
	os.Exit(1)
}
