// Command contour-edges renders the edges of an image as dark lines on a
// white background using a median-filtered absolute Laplacian.
//
// Usage:
//
//	contour-edges [flags] <image_path> [threshold]
//
// Pixels whose Laplacian response exceeds threshold (default 50) become
// black. After confirmation the result is saved as output.png.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ironsheep/contour-tools/internal/config"
	"github.com/ironsheep/contour-tools/internal/imaging"
	"github.com/ironsheep/contour-tools/internal/pipeline"
	"github.com/ironsheep/contour-tools/internal/report"
)

// OutputFile is the name of the saved edge image.
const OutputFile = "output.png"

// Version is set by ldflags during build.
var Version = "dev"

var errUsage = errors.New("usage error")

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := run(os.Args[1:], os.Stdout, nil); err != nil {
		if !errors.Is(err, errUsage) {
			log.Printf("Error: %v", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, confirmer report.Confirmer) error {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("contour-edges", flag.ContinueOnError)
	outDir := fs.String("out", cfg.OutputDir, "output directory for "+OutputFile)
	yes := fs.Bool("yes", false, "save the result without asking")
	showVersion := fs.Bool("version", false, "print version information")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: contour-edges [flags] <image_path> [threshold]")
		fmt.Fprintln(fs.Output())
		fmt.Fprintf(fs.Output(), "threshold is the Laplacian cut-off, 0-255 (default %d).\n", cfg.LaplaceThreshold)
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Flags:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	if *showVersion {
		fmt.Fprintf(stdout, "contour-edges %s\n", Version)
		return nil
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(fs.Output(), "Not enough parameters")
		fs.Usage()
		return errUsage
	}
	imagePath := fs.Arg(0)

	threshold := cfg.LaplaceThreshold
	if fs.NArg() >= 2 {
		t, err := strconv.Atoi(fs.Arg(1))
		if err != nil || t < 0 || t > 255 {
			fmt.Fprintf(fs.Output(), "Invalid threshold %q: must be an integer between 0 and 255\n", fs.Arg(1))
			fs.Usage()
			return errUsage
		}
		threshold = t
	}

	img, err := imaging.Load(imagePath)
	if err != nil {
		return err
	}

	edges, err := pipeline.LaplacianEdges(img, threshold)
	if err != nil {
		return fmt.Errorf("failed to compute edges: %w", err)
	}

	b := edges.Bounds()
	total := b.Dx() * b.Dy()
	edgePixels := total - imaging.CountNonZero(edges)
	fmt.Fprintf(stdout, "Image: %dx%d\n", b.Dx(), b.Dy())
	fmt.Fprintf(stdout, "Threshold: %d\n", threshold)
	fmt.Fprintf(stdout, "Edge pixels: %d of %d (%.2f%%)\n", edgePixels, total, 100*float64(edgePixels)/float64(total))

	if cfg.Debug() {
		log.Printf("contour-edges %s: %s threshold=%d", Version, imagePath, threshold)
	}

	if confirmer == nil {
		if *yes {
			confirmer = report.StaticConfirmer{Key: report.KeyEnter}
		} else {
			confirmer = report.NewTerminalConfirmer()
		}
	}

	key, err := confirmer.Confirm(fmt.Sprintf("Press Enter to save %s to %q (any other key to quit): ", OutputFile, *outDir))
	if err != nil {
		return err
	}
	if key != report.KeyEnter {
		fmt.Fprintln(stdout, "Result not saved")
		return nil
	}

	outPath := filepath.Join(*outDir, OutputFile)
	if err := imaging.Save(edges, outPath); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved %s\n", outPath)
	return nil
}
