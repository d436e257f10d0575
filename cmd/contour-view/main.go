// Command contour-view loads an image, reports its dimensions and format,
// and saves a copy as output_img.png when 's' is pressed.
//
// Usage:
//
//	contour-view [flags] <image_path>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/ironsheep/contour-tools/internal/config"
	"github.com/ironsheep/contour-tools/internal/imaging"
	"github.com/ironsheep/contour-tools/internal/report"
)

// OutputFile is the name of the saved copy.
const OutputFile = "output_img.png"

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

	fs := flag.NewFlagSet("contour-view", flag.ContinueOnError)
	outDir := fs.String("out", cfg.OutputDir, "output directory for "+OutputFile)
	yes := fs.Bool("yes", false, "save the copy without asking")
	showVersion := fs.Bool("version", false, "print version information")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: contour-view [flags] <image_path>")
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
		fmt.Fprintf(stdout, "contour-view %s\n", Version)
		return nil
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	imagePath := fs.Arg(0)

	img, err := imaging.Load(imagePath)
	if err != nil {
		return err
	}
	info, err := imaging.LoadImageInfo(imagePath)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Image: %s\n", imagePath)
	fmt.Fprintf(stdout, "  size: %dx%d\n", info.Width, info.Height)
	fmt.Fprintf(stdout, "  format: %s\n", info.Format)
	fmt.Fprintf(stdout, "  channels: %d (%s)\n", info.Channels, info.ColorDepth)
	fmt.Fprintf(stdout, "  file_size: %d bytes\n", info.FileSizeBytes)

	if confirmer == nil {
		if *yes {
			confirmer = report.StaticConfirmer{Key: 's'}
		} else {
			confirmer = report.NewTerminalConfirmer()
		}
	}

	key, err := confirmer.Confirm("Press 's' to save a copy (any other key to quit): ")
	if err != nil {
		return err
	}
	if key != 's' && key != 'S' {
		return nil
	}

	outPath := filepath.Join(*outDir, OutputFile)
	if err := imaging.Save(img, outPath); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved %s\n", outPath)
	if cfg.Debug() {
		log.Printf("contour-view %s: copied %s to %s", Version, imagePath, outPath)
	}
	return nil
}
