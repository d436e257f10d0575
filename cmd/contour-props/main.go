// Command contour-props detects the objects in one image and reports their
// properties: centroid, aspect ratio, extent, solidity, equivalent diameter,
// orientation and mean intensity.
//
// Usage:
//
//	contour-props [flags] <image_path> [threshold]
//
// After the report is printed, pressing Enter saves contours.png and
// object_props.json into the output directory.
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
	"github.com/ironsheep/contour-tools/internal/pipeline"
	"github.com/ironsheep/contour-tools/internal/report"
	"github.com/ironsheep/contour-tools/internal/store"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

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

// run executes the command. A nil confirmer prompts on the terminal unless
// -yes is given.
func run(args []string, stdout io.Writer, confirmer report.Confirmer) error {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("contour-props", flag.ContinueOnError)
	outDir := fs.String("out", cfg.OutputDir, "output directory for contours.png and object_props.json")
	blur := fs.Int("blur", cfg.BlurSize, "box blur kernel size before edge detection (0 = off)")
	backend := fs.String("backend", cfg.Backend, "edge/contour backend: native or opencv")
	dbPath := fs.String("db", cfg.DBPath, "record the run in this SQLite database")
	yes := fs.Bool("yes", false, "save results without asking")
	showVersion := fs.Bool("version", false, "print version information")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: contour-props [flags] <image_path> [threshold]")
		fmt.Fprintln(fs.Output())
		fmt.Fprintf(fs.Output(), "threshold is the Canny low threshold (default %d); the high one is twice it.\n", cfg.Threshold)
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Environment variables (also read from .env):")
		fmt.Fprintln(fs.Output(), "  CONTOUR_THRESHOLD, CONTOUR_BLUR, CONTOUR_OUTPUT_DIR, CONTOUR_BACKEND,")
		fmt.Fprintln(fs.Output(), "  CONTOUR_DB, CONTOUR_LOG_LEVEL=debug")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}

	if *showVersion {
		fmt.Fprintf(stdout, "contour-props %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return nil
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(fs.Output(), "Not enough parameters")
		fs.Usage()
		return errUsage
	}
	imagePath := fs.Arg(0)

	if fs.NArg() >= 2 {
		t, err := strconv.Atoi(fs.Arg(1))
		if err != nil || t < 0 {
			fmt.Fprintf(fs.Output(), "Invalid threshold %q: must be a non-negative integer\n", fs.Arg(1))
			fs.Usage()
			return errUsage
		}
		cfg.Threshold = t
	}

	cfg.OutputDir = *outDir
	cfg.BlurSize = *blur
	cfg.Backend = *backend
	cfg.DBPath = *dbPath
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Debug() {
		log.Printf("contour-props %s: image=%s threshold=%d blur=%d backend=%s",
			Version, imagePath, cfg.Threshold, cfg.BlurSize, cfg.Backend)
	}

	detector, err := pipeline.NewDetector(cfg.Backend)
	if err != nil {
		return err
	}

	res, err := pipeline.New(detector, pipeline.Options{Threshold: cfg.Threshold, BlurSize: cfg.BlurSize}).RunFile(imagePath)
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", imagePath, err)
	}

	if cfg.Debug() {
		log.Printf("Found %d contours, %d objects", len(res.Contours), len(res.Objects))
	}

	if err := report.Print(stdout, res.Objects); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Objects found: %d\n", len(res.Objects))

	if cfg.DBPath != "" {
		if err := recordRun(cfg, imagePath, res); err != nil {
			return err
		}
	}

	if confirmer == nil {
		if *yes {
			confirmer = report.StaticConfirmer{Key: report.KeyEnter}
		} else {
			confirmer = report.NewTerminalConfirmer()
		}
	}

	key, err := confirmer.Confirm(fmt.Sprintf("Press Enter to save results to %q (any other key to quit): ", cfg.OutputDir))
	if err != nil {
		return err
	}
	if key != report.KeyEnter {
		fmt.Fprintln(stdout, "Results not saved")
		return nil
	}

	paths, err := report.SaveResults(cfg.OutputDir, res.Edges.Bounds(), res.Contours, res.Objects)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(stdout, "Saved %s\n", p)
	}
	return nil
}

// recordRun stores the run in the SQLite history database.
func recordRun(cfg *config.Config, imagePath string, res *pipeline.Result) error {
	db, err := store.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	abs, err := filepath.Abs(imagePath)
	if err != nil {
		abs = imagePath
	}
	bounds := res.Edges.Bounds()
	run := &store.Run{
		ImagePath: abs,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Backend:   res.Backend,
		Threshold: res.Threshold,
		BlurSize:  cfg.BlurSize,
	}
	id, err := db.SaveRun(run, res.Objects)
	if err != nil {
		return err
	}
	if cfg.Debug() {
		log.Printf("Recorded run %d in %s", id, cfg.DBPath)
	}
	return nil
}
