// Command contour-mcp serves the contour tools over the Model Context
// Protocol on stdin/stdout.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/contour-tools/internal/config"
	"github.com/ironsheep/contour-tools/internal/pipeline"
	"github.com/ironsheep/contour-tools/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("contour-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("contour-mcp - MCP server for contour and object property analysis")
			fmt.Println()
			fmt.Println("Usage: contour-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from .env):")
			fmt.Println("  CONTOUR_BACKEND=native|opencv   Edge and contour backend")
			fmt.Println("  CONTOUR_LOG_LEVEL=debug         Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// stdout carries the protocol
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Contour MCP Server v%s (built %s, commit %s), backend %s", Version, BuildTime, GitCommit, cfg.Backend)
	}

	detector, err := pipeline.NewDetector(cfg.Backend)
	if err != nil {
		log.Fatalf("Backend error: %v", err)
	}

	server.Version = Version
	srv := server.New(detector)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
