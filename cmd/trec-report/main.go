package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/homescope/trec-report/internal/config"
	"github.com/homescope/trec-report/internal/inspection"
	"github.com/homescope/trec-report/internal/report"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging directs log output to stderr so stdout stays a clean
// summary channel.
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	if !run(cfg) {
		os.Exit(1)
	}
}

// run executes the full pipeline and reports success as a boolean so
// every failure path funnels through one exit point.
func run(cfg *config.Config) bool {
	// Both inputs must exist before any processing starts.
	for _, path := range []string{cfg.DataPath, cfg.TemplatePath} {
		if _, err := os.Stat(path); err != nil {
			log.Printf("Required input not available: %v", err)
			return false
		}
	}

	rec, err := inspection.Load(cfg.DataPath)
	if err != nil {
		log.Printf("Failed to load inspection record: %v", err)
		return false
	}

	stats := rec.Stats()
	fmt.Printf("Parsed inspection record: %s\n", cfg.DataPath)
	fmt.Printf("  Property:     %s\n", orUnknown(rec.PropertyInfo().FullAddress))
	fmt.Printf("  Sections:     %d\n", stats.Sections)
	fmt.Printf("  Line items:   %d\n", stats.LineItems)
	fmt.Printf("  Comments:     %d\n", stats.Comments)
	fmt.Printf("  Deficiencies: %d\n", stats.Deficiencies)

	populator := &report.Populator{
		TemplatePath: cfg.TemplatePath,
		Flatten:      cfg.Flatten,
	}

	res, err := populator.Generate(rec, cfg.OutputPath)
	if err != nil {
		log.Printf("Failed to generate report: %v", err)
		return false
	}

	fmt.Printf("Generated report: %s\n", res.OutputPath)
	fmt.Printf("  Template fields: %d across %d pages\n", res.FieldCount, res.PageCount)
	fmt.Printf("  Header fields:   %d\n", res.ScalarFields)
	fmt.Printf("  Checkboxes:      %d\n", res.Checkboxes)
	fmt.Printf("  Comment fields:  %d\n", res.CommentFields)
	if res.Flattened {
		fmt.Println("  Form flattened to non-interactive content")
	}

	return true
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("TREC Report Generator\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
