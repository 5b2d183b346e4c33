package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/iamaray/fixturegen/internal/fixtured"
	"github.com/iamaray/fixturegen/internal/logging"
	"github.com/iamaray/fixturegen/pkg/fixture"
	"github.com/iamaray/fixturegen/pkg/fixture/generator"
)

const (
	defaultServerURL = "http://localhost:8080"
	defaultOutputDir = "test_data"
)

func usage() {
	fmt.Fprintf(os.Stderr, `fixturegen %s - CSV fixture generator and catalog service

Usage: fixturegen <command> [flags]

Local commands:
  gen      Generate a fixture CSV on the local filesystem
  serve    Run the fixture catalog service

Remote commands (talk to a running service):
  push     Upload CSV files to the service
  pull     Download a fixture by ID
  ls       List catalogued fixtures
  info     Show one fixture's manifest
  rm       Delete a fixture
  status   Show service totals and available generators

Generators: %s

Run 'fixturegen <command> -h' for command flags.
`, fixture.Version, strings.Join(generator.List(), ", "))
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "push":
		fs := flag.NewFlagSet("push", flag.ExitOnError)
		server := fs.String("server", defaultServerURL, "Fixture service URL")
		fs.Parse(os.Args[2:])
		if fs.NArg() < 1 {
			log.Fatal("push requires at least one file path")
		}
		for _, path := range fs.Args() {
			pushFixtureHTTP(*server, path)
		}
	case "pull":
		fs := flag.NewFlagSet("pull", flag.ExitOnError)
		server := fs.String("server", defaultServerURL, "Fixture service URL")
		output := fs.String("output", "", "Output path, defaults to the fixture's filename")
		fs.Parse(os.Args[2:])
		if fs.NArg() < 1 {
			log.Fatal("pull requires a fixture ID")
		}
		pullFixtureHTTP(*server, fs.Arg(0), *output)
	case "ls":
		fs := flag.NewFlagSet("ls", flag.ExitOnError)
		server := fs.String("server", defaultServerURL, "Fixture service URL")
		fs.Parse(os.Args[2:])
		listFixturesHTTP(*server)
	case "info":
		fs := flag.NewFlagSet("info", flag.ExitOnError)
		server := fs.String("server", defaultServerURL, "Fixture service URL")
		fs.Parse(os.Args[2:])
		if fs.NArg() < 1 {
			log.Fatal("info requires a fixture ID")
		}
		fixtureInfoHTTP(*server, fs.Arg(0))
	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		server := fs.String("server", defaultServerURL, "Fixture service URL")
		fs.Parse(os.Args[2:])
		if fs.NArg() < 1 {
			log.Fatal("rm requires a fixture ID")
		}
		removeFixtureHTTP(*server, fs.Arg(0))
	case "status":
		fs := flag.NewFlagSet("status", flag.ExitOnError)
		server := fs.String("server", defaultServerURL, "Fixture service URL")
		fs.Parse(os.Args[2:])
		serviceStatusHTTP(*server)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	var (
		name   = fs.String("generator", "dummytable", "Generator to run")
		rows   = fs.Int64("rows", 0, "Number of rows to generate, 0 uses the generator default")
		output = fs.String("output", "", "Output CSV path, defaults to test_data/<generator>.csv")
		seed   = fs.Int64("seed", 0, "RNG seed, 0 picks a random seed")
	)
	fs.Parse(args)

	g, err := generator.Get(*name)
	if err != nil {
		log.Fatalf("%v (available: %s)", err, strings.Join(generator.List(), ", "))
	}

	count := *rows
	if count <= 0 {
		count = g.DefaultRows()
	}

	path := *output
	if path == "" {
		path = filepath.Join(defaultOutputDir, *name+".csv")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(g.Header()); err != nil {
		log.Fatalf("Failed to write header: %v", err)
	}

	g.Init(generator.NewRand(*seed))

	bar := progressbar.Default(count, "rows")
	for i := int64(0); i < count; i++ {
		if err := g.WriteRow(w); err != nil {
			log.Fatalf("Failed to write row %d: %v", i, err)
		}
		bar.Add(1)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("Failed to flush %s: %v", path, err)
	}
	if err := file.Close(); err != nil {
		log.Fatalf("Failed to close %s: %v", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		log.Fatalf("Failed to stat %s: %v", path, err)
	}

	fmt.Printf("\nWrote %s rows to %s (%s)\n",
		humanize.Comma(count), path, humanize.Bytes(uint64(info.Size())))
}

func runServe(args []string) {
	cfg := fixtured.LoadConfig()

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var (
		port    = fs.Int("port", cfg.Port, "HTTP listen port")
		db      = fs.String("db", cfg.DBPath, "Path to the manifest database, empty keeps manifests in memory")
		uploads = fs.String("uploads", cfg.UploadDir, "Directory for fixture files")
		seqURL  = fs.String("seq-url", cfg.SeqURL, "Seq ingestion URL for structured logs, empty logs to console only")
	)
	fs.Parse(args)
	cfg.Port = *port
	cfg.DBPath = *db
	cfg.UploadDir = *uploads
	cfg.SeqURL = *seqURL

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLogs := logging.SetupLogger(cfg.SeqURL, cfg.LogLevel)
	slog.SetDefault(logger)
	defer closeLogs()

	srv, err := fixtured.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to start fixture service: %v", err)
	}
	defer srv.Close()

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	srv.GetCatalog().StartSweeper(sweepCtx, cfg.SweepInterval)

	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down fixture service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("fixture service exited")
}
