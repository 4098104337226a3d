package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"battcli/internal/battery"
	"battcli/internal/config"
	"battcli/internal/exporter"
	"battcli/internal/files"
	"battcli/internal/infrastructure"
	"battcli/pkg/contracts"
)

func main() {
	batteryIdx := flag.Int("battery", 0, "battery index to convert, e.g. 5 for B0005 (0 with -all converts everything)")
	all := flag.Bool("all", false, "convert every archive in the input directory")
	inDir := flag.String("in", "", "input directory for .mat archives (defaults to data/raw relative to executable)")
	outDir := flag.String("out", "", "output directory for converted datasets (defaults to data/processed relative to executable)")
	format := flag.String("format", "", "output format: csv, xlsx or parquet (defaults to configured format)")
	version := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if !*all && *batteryIdx <= 0 {
		fmt.Fprintln(os.Stderr, "usage: converter -battery N | converter -all")
		flag.PrintDefaults()
		os.Exit(2)
	}

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	// Use centralized directories as defaults if not specified
	if *inDir == "" {
		*inDir = paths.RawDir
	}
	if *outDir == "" {
		*outDir = paths.ProcessedDir
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:    "info",
				Output:   "both",
				FilePath: paths.GetLogPath("converter.log"),
			},
			Export: config.ExportConfig{
				Format:   "csv",
				ExcelBOM: true,
			},
		}
	}
	if *format != "" {
		cfg.Export.Format = *format
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	writer, err := exporter.ForFormat(cfg.Export)
	if err != nil {
		logger.ErrorContext(ctx, "Invalid export format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	outFormat, _ := exporter.ParseFormat(cfg.Export.Format)

	logger.InfoContext(ctx, "Starting battery dataset conversion",
		slog.String("version", contracts.Version),
		slog.String("input_dir", *inDir),
		slog.String("output_dir", *outDir),
		slog.String("format", string(outFormat)),
		slog.String("executable_dir", paths.ExecutableDir))

	archives, err := selectArchives(*inDir, *all, *batteryIdx)
	if err != nil {
		logger.ErrorContext(ctx, "Archive discovery failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(archives) == 0 {
		logger.WarnContext(ctx, "No archives found",
			slog.String("input_dir", *inDir))
		fmt.Println("Found 0 archives")
		return
	}

	logger.InfoContext(ctx, "Archives discovered", slog.Int("count", len(archives)))
	fmt.Printf("Found %d archives\n", len(archives))

	totalRows := 0
	for i, archive := range archives {
		name := strings.TrimSuffix(archive.Name, filepath.Ext(archive.Name))
		fmt.Printf("Converting %s (%d/%d)\n", name, i+1, len(archives))

		frame, summary, err := battery.ReadArchive(archive.Path)
		if err != nil {
			logger.ErrorContext(ctx, "Conversion failed",
				slog.String("archive", archive.Path),
				slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		outPath := filepath.Join(*outDir, name+outFormat.Ext())
		if err := writer.WriteFrame(outPath, frame); err != nil {
			logger.ErrorContext(ctx, "Export failed",
				slog.String("path", outPath),
				slog.String("error", err.Error()))
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		logger.InfoContext(ctx, "Battery converted",
			slog.String("battery", summary.Battery),
			slog.Int("cycles", summary.Cycles),
			slog.Int("rows", summary.Rows),
			slog.Int("columns", len(summary.Columns)),
			slog.String("output", outPath))
		totalRows += summary.Rows
	}

	logger.InfoContext(ctx, "Conversion complete",
		slog.Int("archives", len(archives)),
		slog.Int("total_rows", totalRows))
	fmt.Printf("Converted %d archives (%d rows)\n", len(archives), totalRows)
}

// selectArchives resolves the archive list: every well-named archive in
// the input directory, or the single archive for a battery index.
func selectArchives(inDir string, all bool, index int) ([]files.FileInfo, error) {
	discovery := files.NewDiscovery(inDir)
	if all {
		return discovery.FindArchives(".")
	}

	name := config.BatteryName(index) + config.ArchiveExt
	found, err := discovery.FindByPattern(".", name)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		// Let the reader produce its not-found error with the full path.
		return []files.FileInfo{{
			Path: filepath.Join(inDir, name),
			Name: name,
		}}, nil
	}
	return found, nil
}
