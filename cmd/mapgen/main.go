// Command mapgen generates a Crownlands world map payload — grid,
// de jure/de facto hierarchies, titles and characters — and writes the
// self-validated JSON to a file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zstd"

	"github.com/talgya/crownlands/internal/config"
	"github.com/talgya/crownlands/internal/realm"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		seed       = flag.Int64("seed", 9527, "generation seed")
		width      = flag.Int("width", 0, "grid width in tiles (0 = config default)")
		height     = flag.Int("height", 0, "grid height in tiles (0 = config default)")
		counties   = flag.Int("counties", 0, "county count (0 = config default)")
		duchies    = flag.Int("duchies", 0, "duchy count (0 = config default)")
		kingdoms   = flag.Int("kingdoms", 0, "kingdom count (0 = config default)")
		configPath = flag.String("config", "", "optional YAML parameter file")
		out        = flag.String("out", "map.json", "output path")
		compress   = flag.Bool("compress", false, "zstd-compress the output")
		minimal    = flag.Bool("minimal", false, "emit the version 1 payload without titles or characters")
		noTerrain  = flag.Bool("no-terrain", false, "omit the terrain layer")
	)
	flag.Parse()

	// ── Parameters: defaults < config file < flags ────────────────────
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	applyOverride(&cfg.Width, *width)
	applyOverride(&cfg.Height, *height)
	applyOverride(&cfg.Counties, *counties)
	applyOverride(&cfg.Duchies, *duchies)
	applyOverride(&cfg.Kingdoms, *kingdoms)
	if *noTerrain {
		cfg.Terrain = false
	}

	params := realm.Params{
		Seed:       *seed,
		Width:      cfg.Width,
		Height:     cfg.Height,
		TileSizePx: cfg.TileSizePx,
		ChunkSize:  cfg.ChunkSize,
		Counties:   cfg.Counties,
		Duchies:    cfg.Duchies,
		Kingdoms:   cfg.Kingdoms,
		Variant:    realm.WithTitles,
		Terrain:    cfg.Terrain,
	}
	if *minimal {
		params.Variant = realm.Minimal
	}

	// ── Generation ────────────────────────────────────────────────────
	slog.Info("generating map",
		"seed", params.Seed,
		"tiles", humanize.Comma(int64(params.Width*params.Height)),
		"counties", params.Counties,
		"duchies", params.Duchies,
		"kingdoms", params.Kingdoms,
	)

	data, err := realm.Generate(params)
	if err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to encode payload", "error", err)
		os.Exit(1)
	}

	// Self-validate the exact bytes that will be written: the output is
	// the wire contract with the consuming application.
	if _, err := realm.Validate(raw); err != nil {
		slog.Error("generated payload failed validation", "error", err)
		os.Exit(1)
	}

	// ── Output ────────────────────────────────────────────────────────
	path := *out
	if *compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			slog.Error("failed to init compressor", "error", err)
			os.Exit(1)
		}
		compressed := enc.EncodeAll(raw, nil)
		enc.Close()
		slog.Info("payload compressed",
			"raw", humanize.Bytes(uint64(len(raw))),
			"compressed", humanize.Bytes(uint64(len(compressed))),
		)
		raw = compressed
		if !strings.HasSuffix(path, ".zst") {
			path += ".zst"
		}
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		slog.Error("failed to write output", "path", path, "error", err)
		os.Exit(1)
	}
	slog.Info("map written", "path", path, "size", humanize.Bytes(uint64(len(raw))))

	fmt.Printf("Crownlands map ready: %d kingdoms, %d duchies, %d counties over %s tiles (seed %d).\n",
		params.Kingdoms, params.Duchies, params.Counties,
		humanize.Comma(int64(params.Width*params.Height)), params.Seed)
}

// applyOverride replaces dst when a flag was set to a positive value.
func applyOverride(dst *int, flagValue int) {
	if flagValue > 0 {
		*dst = flagValue
	}
}
