// Command atlas manages the SQLite archive of generated maps: importing
// payload files, listing archived maps, and exporting them back out.
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

	"github.com/talgya/crownlands/internal/persistence"
	"github.com/talgya/crownlands/internal/realm"
)

const usage = `usage: atlas [-db path] <command> [args]

commands:
  import <payload.json[.zst]>   validate and archive a payload file
  list                          list archived maps
  export <id> <out.json>        write an archived payload to a file
  delete <id>                   remove an archived map
`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	dbPath := flag.String("db", "data/atlas.db", "archive database path")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open archive", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	switch flag.Arg(0) {
	case "import":
		err = runImport(db, flag.Arg(1))
	case "list":
		err = runList(db)
	case "export":
		err = runExport(db, flag.Arg(1), flag.Arg(2))
	case "delete":
		err = runDelete(db, flag.Arg(1))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func runImport(db *persistence.DB, path string) error {
	if path == "" {
		return fmt.Errorf("import: payload path required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return fmt.Errorf("init decompressor: %w", err)
		}
		defer dec.Close()
		raw, err = dec.DecodeAll(raw, nil)
		if err != nil {
			return fmt.Errorf("decompress payload: %w", err)
		}
	}

	data, err := realm.Validate(raw)
	if err != nil {
		return err
	}

	id, err := db.SaveMap(data)
	if err != nil {
		return err
	}
	fmt.Printf("imported %s as %s\n", path, id)
	return nil
}

func runList(db *persistence.DB) error {
	records, err := db.ListMaps()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("archive is empty")
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%s  seed=%-12d %4dx%-4d c/d/k=%d/%d/%d  v%d  %8s  %s\n",
			rec.ID, rec.Seed, rec.Width, rec.Height,
			rec.Counties, rec.Duchies, rec.Kingdoms,
			rec.Version, humanize.Bytes(uint64(rec.SizeBytes)), rec.CreatedAt)
	}
	return nil
}

func runExport(db *persistence.DB, id, out string) error {
	if id == "" || out == "" {
		return fmt.Errorf("export: id and output path required")
	}

	data, err := db.LoadMap(id)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	if err := os.WriteFile(out, raw, 0o644); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	fmt.Printf("exported %s to %s (%s)\n", id, out, humanize.Bytes(uint64(len(raw))))
	return nil
}

func runDelete(db *persistence.DB, id string) error {
	if id == "" {
		return fmt.Errorf("delete: id required")
	}
	return db.DeleteMap(id)
}
