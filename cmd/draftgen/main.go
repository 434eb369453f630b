// Command draftgen turns drawing documents into host scripts or previews.
//
// Usage:
//
//	draftgen [-backend lisp|svg|raster] [-out dir] [-workers n] doc.yaml...
//
// Each document is written next to the others in the output directory,
// named after the document with the backend's extension.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/catalog"
	"github.com/gogpu/draft/config"
	"github.com/gogpu/draft/recording"

	_ "github.com/gogpu/draft/recording/backends/lisp"
	_ "github.com/gogpu/draft/recording/backends/raster"
	_ "github.com/gogpu/draft/recording/backends/svg"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "settings file (default $DRAFT_CONFIG or draft.yaml)")
		backend = flag.String("backend", "", "output backend: "+strings.Join(recording.Backends(), ", "))
		outDir  = flag.String("out", "", "output directory")
		workers = flag.Int("workers", 0, "parallel generations")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	settings, err := config.LoadSettings(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *backend != "" {
		settings.Render.Backend = *backend
	}
	if *outDir != "" {
		settings.Render.OutDir = *outDir
	}
	if *workers > 0 {
		settings.Render.Workers = *workers
	}
	level := settings.LogLevel()
	if *verbose {
		level = slog.LevelDebug
	}
	draft.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if _, err := recording.Lookup(settings.Render.Backend); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if failed := run(ctx, settings, flag.Args()); failed > 0 {
		log.Printf("%d of %d documents failed", failed, flag.NArg())
		os.Exit(1)
	}
}

// run generates every document and reports the number of failures.
func run(ctx context.Context, s config.Settings, paths []string) int {
	failed := 0
	var docs []*config.Document
	for _, p := range paths {
		doc, err := config.LoadFile(p)
		if err != nil {
			log.Printf("%s: %v", p, err)
			failed++
			continue
		}
		docs = append(docs, doc)
	}

	for _, r := range catalog.GenerateAll(ctx, docs, s.Render.Workers) {
		if r.Err == nil {
			r.Err = write(r, s)
		}
		if r.Err != nil {
			log.Printf("%s: %v", r.Doc.Source, r.Err)
			failed++
		}
	}
	return failed
}

func write(r catalog.BatchResult, s config.Settings) error {
	format, err := recording.Lookup(s.Render.Backend)
	if err != nil {
		return err
	}
	b := format.New()
	if err := r.Result.Playback(b); err != nil {
		return err
	}
	fb, ok := b.(recording.FileBackend)
	if !ok {
		return fmt.Errorf("backend %s cannot write files", s.Render.Backend)
	}
	base := strings.TrimSuffix(filepath.Base(r.Doc.Source), filepath.Ext(r.Doc.Source))
	out := filepath.Join(s.Render.OutDir, base+format.Extension)
	if err := fb.SaveToFile(out); err != nil {
		return err
	}
	draft.ComponentLogger("draftgen").Info("wrote drawing", "kind", r.Result.Kind, "path", out, "skipped", len(r.Result.Skipped))
	return nil
}
