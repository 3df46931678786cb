// Command datapackage loads a data package descriptor, prints every problem
// found while building and verifying it, and optionally exports the
// normalized descriptor.
//
// Usage:
//
//	datapackage [-strict] [-lang en|ja] [-report text|json] [-duplicates warn|error|ignore] [-assign-id] <package-path> [export-path]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/reoring/datapackage"
	"github.com/reoring/datapackage/diag"
	"github.com/reoring/datapackage/i18n"
	"github.com/reoring/datapackage/internal/config"
	"github.com/reoring/datapackage/internal/logging"
)

// Version is overridden at link time.
var Version = "0.1.0"

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	fs := flag.NewFlagSet("datapackage", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strict := fs.Bool("strict", cfg.Check.Strict, "treat warnings as validation failures")
	lang := fs.String("lang", cfg.Check.Lang, "message language (en, ja)")
	report := fs.String("report", cfg.Check.Report, "item output format (text, json)")
	dups := fs.String("duplicates", cfg.Check.DuplicateKeys, "duplicate key policy (warn, error, ignore)")
	assignID := fs.Bool("assign-id", false, "assign a random UUID id before exporting when the package has none")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, stderr)
	logger.Debug("configuration", "config", cfg.String())

	policy, err := datapackage.ParseDuplicatePolicy(*dups)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if !i18n.Supported(*lang) {
		fmt.Fprintf(stderr, "unsupported language %q\n", *lang)
		return 2
	}
	i18n.SetLanguage(*lang)
	printer := itemPrinter{w: stdout, json: *report == "json"}

	fmt.Fprintf(stdout, "datapackage version %s\n", Version)
	if fs.NArg() < 1 {
		fmt.Fprintln(stdout, "Missing package path argument.")
		return 1
	}
	path := fs.Arg(0)

	loadLog := diag.New()
	pkg, err := datapackage.LoadFile(ctx, path, datapackage.DefaultRegistry(), loadLog, datapackage.LoadOpt{
		Duplicates: policy,
		MaxDepth:   cfg.Check.MaxDepth,
		MaxBytes:   cfg.Check.MaxBytes,
	})
	printer.print(loadLog.Items())
	if err == nil {
		err = loadLog.Err()
	}
	if err != nil {
		logger.Error("load failed", slog.String("path", path), slog.Any("err", err))
		fmt.Fprintln(stdout, "Package failed to load.")
		return 1
	}
	logger.Info("loaded", slog.String("path", path), slog.String("profile", pkg.Base().Profile), slog.Int("resources", len(pkg.Base().Resources)))

	verifyLog := diag.New()
	ok := pkg.Verify(verifyLog)
	printer.print(verifyLog.Items())
	if !ok || (*strict && (loadLog.Len() > 0 || verifyLog.Len() > 0)) {
		fmt.Fprintln(stdout, "Package failed to validate.")
		return 1
	}
	fmt.Fprintln(stdout, "Package okay.")

	if fs.NArg() < 2 {
		return 0
	}
	out := fs.Arg(1)
	if *assignID {
		id := pkg.Base().EnsureIdentifier()
		logger.Debug("identifier", slog.String("id", id))
	}
	fmt.Fprintf(stdout, "Exporting to '%s'\n", out)
	if err := datapackage.Save(pkg, out); err != nil {
		logger.Error("export failed", slog.String("path", out), slog.Any("err", err))
		fmt.Fprintln(stdout, "Package failed to export.")
		return 1
	}
	fmt.Fprintln(stdout, "Package exported.")
	return 0
}

type itemPrinter struct {
	w    io.Writer
	json bool
}

type itemRecord struct {
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Path     string `json:"path"`
	Pointer  string `json:"pointer"`
	Message  string `json:"message"`
}

func (p itemPrinter) print(items diag.Items) {
	for _, it := range items {
		if !p.json {
			fmt.Fprintln(p.w, it.String())
			continue
		}
		full := it.FullPath()
		b, err := json.Marshal(itemRecord{
			Severity: it.Severity.String(),
			Kind:     it.Entry.Kind.String(),
			Path:     full.String(),
			Pointer:  full.Pointer(),
			Message:  it.Message(),
		})
		if err != nil {
			fmt.Fprintln(p.w, it.String())
			continue
		}
		fmt.Fprintln(p.w, string(b))
	}
}
