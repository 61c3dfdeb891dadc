// Package main is the entry point for the bib2json CLI, which converts
// BibTeX/BibLaTeX bibliographies into JSON.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"bib2json"
)

var version = "0.1.0"

var (
	cfgPath string
	verbose bool
	log     zerolog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bib2json [input.bib]",
		Short: "Convert BibTeX/BibLaTeX bibliographies to JSON",
		Long: `bib2json parses a bibtex/biblatex source file and writes its entries as a
JSON array in source order. @string macros are expanded, # concatenations
joined, and crossref/xdata fields inherited. Warnings (duplicate keys,
unresolved macros or crossref targets) go to stderr and do not abort the
run unless --strict is set.

Reads stdin when no input file is given. Files ending in .gz are
transparently decompressed on input and compressed on output.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: initRun,
		RunE:              runConvert,
		SilenceUsage:      true,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default ~/.config/bib2json.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	f := root.Flags()
	f.StringP("output", "o", "", "output file (default stdout)")
	f.Bool("strict", false, "treat malformed entries and self-references as failures")
	f.Bool("people", false, "add parsed authors/editors arrays to each entry")
	f.Bool("include-bibtex", false, "add a verbatim bibtex re-serialization to each entry")
	f.Bool("drop-crossref", false, "remove crossref/xdata fields after inheritance")
	f.Int("max-hops", 1, "crossref/xdata inheritance depth")
	f.String("sort", "", `sort records, e.g. "type,-year" (default: source order)`)
	f.String("indent", "", "JSON indentation string (default: compact)")
	bindFlags(f)

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bib2json v%s\n", version)
		},
	})
	root.AddCommand(configCmd())
	return root
}

func initRun(cmd *cobra.Command, args []string) error {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return initConfig()
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.options()

	in, name, closeIn, err := openInput(args)
	if err != nil {
		return err
	}
	defer closeIn()

	f, err := bib2json.Parse(in, name, opts)
	if f != nil {
		for _, d := range f.Diagnostics() {
			logDiag(d)
		}
	}
	if err != nil {
		return err
	}
	log.Debug().Int("entries", f.RecordCount()).Str("input", name).Msg("parsed")
	if dr := f.DuplicateReport(); dr.SetCount() > 0 {
		log.Debug().Msg(dr.String())
	}

	if cfg.Sort != "" {
		if err := bib2json.SortRecords(f, cfg.Sort); err != nil {
			return err
		}
	}

	out, closeOut, err := openOutput(cfg.Output)
	if err != nil {
		return err
	}
	if err := bib2json.WriteJSON(out, f, opts, cfg.Indent); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func logDiag(d bib2json.Diagnostic) {
	ev := log.Warn()
	if d.Severity == bib2json.Error {
		ev = log.Error()
	}
	ev.Int("line", d.Pos.Line).Int("offset", d.Pos.Offset)
	if d.Key != "" {
		ev.Str("key", d.Key)
	}
	ev.Msg(d.Message)
}

func openInput(args []string) (io.Reader, string, func(), error) {
	if len(args) == 0 {
		return os.Stdin, "stdin", func() {}, nil
	}
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("unable to open %q: %w", path, err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, path, func() { f.Close() }, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, "", nil, fmt.Errorf("unable to decompress %q: %w", path, err)
	}
	return zr, path, func() { zr.Close(); f.Close() }, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open %q for writing: %w", path, err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, f.Close, nil
	}
	zw := gzip.NewWriter(f)
	return zw, func() error {
		if err := zw.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}
