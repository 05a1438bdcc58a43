package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/contour-labs/recdiff/core/cli"
	"github.com/contour-labs/recdiff/core/diff"
	"github.com/contour-labs/recdiff/pkg/document"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runCompare := func(ctx context.Context, opts cli.CompareOptions) error {
		logger, err := newLogger(opts.Verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		base, err := document.Load(opts.Base)
		if err != nil {
			return fmt.Errorf("loading base document: %w", err)
		}
		logger.Debug("loaded base document", zap.String("path", opts.Base))

		other, err := document.Load(opts.Other)
		if err != nil {
			return fmt.Errorf("loading other document: %w", err)
		}
		logger.Debug("loaded other document", zap.String("path", opts.Other))

		// Loaded documents carry inferred types, so duck typing is always
		// on: two documents never share a declared type.
		res, err := diff.Compare(base, other, nil,
			diff.DuckType(true),
			diff.IgnoreCase(opts.IgnoreCase),
			diff.IgnoreWhitespace(!opts.KeepWhitespace),
			diff.NormalizeUnicode(!opts.RawUnicode),
			diff.IgnoreEmptySlots(opts.IgnoreEmpty),
			diff.EmitUnchanged(opts.Unchanged),
			diff.Extraneous(opts.Extraneous),
		)
		if err != nil {
			return err
		}
		logger.Debug("comparison finished", zap.Int("entries", res.Len()))

		if opts.Format == "json" {
			err = writeJSON(os.Stdout, res)
		} else {
			err = writeText(os.Stdout, res)
		}
		if err != nil {
			return err
		}

		if hasDifferences(res) {
			return cli.ErrDifferencesFound
		}
		return nil
	}

	root := cli.NewRootCmd(version)
	root.AddCommand(cli.NewCompareCmd(runCompare))

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrDifferencesFound) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "recdiff: %v\n", err)
		os.Exit(2)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

func hasDifferences(res *diff.Result) bool {
	for _, e := range res.Entries {
		if e.Kind != diff.Unchanged {
			return true
		}
	}
	return false
}

func writeText(w io.Writer, res *diff.Result) error {
	for _, e := range res.Entries {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return err
		}
	}
	return nil
}

// jsonEntry is the wire form of one change entry.
type jsonEntry struct {
	Kind  string `json:"kind"`
	Base  string `json:"base"`
	Other string `json:"other"`
}

func writeJSON(w io.Writer, res *diff.Result) error {
	out := struct {
		BaseType  string      `json:"base_type"`
		OtherType string      `json:"other_type"`
		Entries   []jsonEntry `json:"entries"`
	}{
		BaseType:  res.BaseType,
		OtherType: res.OtherType,
		Entries:   make([]jsonEntry, 0, len(res.Entries)),
	}
	for _, e := range res.Entries {
		out.Entries = append(out.Entries, jsonEntry{
			Kind:  e.Kind.Token(),
			Base:  e.Base.Path(),
			Other: e.Other.Path(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
