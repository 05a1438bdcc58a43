package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrDifferencesFound is returned by the compare handler when the two
// documents differ. The wiring layer maps it to exit status 1, keeping it
// apart from real failures.
var ErrDifferencesFound = errors.New("differences found")

// CompareOptions holds the parsed flags for "compare".
type CompareOptions struct {
	Base  string
	Other string

	IgnoreCase     bool
	KeepWhitespace bool
	RawUnicode     bool
	IgnoreEmpty    bool
	Unchanged      bool
	Extraneous     bool
	Format         string
	Verbose        bool
}

// CompareRunFunc is the function signature for the compare command handler.
// It is injected by the wiring layer (cmd/recdiff/main.go).
type CompareRunFunc func(ctx context.Context, opts CompareOptions) error

// NewCompareCmd creates the "compare" subcommand.
func NewCompareCmd(runFunc CompareRunFunc) *cobra.Command {
	var opts CompareOptions

	cmd := &cobra.Command{
		Use:   "compare BASE OTHER",
		Short: "Compare two documents structurally",
		Long:  "Compare two YAML or JSON documents field by field and report each difference with its path. Exits 1 when the documents differ, 2 on error.",
		Args:  cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigDefaults(cmd.Flags()); err != nil {
				return err
			}
			return validateCompareFlags(opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Base = args[0]
			opts.Other = args[1]
			return runFunc(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.IgnoreCase, "ignore-case", false, "Compare strings case-insensitively")
	cmd.Flags().BoolVar(&opts.KeepWhitespace, "keep-ws", false, "Compare whitespace exactly instead of collapsing it")
	cmd.Flags().BoolVar(&opts.RawUnicode, "raw-unicode", false, "Skip Unicode canonical composition before comparing")
	cmd.Flags().BoolVar(&opts.IgnoreEmpty, "ignore-empty", false, "Treat empty strings and nulls as missing fields")
	cmd.Flags().BoolVar(&opts.Unchanged, "unchanged", false, "Also report fields that did not change")
	cmd.Flags().BoolVar(&opts.Extraneous, "extraneous", false, "Include fields marked extraneous")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func validateCompareFlags(opts CompareOptions) error {
	switch opts.Format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("--format must be 'text' or 'json', got %q", opts.Format)
}

// applyConfigDefaults fills in flags the user did not set from a recdiff
// config file (.recdiff.yaml in the working directory or $HOME) or
// RECDIFF_* environment variables. Explicit flags always win.
func applyConfigDefaults(flags *pflag.FlagSet) error {
	v := viper.New()
	v.SetConfigName(".recdiff")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	v.SetEnvPrefix("RECDIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := f.Value.Set(fmt.Sprint(v.Get(f.Name))); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("invalid config value for %s: %w", f.Name, err)
		}
	})
	return bindErr
}
