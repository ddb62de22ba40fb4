package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coregx/glyphscan/config"
	"github.com/coregx/glyphscan/pipeline"
)

// flags mirrors config.Options field-for-field with the cobra-facing types
// (pflag has no *uint8, so run narrows charsMin to uint8 by hand; grepChar
// stays a string that config.Build parses).
type flags struct {
	missions []string

	charsMin           int
	haveCharsMin       bool
	asciiFilter        string
	unicodeBlockFilter string
	grepChar           string
	outputLineLen      int
	counterOffset      uint64
	sameUnicodeBlock   bool

	radix      string
	noMetadata bool
	output     string

	listEncodings bool
	showConfig    bool
	showVersion   bool
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "glyphscan [flags] [FILE...]",
		Short: "Extract human-readable text fragments across many encodings at once",
		Long: `glyphscan runs a configurable set of independent search missions, each
binding one character encoding to its own post-decode filter, over the same
byte stream, and merges their findings into one deterministic, annotated
output stream.

With no FILE arguments (or a single "-"), glyphscan reads standard input.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	cmd.Flags().StringArrayVarP(&f.missions, "mission", "m", nil,
		`search mission "ENCODING[,CHARS_MIN[,AF[,UBF[,GREP]]]]" (repeatable; default "ascii")`)
	cmd.Flags().IntVar(&f.charsMin, "chars-min", 0, "global minimum character count override (default 4)")
	cmd.Flags().StringVar(&f.asciiFilter, "ascii-filter", "", "global ASCII-filter override: alias name or hex/\"hi:lo\" literal")
	cmd.Flags().StringVar(&f.unicodeBlockFilter, "unicode-block-filter", "", "global Unicode-block-filter override: alias name or hex literal")
	cmd.Flags().StringVar(&f.grepChar, "grep-char", "", "global required ASCII byte override (single char or integer literal)")
	cmd.Flags().IntVar(&f.outputLineLen, "output-line-len", 0, "maximum characters per emitted fragment (default 256)")
	cmd.Flags().Uint64Var(&f.counterOffset, "counter-offset", 0, "value added to every reported byte position")
	cmd.Flags().BoolVar(&f.sameUnicodeBlock, "same-unicode-block", false, "terminate a fragment at a Unicode-block boundary")
	cmd.Flags().StringVar(&f.radix, "radix", "", "position radix: O, X, or D (default D)")
	cmd.Flags().BoolVar(&f.noMetadata, "no-metadata", false, "omit the position/continuation/mission columns")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output path (default stdout)")
	cmd.Flags().BoolVarP(&f.listEncodings, "list-encodings", "l", false, "list available encoding names and exit")
	cmd.Flags().BoolVar(&f.showConfig, "show-config", false, "print the fully resolved mission set and exit")
	cmd.Flags().BoolVarP(&f.showVersion, "version", "V", false, "print version and exit")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		f.haveCharsMin = cmd.Flags().Changed("chars-min")
		return nil
	}

	return cmd
}

func run(cmd *cobra.Command, args []string, f flags) error {
	if f.showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), "glyphscan", version)
		return nil
	}
	if f.listEncodings {
		return config.WriteListEncodings(cmd.OutOrStdout())
	}

	opts := config.Options{
		Paths:              args,
		Missions:           f.missions,
		ASCIIFilter:        f.asciiFilter,
		UnicodeBlockFilter: f.unicodeBlockFilter,
		GrepChar:           f.grepChar,
		OutputLineLen:      f.outputLineLen,
		CounterOffset:      f.counterOffset,
		SameUnicodeBlock:   f.sameUnicodeBlock,
		Radix:              f.radix,
		NoMetadata:         f.noMetadata,
		Output:             f.output,
	}
	if f.haveCharsMin {
		v := uint8(f.charsMin)
		opts.CharsMin = &v
	}

	log := newLogger()
	defer log.Sync() //nolint:errcheck

	resolved, err := config.Build(opts, log.Sugar())
	if err != nil {
		return err
	}
	defer resolved.Close()

	if f.showConfig {
		return config.WriteShowConfig(cmd.OutOrStdout(), resolved.Missions)
	}

	driver := pipeline.NewDriver(resolved.Slicer, resolved.States, resolved.Writer, log.Sugar())
	return driver.Run(context.Background())
}

// newLogger builds the process-wide zap.Logger: a production config (JSON,
// leveled) writing to stderr so it never interleaves with the scan output
// on stdout.
func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		// Fall back rather than abort: logging failures must never
		// prevent a scan from running.
		return zap.NewNop()
	}
	return log
}
