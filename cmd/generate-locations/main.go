// Command generate-locations regenerates the location lookup table and
// string resource script from the CSV files in ./location-csvs/.
//
// Usage:
//
//	go run ./cmd/generate-locations [flags]
//
// Each CSV needs a header row with the columns "Route", "Block ID" and
// "Location". Settings may also come from ./locgen.yaml or LOCGEN_*
// environment variables; flags win.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/andreiashu/locgen"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	def := locgen.DefaultConfig()
	flags := pflag.NewFlagSet("generate-locations", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to a YAML config file (default ./locgen.yaml if present)")
	flags.String("input", def.InputDir, "directory containing the location CSV files")
	flags.String("table-out", "", "lookup table output path (default location.go or location.cpp)")
	flags.String("rc-out", def.ResourceOutput, "string table resource script output path")
	flags.String("format", string(def.Format), "lookup table language: go or cpp")
	flags.String("package", "", "Go package (or C++ namespace) of the lookup table")
	flags.Uint32("first-string-id", def.FirstStringID, "resource ID of the first location string")
	flags.Bool("dry-run", false, "render the artifacts without writing them")
	logLevel := flags.String("log-level", "info", "log level: debug, info, warn, error")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := locgen.LoadConfig(*configPath, flags)
	if err != nil {
		return err
	}
	cfg.Logger = log

	log.Info().Str("input", cfg.InputDir).Msg("regenerating location tables")
	res, err := cfg.Run()
	if err != nil {
		return err
	}
	log.Info().
		Int("records", res.Records).
		Int("blocks", res.Blocks).
		Int("strings", res.Strings).
		Msg("done")
	return nil
}
