// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"exoparam/internal/config"
)

// OutputFormats are the values accepted by --output.
var OutputFormats = []string{"text", "tsv", "json", "jsonl", "yaml"}

// LogLevels and LogFormats are the values accepted by --loglevel/--logformat.
var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"text", "json"}
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Datasets []string
	Studies  []string // name filter; empty keeps all

	// Resolution
	ScaleHeights float64 // 0 keeps each study's own count
	Threads      int

	// Output
	Output       string
	NoHeader     bool
	MetricsFile  string
	FailExitCode int

	// Ambient
	Config    string
	LogLevel  string
	LogFormat string
	Quiet     bool
}

// Defaults returns the option values used when neither a flag nor the config
// file sets them.
func Defaults() Options {
	return Options{
		Output:       "text",
		FailExitCode: 1,
		LogLevel:     "warn",
		LogFormat:    "text",
	}
}

// Register wires every flag onto fs, bound to o. o should hold Defaults().
func Register(fs *pflag.FlagSet, o *Options) {
	fs.StringVarP(&o.Output, "output", "o", o.Output, "output format: "+strings.Join(OutputFormats, "|"))
	fs.IntVarP(&o.Threads, "threads", "t", o.Threads, "concurrent resolutions (0 = all CPUs)")
	fs.StringArrayVar(&o.Studies, "study", o.Studies, "only resolve studies with this name (repeatable)")
	fs.Float64Var(&o.ScaleHeights, "scale-heights", o.ScaleHeights, "override scale_height_count for every study")
	fs.BoolVar(&o.NoHeader, "no-header", o.NoHeader, "suppress the TSV header row")
	fs.StringVar(&o.Config, "config", o.Config, "YAML config file (default $"+config.EnvVar+")")
	fs.StringVar(&o.MetricsFile, "metrics-file", o.MetricsFile, "write Prometheus text metrics to this file")
	fs.IntVar(&o.FailExitCode, "fail-exit-code", o.FailExitCode, "exit code when any study fails to resolve")
	fs.BoolVarP(&o.Quiet, "quiet", "q", o.Quiet, "only log errors")
	fs.StringVar(&o.LogLevel, "loglevel", o.LogLevel, "set the log level ("+strings.Join(LogLevels, ", ")+")")
	fs.StringVar(&o.LogFormat, "logformat", o.LogFormat, "set the log format ("+strings.Join(LogFormats, ", ")+")")
}

// ApplyConfig copies config values into o for every flag the user did not set
// explicitly on the command line.
func ApplyConfig(fs *pflag.FlagSet, o *Options, c config.Config) {
	unset := func(name string) bool { return !fs.Changed(name) }
	if c.Output != "" && unset("output") {
		o.Output = c.Output
	}
	if c.Threads != nil && unset("threads") {
		o.Threads = *c.Threads
	}
	if c.ScaleHeights != nil && unset("scale-heights") {
		o.ScaleHeights = *c.ScaleHeights
	}
	if c.LogLevel != "" && unset("loglevel") {
		o.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" && unset("logformat") {
		o.LogFormat = c.LogFormat
	}
	if c.MetricsFile != "" && unset("metrics-file") {
		o.MetricsFile = c.MetricsFile
	}
}

// ErrUsage marks invalid command-line input.
var ErrUsage = errors.New("usage")

// Validate checks option values after flags and config are merged.
func (o Options) Validate() error {
	if len(o.Datasets) == 0 {
		return fmt.Errorf("%w: at least one dataset file is required", ErrUsage)
	}
	if !slices.Contains(OutputFormats, o.Output) {
		return fmt.Errorf("%w: --output must be one of %s, got %q", ErrUsage, strings.Join(OutputFormats, ", "), o.Output)
	}
	if o.Threads < 0 {
		return fmt.Errorf("%w: --threads must be >= 0", ErrUsage)
	}
	if o.ScaleHeights < 0 {
		return fmt.Errorf("%w: --scale-heights must be > 0", ErrUsage)
	}
	if !slices.Contains(LogLevels, o.LogLevel) {
		return fmt.Errorf("%w: invalid log level: %s", ErrUsage, o.LogLevel)
	}
	if !slices.Contains(LogFormats, o.LogFormat) {
		return fmt.Errorf("%w: invalid log format: %s", ErrUsage, o.LogFormat)
	}
	if o.FailExitCode < 0 || o.FailExitCode > 125 {
		return fmt.Errorf("%w: --fail-exit-code must be within 0..125", ErrUsage)
	}
	return nil
}

// EffectiveLogLevel applies --quiet on top of --loglevel.
func (o Options) EffectiveLogLevel() string {
	if o.Quiet {
		return "error"
	}
	return o.LogLevel
}
