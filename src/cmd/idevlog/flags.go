// FILE: idevlog/src/cmd/idevlog/flags.go
package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"idevlog/src/internal/filter"
)

// FlagConfig holds command line options. Unset options leave the
// configuration file and environment values in place.
type FlagConfig struct {
	ConfigFile string
	Quiet      bool

	// Device
	UDID      string
	Transport string
	TailPath  string

	// Syslog
	Output  string
	File    string
	Color   string
	Journal bool
	Filters []filter.Config

	// Record layout for syslog, output format for info
	Format   string
	Template string

	// Info
	Domain string
	Key    string

	// Logging
	LogLevel  string
	LogOutput string

	// Status endpoint
	Status     bool
	StatusPort int64

	command string
	set     map[string]bool
}

// filterFlags collects repeated -filter options
type filterFlags struct {
	filters *[]filter.Config
}

func (f filterFlags) String() string {
	if f.filters == nil {
		return ""
	}
	parts := make([]string, 0, len(*f.filters))
	for _, c := range *f.filters {
		parts = append(parts, string(c.Type))
	}
	return strings.Join(parts, ",")
}

func (f filterFlags) Set(value string) error {
	cfg, err := parseFilterFlag(value)
	if err != nil {
		return err
	}
	*f.filters = append(*f.filters, cfg)
	return nil
}

// parseFilterFlag reads "type" or "type:pattern[,pattern...]"
func parseFilterFlag(value string) (filter.Config, error) {
	name, patterns, hasPatterns := strings.Cut(value, ":")
	cfg := filter.Config{Type: filter.Type(strings.TrimSpace(name))}
	if hasPatterns {
		for _, p := range strings.Split(patterns, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Patterns = append(cfg.Patterns, p)
			}
		}
		// match/untrigger take the whole remainder, commas included
		if cfg.Type == filter.TypeMatch || cfg.Type == filter.TypeUntrigger {
			cfg.Patterns = []string{patterns}
		}
	}
	if err := filter.Validate(cfg); err != nil {
		return filter.Config{}, err
	}
	return cfg, nil
}

// ParseFlags parses the options of command from args
func ParseFlags(command string, args []string, stderr io.Writer) (*FlagConfig, error) {
	fc := &FlagConfig{command: command}
	fs := flag.NewFlagSet("idevlog "+command, flag.ContinueOnError)
	fs.SetOutput(stderr)

	// General flags
	fs.StringVar(&fc.ConfigFile, "config", "", "Config file path")
	fs.BoolVar(&fc.Quiet, "quiet", false, "Suppress diagnostics")
	fs.StringVar(&fc.UDID, "udid", "", "Target device UDID")
	fs.StringVar(&fc.Transport, "transport", "", "Device transport: relay, tail")
	fs.StringVar(&fc.TailPath, "tail-path", "", "Syslog file followed by the tail transport")

	// Logging flags
	fs.StringVar(&fc.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&fc.LogOutput, "log-output", "", "Log output: file, stdout, stderr, both, none")

	switch command {
	case "syslog":
		fs.StringVar(&fc.Output, "output", "", "Record output: stdout, file, journal")
		fs.StringVar(&fc.File, "file", "", "Append records to this file")
		fs.StringVar(&fc.Color, "color", "", "Console colors: always, never, auto")
		fs.BoolVar(&fc.Journal, "journal", false, "Also forward records to the systemd journal")
		fs.StringVar(&fc.Format, "format", "", "Record format: txt, json, raw")
		fs.StringVar(&fc.Template, "template", "", "Record layout for txt, e.g. '{{.Process}}: {{.Message}}'")
		fs.Var(filterFlags{&fc.Filters}, "filter", "Filter stage, repeatable: type[:pattern,...]")
		fs.BoolVar(&fc.Status, "status", false, "Serve /status and /metrics")
		fs.Int64Var(&fc.StatusPort, "status-port", 0, "Status endpoint port")
	case "info":
		fs.StringVar(&fc.Domain, "domain", "", "Property domain, e.g. battery")
		fs.StringVar(&fc.Format, "format", "", "Output format: text, yaml, json")
		fs.StringVar(&fc.Key, "key", "", "Print a single property")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	fc.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { fc.set[f.Name] = true })

	// -file alone implies file output
	if fc.set["file"] && !fc.set["output"] {
		fc.Output = "file"
		fc.set["output"] = true
	}

	return fc, nil
}

// Overrides renders the explicitly set flags as config overrides
func (fc *FlagConfig) Overrides() []string {
	var args []string
	add := func(flagName, path string, value any) {
		if fc.set[flagName] {
			args = append(args, fmt.Sprintf("--%s=%v", path, value))
		}
	}

	add("quiet", "quiet", fc.Quiet)
	add("udid", "device.udid", fc.UDID)
	add("transport", "device.transport", fc.Transport)
	add("tail-path", "device.tail_path", fc.TailPath)
	add("output", "syslog.output", fc.Output)
	add("file", "syslog.file", fc.File)
	add("color", "syslog.color", fc.Color)
	add("journal", "syslog.journal", fc.Journal)
	add("status", "status.enabled", fc.Status)
	add("status-port", "status.port", fc.StatusPort)
	add("domain", "info.domain", fc.Domain)
	add("format", fc.command+".format", fc.Format)
	add("template", "syslog.template", fc.Template)
	add("log-level", "logging.level", fc.LogLevel)
	add("log-output", "logging.output", fc.LogOutput)

	return args
}
