// Command goslice slices one or more STL files into a single G-code file.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	goslice "github.com/aligator/goslice"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/internal/slog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("goslice", pflag.ContinueOnError)

	output := flags.StringP("output", "o", "", "output G-code file path (default: <input>.gcode)")
	configPath := flags.StringP("config", "c", "", "YAML config file overriding the defaults")
	logLevel := flags.String("log-level", "info", "log level: debug, info, warn, error")
	set := flags.StringArrayP("set", "s", nil, "override a single option, key=value (e.g. -s Print.InfillPercent=30)")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	log := slog.New(os.Stderr, *logLevel)

	inputs := flags.Args()
	if len(inputs) == 0 {
		log.Fatalf("usage: goslice [flags] <model.stl> [more.stl ...]")
		return 2
	}

	options := data.DefaultOptions()
	options.GoSlice.Logger = log

	if *configPath != "" {
		if err := loadConfig(*configPath, &options); err != nil {
			log.Fatalf("loading config %s: %v", *configPath, err)
			return 1
		}
	}

	for _, kv := range *set {
		if err := applyOverride(&options, kv); err != nil {
			log.Fatalf("invalid -s %s: %v", kv, err)
			return 2
		}
	}

	options.GoSlice.InputFilePath = inputs[0]
	options.GoSlice.OutputFilePath = *output

	session := goslice.NewSession(options)
	if err := session.ProcessAll(inputs); err != nil {
		log.Fatalf("%v", err)
		return exitCodeFor(err)
	}

	return 0
}

// loadConfig merges a YAML config file's Print/Printer/Filament sections
// into options, without touching options.GoSlice (CLI-only fields).
func loadConfig(path string, options *data.Options) error {
	f, err := os.Open(path)
	if err != nil {
		return data.WrapConfig(fmt.Sprintf("%s: %v", path, err))
	}
	defer f.Close()

	var overlay struct {
		Printer  *data.PrinterOptions  `yaml:"printer"`
		Print    *data.PrintOptions    `yaml:"print"`
		Filament *data.FilamentOptions `yaml:"filament"`
	}
	// Decode on top of copies of the current sections, so fields the file
	// leaves out keep their current values.
	printer, print, filament := options.Printer, options.Print, options.Filament
	overlay.Printer, overlay.Print, overlay.Filament = &printer, &print, &filament
	if err := yaml.NewDecoder(f).Decode(&overlay); err != nil {
		return data.WrapConfig(fmt.Sprintf("%s: %v", path, err))
	}

	if overlay.Printer != nil {
		options.Printer = *overlay.Printer
	}
	if overlay.Print != nil {
		options.Print = *overlay.Print
	}
	if overlay.Filament != nil {
		options.Filament = *overlay.Filament
	}

	return nil
}

// applyOverride handles the small set of frequently-tweaked scalar options
// via -s Section.Field=value, without requiring a full config file for a
// single change. Unknown keys are rejected rather than silently ignored.
func applyOverride(options *data.Options, kv string) error {
	parts := strings.SplitN(kv, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected key=value")
	}
	key, value := parts[0], parts[1]

	switch key {
	case "Print.InfillPercent":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		options.Print.InfillPercent = n
	case "Print.NumberOfPerimeters":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		options.Print.NumberOfPerimeters = n
	case "Print.LayerThickness":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		options.Print.LayerThickness = data.Micrometer(n)
	case "Print.Support.Enabled":
		options.Print.Support.Enabled = value == "true"
	case "Print.Raft.Enabled":
		options.Print.Raft.Enabled = value == "true"
	case "Print.OutputType":
		t, ok := data.ParseOutputType(value)
		if !ok {
			return fmt.Errorf("unknown output type %q", value)
		}
		options.Print.OutputType = t
	default:
		return data.WrapUnsupported(key)
	}

	return nil
}

// exitCodeFor maps the error taxonomy in package data to a process exit
// code, so scripts invoking goslice can distinguish a bad model from a bad
// config without parsing the message.
func exitCodeFor(err error) int {
	switch {
	case data.Is(err, data.ErrConfigOutOfRange), data.Is(err, data.ErrUnsupportedOption):
		return 2
	case data.Is(err, data.ErrLoad):
		return 3
	case data.Is(err, data.ErrOutput):
		return 4
	default:
		return 1
	}
}
