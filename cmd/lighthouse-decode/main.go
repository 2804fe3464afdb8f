// Package main provides a command-line front end for the lighthouse
// decoder: load a recorded dump, run it through the pipeline, print a
// summary and optionally write collated angles and a scatter plot.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/lighthouse.decode/internal/config"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/decoder"
	lhio "github.com/banshee-data/lighthouse.decode/internal/lighthouse/io"
	"github.com/banshee-data/lighthouse.decode/internal/lighthouse/l1pulse"
)

type cliConfig struct {
	DumpPath   string
	ConfigPath string
	Station    string
	AnglesOut  string
	PulsesOut  string
	SweepsOut  string
	PlotOut    string
	Verbose    bool
}

func main() {
	cfg := parseFlags()

	if cfg.DumpPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -dump is required")
		flag.Usage()
		os.Exit(1)
	}

	if cfg.Verbose {
		l1pulse.SetDebugLogger(os.Stderr)
		lhio.SetDebugLogger(os.Stderr)
	}

	tuning := config.Default()
	if cfg.ConfigPath != "" {
		loaded, err := config.Load(cfg.ConfigPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		tuning = loaded
	}

	file, err := os.Open(cfg.DumpPath)
	if err != nil {
		log.Fatalf("opening dump: %v", err)
	}
	loader := lhio.NewCSVDumpLoader(file)
	session := lhio.NewDumpSession(loader)
	defer session.Loader.Close()

	events, err := loader.Load()
	if err != nil {
		log.Fatalf("loading events: %v", err)
	}

	dec := decoder.New(tuning)
	result := dec.Decode(events)

	log.Printf("run %s: %d raw events, %d pulse groups, %d sweep groups",
		session.RunID, len(events), len(result.Pulses), len(result.Sweeps))

	station, err := parseStation(cfg.Station)
	if err != nil {
		log.Fatalf("parsing -station: %v", err)
	}
	angles := result.Collate(station)
	log.Printf("station %s: %d sensors collated", station, len(angles))

	if cfg.PulsesOut != "" {
		if err := writeCSV(cfg.PulsesOut, func(f *os.File) error {
			return lhio.WriteLightGroups(f, result.Pulses)
		}); err != nil {
			log.Fatalf("writing pulses: %v", err)
		}
	}
	if cfg.SweepsOut != "" {
		if err := writeCSV(cfg.SweepsOut, func(f *os.File) error {
			return lhio.WriteLightGroups(f, result.Sweeps)
		}); err != nil {
			log.Fatalf("writing sweeps: %v", err)
		}
	}
	if cfg.AnglesOut != "" {
		if err := writeCSV(cfg.AnglesOut, func(f *os.File) error {
			return lhio.WriteAngles(f, angles)
		}); err != nil {
			log.Fatalf("writing angles: %v", err)
		}
	}
	if cfg.PlotOut != "" {
		if err := plotAngles(cfg.PlotOut, station, angles); err != nil {
			log.Fatalf("plotting angles: %v", err)
		}
	}
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.DumpPath, "dump", "", "Path to a CSV event dump (required)")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to a JSON tuning config (optional, overrides defaults)")
	flag.StringVar(&cfg.Station, "station", "B", "Base station channel to collate (A, B or C)")
	flag.StringVar(&cfg.AnglesOut, "angles-out", "", "Path to write collated angles as CSV (optional)")
	flag.StringVar(&cfg.PulsesOut, "pulses-out", "", "Path to write decoded pulse groups as CSV (optional)")
	flag.StringVar(&cfg.SweepsOut, "sweeps-out", "", "Path to write decoded sweep groups as CSV (optional)")
	flag.StringVar(&cfg.PlotOut, "plot", "", "Path to write an angle scatter plot as PNG (optional)")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -dump events.csv [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Decodes a recorded Lighthouse light-pulse event dump:\n")
		fmt.Fprintf(os.Stderr, "  1. sanitize the raw event stream\n")
		fmt.Fprintf(os.Stderr, "  2. segment it into pulse groups and sweep groups\n")
		fmt.Fprintf(os.Stderr, "  3. collate per-sensor angle ticks for one station\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -dump capture.csv -station B -angles-out b_angles.csv -plot b_angles.png\n", os.Args[0])
	}

	flag.Parse()
	return cfg
}

func parseStation(s string) (l1pulse.Channel, error) {
	switch s {
	case "A":
		return l1pulse.ChannelA, nil
	case "B":
		return l1pulse.ChannelB, nil
	case "C":
		return l1pulse.ChannelC, nil
	default:
		return l1pulse.ChannelErr, fmt.Errorf("unrecognized station %q, want A, B or C", s)
	}
}

func writeCSV(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
