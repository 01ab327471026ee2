package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"v6recon/internal/logging"
	"v6recon/internal/source"
	"v6recon/internal/tga"
)

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	seedsPath := fs.String("seeds", "", "path to a plain IPv6 address list used to train the model")
	count := fs.Int("count", 100, "number of addresses to generate")
	modelKind := fs.String("model", "entropy", "tga model: entropy|random")
	outPath := fs.String("out", "", "write generated addresses here (default: stdout)")
	logLevel := fs.String("log-level", "info", "debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logging.New(os.Stderr, logging.ParseLevel(*logLevel))

	if *seedsPath == "" {
		return errors.New("generate: -seeds is required")
	}

	seedFile, err := os.Open(*seedsPath)
	if err != nil {
		return fmt.Errorf("generate: open seeds: %w", err)
	}
	defer seedFile.Close()

	seeds, err := source.ReadAll(seedFile)
	if err != nil {
		return fmt.Errorf("generate: read seeds: %w", err)
	}
	log.Info("loaded seed corpus", "count", len(seeds), "path", *seedsPath)

	model, err := tga.New(tga.Kind(*modelKind))
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if err := model.Train(seeds); err != nil {
		return fmt.Errorf("generate: train: %w", err)
	}

	out, err := model.GenerateUnique(*count)
	if errors.Is(err, tga.ErrUnderflow) {
		log.Warn("generate: address space exhausted before reaching requested count", "requested", *count, "produced", len(out))
	} else if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	w := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("generate: open out: %w", err)
		}
		defer f.Close()
		w = f
	}
	for _, a := range out {
		fmt.Fprintln(w, a.String())
	}
	log.Info("generated addresses", "count", len(out), "model", *modelKind)
	return nil
}
