package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sharpc/internal/prof"
)

func readProfConfig(cmd *cobra.Command) (prof.Config, error) {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpuprofile"); err != nil {
		return cfg, err
	}
	if cfg.Mem, err = flags.GetString("memprofile"); err != nil {
		return cfg, err
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupProfiling starts the requested profiles and returns their stop hook.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	cfg, err := readProfConfig(cmd)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return func() {}, nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}, nil
}
