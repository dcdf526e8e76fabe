package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabwork/gridbase/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "reset the store to the built-in seed records",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	backend, err := cfg.OpenStorage()
	if err != nil {
		return err
	}
	defer func() { _ = backend.Shutdown() }()

	seed := store.DefaultSeed()
	if err := backend.Save(seed); err != nil {
		return err
	}

	fmt.Printf("seeded %d records into %s storage at %s\n",
		len(seed), cfg.Storage, cfg.Location)
	return nil
}
