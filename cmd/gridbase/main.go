// Gridbase is a small command line frontend to the record store: it lists,
// seeds, exports and deletes records using the same library code an embedding
// application would.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabwork/gridbase/config"
	"github.com/tabwork/gridbase/log"
	"github.com/tabwork/gridbase/store"

	// storage backends
	_ "github.com/tabwork/gridbase/storage/badger"
	_ "github.com/tabwork/gridbase/storage/bbolt"
	_ "github.com/tabwork/gridbase/storage/hashmap"
	_ "github.com/tabwork/gridbase/storage/jsonfile"
)

var (
	configPath  string
	dataDir     string
	backendName string
	logLevel    string

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:               "gridbase",
	Short:             "manage the tabular record store",
	SilenceUsage:      true,
	PersistentPreRunE: initialize,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "gridbase.yaml", "path to the config file")
	flags.StringVar(&dataDir, "data", "", "override the data directory")
	flags.StringVar(&backendName, "storage", "", "override the storage backend")
	flags.StringVar(&logLevel, "log", "", "override the log level")
}

func initialize(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadFile(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		cfg.Location = dataDir
	}
	if backendName != "" {
		cfg.Storage = backendName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLogLevel(level)
	log.Start()
	return nil
}

// openStore creates the configured backend and loads the store, seeding the
// default records on first use.
func openStore() (*store.Store, error) {
	seed, err := cfg.LoadSeed()
	if err != nil {
		return nil, err
	}
	backend, err := cfg.OpenStorage()
	if err != nil {
		return nil, err
	}
	s, err := store.New(backend, seed)
	if err != nil {
		_ = backend.Shutdown()
		return nil, err
	}
	return s, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
