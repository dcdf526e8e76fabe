package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/tabwork/gridbase/record"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "write all records as a JSON array",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Shutdown() }()

	records := s.All()
	slices.SortFunc(records, func(a, b record.Record) int {
		return a.ID - b.ID
	})

	out := os.Stdout
	if exportOut != "" {
		out, err = os.Create(exportOut)
		if err != nil {
			return err
		}
		defer func() { _ = out.Close() }()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
