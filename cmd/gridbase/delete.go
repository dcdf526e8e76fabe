package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabwork/gridbase/query"
	"github.com/tabwork/gridbase/session"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "delete one record after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid record id %q", args[0])
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Shutdown() }()

	// one page holding everything, so the record is addressable by index
	pageSize := s.Size()
	if pageSize < 1 {
		pageSize = 1
	}
	m := session.New(s, query.Criteria{
		Status:   query.StatusAll,
		Page:     1,
		PageSize: pageSize,
	})
	m.SetConfirmer(session.ConfirmFunc(confirmOnTerminal))

	for i, row := range m.Rows() {
		if row.ID() != id {
			continue
		}
		if err := m.DeleteRow(i); err != nil {
			return err
		}
		fmt.Printf("deleted record %d\n", id)
		return nil
	}
	return fmt.Errorf("no record with id %d", id)
}

func confirmOnTerminal(prompt string) bool {
	if deleteYes {
		return true
	}
	fmt.Printf("%s [y/N] ", prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
