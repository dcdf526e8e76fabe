package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tabwork/gridbase/query"
	"github.com/tabwork/gridbase/record"
)

var (
	listPage     int
	listPageSize int
	listSearch   string
	listStatus   string
	listRole     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list one filtered page of records",
	RunE:  runList,
}

func init() {
	flags := listCmd.Flags()
	flags.IntVar(&listPage, "page", query.DefaultPage, "page to show")
	flags.IntVar(&listPageSize, "page-size", 0, "records per page")
	flags.StringVar(&listSearch, "search", "", "match against name, email and address")
	flags.StringVar(&listStatus, "status", "all", "active, inactive or all")
	flags.StringVar(&listRole, "role", "all", "role name or all")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Shutdown() }()

	pageSize := listPageSize
	if pageSize < 1 {
		pageSize = cfg.PageSize
	}
	criteria := query.Criteria{
		Status:     query.ParseStatus(listStatus),
		Role:       query.ParseRoleFilter(listRole),
		SearchText: listSearch,
		Page:       listPage,
		PageSize:   pageSize,
	}

	result := query.Select(s.All(), criteria)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAGE\tEMAIL\tROLE\tACTIVE\tCHILDREN")
	for i := range result.Page {
		r := &result.Page[i]
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%t\t%s\n",
			r.ID, r.Name, r.Age, r.Email, r.Role, r.Active, childSummary(r.Children))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("page %d of %d, %d record(s) total\n",
		criteria.Page, criteria.Pages(result.Total), result.Total)
	return nil
}

func childSummary(children []record.Child) string {
	if len(children) == 0 {
		return "-"
	}
	summary := ""
	for i, c := range children {
		if i > 0 {
			summary += ", "
		}
		summary += c.Column + "=" + c.Value
	}
	return summary
}
