package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("report history is disabled: set storage.dsn or DAILYREPORT_DB")
			}
			defer s.Close()

			records, err := s.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No reports stored.")
				return nil
			}
			total, err := s.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Stored reports: %d (showing %d)\n", total, len(records))
			for _, rec := range records {
				r := rec.Report
				fmt.Fprintf(out, "#%d  %s  ai=%d business=%d crypto=%d\n",
					rec.ID, r.GeneratedAt.Local().Format("2006-01-02 15:04"),
					bullets(r.AINews), bullets(r.StockNews), bullets(r.CryptoNews))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of reports to list")
	return cmd
}

func bullets(section string) int {
	return strings.Count(section, "\n- ")
}
