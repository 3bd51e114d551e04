package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/report"
)

func newJSONCmd(a *app) *cobra.Command {
	var out, format string

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Fetch the report and write it to a file",
		Long:  "Fetch the three report sections and write them to report.json as {\"ai_news\", \"stock_news\", \"crypto_news\"}. An existing file is overwritten. Use --out - to write to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "markdown" && format != "md" {
				return fmt.Errorf("unknown format %q (want json or markdown)", format)
			}
			assembler, err := a.assembler()
			if err != nil {
				return err
			}
			if out == "" {
				out = a.cfg.Report.JSONPath
			}

			r, err := assembler.Assemble(cmd.Context())
			if err != nil {
				return err
			}
			a.archive(cmd.Context(), r)

			if out == "-" {
				return writeReport(cmd.OutOrStdout(), format, r)
			}
			if format == "json" {
				if err := report.WriteJSONFile(out, r); err != nil {
					return err
				}
			} else if err := writeReportFile(out, format, r); err != nil {
				return err
			}
			slog.Info("report written", "path", out, "format", format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path, or - for stdout (default report.json)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or markdown")
	return cmd
}

func writeReport(w io.Writer, format string, r *report.Report) error {
	if format == "json" {
		return report.WriteJSON(w, r)
	}
	return report.WriteMarkdown(w, r)
}

func writeReportFile(path, format string, r *report.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := writeReport(f, format, r); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
