// Daily Report fetches AI, business and crypto headlines from NewsAPI
// and emails them or writes them to report.json.
//
// Usage:
//
//	dailyreport              # fetch and email the report
//	dailyreport json         # fetch and write report.json
//	dailyreport serve        # serve reports over HTTP
//	dailyreport history      # list stored reports
//	dailyreport version      # print version
package main

import (
	"log/slog"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("dailyreport failed", "error", err)
		os.Exit(1)
	}
}
