// Package cli implements the timesheet command-line interface. Commands share
// the server's config and storage wiring, so the CLI and the HTTP surface
// always operate on the same data.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/warp/timesheet-engine/config"
	"github.com/warp/timesheet-engine/store"
	"github.com/warp/timesheet-engine/timesheet"
)

var rootCmd = &cobra.Command{
	Use:   "timesheet",
	Short: "Record daily work hours and manage monthly time reports",
	Long: `timesheet records day-level work entries against projects, computes
monthly pay summaries, and submits monthly reports into an approval workflow.
Configuration comes from the environment (optionally a .env file).`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(autofillCmd)
	rootCmd.AddCommand(projectsCmd)
}

// openSession builds a hydrated session from the environment. The returned
// close function flushes nothing: every session mutation persists itself.
func openSession(cmd *cobra.Command) (*timesheet.Session, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	st, err := store.Open(cfg.DataBackend, cfg.DataDir, cfg.SQLiteDBPath)
	if err != nil {
		return nil, nil, err
	}

	session := timesheet.NewSession(st, cfg.Projects, cfg.Summary())
	if err := session.Hydrate(cmd.Context()); err != nil {
		st.Close()
		return nil, nil, err
	}
	return session, func() { st.Close() }, nil
}

// currentMonth resolves the --year/--month pair, defaulting to today.
func currentMonth(year, month int) (int, time.Month) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	return year, time.Month(month)
}
