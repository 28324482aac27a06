package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warp/timesheet-engine/timesheet"
)

var (
	reportYear  int
	reportMonth int
	reportAck   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect or submit the monthly time report",
}

var reportStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the month's report status",
	Args:  cobra.NoArgs,
	RunE:  runReportStatus,
}

var reportSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the month's report for approval",
	Args:  cobra.NoArgs,
	RunE:  runReportSubmit,
}

func init() {
	for _, c := range []*cobra.Command{reportStatusCmd, reportSubmitCmd} {
		c.Flags().IntVar(&reportYear, "year", 0, "Year (default current)")
		c.Flags().IntVar(&reportMonth, "month", 0, "Month 1-12 (default current)")
	}
	reportSubmitCmd.Flags().BoolVar(&reportAck, "acknowledge-shortfall", false,
		"Submit even though reported hours fall short of expectation")

	reportCmd.AddCommand(reportStatusCmd)
	reportCmd.AddCommand(reportSubmitCmd)
}

func runReportStatus(cmd *cobra.Command, args []string) error {
	session, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	year, month := currentMonth(reportYear, reportMonth)
	rec := session.Report(year, month)

	fmt.Printf("%s %d: %s", month, year, rec.Status)
	if rec.SubmittedAt != nil {
		fmt.Printf(" (submitted %s)", rec.SubmittedAt)
	}
	fmt.Println()
	return nil
}

func runReportSubmit(cmd *cobra.Command, args []string) error {
	session, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	year, month := currentMonth(reportYear, reportMonth)
	rec, err := session.SubmitReport(cmd.Context(), year, month, reportAck)
	if errors.Is(err, timesheet.ErrShortfallUnacknowledged) {
		s := session.Summary(year, month, "")
		return fmt.Errorf("reported %s of %s expected hours; under-reported hours risk lost earnings - rerun with --acknowledge-shortfall to submit anyway",
			s.ReportedHours, s.ExpectedHours)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Time report for %s %d submitted, now %s\n", month, year, rec.Status)
	return nil
}
