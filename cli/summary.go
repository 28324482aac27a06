package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	summaryYear    int
	summaryMonth   int
	summaryProject string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the month's hours and pay summary",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&summaryYear, "year", 0, "Year (default current)")
	summaryCmd.Flags().IntVar(&summaryMonth, "month", 0, "Month 1-12 (default current)")
	summaryCmd.Flags().StringVar(&summaryProject, "project", "", "Restrict to one project id")
}

func runSummary(cmd *cobra.Command, args []string) error {
	session, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	year, month := currentMonth(summaryYear, summaryMonth)
	s := session.Summary(year, month, summaryProject)
	rec := session.Report(year, month)

	fmt.Printf("Time report for %s %d (%s)\n", month, year, rec.Status)
	fmt.Println("--------------------------------")
	fmt.Printf("%-22s%s\n", "Contracted hours", s.ContractedHours)
	fmt.Printf("%-22s%s\n", "Expected hours", s.ExpectedHours)
	fmt.Printf("%-22s%s\n", "Reported hours", s.ReportedHours)
	fmt.Printf("%-22s%s\n", "Remaining hours", s.RemainingHours)
	fmt.Printf("%-22s%s\n", "Deviation hours", s.DeviationHours)
	fmt.Printf("%-22s%s\n", "Earned flex days", s.EarnedFlexDays)
	fmt.Println("--------------------------------")
	fmt.Printf("%-22s%s\n", "Monthly compensation", s.MonthlySalary)
	fmt.Printf("%-22s%s\n", "Deviation cost", s.DeviationCost)
	fmt.Printf("%-22s%s\n", "Subtotal", s.Subtotal)
	return nil
}
