package cli

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/warp/timesheet-engine/timesheet"
)

var (
	addDate    string
	addHours   string
	addStatus  string
	addProject string
	addNotes   string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a day entry (replaces an existing entry for the same date and project)",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "Entry date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addHours, "hours", "0", "Worked hours")
	addCmd.Flags().StringVar(&addStatus, "status", "worked", "Status: worked, missed, day-off, suspended-client")
	addCmd.Flags().StringVar(&addProject, "project", "", "Project id")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Free-text notes")
	addCmd.MarkFlagRequired("project")
}

func runAdd(cmd *cobra.Command, args []string) error {
	session, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	date := timesheet.DateOf(time.Now())
	if addDate != "" {
		if date, err = timesheet.ParseDate(addDate); err != nil {
			return err
		}
	}
	hours, err := decimal.NewFromString(addHours)
	if err != nil {
		return fmt.Errorf("invalid hours %q: %w", addHours, err)
	}
	status, err := timesheet.ParseStatus(addStatus)
	if err != nil {
		return err
	}

	name := addProject
	for _, p := range session.Projects() {
		if p.ID == addProject {
			name = p.Name
		}
	}

	entry := timesheet.DayEntry{
		Date:        date,
		Hours:       hours,
		Status:      status,
		ProjectID:   addProject,
		ProjectName: name,
		Notes:       addNotes,
	}
	if err := session.SaveEntry(cmd.Context(), entry); err != nil {
		return err
	}

	fmt.Printf("Saved %s entry for %s on %s (%s hours)\n", status, name, date, hours)
	return nil
}
