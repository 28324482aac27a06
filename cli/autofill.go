package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Backfill missing weekdays of the last three months with default worked entries",
	Args:  cobra.NoArgs,
	RunE:  runAutofill,
}

func runAutofill(cmd *cobra.Command, args []string) error {
	session, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	created, err := session.Autofill(cmd.Context())
	if err != nil {
		return err
	}

	if created == 0 {
		fmt.Println("No gaps to fill")
		return nil
	}
	fmt.Printf("Created %d default entries\n", created)
	return nil
}
