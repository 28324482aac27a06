package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the configured reference projects",
	Args:  cobra.NoArgs,
	RunE:  runProjects,
}

func runProjects(cmd *cobra.Command, args []string) error {
	session, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	for _, p := range session.Projects() {
		fmt.Printf("%-10s%s\n", p.ID, p.Name)
	}
	return nil
}
