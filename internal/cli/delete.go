package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete KIND/ID [flags]",
	Short: "Delete a resource by kind and id",
	Long: `Delete a resource by kind and id. Deleting a project or object also deletes what it
contains; deleting a collection detaches its objects.

Examples:
  # Delete an object with its items
  tyko delete object/4

  # Delete a note
  tyko delete note/17`,
	Args: cobra.ExactArgs(1),
	RunE: deleteResource,
}

func deleteResource(cmd *cobra.Command, args []string) error {
	kind, id, err := splitKindID(args[0])
	if err != nil {
		return err
	}
	if !kind.Creatable {
		return fmt.Errorf("%s resources cannot be deleted", kind.Name)
	}

	if err := newClient().DeleteResource(kind.Item, id); err != nil {
		return err
	}

	if jsonOutput {
		printJSON(cmd, map[string]any{"result": 1, "deleted": kind.Name + "/" + id})
		return nil
	}
	okLabel.Fprintf(cmd.OutOrStdout(), "[OK] ")
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", kind.Name, id)
	return nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
