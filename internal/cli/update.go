package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var updateCmd = &cobra.Command{
	Use:   "update KIND/ID -f FILENAME [flags]",
	Short: "Update a resource from a file",
	Long: `Update a resource from a YAML or JSON file holding the fields to change.
Fields that are not in the file keep their values.

Examples:
  # Change the status of a project
  tyko update project/3 -f status.yaml

  where status.yaml holds:
    status: Complete`,
	Args: cobra.ExactArgs(1),
	RunE: updateResource,
}

func updateResource(cmd *cobra.Command, args []string) error {
	kind, id, err := splitKindID(args[0])
	if err != nil {
		return err
	}
	if !kind.Creatable {
		return fmt.Errorf("%s resources cannot be updated", kind.Name)
	}

	filename, err := cmd.Flags().GetString("filename")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %v", err)
	}
	data, err = PreprocessYAML(replaceTabsWithSpaces(data))
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unable to parse YAML: %v", err)
	}
	fields, err := StrictMapAnyAnyToStringAny(doc)
	if err != nil {
		return err
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("unable to convert to JSON: %v", err)
	}

	response, err := newClient().UpdateResource(kind.Item, id, body)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printResult(cmd, response)
	}
	okLabel.Fprintf(cmd.OutOrStdout(), "[OK] ")
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s/%s\n", kind.Name, id)
	return nil
}

func init() {
	updateCmd.Flags().StringP("filename", "f", "", "File with the fields to update")
	updateCmd.MarkFlagRequired("filename")

	rootCmd.AddCommand(updateCmd)
}
