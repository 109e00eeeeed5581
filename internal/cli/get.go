package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var getCmd = &cobra.Command{
	Use:   "get KIND/ID [flags]",
	Short: "Get a resource by kind and id",
	Long: `Get a resource by kind and id. The document is printed as YAML, or as JSON with -j.
Kinds: collection, format, item, note, object, project.

Examples:
  # Get a project with its notes and objects
  tyko get project/1

  # Get an item as JSON
  tyko get item/12 -j`,
	Args: cobra.ExactArgs(1),
	RunE: getResource,
}

func getResource(cmd *cobra.Command, args []string) error {
	kind, id, err := splitKindID(args[0])
	if err != nil {
		return err
	}

	response, err := newClient().GetResource(kind.Item, id)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printResult(cmd, response)
	}

	var responseData map[string]any
	if err := json.Unmarshal(response, &responseData); err != nil {
		return fmt.Errorf("failed to parse response: %v", err)
	}
	yamlBytes, err := yaml.Marshal(responseData)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %v", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(yamlBytes))
	return nil
}

func init() {
	rootCmd.AddCommand(getCmd)
}
