package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var ignoreErrors bool

var createCmd = &cobra.Command{
	Use:   "create -f FILENAME [flags]",
	Short: "Create resources from a manifest",
	Long: `Create resources from a YAML manifest. Each document names its 'kind' and carries
the request body in 'spec'. Documents are created in the order collection, project,
object, item, note. Values of the form {{ .ENV.NAME }} are read from the environment
or a .env file in the current directory.

Example manifest:
  kind: collection
  metadata:
    name: music
  spec:
    collection_name: Music Library
    department: Music
  ---
  kind: project
  spec:
    title: Rare recordings
    status: In progress

Examples:
  # Create the resources of a manifest
  tyko create -f manifest.yaml

  # Keep going after a failed document
  tyko create -f manifest.yaml -i`,
	RunE: createResource,
}

func createResource(cmd *cobra.Command, args []string) error {
	filename, err := cmd.Flags().GetString("filename")
	if err != nil {
		return err
	}
	if filename == "" {
		return fmt.Errorf("filename is required")
	}

	resources, err := LoadResourceFromMultiYAMLFile(filename)
	if err != nil {
		return err
	}

	var statusValues []map[string]any
	defer func() {
		printCreateStatus(cmd, statusValues)
	}()

	client := newClient()
	for _, kindName := range creationOrder {
		kind, _ := LookupKind(kindName)
		for _, resource := range resources[kindName] {
			response, err := client.CreateResource(kind.Collection, resource.JSON)
			if err != nil {
				statusValues = append(statusValues, map[string]any{
					"kind":    kind.Name,
					"name":    resource.Label(),
					"created": false,
					"error":   err.Error(),
				})
				if !ignoreErrors {
					return ErrAlreadyHandled
				}
				continue
			}
			statusValues = append(statusValues, map[string]any{
				"kind":    kind.Name,
				"name":    resource.Label(),
				"created": true,
				"id":      gjson.GetBytes(response, "id").Int(),
				"url":     gjson.GetBytes(response, "url").String(),
			})
		}
	}
	return nil
}

func printCreateStatus(cmd *cobra.Command, statusValues []map[string]any) {
	if len(statusValues) == 0 {
		return
	}
	if jsonOutput {
		printJSON(cmd, statusValues)
		return
	}
	out := cmd.OutOrStdout()
	for _, status := range statusValues {
		if created, _ := status["created"].(bool); created {
			okLabel.Fprintf(out, "[OK] ")
			fmt.Fprintf(out, "Created %s %d: %s\n", status["kind"], status["id"], status["url"])
			continue
		}
		w := cmd.ErrOrStderr()
		if ignoreErrors {
			w = out
		}
		errorLabel.Fprintf(w, "[ERROR] ")
		fmt.Fprintf(w, "%s: %s: %s\n", status["kind"], status["name"], status["error"])
	}
}

func init() {
	createCmd.Flags().StringP("filename", "f", "", "Manifest to create resources from")
	createCmd.MarkFlagRequired("filename")
	createCmd.Flags().BoolVarP(&ignoreErrors, "ignore-errors", "i", false, "Ignore errors and continue with the next resource")

	rootCmd.AddCommand(createCmd)
}
