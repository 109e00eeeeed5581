package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/uiuclibrary/tyko/internal/common/httpclient"
)

// StatusResponse is the body of the server /version endpoint.
type StatusResponse struct {
	ServerVersion string `json:"serverVersion"`
	ApiVersion    string `json:"apiVersion"`
	SchemaVersion string `json:"schemaVersion"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Get server version and readiness",
	Long: `Get the server version, API and schema versions and whether the server can reach
its database.

Examples:
  tyko status
  tyko status -j`,
	RunE: getStatus,
}

func getStatus(cmd *cobra.Command, args []string) error {
	client := newClient()
	out := cmd.OutOrStdout()

	response, _, err := client.DoRequest(httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "version",
		Raw:    true,
	})
	if err != nil {
		if jsonOutput {
			printJSON(cmd, map[string]string{
				"version_cli": getCLIVersion(),
				"error":       "Unable to connect to server: " + err.Error(),
			})
		} else {
			fmt.Fprintf(out, "tyko CLI %s\n", getCLIVersion())
			errorLabel.Fprintf(out, "Error: Unable to connect to server: %v\n", err)
		}
		return ErrAlreadyHandled
	}

	var statusResp StatusResponse
	if err := json.Unmarshal(response, &statusResp); err != nil {
		return fmt.Errorf("failed to parse response: %v", err)
	}

	ready := true
	if _, _, err := client.DoRequest(httpclient.RequestOptions{Method: http.MethodGet, Path: "ready", Raw: true}); err != nil {
		ready = false
	}

	if jsonOutput {
		printJSON(cmd, map[string]any{
			"result":      1,
			"version_cli": getCLIVersion(),
			"value":       statusResp,
			"ready":       ready,
		})
		return nil
	}
	fmt.Fprintf(out, "tyko CLI %s\n", getCLIVersion())
	fmt.Fprintf(out, "Server Version: %s\n", statusResp.ServerVersion)
	fmt.Fprintf(out, "API Version: %s\n", statusResp.ApiVersion)
	fmt.Fprintf(out, "Schema Version: %s\n", statusResp.SchemaVersion)
	if ready {
		okLabel.Fprintln(out, "Ready")
	} else {
		errorLabel.Fprintln(out, "Not ready")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
