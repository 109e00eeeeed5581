package cli

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/uiuclibrary/tyko/internal/common/httpclient"
)

var pbcoreOutput string

var pbcoreCmd = &cobra.Command{
	Use:   "pbcore OBJECT_ID [-o FILE]",
	Short: "Download the PBCore document of an object",
	Long: `Download the PBCore XML document describing an object and its items.
The document is written to stdout unless -o names a file.

Examples:
  tyko pbcore 4
  tyko pbcore 4 -o object-4.xml`,
	Args: cobra.ExactArgs(1),
	RunE: downloadPBCore,
}

func downloadPBCore(cmd *cobra.Command, args []string) error {
	if _, err := strconv.Atoi(args[0]); err != nil {
		return fmt.Errorf("invalid object id: %s", args[0])
	}
	body, _, err := newClient().DoRequest(httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "object/" + args[0] + "-pbcore.xml",
	})
	if err != nil {
		return err
	}

	if pbcoreOutput == "" {
		_, err := cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(pbcoreOutput, body, 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", pbcoreOutput, err)
	}
	if jsonOutput {
		printJSON(cmd, map[string]any{"result": 1, "file": pbcoreOutput, "bytes": len(body)})
		return nil
	}
	okLabel.Fprintf(cmd.OutOrStdout(), "[OK] ")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", pbcoreOutput)
	return nil
}

func init() {
	pbcoreCmd.Flags().StringVarP(&pbcoreOutput, "output", "o", "", "File to write the document to")
	rootCmd.AddCommand(pbcoreCmd)
}
