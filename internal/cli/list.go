package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	listLimit  int
	listOffset int
)

var listCmd = &cobra.Command{
	Use:   "list KIND [flags]",
	Short: "List resources of a kind",
	Long: `List resources of a kind. Supported kinds:
  - projects
  - collections
  - objects
  - items
  - notes
  - formats

Examples:
  # List all projects
  tyko list projects

  # List the second page of projects
  tyko list projects --limit 20 --offset 20

  # List items in JSON format
  tyko list items -j`,
	Args: cobra.ExactArgs(1),
	RunE: listResources,
}

func listResources(cmd *cobra.Command, args []string) error {
	kind, err := LookupKind(args[0])
	if err != nil {
		return err
	}

	queryParams := make(map[string]string)
	if kind.Name == "project" {
		if listLimit > 0 {
			queryParams["limit"] = strconv.Itoa(listLimit)
		}
		if listOffset > 0 {
			queryParams["offset"] = strconv.Itoa(listOffset)
		}
	}

	response, err := newClient().ListResources(kind.Collection, queryParams)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printResult(cmd, response)
	}
	return printResourceList(cmd, kind, response)
}

// printResourceList prints an id and name table under a title-cased header.
func printResourceList(cmd *cobra.Command, kind Kind, response []byte) error {
	rows := gjson.ParseBytes(response)
	if kind.ListKey != "" {
		rows = rows.Get(kind.ListKey)
	}
	if !rows.IsArray() {
		return fmt.Errorf("unexpected response: %s", string(response))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n", cases.Title(language.English).String(kind.Name+"s"))
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	rows.ForEach(func(_, row gjson.Result) bool {
		fmt.Fprintf(w, "  %s\t%s\n", row.Get(kind.IDField).String(), row.Get(kind.NameField).String())
		return true
	})
	if err := w.Flush(); err != nil {
		return err
	}
	if total := gjson.GetBytes(response, "total"); total.Exists() && total.Int() > int64(len(rows.Array())) {
		fmt.Fprintf(out, "Showing %d of %d\n", len(rows.Array()), total.Int())
	}
	return nil
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of projects to list")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Number of projects to skip")

	rootCmd.AddCommand(listCmd)
}
