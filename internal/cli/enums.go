package cli

import (
	"fmt"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/uiuclibrary/tyko/internal/common/httpclient"
)

var enumsCmd = &cobra.Command{
	Use:   "enums [FAMILY/NAME]",
	Short: "List the values of a format enumeration",
	Long: `List the values of a format enumeration, such as film/film_gauge or
open_reel/reel_speed. Without an argument, list the enumerations the server offers.

Examples:
  tyko enums
  tyko enums film/film_gauge`,
	Args: cobra.MaximumNArgs(1),
	RunE: listEnums,
}

func listEnums(cmd *cobra.Command, args []string) error {
	client := newClient()
	if len(args) == 0 {
		return listEnumNames(cmd, client)
	}

	parts := strings.Split(strings.Trim(args[0], "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid enumeration. Expected <family>/<name>")
	}
	response, _, err := client.DoRequest(httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "formats/" + parts[0] + "/" + parts[1],
	})
	if err != nil {
		return err
	}
	if jsonOutput {
		return printResult(cmd, response)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n", args[0])
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	gjson.ParseBytes(response).ForEach(func(_, v gjson.Result) bool {
		fmt.Fprintf(w, "  %d\t%s\n", v.Get("id").Int(), v.Get("name").String())
		return true
	})
	return w.Flush()
}

// listEnumNames prints the enumerations found in the route listing of the server.
func listEnumNames(cmd *cobra.Command, client httpclient.HTTPClientInterface) error {
	response, _, err := client.DoRequest(httpclient.RequestOptions{Method: http.MethodGet, Path: "/"})
	if err != nil {
		return err
	}

	var names []string
	gjson.ParseBytes(response).ForEach(func(_, route gjson.Result) bool {
		p := route.Get("route").String()
		i := strings.Index(p, "/formats/")
		if i < 0 || strings.Contains(p, "cassette_tape") {
			return true
		}
		names = append(names, p[i+len("/formats/"):])
		return true
	})

	if jsonOutput {
		printJSON(cmd, map[string]any{"result": 1, "value": names})
		return nil
	}
	for _, n := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", n)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(enumsCmd)
}
