package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/portdocs/portdocs/internal/mcp"
	"github.com/portdocs/portdocs/internal/triple"
)

var showCmd = &cobra.Command{
	Use:   "show <docid>",
	Short: "Print the source documentation fragment for one API",
	Example: `  portdocs show --source ./artifacts/xml "M:System.String.Concat(System.String,System.String)"
  portdocs show --source ./artifacts/xml --json "P:System.String.Length"`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func init() {
	showCmd.Flags().String("source", "", "source documentation file or directory (required)")
	showCmd.Flags().Bool("json", false, "print the raw fragment as JSON")
	showCmd.Flags().Bool("no-cache", false, "skip the parsed-corpus cache")
	showCmd.MarkFlagRequired("source")
}

func runShow(cmd *cobra.Command, args []string) {
	sourcePath, _ := cmd.Flags().GetString("source")
	asJSON, _ := cmd.Flags().GetBool("json")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	src, err := loadSourceCorpus(sourcePath, triple.Options{}, noCache)
	if err != nil {
		log.Fatalf("loading source documentation: %v", err)
	}

	m, ok := src.Lookup(args[0])
	if !ok {
		log.Fatalf("no documentation for %s", args[0])
	}

	if asJSON {
		out, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			log.Fatalf("encoding fragment: %v", err)
		}
		fmt.Println(string(out))
		return
	}
	fmt.Print(mcp.RenderMarkdown(m))
}
