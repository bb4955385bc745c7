package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "portdocs <source> <target>",
	Short: "Port API documentation between an IntelliSense corpus and a docs repository",
	Long: `portdocs reads IntelliSense-style XML documentation and merges it into
an ECMAXML docs repository. Text is only ever written into empty target
fields; authored documentation is never overwritten.`,
	Example: `  portdocs ./artifacts/xml ./dotnet-api-docs/xml
  portdocs --dry-run ./artifacts/xml ./dotnet-api-docs/xml
  portdocs --include-assembly System.Memory ./artifacts/xml ./docs/xml`,
	Args: cobra.ExactArgs(2),
	RunE: runPort,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.Bool("dry-run", false, "report what would change without writing files")
	flags.Bool("no-cache", false, "skip the parsed-corpus cache")
	flags.Bool("markdown-remarks", false, "emit remarks as markdown in a raw format block")
	flags.Bool("preserve-inheritdoc", false, "record inherit-doc markers instead of flattening them")
	flags.Bool("disable-prompts", false, "record name mismatches as problems instead of prompting")
	flags.Bool("skip-interface-implementations", false, "disable the explicit-interface fallback")
	flags.Bool("exceptions-existing", false, "append to exception entries the target already lists")
	flags.StringSlice("include-assembly", nil, "only load these source assemblies (repeatable)")
	flags.StringSlice("exclude-assembly", nil, "skip these source assemblies (repeatable)")

	for flag, key := range map[string]string{
		"markdown-remarks":               "policy.markdown_remarks",
		"preserve-inheritdoc":            "policy.preserve_inheritdoc",
		"disable-prompts":                "policy.disable_prompts",
		"skip-interface-implementations": "policy.skip_interface_implementations",
		"exceptions-existing":            "policy.exceptions_existing",
		"include-assembly":               "policy.include_assemblies",
		"exclude-assembly":               "policy.exclude_assemblies",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatalf("binding flag %s: %v", flag, err)
		}
	}

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)
}
