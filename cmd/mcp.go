package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/portdocs/portdocs/internal/mcp"
	"github.com/portdocs/portdocs/internal/triple"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve a source documentation corpus over the Model Context Protocol",
	Long: `Loads the source documentation and serves it over stdio so editor
agents can look up and search API docs while writing documentation.`,
	Run: runMCP,
}

func init() {
	mcpCmd.Flags().String("source", "", "source documentation file or directory (required)")
	mcpCmd.Flags().Bool("no-cache", false, "skip the parsed-corpus cache")
	mcpCmd.MarkFlagRequired("source")
}

func runMCP(cmd *cobra.Command, args []string) {
	sourcePath, _ := cmd.Flags().GetString("source")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	src, err := loadSourceCorpus(sourcePath, triple.Options{}, noCache)
	if err != nil {
		log.Fatalf("loading source documentation: %v", err)
	}

	server := mcp.NewServer(src)

	errCh := make(chan error)
	go func() { errCh <- server.Run() }()

	if err := waitForSignal(errCh); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func waitForSignal(errCh chan error) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		log.Printf("received signal: %s", sig)
		return nil
	case err := <-errCh:
		return err
	}
}
