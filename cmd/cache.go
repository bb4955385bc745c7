package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/portdocs/portdocs/internal/triple"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parsed-corpus cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached parsed corpora",
	Run: func(cmd *cobra.Command, args []string) {
		if err := triple.ClearCache(); err != nil {
			log.Fatalf("clearing corpus cache: %v", err)
		}
		fmt.Println("corpus cache cleared")
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
