package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/portdocs/portdocs/internal/config"
	"github.com/portdocs/portdocs/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past porting runs",
	Run:   runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	Run:   runHistoryClear,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.AddCommand(historyClearCmd)
}

func openHistory() *history.DB {
	db, err := history.New(config.HistoryDBPath())
	if err != nil {
		log.Fatalf("opening run history: %v", err)
	}
	return db
}

func runHistory(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	db := openHistory()
	defer db.Close()

	runs, err := db.Recent(limit)
	if err != nil {
		log.Fatalf("reading run history: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return
	}

	for _, r := range runs {
		mode := ""
		if r.DryRun {
			mode = " (dry run)"
		}
		fmt.Printf("%s%s\n", r.RanAt.Format("2006-01-02 15:04:05"), mode)
		fmt.Printf("  %s -> %s\n", r.SourcePath, r.TargetPath)
		fmt.Printf("  %d element(s) in %d type(s), %d member(s), %d file(s)",
			r.ModifiedElements, r.ModifiedTypes, r.ModifiedMembers, r.ModifiedFiles)
		if r.Problems > 0 {
			fmt.Printf(", %d problem(s)", r.Problems)
		}
		fmt.Println()
	}
}

func runHistoryClear(cmd *cobra.Command, args []string) {
	db := openHistory()
	defer db.Close()

	if err := db.Clear(); err != nil {
		log.Fatalf("clearing run history: %v", err)
	}
	fmt.Println("run history cleared")
}
