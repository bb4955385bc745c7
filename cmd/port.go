package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/portdocs/portdocs/internal/config"
	"github.com/portdocs/portdocs/internal/ecma"
	"github.com/portdocs/portdocs/internal/history"
	"github.com/portdocs/portdocs/internal/resolve"
	"github.com/portdocs/portdocs/internal/triple"
)

func runPort(cmd *cobra.Command, args []string) error {
	sourcePath, targetPath := args[0], args[1]
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	policy := cfg.Policy

	src, err := loadSourceCorpus(sourcePath, triple.Options{
		IncludeAssemblies: policy.IncludeAssemblies,
		ExcludeAssemblies: policy.ExcludeAssemblies,
	}, noCache)
	if err != nil {
		return fmt.Errorf("loading source documentation: %w", err)
	}
	reportProblems("source", len(src.Problems()))

	dst := ecma.NewCorpus()
	if err := loadTarget(dst, targetPath); err != nil {
		return fmt.Errorf("loading docs repository: %w", err)
	}
	reportProblems("target", len(dst.Problems()))

	var prompter resolve.Prompter
	if !policy.DisablePrompts {
		prompter = &resolve.ConsolePrompter{In: os.Stdin, Out: os.Stderr}
	}

	report, err := resolve.New(src, dst, policy, prompter).Run()
	if err != nil {
		if errors.Is(err, resolve.ErrAborted) {
			fmt.Println("aborted; no files written")
			return nil
		}
		return err
	}

	saved := 0
	if !dryRun {
		for _, t := range dst.AllTypes() {
			if !t.Changed() {
				continue
			}
			if err := t.Save(); err != nil {
				return fmt.Errorf("writing %s: %w", t.Path(), err)
			}
			saved++
		}
	}

	printSummary(report, dryRun, saved)
	recordRun(sourcePath, targetPath, dryRun, report)
	return nil
}

// loadSourceCorpus parses the source documentation, going through the
// compressed parsed-corpus cache for directories when the content digest
// matches a previous run.
func loadSourceCorpus(path string, opts triple.Options, noCache bool) (*triple.Corpus, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		c := triple.NewCorpus(opts)
		return c, c.LoadFile(path)
	}

	var digest string
	if !noCache {
		if digest, err = triple.DirDigest(path); err == nil && triple.HasCache(digest) {
			if c, err := triple.LoadCache(digest, opts); err == nil {
				return c, nil
			}
			log.Printf("corpus cache unreadable, reparsing %s", path)
		}
	}

	c := triple.NewCorpus(opts)
	if err := c.LoadDir(path); err != nil {
		return nil, err
	}
	if !noCache && digest != "" {
		if err := triple.SaveCache(c, digest); err != nil {
			log.Printf("saving corpus cache: %v", err)
		}
	}
	return c, nil
}

func loadTarget(dst *ecma.Corpus, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return dst.LoadDir(path)
	}
	return dst.LoadFile(path)
}

func reportProblems(side string, n int) {
	if n > 0 {
		log.Printf("%d %s file(s) skipped as unparseable", n, side)
	}
}

func printSummary(r *resolve.Report, dryRun bool, saved int) {
	fmt.Printf("Modified %d element(s) across %d type(s) and %d member(s).\n",
		r.ModifiedElements, len(r.ModifiedTypes), len(r.ModifiedMembers))
	if len(r.AddedExceptions) > 0 {
		fmt.Printf("Exception entries added or extended: %d\n", len(r.AddedExceptions))
	}
	if dryRun {
		fmt.Printf("Dry run: %d file(s) would be written.\n", len(r.ModifiedFiles))
	} else {
		fmt.Printf("Wrote %d file(s).\n", saved)
	}
	for _, p := range r.Problems {
		fmt.Printf("  problem: %s: %s\n", p.ID, p.Msg)
	}
}

func recordRun(sourcePath, targetPath string, dryRun bool, r *resolve.Report) {
	db, err := history.New(config.HistoryDBPath())
	if err != nil {
		log.Printf("opening run history: %v", err)
		return
	}
	defer db.Close()

	if err := db.Record(history.Run{
		SourcePath:       sourcePath,
		TargetPath:       targetPath,
		DryRun:           dryRun,
		ModifiedFiles:    len(r.ModifiedFiles),
		ModifiedTypes:    len(r.ModifiedTypes),
		ModifiedMembers:  len(r.ModifiedMembers),
		ModifiedElements: r.ModifiedElements,
		Problems:         len(r.Problems),
		ExceptionsAdded:  len(r.AddedExceptions),
	}); err != nil {
		log.Printf("recording run history: %v", err)
	}
}
