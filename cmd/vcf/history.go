package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vcftools/vcf/internal/history"
)

var (
	historyLimit int
	historyDB    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent cleaning runs",
	Long: `List recent runs from the local history database, newest first.

Runs are recorded by "vcf clean" when history is enabled in .vcf.yaml
(history.enabled: true), via VCF_HISTORY=true, or with the --history
flag.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadToolConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		dbPath := cfg.History.Path
		if historyDB != "" {
			dbPath = historyDB
		}
		if dbPath == "" {
			dbPath = history.DefaultPath
		}

		store, err := history.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		runs, err := store.RecentRuns(context.Background(), historyLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching runs: %v\n", err)
			os.Exit(1)
		}

		if len(runs) == 0 {
			yellow := color.New(color.FgYellow).SprintFunc()
			fmt.Printf("\n%s No runs recorded in %s\n\n", yellow("✨"), dbPath)
			return
		}

		for _, run := range runs {
			displayRun(run)
		}
	},
}

var historyPruneKeep int

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old runs from the history database",
	Long: `Delete all but the newest runs from the history database.

Examples:
  vcf history prune              # Keep the newest 100 runs
  vcf history prune --keep 20    # Keep the newest 20 runs`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadToolConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		dbPath := cfg.History.Path
		if historyDB != "" {
			dbPath = historyDB
		}
		if dbPath == "" {
			dbPath = history.DefaultPath
		}

		store, err := history.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		deleted, err := store.Prune(context.Background(), historyPruneKeep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: prune failed: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Deleted %s run(s), keeping the newest %s\n",
			green("✓"), formatNumber(deleted), formatNumber(historyPruneKeep))
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of recent runs to show")
	historyCmd.PersistentFlags().StringVar(&historyDB, "db", "", "History database path")
	historyPruneCmd.Flags().IntVar(&historyPruneKeep, "keep", 100, "Number of newest runs to keep")
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

// displayRun formats and prints a single run with color
func displayRun(run *history.Run) {
	green := color.New(color.FgGreen)
	gray := color.New(color.FgHiBlack)

	fmt.Printf("[%s] %s → %s\n",
		run.StartedAt.Local().Format("2006-01-02 15:04:05"),
		green.Sprint(run.Source),
		run.Destination,
	)
	fmt.Printf("    %s\n", gray.Sprintf(
		"kept %s of %s, %s duplicates, %s without phone, %s fields removed (%s)",
		formatNumber(run.RecordsKept), formatNumber(run.BlocksParsed),
		formatNumber(run.DuplicatesRemoved), formatNumber(run.RecordsNoPhone),
		formatNumber(run.FieldsRemoved), run.Duration.Round(time.Millisecond),
	))
}
