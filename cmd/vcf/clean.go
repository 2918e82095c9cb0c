package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vcftools/vcf/internal/cleaner"
	"github.com/vcftools/vcf/internal/history"
	"github.com/vcftools/vcf/internal/logging"
)

var (
	cleanOutDir      string
	cleanJobs        int
	cleanDrop        []string
	cleanPhonePrefix string
	cleanEncoding    string
	cleanHistory     bool
	cleanHistoryDB   string
)

var cleanCmd = &cobra.Command{
	Use:   "clean SOURCE DEST",
	Short: "Clean one or more contact files",
	Long: `Clean contact files: strip unwanted fields, drop records that have no
phone number, and collapse duplicate contacts.

With two arguments the first file is cleaned into the second. With
--out-dir any number of sources is cleaned into DIR, each one as
<name>.clean.vcf. Source files are never modified, and a destination is
only written once its source has been fully read, so cleaning a file
onto itself is safe.

Examples:
  vcf clean contacts.vcf contacts.clean.vcf
  vcf clean backup/*.vcf --out-dir cleaned/
  vcf clean contacts.vcf out.vcf --drop PHOTO,NOTE,ADR,ORG,BDAY
  vcf clean contacts.vcf out.vcf --encoding windows-1251
  vcf clean contacts.vcf out.vcf --history`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadToolConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		rules := cfg.FilterConfig()
		if cmd.Flags().Changed("drop") {
			rules.DropPrefixes = cleanDrop
		}
		if cleanPhonePrefix != "" {
			rules.PhonePrefix = cleanPhonePrefix
		}
		encoding := cfg.Encoding
		if cleanEncoding != "" {
			encoding = cleanEncoding
		}

		jobs, err := buildJobs(args, cleanOutDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cleanOutDir != "" {
			if err := os.MkdirAll(cleanOutDir, 0755); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to create output directory: %v\n", err)
				os.Exit(1)
			}
		}

		c, err := cleaner.New(cleaner.Options{
			Rules:    rules,
			Encoding: encoding,
			Logger:   logging.New(cfg.LogLevel),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		results := c.CleanAll(ctx, jobs, cleanJobs)

		recordEnabled := cfg.History.Enabled
		if cmd.Flags().Changed("history") {
			recordEnabled = cleanHistory
		}
		if recordEnabled {
			dbPath := cfg.History.Path
			if cleanHistoryDB != "" {
				dbPath = cleanHistoryDB
			}
			recordHistory(ctx, dbPath, results)
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		failed := 0
		var totals cleaner.Result
		for _, res := range results {
			if res.Err != nil {
				failed++
				fmt.Printf("%s %s: %v\n", red("✗"), res.Job.Source, res.Err)
				continue
			}
			r := res.Result
			fmt.Printf("%s %s → %s\n", green("✓"), res.Job.Source, res.Job.Destination)
			detail := fmt.Sprintf("kept %s of %s (%s without phone, %s duplicates, %s fields removed",
				formatNumber(r.RecordsKept), formatNumber(r.BlocksParsed),
				formatNumber(r.RecordsNoPhone), formatNumber(r.DuplicatesRemoved),
				formatNumber(r.FieldsRemoved))
			if r.DiscardedLines > 0 {
				detail += fmt.Sprintf(", %s malformed lines discarded", formatNumber(r.DiscardedLines))
			}
			fmt.Printf("  %s\n", gray(detail+")"))

			totals.BlocksParsed += r.BlocksParsed
			totals.RecordsKept += r.RecordsKept
			totals.RecordsNoPhone += r.RecordsNoPhone
			totals.DuplicatesRemoved += r.DuplicatesRemoved
			totals.FieldsRemoved += r.FieldsRemoved
			totals.DiscardedLines += r.DiscardedLines
		}

		if len(results) > 1 {
			fmt.Println()
			fmt.Printf("%s Cleaned %d of %d file(s)\n", green("✓"), len(results)-failed, len(results))
			fmt.Printf("  Records kept: %s of %s\n", formatNumber(totals.RecordsKept), formatNumber(totals.BlocksParsed))
			fmt.Printf("  Without phone: %s\n", formatNumber(totals.RecordsNoPhone))
			fmt.Printf("  Duplicates removed: %s\n", formatNumber(totals.DuplicatesRemoved))
			fmt.Printf("  Fields removed: %s\n", formatNumber(totals.FieldsRemoved))
		}

		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOutDir, "out-dir", "o", "", "Clean several files into this directory as <name>.clean.vcf")
	cleanCmd.Flags().IntVarP(&cleanJobs, "jobs", "j", 4, "Max files cleaned concurrently")
	cleanCmd.Flags().StringSliceVar(&cleanDrop, "drop", nil, "Field prefixes to remove (overrides config)")
	cleanCmd.Flags().StringVar(&cleanPhonePrefix, "phone-prefix", "", "Field prefix a record must carry to be kept (default TEL)")
	cleanCmd.Flags().StringVar(&cleanEncoding, "encoding", "", "Source encoding: utf-8, windows-1251, windows-1252, latin-1")
	cleanCmd.Flags().BoolVar(&cleanHistory, "history", false, "Record this run in the history database")
	cleanCmd.Flags().StringVar(&cleanHistoryDB, "history-db", "", "History database path")
	rootCmd.AddCommand(cleanCmd)
}

// buildJobs maps command arguments to source/destination pairs.
func buildJobs(args []string, outDir string) ([]cleaner.Job, error) {
	if outDir == "" {
		if len(args) != 2 {
			return nil, fmt.Errorf("expected SOURCE DEST (got %d argument(s)); use --out-dir to clean several files", len(args))
		}
		return []cleaner.Job{{Source: args[0], Destination: args[1]}}, nil
	}
	jobs := make([]cleaner.Job, 0, len(args))
	for _, src := range args {
		jobs = append(jobs, cleaner.Job{
			Source:      src,
			Destination: filepath.Join(outDir, cleanedName(src)),
		})
	}
	return jobs, nil
}

// cleanedName derives the --out-dir output name:
// backup/contacts.vcf becomes contacts.clean.vcf.
func cleanedName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".clean" + ext
}

// recordHistory writes successful runs to the history database. History
// problems are warnings; they never fail the cleaning itself.
func recordHistory(ctx context.Context, dbPath string, results []cleaner.JobResult) {
	if dbPath == "" {
		dbPath = history.DefaultPath
	}
	store, err := history.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: run history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if err := store.RecordRun(ctx, historyRun(res.Result)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record run for %s: %v\n", res.Job.Source, err)
		}
	}
}

// historyRun converts a pipeline result to a history row.
func historyRun(r *cleaner.Result) *history.Run {
	return &history.Run{
		ID:                r.RunID,
		Source:            r.Source,
		Destination:       r.Destination,
		StartedAt:         r.StartedAt,
		Duration:          r.Duration,
		BlocksParsed:      r.BlocksParsed,
		RecordsKept:       r.RecordsKept,
		RecordsNoPhone:    r.RecordsNoPhone,
		DuplicatesRemoved: r.DuplicatesRemoved,
		FieldsRemoved:     r.FieldsRemoved,
		DiscardedLines:    r.DiscardedLines,
	}
}
