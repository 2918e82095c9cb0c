package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vcftools/vcf/internal/cleaner"
	"github.com/vcftools/vcf/internal/logging"
)

var (
	statsDrop        []string
	statsPhonePrefix string
	statsEncoding    string
)

var statsCmd = &cobra.Command{
	Use:   "stats SOURCE...",
	Short: "Preview what cleaning would do, without writing anything",
	Long: `Run the cleaning pipeline over the given files and report what would
be kept and removed. No file is written or modified.

Examples:
  vcf stats contacts.vcf
  vcf stats backup/*.vcf
  vcf stats contacts.vcf --drop PHOTO,NOTE,ADR,ORG,BDAY`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadToolConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		rules := cfg.FilterConfig()
		if cmd.Flags().Changed("drop") {
			rules.DropPrefixes = statsDrop
		}
		if statsPhonePrefix != "" {
			rules.PhonePrefix = statsPhonePrefix
		}
		encoding := cfg.Encoding
		if statsEncoding != "" {
			encoding = statsEncoding
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

		cyan := color.New(color.FgCyan).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		ctx := context.Background()
		failed := 0
		for _, source := range args {
			result, err := c.Analyze(ctx, source)
			if err != nil {
				failed++
				fmt.Printf("%s %s: %v\n", red("✗"), source, err)
				continue
			}

			fmt.Printf("%s\n", cyan(source))
			fmt.Printf("  Records parsed: %s\n", formatNumber(result.BlocksParsed))
			fmt.Printf("  Would keep: %s\n", formatNumber(result.RecordsKept))
			fmt.Printf("  Without phone: %s\n", formatNumber(result.RecordsNoPhone))
			fmt.Printf("  Duplicates: %s\n", formatNumber(result.DuplicatesRemoved))
			fmt.Printf("  Fields to remove: %s\n", formatNumber(result.FieldsRemoved))
			fmt.Printf("  Malformed lines: %s\n", formatNumber(result.DiscardedLines))
			fmt.Println()
		}

		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	statsCmd.Flags().StringSliceVar(&statsDrop, "drop", nil, "Field prefixes to remove (overrides config)")
	statsCmd.Flags().StringVar(&statsPhonePrefix, "phone-prefix", "", "Field prefix a record must carry to be kept (default TEL)")
	statsCmd.Flags().StringVar(&statsEncoding, "encoding", "", "Source encoding: utf-8, windows-1251, windows-1252, latin-1")
	rootCmd.AddCommand(statsCmd)
}
