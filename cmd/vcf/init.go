package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vcftools/vcf/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .vcf.yaml config file",
	Long: `Write a commented default configuration to .vcf.yaml in the current
directory. The file documents the default drop rules and the optional
extras that can be uncommented.

Example:
  cd ~/contacts
  vcf init
  vcf init --force   # Overwrite an existing .vcf.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := config.DefaultPath
		if cfgFile != "" {
			path = cfgFile
		}

		if !initForce {
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(os.Stderr, "Error: %s already exists (use --force to overwrite)\n", path)
				os.Exit(1)
			}
		}

		if err := config.SaveDefaultConfig(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s Wrote default configuration\n\n", green("✓"))
		fmt.Printf("  Config: %s\n", cyan(path))
		fmt.Println()
		fmt.Printf("%s Next steps:\n", gray("→"))
		fmt.Printf("  %s\n", gray("vcf stats contacts.vcf                  # Preview what cleaning would do"))
		fmt.Printf("  %s\n", gray("vcf clean contacts.vcf cleaned.vcf      # Clean a file"))
		fmt.Println()
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
