package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/vcftools/vcf/internal/config"
)

const version = "0.3.0"

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "vcf",
	Short: "Clean up exported vCard contact files",
	Long: `vcf cleans .vcf contact exports: it strips bulky or private fields
(photos, notes, postal addresses, organizations), removes records that
have no phone number, and collapses duplicate contacts.

Malformed input never aborts a run: text outside BEGIN:VCARD/END:VCARD,
stray markers, and unterminated records are dropped and counted, and
every surviving record is kept in its original order.`,
	Version: version,
}

// Execute runs the root command. Cobra prints usage errors itself.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default .vcf.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// loadToolConfig resolves the effective configuration: defaults, then
// the config file when present, then VCF_* environment variables, then
// the --log-level flag. A missing file is only an error when --config
// named it explicitly.
func loadToolConfig() (*config.Config, error) {
	path := cfgFile
	explicit := path != ""
	if path == "" {
		path = config.DefaultPath
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = config.DefaultConfig()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}
