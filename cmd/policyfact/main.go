package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/maibinhkznk209/policyfact/pkg/policyfact"
	"github.com/maibinhkznk209/policyfact/pkg/policyfact/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "policyfact",
	Short: "Compile privacy-policy text into a queryable fact base",
	Long: `policyfact turns a privacy-policy paragraph into a small first-order
fact base plus query artifacts, using fixed keyword rules end to end.

The pipeline stages are independent and re-runnable:
  build-vocab   derive the vocabulary (constants and predicate signatures)
  build-kb      extract facts into kb/kb.pl with a readable summary
  gen-queries   map questions to query expressions and emit the batch script
  run-all       all of the above, optionally watching for input changes
  augment       merge external sense predictions into kb/kb_aug.pl
  query         run one ad hoc query against the fact files
  eval          answer the mapped questions in process
  fetch         download a policy page into the paragraph input`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// pipeline constructs the facade from the configured (or default) config.
func pipeline() (*policyfact.Pipeline, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return policyfact.New(cfg, logger), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Pipeline config file (YAML)")

	rootCmd.AddCommand(buildVocabCmd)
	rootCmd.AddCommand(buildKBCmd)
	rootCmd.AddCommand(genQueriesCmd)
	rootCmd.AddCommand(runAllCmd)
	rootCmd.AddCommand(augmentCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(fetchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
