package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watch bool

// buildVocabCmd derives the vocabulary artifacts
var buildVocabCmd = &cobra.Command{
	Use:   "build-vocab",
	Short: "Derive the vocabulary from the paragraph and questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline()
		if err != nil {
			return err
		}
		return p.BuildVocab()
	},
}

// buildKBCmd extracts the fact base
var buildKBCmd = &cobra.Command{
	Use:   "build-kb",
	Short: "Extract facts from the paragraph into kb/kb.pl",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline()
		if err != nil {
			return err
		}
		return p.BuildKB()
	},
}

// genQueriesCmd maps questions and writes the query artifacts
var genQueriesCmd = &cobra.Command{
	Use:   "gen-queries",
	Short: "Map questions to query expressions and emit the batch script",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline()
		if err != nil {
			return err
		}
		return p.GenQueries()
	},
}

// runAllCmd runs the full pipeline, optionally watching the inputs
var runAllCmd = &cobra.Command{
	Use:   "run-all",
	Short: "Run vocabulary, fact extraction and query generation in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline()
		if err != nil {
			return err
		}
		if err := p.RunAll(); err != nil {
			return err
		}
		if !watch {
			return nil
		}
		return watchInputs(func() {
			if err := p.RunAll(); err != nil {
				logger.Warn("pipeline re-run failed", zap.Error(err))
			}
		}, p.Config().Inputs.Paragraph, p.Config().Inputs.Questions)
	},
}

func init() {
	runAllCmd.Flags().BoolVar(&watch, "watch", false, "Re-run the pipeline when an input file changes")
}

// watchInputs re-runs the pipeline when one of the input files changes.
// Events are debounced; editors fire several per save.
func watchInputs(rerun func(), paths ...string) error {
	inputs := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		inputs[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	logger.Info("watching for input changes", zap.Int("dirs", len(dirs)))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	var timer *time.Timer
	debounced := make(chan struct{}, 1)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, tracked := inputs[abs]; !tracked {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(500*time.Millisecond, func() {
				select {
				case debounced <- struct{}{}:
				default:
				}
			})
		case <-debounced:
			logger.Info("input changed, re-running pipeline")
			rerun()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		case <-sig:
			logger.Info("stopping watch")
			return nil
		}
	}
}
