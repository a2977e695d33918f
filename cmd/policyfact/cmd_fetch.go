package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maibinhkznk209/policyfact/internal/fetch"
)

var fetchTimeout time.Duration

// fetchCmd downloads a policy page into the paragraph input
var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Download a policy page and save its visible text as the paragraph input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline()
		if err != nil {
			return err
		}

		path := p.Config().Inputs.Paragraph
		client := fetch.New(fetchTimeout)
		if err := client.FetchToFile(cmd.Context(), args[0], path); err != nil {
			return err
		}
		logger.Info("policy text saved", zap.String("url", args[0]), zap.String("path", path))
		return nil
	},
}

func init() {
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 30*time.Second, "HTTP request timeout")
}
