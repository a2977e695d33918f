package main

import (
	"github.com/spf13/cobra"
)

// augmentCmd merges external sense predictions into the auxiliary fact file
var augmentCmd = &cobra.Command{
	Use:   "augment",
	Short: "Merge sense predictions into kb/kb_aug.pl",
	Long: `Merge externally produced word-sense predictions into the auxiliary
fact file kb/kb_aug.pl, using the configured sense inventory to resolve
synonyms and hypernyms. Predictions whose sense is unknown to the
inventory are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline()
		if err != nil {
			return err
		}
		return p.Augment()
	},
}
