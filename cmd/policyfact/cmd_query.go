package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// queryCmd runs one ad hoc query against the fact files
var queryCmd = &cobra.Command{
	Use:   "query <expression>",
	Short: "Run one ad hoc query against kb/kb.pl",
	Long: `Run one ad hoc query against the current fact files.

The expression is a predicate, optionally with arguments:
  policyfact query "collects"
  policyfact query "collects(google, X)"
  policyfact query "uses_for(google, location_data, Y)"

Exact predicate matches are listed first; when there are none and the
expression carries arguments, a fuzzy substring match over the primary
fact list is tried.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline()
		if err != nil {
			return err
		}

		res := p.Query(args[0])
		fmt.Printf("%s (%d results)\n", res.Note, res.Count)
		for _, line := range res.Results {
			fmt.Println("  " + line)
		}
		return nil
	},
}

// evalCmd answers the mapped questions in process
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Answer the mapped questions in process and write results/answers.*",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline()
		if err != nil {
			return err
		}

		answers, err := p.Eval()
		if err != nil {
			return err
		}

		for _, a := range answers {
			if !a.Mapped {
				fmt.Printf("%s: not mapped\n", a.ID)
				continue
			}
			if len(a.Variables) == 0 {
				fmt.Printf("%s: %t\n", a.ID, a.Holds)
				continue
			}
			values := make([]string, 0, len(a.Bindings))
			for _, row := range a.Bindings {
				parts := make([]string, 0, len(row))
				for _, v := range a.Variables {
					parts = append(parts, row[v])
				}
				values = append(values, strings.Join(parts, "/"))
			}
			fmt.Printf("%s: %s\n", a.ID, strings.Join(values, ", "))
		}
		return nil
	},
}
