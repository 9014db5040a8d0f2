package cli

import (
	"fmt"
	"os"
	"strings"

	"onetexplorer/internal/config"
	"onetexplorer/internal/impact"

	"github.com/spf13/cobra"
)

func newGlossaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Manage extra classifier phrases",
	}

	var (
		path     string
		category string
		weight   float64
	)
	add := &cobra.Command{
		Use:     "add <phrase>...",
		Short:   "Add a phrase to the classifier glossary",
		Example: `  onetexplorer glossary add --category human "bedside manner"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := impact.ParseCategory(category)
			if err != nil {
				return err
			}
			if path == "" {
				path = os.Getenv("CLASSIFIER_GLOSSARY_PATH")
			}
			if path == "" {
				path = "glossary.yaml"
			}
			phrase := strings.Join(args, " ")
			added, err := config.AppendGlossaryTerm(path, phrase, c, weight)
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(cmd.OutOrStdout(), "%q is already in %s\n", phrase, path)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q as %s to %s\n", phrase, c, path)
			return nil
		},
	}
	add.Flags().StringVar(&path, "path", "", "glossary file (default CLASSIFIER_GLOSSARY_PATH or glossary.yaml)")
	add.Flags().StringVar(&category, "category", "", "automate, augment or human")
	add.Flags().Float64Var(&weight, "weight", 1, "pattern weight")
	_ = add.MarkFlagRequired("category")

	cmd.AddCommand(add)
	return cmd
}
