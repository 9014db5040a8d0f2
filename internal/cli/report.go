package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"onetexplorer/internal/domain"
	"onetexplorer/internal/impact"
	"onetexplorer/internal/report"

	"github.com/spf13/cobra"
)

func newSearchCommand(opts *rootOptions) *cobra.Command {
	var (
		pick   bool
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "search <keyword>...",
		Short: "Search occupations by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := opts.openApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			refs, err := a.Explorer.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !pick || len(refs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), renderRefs(refs))
				return nil
			}

			ref, ok, err := pickOccupation(refs)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			rep, run, err := a.Explorer.Generate(cmd.Context(), ref.Code, f, output, "cli")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderAnalysis(rep))
			fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", run.ReportPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&pick, "pick", false, "choose a result interactively and build its report")
	cmd.Flags().StringVar(&format, "format", "html", "report format when picking: html, json or md")
	cmd.Flags().StringVarP(&output, "output", "o", "", "report file path when picking")
	return cmd
}

func newReportCommand(opts *rootOptions) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "report <code>",
		Short: "Build the dashboard for an occupation code",
		Example: `  onetexplorer report 15-1252.00
  onetexplorer report 29-1141.00 --format md -o nurse.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := opts.openApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			rep, run, err := a.Explorer.Generate(cmd.Context(), args[0], f, output, "cli")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderAnalysis(rep))
			fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", run.ReportPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "html", "html, json or md")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file path (default <report_output_dir>/onet_<code>.<format>)")
	return cmd
}

// analyzeFile is the input of the offline analyze command.
type analyzeFile struct {
	Title     string           `json:"title"`
	Tasks     []analyzeTask    `json:"tasks"`
	Skills    []impact.Element `json:"skills"`
	Knowledge []impact.Element `json:"knowledge"`
	Abilities []impact.Element `json:"abilities"`
}

type analyzeTask struct {
	ID          string  `json:"id"`
	Description *string `json:"description"`
	Importance  float64 `json:"importance"`
}

// tasks rejects records without a description key; an empty string is kept.
func (in analyzeFile) tasks() ([]impact.Task, error) {
	out := make([]impact.Task, 0, len(in.Tasks))
	for i, t := range in.Tasks {
		if t.Description == nil {
			return nil, fmt.Errorf("task %d: %w: missing description", i, impact.ErrInvalidTask)
		}
		out = append(out, impact.Task{ID: t.ID, Description: *t.Description, Importance: t.Importance})
	}
	return out, nil
}

func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "analyze <file.json>",
		Short: "Score a task list from a JSON file without calling any API",
		Long: `analyze reads {"title", "tasks": [{"description", "importance"}], "skills": [...]}
and prints the AI impact analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == report.FormatHTML {
				return fmt.Errorf("analyze prints json or md")
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			classifier, err := cfg.Classifier()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var in analyzeFile
			if err := json.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			tasks, err := in.tasks()
			if err != nil {
				return err
			}
			res, err := impact.NewAnalyzer(classifier).Analyze(impact.Input{
				Title:     in.Title,
				Tasks:     tasks,
				Skills:    in.Skills,
				Knowledge: in.Knowledge,
				Abilities: in.Abilities,
			})
			if err != nil {
				return err
			}
			if f == report.FormatJSON {
				return report.RenderJSON(cmd.OutOrStdout(), domain.Report{
					Occupation:  domain.Occupation{Summary: domain.Summary{Title: in.Title}},
					Analysis:    res,
					GeneratedAt: time.Now(),
				})
			}
			return report.RenderMarkdown(cmd.OutOrStdout(), domain.Report{
				Occupation: domain.Occupation{Summary: domain.Summary{Title: in.Title}},
				Analysis:   res,
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "md", "json or md")
	return cmd
}
