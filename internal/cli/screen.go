package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"negscreen/internal/model"
)

var (
	dob         string
	nationality string
	industry    string
	jobTitle    string
	outJSON     string
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen <name>",
	Short: "Run a one-shot negative news screening",
	Long: `Screen runs the full pipeline for a single individual and prints
the screening report as JSON.

Example:
  negscreen screen "Jane Smith"
  negscreen screen "Jane Smith" --dob 1980-05-12 --nationality UK
  negscreen screen "Jane Smith" --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&dob, "dob", "", "date of birth (YYYY-MM-DD)")
	screenCmd.Flags().StringVar(&nationality, "nationality", "", "nationality")
	screenCmd.Flags().StringVar(&industry, "industry", "", "industry or sector")
	screenCmd.Flags().StringVar(&jobTitle, "job-title", "", "job title or role")
	screenCmd.Flags().StringVar(&outJSON, "json", "", "write report JSON to file instead of stdout")
}

func runScreen(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cfg := loadConfig()
	p := newPipeline(cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), screenTimeout)
	defer cancel()

	req := model.ScreeningRequest{
		Name:        args[0],
		DOB:         dob,
		Nationality: nationality,
		Industry:    industry,
		JobTitle:    jobTitle,
	}

	state := p.Screen(ctx, req)
	if state.Report == nil {
		return fmt.Errorf("screening produced no report")
	}

	data, err := json.MarshalIndent(state.Report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if outJSON != "" {
		if err := os.WriteFile(outJSON, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", outJSON)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
