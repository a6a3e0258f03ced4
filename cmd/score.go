package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ozleads/lead-engine/internal/config"
	"github.com/ozleads/lead-engine/internal/gazetteer"
	"github.com/ozleads/lead-engine/internal/model"
	"github.com/ozleads/lead-engine/internal/scorer"
	"github.com/ozleads/lead-engine/internal/servicearea"
)

var scoreCmd = &cobra.Command{
	Use:   "score <job.json>",
	Short: "Score a job lead against the rubric",
	Long: `Scores a job lead from a JSON file and prints the analysis:
score out of 10, green and red flags, recommendation, and a suggested
quote range. When the job carries a suburb the distance to the
configured base suburb is resolved first, so distance signals apply.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := readJobFile(args[0])
		if err != nil {
			return err
		}

		if job.Suburb != "" && job.DistanceKm == 0 {
			gaz := gazetteer.New(cfg.Gazetteer.DatasetPath)
			classifier := servicearea.NewClassifier(gaz, cfg.ServiceArea)
			if area, err := classifier.Classify(job.Suburb, job.State); err == nil && area.Zone != servicearea.ZoneUnknown {
				job.DistanceKm = area.DistanceKm
			}
		}

		weights := cfg.Scoring
		if defaults, _ := cmd.Flags().GetBool("defaults"); defaults {
			weights = config.DefaultScoring()
		}

		analysis := scorer.New(weights).Score(job)
		return printJSON(analysis)
	},
}

// readJobFile loads one job lead from a JSON file.
func readJobFile(path string) (*model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read job file %s", path)
	}
	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, eris.Wrapf(err, "parse job file %s", path)
	}
	return &job, nil
}

func init() {
	scoreCmd.Flags().Bool("defaults", false, "score with stock weights, ignoring config overrides")
	rootCmd.AddCommand(scoreCmd)
}
