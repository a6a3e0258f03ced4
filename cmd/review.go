package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ozleads/lead-engine/internal/business"
	"github.com/ozleads/lead-engine/internal/review"
	"github.com/ozleads/lead-engine/pkg/anthropic"
)

var reviewCmd = &cobra.Command{
	Use:   "review <job.json>",
	Short: "Run a one-off AI review of a job lead",
	Long: `Sends a job lead through the AI review pipeline synchronously and
prints the structured review. Business context documents are loaded from
the configured context directory when --business is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		job, err := readJobFile(args[0])
		if err != nil {
			return err
		}

		businessID, _ := cmd.Flags().GetString("business")

		ai := anthropic.NewClient(cfg.Anthropic.Key)
		loader := business.NewContextLoader(cfg.Business.ContextDir)
		pipeline := review.NewPipeline(ai, loader, cfg.Anthropic, cfg.Review)

		result, err := pipeline.ReviewJob(ctx, businessID, job)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	reviewCmd.Flags().String("business", "", "business ID whose context documents to load")
	rootCmd.AddCommand(reviewCmd)
}
