package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ozleads/lead-engine/internal/model"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect and manage stored job leads",
}

var jobsListCmd = &cobra.Command{
	Use:   "list <businessID>",
	Short: "List a business's jobs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		var statuses []model.JobStatus
		if group, _ := cmd.Flags().GetString("status"); group != "" {
			s, ok := model.StatusGroups[group]
			if !ok {
				return eris.Errorf("unknown status group %q", group)
			}
			statuses = s
		}

		jobs, err := env.Store.ListJobs(ctx, args[0], statuses)
		if err != nil {
			return err
		}
		return printJSON(jobs)
	},
}

var jobsSkipCmd = &cobra.Command{
	Use:   "skip <businessID> <jobID>",
	Short: "Mark a job skipped",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		reason, _ := cmd.Flags().GetString("reason")
		return env.Store.SkipJob(ctx, args[0], args[1], reason)
	},
}

func init() {
	jobsListCmd.Flags().String("status", "", "status group filter (leads, quoting, booked, complete, all)")
	jobsSkipCmd.Flags().String("reason", "", "why the job is being skipped")

	jobsCmd.AddCommand(jobsListCmd, jobsSkipCmd)
	rootCmd.AddCommand(jobsCmd)
}
