package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ozleads/lead-engine/internal/model"
	"github.com/ozleads/lead-engine/internal/review"
	"github.com/ozleads/lead-engine/internal/servicearea"
	"github.com/ozleads/lead-engine/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the job ingestion server",
	Long:  "Accepts incoming job leads over HTTP, scores them, and reviews them in the background.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/jobs/{businessID}/incoming", env.handleIncomingJob)
		r.Get("/jobs/{businessID}", env.handleListJobs)
		r.Post("/jobs/{businessID}/{jobID}/skip", env.handleSkipJob)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(context.Background()) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// handleIncomingJob ingests a job lead. It persists the job and responds
// 202 immediately; the AI review runs in the background and attaches its
// result (plus a push notification) when it completes.
func (e *appEnv) handleIncomingJob(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")

	var job model.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if job.JobID == "" {
		job.JobID = uuid.NewString()
	}
	job.BusinessID = businessID

	// Resolve distance from the business base when the dataset knows the
	// suburb. An unknown suburb is not an error; the scorer treats a
	// missing distance as an absent signal.
	area, err := e.classifierFor(businessID).Classify(job.Suburb, job.State)
	if err != nil {
		zap.L().Warn("serve: service area lookup failed",
			zap.String("suburb", job.Suburb),
			zap.Error(err),
		)
		area = servicearea.Result{Zone: servicearea.ZoneUnknown}
	}
	if area.Zone != servicearea.ZoneUnknown {
		job.DistanceKm = area.DistanceKm
	}

	// Jobs from sources that don't pre-score get a rubric-derived lead
	// score, so the review pipeline never falls back to its neutral
	// default for them.
	analysis := e.Scorer.Score(&job)
	if job.LeadScore == nil {
		leadScore := float64(analysis.Score * 10)
		job.LeadScore = &leadScore
	}

	if err := e.Store.UpsertJob(r.Context(), businessID, &job); err != nil {
		zap.L().Error("serve: failed to store job",
			zap.String("job_id", job.JobID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to store job"})
		return
	}

	e.Manager.ReviewAsync(businessID, &job, func(out review.Outcome) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if out.Err == nil {
			if err := e.Store.AttachReview(ctx, businessID, out.JobID, out.Review); err != nil {
				zap.L().Error("serve: failed to attach review",
					zap.String("job_id", out.JobID),
					zap.Error(err),
				)
			}
		}
		// A failed review still notifies; the body degrades to the job
		// name and suburb.
		e.Notifier.JobReviewed(ctx, businessID, &job, out.Review)
	})

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status":       "accepted",
		"job_id":       job.JobID,
		"service_area": area.Zone,
		"score":        analysis.Score,
	})
}

// handleListJobs lists a business's jobs, optionally filtered by a status
// group name (leads, quoting, booked, complete, all).
func (e *appEnv) handleListJobs(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")

	var statuses []model.JobStatus
	if group := r.URL.Query().Get("status"); group != "" {
		s, ok := model.StatusGroups[group]
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unknown status group %q", group)})
			return
		}
		statuses = s
	}

	jobs, err := e.Store.ListJobs(r.Context(), businessID, statuses)
	if err != nil {
		zap.L().Error("serve: failed to list jobs", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list jobs"})
		return
	}
	if jobs == nil {
		jobs = []model.Job{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs, "count": len(jobs)})
}

// handleSkipJob marks a job skipped with an optional reason.
func (e *appEnv) handleSkipJob(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "businessID")
	jobID := chi.URLParam(r, "jobID")

	var req struct {
		Reason string `json:"reason"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
	}

	if err := e.Store.SkipJob(r.Context(), businessID, jobID, req.Reason); err != nil {
		if eris.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
			return
		}
		zap.L().Error("serve: failed to skip job",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to skip job"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "skipped", "job_id": jobID})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}
