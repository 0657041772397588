package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/v3lip/tspsolve/internal/instance"
	"github.com/v3lip/tspsolve/internal/render"
	"github.com/v3lip/tspsolve/internal/solve"
	"github.com/v3lip/tspsolve/internal/store"
)

// runJob executes a solve job in the background. When st is not nil the
// finished record and a tour.svg artifact are persisted; when dataDir is
// not empty a progress trace is written alongside them.
func runJob(ctx context.Context, jm *JobManager, st store.Store, dataDir string, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	})
	if err != nil {
		return err
	}

	slog.Info("Starting job", "job_id", jobID, "cities", len(job.Config.Points), "starts", job.Config.Starts)

	// Jobs created through the API were validated there; guard anyway for
	// jobs submitted straight to the manager.
	if err := instance.ValidatePoints(job.Config.Points); err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	var tracer *store.TraceWriter
	if dataDir != "" {
		tracer, err = store.NewTraceWriter(dataDir, jobID, false)
		if err != nil {
			slog.Warn("Trace disabled for job", "job_id", jobID, "error", err)
			tracer = nil
		} else {
			defer tracer.Close()
		}
	}

	// Check for cancellation before starting the expensive part.
	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	solver := solve.New(
		solve.WithStarts(job.Config.Starts),
		solve.WithSeed(job.Config.Seed),
		solve.WithWorkers(job.Config.Workers),
		solve.WithProgress(func(p solve.Progress) {
			onProgress(jm, tracer, jobID, p)
		}),
	)

	start := time.Now()
	result := solver.Solve(job.Config.Points)
	elapsed := time.Since(start)

	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	endTime := time.Now()
	err = jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.BestTour = result.Tour
		j.BestLength = result.Length
		j.StartsDone = len(result.Candidates)
		j.EndTime = &endTime
	})
	if err != nil {
		return err
	}

	slog.Info("Job completed",
		"job_id", jobID,
		"elapsed", elapsed,
		"best_length", result.Length,
		"starts", len(result.Candidates),
	)

	if st != nil {
		if err := persistResult(st, job, result, elapsed); err != nil {
			slog.Error("Failed to persist job result", "job_id", jobID, "error", err)
		}
	}

	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:      jobID,
		State:      StateCompleted,
		StartsDone: len(result.Candidates),
		Starts:     len(result.Candidates),
		BestLength: result.Length,
		Timestamp:  time.Now(),
	})

	return nil
}

// onProgress folds a completed restart into the job and fans it out.
func onProgress(jm *JobManager, tracer *store.TraceWriter, jobID string, p solve.Progress) {
	jm.UpdateJob(jobID, func(j *Job) {
		j.StartsDone = p.StartIndex + 1
		j.BestLength = p.BestLength
		if p.StartIndex == 0 {
			j.FirstLength = p.Length
		}
	})

	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:      jobID,
		State:      StateRunning,
		StartsDone: p.StartIndex + 1,
		Starts:     p.Starts,
		BestLength: p.BestLength,
		Timestamp:  time.Now(),
	})

	if tracer != nil {
		entry := store.TraceEntry{
			StartIndex: p.StartIndex,
			Start:      p.Start,
			Length:     p.Length,
			BestLength: p.BestLength,
			Timestamp:  time.Now(),
		}
		if err := tracer.Write(entry); err != nil {
			slog.Warn("Failed to write trace entry", "job_id", jobID, "error", err)
		}
	}
}

// persistResult saves the record and its tour.svg artifact.
func persistResult(st store.Store, job *Job, result solve.Result, elapsed time.Duration) error {
	record := store.NewRecord(job.ID, job.Config.Name, job.Config.Points, result, elapsed, store.SolveConfig{
		Starts:  job.Config.Starts,
		Seed:    job.Config.Seed,
		Workers: job.Config.Workers,
	})
	if err := st.SaveRecord(record); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	svg := render.SVG(job.Config.Points, result.Tour, render.Options{})
	if err := st.SaveArtifact(job.ID, "tour.svg", svg); err != nil {
		return fmt.Errorf("failed to save tour artifact: %w", err)
	}
	return nil
}

// markJobFailed marks a job as failed with an error message
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("Job failed", "job_id", jobID, "error", err)
}

// markJobCancelled marks a job as cancelled
func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("Job cancelled", "job_id", jobID)
}
