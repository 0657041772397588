package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var serverURL string

var statusCmd = &cobra.Command{
	Use:   "status [job-id]",
	Short: "Query server status or a specific job",
	Long: `Queries the server for job status information.
If no job-id is provided, lists all jobs.
If a job-id is provided, shows detailed status for that job.`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return listJobs(fmt.Sprintf("%s/api/v1/jobs", serverURL))
	}

	jobID := args[0]
	return getJobStatus(fmt.Sprintf("%s/api/v1/jobs/%s/status", serverURL, jobID), jobID)
}

func listJobs(url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned error: %s", string(body))
	}

	var jobs []struct {
		ID     string `json:"id"`
		State  string `json:"state"`
		Config struct {
			Name   string `json:"name"`
			Points []any  `json:"points"`
			Starts int    `json:"starts"`
		} `json:"config"`
		BestLength float64 `json:"bestLength"`
		StartsDone int     `json:"startsDone"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(jobs) == 0 {
		fmt.Println("No jobs found")
		return nil
	}

	fmt.Printf("Found %d job(s):\n\n", len(jobs))
	for _, job := range jobs {
		fmt.Printf("Job ID: %s\n", job.ID)
		fmt.Printf("  State: %s\n", job.State)
		if job.Config.Name != "" {
			fmt.Printf("  Name: %s\n", job.Config.Name)
		}
		fmt.Printf("  Cities: %d\n", len(job.Config.Points))
		fmt.Printf("  Starts: %d/%d\n", job.StartsDone, job.Config.Starts)
		if job.BestLength > 0 {
			fmt.Printf("  Best length: %.2f\n", job.BestLength)
		}
		fmt.Println()
	}

	return nil
}

func getJobStatus(url, jobID string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("job not found: %s", jobID)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned error: %s", string(body))
	}

	var status struct {
		ID          string  `json:"id"`
		State       string  `json:"state"`
		Name        string  `json:"name"`
		Cities      int     `json:"cities"`
		Starts      int     `json:"starts"`
		StartsDone  int     `json:"startsDone"`
		BestLength  float64 `json:"bestLength"`
		FirstLength float64 `json:"firstLength"`
		Elapsed     float64 `json:"elapsed"`
		Error       string  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Job: %s\n", status.ID)
	fmt.Printf("State: %s\n", status.State)
	if status.Name != "" {
		fmt.Printf("Name: %s\n", status.Name)
	}
	fmt.Println()

	fmt.Println("Progress:")
	fmt.Printf("  Cities: %d\n", status.Cities)
	fmt.Printf("  Starts: %d/%d\n", status.StartsDone, status.Starts)
	if status.BestLength > 0 {
		fmt.Printf("  Best length: %.2f\n", status.BestLength)
	}
	if status.FirstLength > 0 && status.BestLength > 0 {
		improvement := status.FirstLength - status.BestLength
		improvementPct := improvement / status.FirstLength * 100
		fmt.Printf("  Improvement over first restart: %.2f (%.1f%%)\n", improvement, improvementPct)
	}
	if status.Elapsed > 0 {
		elapsed := time.Duration(status.Elapsed * float64(time.Second))
		fmt.Printf("  Elapsed: %s\n", elapsed.Round(time.Millisecond))
	}
	if status.Error != "" {
		fmt.Printf("\nError: %s\n", status.Error)
	}

	return nil
}
