package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestServer builds a Server wired to an httptest instance.
func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	s := NewServer("", nil, "")

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/v1/jobs", s.handleJobs)
	mux.HandleFunc("/api/v1/jobs/", s.handleJobsWithID)

	ts := httptest.NewServer(s.loggingMiddleware(s.corsMiddleware(mux)))
	t.Cleanup(ts.Close)
	return s, ts
}

// waitForState polls until the job reaches a terminal state.
func waitForState(t *testing.T, s *Server, jobID string, want JobState) *Job {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, ok := s.jobManager.GetJob(jobID)
		if ok && job.State == want {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Job %s did not reach state %s", jobID, want)
	return nil
}

func TestCreateJobAndStatus(t *testing.T) {
	s, ts := newTestServer(t)

	body := `{"name":"square","points":[{"x":0,"y":0},{"x":1,"y":0},{"x":1,"y":1},{"x":0,"y":1}],"seed":42}`
	resp, err := http.Post(ts.URL+"/api/v1/jobs", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}

	var job Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		t.Fatalf("Failed to decode job: %v", err)
	}
	if job.ID == "" {
		t.Fatal("Job ID missing")
	}

	waitForState(t, s, job.ID, StateCompleted)

	statusResp, err := http.Get(ts.URL + "/api/v1/jobs/" + job.ID + "/status")
	if err != nil {
		t.Fatalf("GET status failed: %v", err)
	}
	defer statusResp.Body.Close()

	var status map[string]interface{}
	if err := json.NewDecoder(statusResp.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode status: %v", err)
	}
	if status["state"] != string(StateCompleted) {
		t.Errorf("Expected completed, got %v", status["state"])
	}
	if status["bestLength"].(float64) != 4.0 {
		t.Errorf("Unit square should solve to 4.0, got %v", status["bestLength"])
	}
	if status["cities"].(float64) != 4 {
		t.Errorf("Expected 4 cities, got %v", status["cities"])
	}
}

func TestCreateJobValidation(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{{`},
		{"no points", `{"name":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/v1/jobs", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestListJobs(t *testing.T) {
	s, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/jobs")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()

	var jobs []Job
	if err := json.NewDecoder(resp.Body).Decode(&jobs); err != nil {
		t.Fatalf("Failed to decode jobs: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("Expected no jobs, got %d", len(jobs))
	}

	s.jobManager.CreateJob(testConfig())

	resp2, err := http.Get(ts.URL + "/api/v1/jobs")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp2.Body.Close()

	if err := json.NewDecoder(resp2.Body).Decode(&jobs); err != nil {
		t.Fatalf("Failed to decode jobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Errorf("Expected 1 job, got %d", len(jobs))
	}
}

func TestGetTourSVG(t *testing.T) {
	s, ts := newTestServer(t)

	body := `{"points":[{"x":0,"y":0},{"x":1,"y":0},{"x":1,"y":1},{"x":0,"y":1}],"seed":1}`
	resp, err := http.Post(ts.URL+"/api/v1/jobs", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	var job Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		t.Fatalf("Failed to decode job: %v", err)
	}

	waitForState(t, s, job.ID, StateCompleted)

	svgResp, err := http.Get(ts.URL + "/api/v1/jobs/" + job.ID + "/tour.svg")
	if err != nil {
		t.Fatalf("GET tour.svg failed: %v", err)
	}
	defer svgResp.Body.Close()

	if svgResp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", svgResp.StatusCode)
	}
	if ct := svgResp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Expected svg content type, got %s", ct)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(svgResp.Body); err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if !strings.Contains(buf.String(), "<polygon ") {
		t.Error("SVG should contain the tour polygon")
	}
}

func TestJobNotFoundRoutes(t *testing.T) {
	_, ts := newTestServer(t)

	for _, path := range []string{
		"/api/v1/jobs/missing/status",
		"/api/v1/jobs/missing/tour.svg",
		"/api/v1/jobs/missing/bogus",
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}

func TestIndexPage(t *testing.T) {
	s, ts := newTestServer(t)
	s.jobManager.CreateJob(testConfig())

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if !strings.Contains(buf.String(), "square") {
		t.Error("Index should list the job")
	}

	// Unknown paths under / are 404s.
	resp2, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope failed: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", resp2.StatusCode)
	}
}

func TestCORSPreflightAllowed(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/v1/jobs", nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}
