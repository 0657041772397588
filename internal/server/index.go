package server

import (
	"html/template"
	"net/http"
	"sort"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>tspsolve</title>
  <style>
    body { font-family: sans-serif; margin: 2em; }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #ccc; padding: 0.4em 0.8em; text-align: left; }
    th { background: #f0f0f0; }
  </style>
</head>
<body>
  <h1>Solve jobs</h1>
  {{if .}}
  <table>
    <tr><th>ID</th><th>Name</th><th>State</th><th>Cities</th><th>Starts</th><th>Best length</th><th>Tour</th></tr>
    {{range .}}
    <tr>
      <td>{{.ID}}</td>
      <td>{{.Config.Name}}</td>
      <td>{{.State}}</td>
      <td>{{len .Config.Points}}</td>
      <td>{{.StartsDone}}/{{.Config.Starts}}</td>
      <td>{{printf "%.2f" .BestLength}}</td>
      <td><a href="/api/v1/jobs/{{.ID}}/tour.svg">tour.svg</a></td>
    </tr>
    {{end}}
  </table>
  {{else}}
  <p>No jobs yet. POST an instance to /api/v1/jobs to start one.</p>
  {{end}}
</body>
</html>
`))

// handleIndex handles GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Only handle the exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	jobs := s.jobManager.ListJobs()
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].StartTime.After(jobs[j].StartTime)
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, jobs); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
