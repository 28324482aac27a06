package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/timesheet-engine/api"
	"github.com/warp/timesheet-engine/logging"
	"github.com/warp/timesheet-engine/store/memory"
	"github.com/warp/timesheet-engine/timesheet"
)

var testProjects = []timesheet.Project{
	{ID: "p1", Name: "Main Project"},
	{ID: "p2", Name: "Side Project"},
}

// newServer wires a session with a pinned clock (2025-02-15) behind the full
// router, so tests exercise routing, parsing and error mapping together.
func newServer(t *testing.T) (*httptest.Server, *timesheet.Session) {
	t.Helper()

	session := timesheet.NewSession(memory.New(), testProjects, timesheet.Config{
		MonthlySalary: decimal.NewFromInt(3500),
		HourlyRate:    decimal.NewFromFloat(19.89),
	})
	session.SetClock(func() time.Time {
		return time.Date(2025, time.February, 15, 12, 0, 0, 0, time.UTC)
	})
	require.NoError(t, session.Hydrate(context.Background()))

	handler := api.NewHandler(session, logging.Default("api-test"))
	server := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(server.Close)
	return server, session
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp
}

func TestAPI_SaveAndListEntries(t *testing.T) {
	server, _ := newServer(t)

	resp := postJSON(t, server.URL+"/api/entries", api.SaveEntryRequest{
		Date: "2025-02-10", Hours: "7.5", Status: "worked", ProjectID: "p1",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var entries []api.EntryDTO
	resp = getJSON(t, server.URL+"/api/entries?year=2025&month=2", &entries)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-02-10", entries[0].Date)
	assert.Equal(t, "7.5", entries[0].Hours)
	assert.Equal(t, "Main Project", entries[0].ProjectName, "display name resolved from reference data")
	assert.True(t, entries[0].Editable)
}

func TestAPI_SaveEntryValidation(t *testing.T) {
	server, _ := newServer(t)

	cases := []api.SaveEntryRequest{
		{Date: "10/02/2025", Hours: "8", Status: "worked", ProjectID: "p1"},
		{Date: "2025-02-10", Hours: "8", Status: "sabbatical", ProjectID: "p1"},
		{Date: "2025-02-10", Hours: "eight", Status: "worked", ProjectID: "p1"},
		{Date: "2025-02-10", Hours: "8", Status: "worked"},
	}
	for i, req := range cases {
		resp := postJSON(t, server.URL+"/api/entries", req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "case %d", i)
	}
}

func TestAPI_SaveEntryFutureDateLocked(t *testing.T) {
	server, _ := newServer(t)

	resp := postJSON(t, server.URL+"/api/entries", api.SaveEntryRequest{
		Date: "2025-02-20", Hours: "8", Status: "worked", ProjectID: "p1",
	})

	assert.Equal(t, http.StatusLocked, resp.StatusCode)
}

func TestAPI_SubmitLifecycle(t *testing.T) {
	server, _ := newServer(t)
	base := server.URL + "/api/reports/2025/2"

	// Implicit upcoming before any submission.
	var rec api.ReportDTO
	resp := getJSON(t, base+"/", &rec)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "upcoming", rec.Status)
	assert.True(t, rec.Editable)

	// No hours reported: shortfall needs acknowledgment first.
	resp = postJSON(t, base+"/submit", api.SubmitReportRequest{})
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)

	resp = postJSON(t, base+"/submit", api.SubmitReportRequest{AcknowledgeShortfall: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Saving into the now-pending month is locked.
	resp = postJSON(t, server.URL+"/api/entries", api.SaveEntryRequest{
		Date: "2025-02-10", Hours: "8", Status: "worked", ProjectID: "p1",
	})
	assert.Equal(t, http.StatusLocked, resp.StatusCode)

	// Double submission conflicts.
	resp = postJSON(t, base+"/submit", api.SubmitReportRequest{AcknowledgeShortfall: true})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// External approver declines; the month reopens.
	resp = postJSON(t, base+"/status", api.SetReportStatusRequest{Status: "declined"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getJSON(t, base+"/", &rec)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "declined", rec.Status)
	assert.True(t, rec.Editable)

	// Approving a non-pending month is rejected.
	resp = postJSON(t, base+"/status", api.SetReportStatusRequest{Status: "approved"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_Summary(t *testing.T) {
	server, _ := newServer(t)

	resp := postJSON(t, server.URL+"/api/entries", api.SaveEntryRequest{
		Date: "2025-02-10", Hours: "2", Status: "worked", ProjectID: "p1",
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var summary api.SummaryDTO
	resp = getJSON(t, server.URL+"/api/summary?year=2025&month=2", &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// February 2025 has 20 weekdays: contracted = 20×2×1.
	assert.Equal(t, "40", summary.ContractedHours)
	assert.Equal(t, "2", summary.ReportedHours)
	assert.Equal(t, "38", summary.RemainingHours)

	resp = getJSON(t, server.URL+"/api/summary?year=2025&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Autofill(t *testing.T) {
	server, _ := newServer(t)

	var result api.AutofillResponse
	resp := postJSON(t, server.URL+"/api/autofill", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Positive(t, result.Created)

	// Second run finds no gaps.
	resp = postJSON(t, server.URL+"/api/autofill", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Zero(t, result.Created)
}

func TestAPI_Projects(t *testing.T) {
	server, _ := newServer(t)

	var projects []api.ProjectDTO
	resp := getJSON(t, server.URL+"/api/projects", &projects)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, projects, len(testProjects))
	assert.Equal(t, "Main Project", projects[0].Name)
}

func TestAPI_BadMonthParams(t *testing.T) {
	server, _ := newServer(t)

	for _, path := range []string{
		"/api/entries?year=25&month=2",
		"/api/entries?year=2025&month=0",
		fmt.Sprintf("/api/reports/%s/%s/", "abcd", "2"),
	} {
		resp := getJSON(t, server.URL+path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}
