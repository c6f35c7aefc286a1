/*
handlers_test.go - End-to-end tests for the HTTP API

Covers the full flow a client performs: register, login, build the
roster, generate a schedule for the current month, reuse it, and apply a
single-day edit. Runs against an in-memory SQLite store with a
no-holiday source so the assertions are date-independent.
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/escala/roster-engine/roster"
	"github.com/escala/roster-engine/store/sqlite"
)

type testClient struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(store, roster.NoHolidays{}, []byte("test-secret"))
	server := httptest.NewServer(NewRouter(handler))
	t.Cleanup(server.Close)

	return &testClient{t: t, server: server}
}

func (c *testClient) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.server.URL+path, &buf)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func (c *testClient) register(name, password string) {
	c.t.Helper()
	status, body := c.do("POST", "/api/register", CredentialsRequest{Name: name, Password: password})
	if status != http.StatusCreated {
		c.t.Fatalf("register returned %d: %v", status, body)
	}
	c.token = body["token"].(string)
}

func TestAuthFlow(t *testing.T) {
	c := newTestClient(t)

	// Register issues a usable token.
	c.register("maria", "s3nha")
	if c.token == "" {
		t.Fatal("expected a token")
	}

	// Duplicate registration conflicts.
	if status, _ := c.do("POST", "/api/register", CredentialsRequest{Name: "maria", Password: "x"}); status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}

	// Wrong password is rejected with the same message as unknown user.
	if status, _ := c.do("POST", "/api/login", CredentialsRequest{Name: "maria", Password: "errada"}); status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if status, _ := c.do("POST", "/api/login", CredentialsRequest{Name: "ninguem", Password: "x"}); status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}

	// Correct credentials log in.
	status, body := c.do("POST", "/api/login", CredentialsRequest{Name: "maria", Password: "s3nha"})
	if status != http.StatusOK || body["token"] == "" {
		t.Fatalf("login failed: %d %v", status, body)
	}

	// Protected routes require the token.
	c.token = ""
	if status, _ := c.do("GET", "/api/people", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
	c.token = "not-a-token"
	if status, _ := c.do("GET", "/api/people", nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with garbage token, got %d", status)
	}
}

func TestPeopleEndpoints(t *testing.T) {
	c := newTestClient(t)
	c.register("maria", "s3nha")

	if status, _ := c.do("POST", "/api/people", AddPersonRequest{Name: "Ana"}); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if status, _ := c.do("POST", "/api/people", AddPersonRequest{Name: "ana"}); status != http.StatusConflict {
		t.Fatalf("duplicate name should 409, got %d", status)
	}
	if status, _ := c.do("POST", "/api/people", AddPersonRequest{Name: ""}); status != http.StatusBadRequest {
		t.Fatalf("empty name should 400, got %d", status)
	}

	status, _ := c.do("POST", "/api/people", AddPersonRequest{Name: "Bruno"})
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	// List comes back ordered by name.
	req, _ := http.NewRequest("GET", c.server.URL+"/api/people", nil)
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("list people: %v", err)
	}
	defer resp.Body.Close()
	var people []roster.Person
	if err := json.NewDecoder(resp.Body).Decode(&people); err != nil {
		t.Fatalf("decode people: %v", err)
	}
	if len(people) != 2 || people[0].Name != "Ana" || people[1].Name != "Bruno" {
		t.Fatalf("unexpected roster: %v", people)
	}

	// Remove one and confirm 404 on a second delete.
	if status, _ := c.do("DELETE", "/api/people/"+people[0].ID, nil); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if status, _ := c.do("DELETE", "/api/people/"+people[0].ID, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestScheduleEndpoints(t *testing.T) {
	c := newTestClient(t)
	c.register("maria", "s3nha")
	for _, name := range []string{"Carla", "Ana", "Bruno"} {
		if status, _ := c.do("POST", "/api/people", AddPersonRequest{Name: name}); status != http.StatusCreated {
			t.Fatalf("failed to add %s", name)
		}
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())

	// Nothing saved yet.
	status, body := c.do("GET", fmt.Sprintf("/api/schedules?year=%d&month=%d", year, month), nil)
	if status != http.StatusOK || body["schedule_data"] != nil {
		t.Fatalf("expected empty schedule, got %d %v", status, body)
	}

	// Generate the current month.
	status, body = c.do("POST", "/api/schedules/generate", GenerateScheduleRequest{
		Year: year, Month: month, Mode: "continuous",
	})
	if status != http.StatusOK {
		t.Fatalf("generate returned %d: %v", status, body)
	}
	calendar := body["schedule_data"].([]any)
	if len(calendar) != roster.DaysInMonth(year, time.Month(month)) {
		t.Fatalf("expected a full month, got %d days", len(calendar))
	}

	// Second generation reuses.
	status, body = c.do("POST", "/api/schedules/generate", GenerateScheduleRequest{
		Year: year, Month: month, Mode: "continuous",
	})
	if status != http.StatusOK || body["reused"] != true {
		t.Fatalf("expected reuse, got %d %v", status, body)
	}

	// Out-of-window request is a client error.
	if status, _ = c.do("POST", "/api/schedules/generate", GenerateScheduleRequest{
		Year: year - 1, Month: month, Mode: "continuous",
	}); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for past period, got %d", status)
	}

	// Edit the first workday.
	editDay := 0
	for _, raw := range calendar {
		day := raw.(map[string]any)
		if day["isWeekend"] != true && day["isHoliday"] != true {
			editDay = int(day["day"].(float64))
			break
		}
	}
	if editDay == 0 {
		t.Fatal("no workday found in generated month")
	}

	status, body = c.do("PUT", fmt.Sprintf("/api/schedules/%d/%d/days/%d", year, month, editDay),
		EditDayRequest{MorningPerson: "Bruno", AfternoonPerson: "Carla"})
	if status != http.StatusOK {
		t.Fatalf("edit returned %d: %v", status, body)
	}
	edited := body["schedule_data"].([]any)[editDay-1].(map[string]any)
	if edited["morningPerson"] != "Bruno" || edited["afternoonPerson"] != "Carla" {
		t.Fatalf("edit not applied: %v", edited)
	}

	// Editing a period that was never generated is a 404.
	next := roster.Period{Year: year, Month: time.Month(month)}
	for i := 0; i < 2; i++ {
		if next.Month == time.December {
			next = roster.Period{Year: next.Year + 1, Month: time.January}
		} else {
			next = roster.Period{Year: next.Year, Month: next.Month + 1}
		}
	}
	if status, _ = c.do("PUT", fmt.Sprintf("/api/schedules/%d/%d/days/2", next.Year, int(next.Month)),
		EditDayRequest{MorningPerson: "Ana", AfternoonPerson: "Bruno"}); status != http.StatusNotFound {
		t.Fatalf("expected 404 for missing schedule, got %d", status)
	}
}
