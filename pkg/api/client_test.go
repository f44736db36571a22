package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/me/evento/pkg/model"
)

func testClient(srv *httptest.Server, tokens TokenSource) *Client {
	cfg := DefaultConfig().WithBaseURL(srv.URL).WithRetries(2, time.Millisecond)
	return NewClient(cfg, tokens, nil)
}

func TestLoginToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/token" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		r.ParseForm()
		// The OAuth2 form carries the email in the username field.
		if got := r.PostFormValue("username"); got != "ivan@example.com" {
			t.Errorf("username = %q", got)
		}
		if got := r.PostFormValue("password"); got != "secret" {
			t.Errorf("password = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-1", "token_type": "bearer"})
	}))
	defer srv.Close()

	token, err := testClient(srv, nil).LoginToken(context.Background(), "ivan@example.com", "secret")
	if err != nil {
		t.Fatalf("LoginToken: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("token = %q", token)
	}
}

func TestLoginTokenRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	}))
	defer srv.Close()

	_, err := testClient(srv, nil).LoginToken(context.Background(), "ivan@example.com", "wrong")
	var ce *CredentialsError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want CredentialsError", err)
	}
	if ce.Detail != "Incorrect email or password" {
		t.Errorf("Detail = %q", ce.Detail)
	}
}

func TestLoginTokenEmptyAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token_type": "bearer"})
	}))
	defer srv.Close()

	_, err := testClient(srv, nil).LoginToken(context.Background(), "a@b.c", "p")
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ProtocolError", err)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached the server without a token")
	}))
	defer srv.Close()

	_, err := testClient(srv, StaticToken("")).Profile(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("err = %v, want ErrNoToken", err)
	}
}

func TestTokenConsultedPerRequest(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(model.User{ID: 1, Username: "ivan"})
	}))
	defer srv.Close()

	current := "tok-a"
	c := testClient(srv, TokenSourceFunc(func() string { return current }))

	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatal(err)
	}
	current = "tok-b"
	if _, err := c.Profile(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []string{"Bearer tok-a", "Bearer tok-b"}
	if len(seen) != 2 || seen[0] != want[0] || seen[1] != want[1] {
		t.Errorf("Authorization headers = %v, want %v", seen, want)
	}
}

func TestGetRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode([]model.Event{{ID: 1, Title: "Meetup"}})
	}))
	defer srv.Close()

	events, err := testClient(srv, nil).ListEvents(context.Background(), EventFilter{})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Meetup" {
		t.Errorf("events = %+v", events)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Event not found"})
	}))
	defer srv.Close()

	_, err := testClient(srv, nil).GetEvent(context.Background(), 99)
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want 404 StatusError", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d calls, want exactly 1", got)
	}
}

func TestMalformedResponseIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv, StaticToken("tok")).Profile(context.Background())
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want ProtocolError", err)
	}
}

func TestEventFilterQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter EventFilter
		want   string
	}{
		{"empty", EventFilter{}, ""},
		{"status", EventFilter{Status: model.EventApproved}, "?status=approved"},
		{"type", EventFilter{EventType: "concert"}, "?event_type=concert"},
		{"both", EventFilter{Status: model.EventPending, EventType: "concert"}, "?event_type=concert&status=pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.query(); got != tt.want {
				t.Errorf("query() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAdminEndpoints(t *testing.T) {
	type call struct {
		method, path string
	}
	var calls []call

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.RequestURI()})
		switch {
		case r.URL.Path == "/admin/users" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode([]model.User{{ID: 1, Username: "root", Role: model.RoleAdmin}})
		case r.URL.Path == "/admin/users/5/role":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["role"] != "organizer" {
				t.Errorf("role body = %v", body)
			}
			json.NewEncoder(w).Encode(model.User{ID: 5, Username: "org", Role: model.RoleOrganizer})
		case r.URL.Path == "/admin/events/3/reject":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["reason"] != "duplicate" {
				t.Errorf("reason body = %v", body)
			}
			w.WriteHeader(http.StatusOK)
		default:
			json.NewEncoder(w).Encode([]model.Event{})
		}
	}))
	defer srv.Close()

	c := testClient(srv, StaticToken("admin-tok"))
	ctx := context.Background()

	if _, err := c.PendingEvents(ctx); err != nil {
		t.Fatalf("PendingEvents: %v", err)
	}
	if err := c.ApproveEvent(ctx, 3); err != nil {
		t.Fatalf("ApproveEvent: %v", err)
	}
	if err := c.RejectEvent(ctx, 3, "duplicate"); err != nil {
		t.Fatalf("RejectEvent: %v", err)
	}
	users, err := c.ListUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("ListUsers: %v %v", users, err)
	}
	if _, err := c.SetUserRole(ctx, 5, model.RoleOrganizer); err != nil {
		t.Fatalf("SetUserRole: %v", err)
	}

	want := []call{
		{"GET", "/admin/events?status=pending"},
		{"POST", "/admin/events/3/approve"},
		{"POST", "/admin/events/3/reject"},
		{"GET", "/admin/users"},
		{"PUT", "/admin/users/5/role"},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}
}

func TestParticipationEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/9/participate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodPost:
			json.NewEncoder(w).Encode(model.Participation{ID: 1, EventID: 9, UserID: 7})
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("method = %s", r.Method)
		}
	}))
	defer srv.Close()

	c := testClient(srv, StaticToken("tok"))

	p, err := c.Participate(context.Background(), 9)
	if err != nil || p.EventID != 9 {
		t.Fatalf("Participate: %+v %v", p, err)
	}
	if err := c.CancelParticipation(context.Background(), 9); err != nil {
		t.Fatalf("CancelParticipation: %v", err)
	}
}
