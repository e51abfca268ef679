package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func tokenHandler(t *testing.T, wantUser, wantPass string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.FormValue("grant_type"))
		assert.Equal(t, "das_web_client", r.FormValue("client_id"))

		if r.FormValue("username") != wantUser || r.FormValue("password") != wantPass {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": "invalid_grant"}`)
			return
		}
		fmt.Fprint(w, `{"access_token": "tok-123", "token_type": "Bearer", "expires_in": 3600}`)
	}
}

func TestLogin_SetsBearerToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", tokenHandler(t, "jdoe", "secret"))
	mux.HandleFunc("/api/v1.0/subjects", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": []}`)
	})
	srv := newTestServer(t, mux)

	c := New(ClientConfig{Server: srv.URL, Username: "jdoe", Password: "secret"})

	token, err := c.Login()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	// the token must ride on every subsequent request
	require.NoError(t, c.Probe())
}

func TestLogin_RejectedCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", tokenHandler(t, "jdoe", "secret"))
	srv := newTestServer(t, mux)

	c := New(ClientConfig{Server: srv.URL, Username: "jdoe", Password: "wrong"})

	_, err := c.Login()
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", tokenHandler(t, "jdoe", "secret"))
	mux.HandleFunc("/api/v1.0/subjects", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": [{"id": "s1", "name": "Zuri", "is_active": true}]}`)
	})
	srv := newTestServer(t, mux)

	assert.True(t, Authenticate(srv.URL, "jdoe", "secret"))
	assert.False(t, Authenticate(srv.URL, "jdoe", "wrong"))
}

func TestAuthenticate_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // every call now fails at the transport

	assert.False(t, Authenticate(srv.URL, "jdoe", "secret"))
}

func TestGetSubjects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1.0/subjects", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "group-1", r.URL.Query().Get("subject_group"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": [
			{"id": "s1", "name": "Zuri", "sex": "female", "is_active": true},
			{"id": "s2", "name": "Amara", "sex": "male", "is_active": false}
		]}`)
	})
	srv := newTestServer(t, mux)

	c := New(ClientConfig{Server: srv.URL, Token: "tok-123"})

	subjects, err := c.GetSubjects("group-1")
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Zuri", subjects[0].Name)
	assert.True(t, subjects[0].IsActive)
	assert.False(t, subjects[1].IsActive)
}

func TestGetSubjects_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1.0/subjects", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "forbidden"}`, http.StatusForbidden)
	})
	srv := newTestServer(t, mux)

	c := New(ClientConfig{Server: srv.URL, Token: "expired"})

	_, err := c.GetSubjects("group-1")
	assert.Error(t, err)
}

func TestGetEvents_Pagination(t *testing.T) {
	var srv *httptest.Server

	page := func(next string, ids ...string) map[string]any {
		results := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			results = append(results, map[string]any{
				"id":         id,
				"event_type": "giraffe_nw_monitoring",
				"time":       "2024-08-01T09:30:00Z",
			})
		}
		return map[string]any{"data": map[string]any{
			"count":   4,
			"next":    next,
			"results": results,
		}}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1.0/activity/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			require.NoError(t, json.NewEncoder(w).Encode(page("", "evt-3", "evt-4")))
			return
		}

		assert.Equal(t, "monitoring_nanw", r.URL.Query().Get("event_category"))
		assert.Equal(t, "true", r.URL.Query().Get("include_details"))
		assert.Equal(t, "false", r.URL.Query().Get("include_notes"))
		assert.Contains(t, r.URL.Query().Get("filter"), `"date_range"`)

		next := srv.URL + "/api/v1.0/activity/events?page=2"
		require.NoError(t, json.NewEncoder(w).Encode(page(next, "evt-1", "evt-2")))
	})
	srv = newTestServer(t, mux)

	c := New(ClientConfig{Server: srv.URL, Token: "tok-123"})

	since := mustParse(t, "2024-07-01T00:00:00Z")
	until := mustParse(t, "2024-09-01T00:00:00Z")

	events, err := c.GetEvents("monitoring_nanw", since, until)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, "evt-1", events[0].ID)
	assert.Equal(t, "evt-4", events[3].ID)
}

func TestGetEvents_DecodesNestedHerd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1.0/activity/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data": {"count": 1, "next": "", "results": [{
			"id": "evt-1",
			"serial_number": 981,
			"event_type": "giraffe_nw_monitoring",
			"event_category": "monitoring_nanw",
			"time": "2024-08-01T09:30:00+02:00",
			"reported_by": {"id": "ranger-1", "name": "M. Shikongo"},
			"location": {"latitude": -19.61, "longitude": 13.42},
			"event_details": {
				"river_system": "Hoanib",
				"herd_size": 2,
				"herd_dire": "NE",
				"Herd": [
					{"giraffe_id": "g1", "giraffe_age": "adult", "giraffe_sex": "female", "giraffe_snar": "none"},
					{"giraffe_id": "g2", "giraffe_age": "calf", "giraffe_sex": "male"}
				]
			}
		}]}}`)
	})
	srv := newTestServer(t, mux)

	c := New(ClientConfig{Server: srv.URL, Token: "tok-123"})

	events, err := c.GetEvents("monitoring_nanw", mustParse(t, "2024-07-01T00:00:00Z"), mustParse(t, "2024-09-01T00:00:00Z"))
	require.NoError(t, err)
	require.Len(t, events, 1)

	evt := events[0]
	assert.Equal(t, int64(981), evt.SerialNumber)
	assert.Equal(t, "M. Shikongo", evt.ReportedBy.Name)
	require.NotNil(t, evt.Location)
	assert.InDelta(t, -19.61, evt.Location.Latitude, 0.001)
	require.NotNil(t, evt.EventDetails.HerdSize)
	assert.Equal(t, 2.0, *evt.EventDetails.HerdSize)
	require.Len(t, evt.EventDetails.Herd, 2)
	assert.Equal(t, "none", evt.EventDetails.Herd[0].GiraffeSnare)
	assert.Equal(t, "calf", evt.EventDetails.Herd[1].GiraffeAge)
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return parsed
}
