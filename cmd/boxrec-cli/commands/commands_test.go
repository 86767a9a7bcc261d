package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Authentication failed. Check your credentials."}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Session-Token", "PHPSESSID=abc")
		_, _ = w.Write([]byte(`{"success":true,"message":"Successfully authenticated with BoxRec"}`))
	})
	mux.HandleFunc("GET /api/boxer/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("X-Session-Token") != "PHPSESSID=abc" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Not authenticated. Please login first."}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"` + r.PathValue("id") + `","name":"Tyson Fury","record":{"wins":34,"losses":1,"draws":1},"kos":24}`))
	})
	mux.HandleFunc("GET /api/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"356831","name":"` + r.URL.Query().Get("query") + `","record":"60-2-2","last_fight":"2023-09-30"}]`))
	})
	mux.HandleFunc("GET /api/ratings/{division}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"division":"` + r.PathValue("division") + `","ratings":[` +
			`{"rank":1,"id":"659772","name":"Oleksandr Usyk","points":1234.5,"record":"22-0-0"},` +
			`{"rank":2,"id":"348759","name":"Tyson Fury","points":900,"record":"34-1-1"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, sessionFile string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", srv.URL, "--session-file", sessionFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginThenBoxer(t *testing.T) {
	srv := newFakeAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session")

	out, err := run(t, srv, sessionFile, "login", "--username", "user", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully authenticated with BoxRec")

	raw, err := os.ReadFile(sessionFile)
	require.NoError(t, err)
	assert.Equal(t, "PHPSESSID=abc\n", string(raw))
	info, err := os.Stat(sessionFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err = run(t, srv, sessionFile, "boxer", "348759")
	require.NoError(t, err)
	assert.Contains(t, out, "Tyson Fury")
	assert.Contains(t, out, "34-1-1")
}

func TestLoginFromEnvironment(t *testing.T) {
	srv := newFakeAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "nested", "session")
	t.Setenv("BOXREC_USERNAME", "user")
	t.Setenv("BOXREC_PASSWORD", "secret")

	_, err := run(t, srv, sessionFile, "login")
	require.NoError(t, err)
	assert.FileExists(t, sessionFile)
}

func TestLoginErrors(t *testing.T) {
	srv := newFakeAPI(t)
	sessionFile := filepath.Join(t.TempDir(), "session")
	t.Setenv("BOXREC_USERNAME", "")
	t.Setenv("BOXREC_PASSWORD", "")

	_, err := run(t, srv, sessionFile, "login")
	assert.ErrorContains(t, err, "username and password are required")

	_, err = run(t, srv, sessionFile, "login", "--username", "user", "--password", "wrong")
	assert.ErrorContains(t, err, "Authentication failed. Check your credentials.")
	assert.NoFileExists(t, sessionFile)
}

func TestBoxerWithoutSession(t *testing.T) {
	srv := newFakeAPI(t)

	_, err := run(t, srv, filepath.Join(t.TempDir(), "none"), "boxer", "1")
	assert.ErrorContains(t, err, "Not authenticated")
}

func TestSearchJSON(t *testing.T) {
	srv := newFakeAPI(t)

	out, err := run(t, srv, filepath.Join(t.TempDir(), "none"), "--json", "search", "Saul", "Alvarez")
	require.NoError(t, err)
	var got []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Saul Alvarez", got[0]["name"])
}

func TestRatingsLimit(t *testing.T) {
	srv := newFakeAPI(t)

	out, err := run(t, srv, filepath.Join(t.TempDir(), "none"), "ratings", "heavyweight", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Oleksandr Usyk")
	assert.NotContains(t, out, "Tyson Fury")
}

func TestTopDivisions(t *testing.T) {
	srv := newFakeAPI(t)

	out, err := run(t, srv, filepath.Join(t.TempDir(), "none"), "--json", "top", "--division", "heavyweight", "--division", "cruiserweight", "--limit", "1")
	require.NoError(t, err)
	var got map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 2)
	assert.Len(t, got["cruiserweight"], 1)
}

func TestDivisions(t *testing.T) {
	srv := newFakeAPI(t)

	out, err := run(t, srv, filepath.Join(t.TempDir(), "none"), "--json", "divisions")
	require.NoError(t, err)
	var got []string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 17)
	assert.Contains(t, got, "heavyweight")
}
