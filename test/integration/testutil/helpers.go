//go:build integration

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// GET performs a GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with a JSON body.
func (env *TestEnv) POST(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.request(http.MethodPost, path, body)
}

// PUT performs a PUT request with a JSON body.
func (env *TestEnv) PUT(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.request(http.MethodPut, path, body)
}

// DELETE performs a DELETE request.
func (env *TestEnv) DELETE(path string) *http.Response {
	env.t.Helper()
	return env.request(http.MethodDelete, path, nil)
}

func (env *TestEnv) request(method, path string, body interface{}) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// CreateGame creates a game via the API and returns its ID.
func (env *TestEnv) CreateGame(date string, players ...string) int64 {
	env.t.Helper()
	resp := env.POST("/games", map[string]interface{}{
		"date":    date,
		"players": players,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("CreateGame: expected 201, got %d", resp.StatusCode)
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		env.t.Fatalf("CreateGame: decode: %v", err)
	}
	return created.ID
}

// Login exchanges the test gate credentials for a token.
func (env *TestEnv) Login() string {
	env.t.Helper()
	resp := env.POST("/auth/login", map[string]string{
		"username": TestGateUser,
		"password": TestGatePassword,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("Login: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("Login: decode: %v", err)
	}
	return result.Token
}

// PlayerPath builds the per-player route with the name escaped.
func PlayerPath(gameID int64, playerName string) string {
	return fmt.Sprintf("/games/%d/players/%s", gameID, url.PathEscape(playerName))
}
