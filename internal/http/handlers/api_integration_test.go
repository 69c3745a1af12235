package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/octagoniq/octagoniq-api/internal/auth"
	"github.com/octagoniq/octagoniq-api/internal/middleware"
	"github.com/octagoniq/octagoniq-api/internal/models"
	"github.com/octagoniq/octagoniq-api/internal/models/dto"
	"github.com/octagoniq/octagoniq-api/internal/seed"
	"github.com/octagoniq/octagoniq-api/internal/storage/postgres"
)

// TestAPIIntegration exercises register, promotion, login and the fighter
// lifecycle against a live Postgres database.
func TestAPIIntegration(t *testing.T) {
	if os.Getenv("RUN_API_INTEGRATION") != "true" {
		t.Skip("set RUN_API_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := mustGetEnv(t, "DATABASE_URL")

	ctx := context.Background()
	db, err := postgres.Connect(ctx, dbURL, 4, zerolog.Nop())
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	defer db.Close()

	accounts := postgres.NewAccountStore(db.SQL())
	tokens, err := auth.NewTokenManager(auth.TokenConfig{
		Secret:    mustGetEnv(t, "JWT_SECRET"),
		Algorithm: mustGetEnv(t, "JWT_ALGORITHM"),
		Issuer:    "octagoniq-integration",
		TTL:       5 * time.Minute,
	})
	if err != nil {
		t.Fatalf("init tokens: %v", err)
	}
	guard := middleware.NewGuard(auth.NewResolver(tokens, accounts))

	mux := http.NewServeMux()
	NewAuthHandler(accounts, auth.NewPasswordHasher(bcrypt.MinCost), tokens).Register(mux)
	NewFighterHandler(postgres.NewFighterStore(db.SQL()), guard).Register(mux)

	ts := httptest.NewServer(mux)
	defer ts.Close()

	username := fmt.Sprintf("apitest_%d", time.Now().UnixNano())
	password := fmt.Sprintf("Pass!%d", time.Now().UnixNano())

	var registered dto.RegisterResponse
	call(t, ts.URL, http.MethodPost, "/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	}, http.StatusCreated, &registered)
	if registered.Username != username || !registered.IsActive {
		t.Fatalf("register mismatch: got %+v", registered)
	}

	if _, err := seed.Promote(ctx, accounts, username); err != nil {
		t.Fatalf("promote: %v", err)
	}

	var token dto.TokenResponse
	call(t, ts.URL, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	}, http.StatusOK, &token)
	if strings.TrimSpace(token.AccessToken) == "" || token.TokenType != "bearer" {
		t.Fatalf("login response missing token: %+v", token)
	}

	var fighter models.Fighter
	call(t, ts.URL, http.MethodPost, "/fighters", token.AccessToken, map[string]any{
		"first_name": "Jon",
		"last_name":  "Jones",
		"height_cm":  190,
	}, http.StatusCreated, &fighter)

	path := fmt.Sprintf("/fighters/%d", fighter.ID)
	var fetched models.Fighter
	call(t, ts.URL, http.MethodGet, path, "", nil, http.StatusOK, &fetched)
	if fetched.FirstName != "Jon" || fetched.LastName != "Jones" || fetched.HeightCM == nil || *fetched.HeightCM != 190 {
		t.Fatalf("fetched fighter mismatch: %+v", fetched)
	}

	call(t, ts.URL, http.MethodDelete, path, token.AccessToken, nil, http.StatusNoContent, nil)
	call(t, ts.URL, http.MethodGet, path, "", nil, http.StatusNotFound, nil)

	t.Logf("account %s (id=%d) created and deleted fighter %d", username, registered.ID, fighter.ID)
}

func call(t *testing.T, baseURL, method, path, token string, payload any, wantStatus int, out any) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("marshal %s %s payload: %v", method, path, err)
		}
	}

	req, err := http.NewRequest(method, baseURL+path, &body)
	if err != nil {
		t.Fatalf("build %s %s request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s status = %d, want %d", method, path, resp.StatusCode, wantStatus)
	}
	if out == nil {
		return
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
}

func mustGetEnv(t *testing.T, key string) string {
	t.Helper()
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		t.Fatalf("%s is required", key)
	}
	return val
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
