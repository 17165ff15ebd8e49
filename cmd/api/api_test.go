package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/setrep/workout-api/internal/auth"
	"github.com/setrep/workout-api/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret-for-integration",
		JWTExpireHours: 72,
		AuthRatePerMin: 600,
		AuthRateBurst:  100,
	}
}

// TestAPI_RegisterThenListWorkouts is an integration test: it builds the full
// router with a sqlmock-backed DB, registers to get a JWT, then calls
// GET /api/workouts with the token.
func TestAPI_RegisterThenListWorkouts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	userID := uuid.New()
	now := time.Now()

	// Register: INSERT INTO users
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "Al", "al@x.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(userID, "Al", "al@x.com", "hash", now, now))

	// GET /api/workouts: list scoped to the registered user's id
	mock.ExpectQuery(`SELECT (.+) FROM workouts\s+WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "reps", "load", "created_at", "updated_at"}).
			AddRow(uuid.New(), userID, "Bench Press", 10, 50.0, now, now))

	r := newRouter(db, testConfig())
	srv := httptest.NewServer(r)
	defer srv.Close()

	// 1) Register
	regBody, _ := json.Marshal(map[string]string{
		"name": "Al", "email": "al@x.com", "password": "Str0ng!Pass",
	})
	regResp, err := http.Post(srv.URL+"/api/auth/register", "application/json", bytes.NewReader(regBody))
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	defer regResp.Body.Close()
	if regResp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: got %d, want 201", regResp.StatusCode)
	}
	var regOut struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Token string `json:"token"`
	}
	if err := json.NewDecoder(regResp.Body).Decode(&regOut); err != nil || regOut.Token == "" {
		t.Fatalf("register response: %v (token %q)", err, regOut.Token)
	}

	// 2) GET /api/workouts with Bearer token
	req, _ := http.NewRequest("GET", srv.URL+"/api/workouts", nil)
	req.Header.Set("Authorization", "Bearer "+regOut.Token)
	listResp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("workouts request: %v", err)
	}
	defer listResp.Body.Close()
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/workouts status: got %d, want 200", listResp.StatusCode)
	}
	var listOut struct {
		Message string `json:"message"`
		Data    []struct {
			UserID uuid.UUID `json:"user_id"`
			Title  string    `json:"title"`
		} `json:"data"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listOut); err != nil {
		t.Fatalf("decode workouts: %v", err)
	}
	if len(listOut.Data) != 1 || listOut.Data[0].Title != "Bench Press" || listOut.Data[0].UserID != userID {
		t.Errorf("unexpected workouts: %+v", listOut)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// TestAPI_TokenScopesQueriesToOwner checks that a token for user A only ever
// produces queries filtered by A's id, so B's records are unreachable.
func TestAPI_TokenScopesQueriesToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cfg := testConfig()
	userA := uuid.New()
	workoutOfB := uuid.New()

	// The get query carries userA as the owner filter and matches nothing,
	// even though the record exists under user B.
	mock.ExpectQuery(`SELECT (.+) FROM workouts\s+WHERE id = \$1 AND user_id = \$2`).
		WithArgs(workoutOfB, userA).
		WillReturnError(sql.ErrNoRows)

	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL())
	tokenA, err := tokens.Issue(userA)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r := newRouter(db, cfg)
	srv := httptest.NewServer(r)
	defer srv.Close()

	req, _ := http.NewRequest("GET", srv.URL+"/api/workouts/"+workoutOfB.String(), nil)
	req.Header.Set("Authorization", "Bearer "+tokenA)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPI_WorkoutsRequireToken(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := newRouter(db, testConfig())
	srv := httptest.NewServer(r)
	defer srv.Close()

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/workouts"},
		{"POST", "/api/workouts"},
		{"GET", "/api/workouts/" + uuid.NewString()},
		{"PUT", "/api/workouts/" + uuid.NewString()},
		{"DELETE", "/api/workouts/" + uuid.NewString()},
	} {
		req, _ := http.NewRequest(route.method, srv.URL+route.path, nil)
		resp, err := srv.Client().Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", route.method, route.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s status: got %d, want 401", route.method, route.path, resp.StatusCode)
		}
	}
}

// TestAPI_Health is a quick smoke test for the health endpoint.
func TestAPI_Health(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := newRouter(db, testConfig())
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status: got %d, want 200", resp.StatusCode)
	}
}

// TestAPI_Ready checks that /ready pings the DB and returns 200 when DB is reachable.
func TestAPI_Ready(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	r := newRouter(db, testConfig())
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /ready status: got %d, want 200", resp.StatusCode)
	}
}
