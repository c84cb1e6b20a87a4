package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"campus-prep/internal/app"
	"campus-prep/internal/config"

	"github.com/gofiber/fiber/v3"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authData struct {
	User struct {
		ID              string `json:"id"`
		Role            string `json:"role"`
		Department      string `json:"department"`
		ProfileComplete bool   `json:"profileComplete"`
		Completion      int    `json:"completion"`
	} `json:"user"`
	Token     string `json:"token"`
	Dashboard string `json:"dashboard"`
}

type idItem struct {
	ID string `json:"id"`
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.App = config.AppConfig{AppName: "campus-prep-test", Environment: "test", HTTPPort: "0"}
	cfg.JWT.Secret = "integration-secret"
	return cfg
}

func newTestApp(t *testing.T, cfg config.Config) *fiber.App {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, cleanup, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = cleanup() })
	return a.Fiber
}

func doJSON(t *testing.T, f *fiber.App, method, path, token string, body any) (int, semanticResponse, string) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out semanticResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
	}
	return resp.StatusCode, out, string(raw)
}

func decodeData(t *testing.T, res semanticResponse, dst any) {
	t.Helper()
	if err := json.Unmarshal(res.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", res.Data, err)
	}
}

func expectStatus(t *testing.T, step string, got, want int, raw string) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: expected status %d, got %d (%s)", step, want, got, raw)
	}
}

func TestIntegration_PortalFlow_Memory(t *testing.T) {
	runPortalFlow(t, newTestApp(t, testConfig()))
}

func TestIntegration_PortalFlow_Postgres(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Driver = config.DriverPostgres
	cfg.Database.DBHost = os.Getenv("CAMPUSPREP_TEST_DB_HOST")
	cfg.Database.DBPort = stringsOrDefault(os.Getenv("CAMPUSPREP_TEST_DB_PORT"), "5432")
	cfg.Database.DBName = os.Getenv("CAMPUSPREP_TEST_DB_NAME")
	cfg.Database.DBUser = os.Getenv("CAMPUSPREP_TEST_DB_USER")
	cfg.Database.DBPassword = os.Getenv("CAMPUSPREP_TEST_DB_PASSWORD")
	if cfg.Database.DBHost == "" || cfg.Database.DBName == "" || cfg.Database.DBUser == "" {
		t.Skip("missing test DB env vars: set CAMPUSPREP_TEST_DB_HOST/NAME/USER (and optionally PORT/PASSWORD)")
	}

	f := newTestApp(t, cfg)

	// The flow registers a fixed email, so it only passes against a clean table.
	status, _, raw := doJSON(t, f, "GET", "/api/v1/companies", "", nil)
	expectStatus(t, "companies", status, fiber.StatusOK, raw)
}

func runPortalFlow(t *testing.T, f *fiber.App) {
	status, _, raw := doJSON(t, f, "GET", "/health", "", nil)
	expectStatus(t, "health", status, fiber.StatusOK, raw)

	status, res, raw := doJSON(t, f, "GET", "/api/v1/companies", "", nil)
	expectStatus(t, "list companies", status, fiber.StatusOK, raw)
	var companies []idItem
	decodeData(t, res, &companies)
	if len(companies) != 3 {
		t.Fatalf("expected 3 seeded companies, got %d", len(companies))
	}

	status, _, raw = doJSON(t, f, "POST", "/api/v1/companies", "", map[string]any{"name": "Acme"})
	expectStatus(t, "anonymous create", status, fiber.StatusUnauthorized, raw)

	reg := map[string]any{
		"username":   "Asha",
		"email":      "asha@college.edu",
		"password":   "s3cret",
		"department": "CSE",
		"year":       "3",
	}
	status, _, raw = doJSON(t, f, "POST", "/api/v1/auth/register", "", map[string]any{
		"username": "Asha",
		"email":    "asha@college.edu",
		"password": "s3cret",
	})
	expectStatus(t, "register without department", status, fiber.StatusBadRequest, raw)

	status, res, raw = doJSON(t, f, "POST", "/api/v1/auth/register", "", reg)
	expectStatus(t, "register", status, fiber.StatusCreated, raw)
	if strings.Contains(raw, "password") {
		t.Fatalf("register: response leaks password: %s", raw)
	}
	var student authData
	decodeData(t, res, &student)
	if student.Token == "" || student.Dashboard != "/dashboard" {
		t.Fatalf("register: unexpected auth data %+v", student)
	}
	if student.User.ID != "asha_college_edu" || student.User.Role != "student" {
		t.Fatalf("register: unexpected user %+v", student.User)
	}
	if student.User.Completion != 44 || student.User.ProfileComplete {
		t.Fatalf("register: expected 44%% incomplete, got %+v", student.User)
	}

	status, _, raw = doJSON(t, f, "POST", "/api/v1/auth/register", "", reg)
	expectStatus(t, "duplicate register", status, fiber.StatusConflict, raw)

	status, _, raw = doJSON(t, f, "POST", "/api/v1/companies", student.Token, map[string]any{"name": "Acme"})
	expectStatus(t, "student create", status, fiber.StatusForbidden, raw)

	status, _, raw = doJSON(t, f, "GET", "/api/v1/users", student.Token, nil)
	expectStatus(t, "student list users", status, fiber.StatusForbidden, raw)

	profile := map[string]any{
		"rollNumber": "21CS042",
		"phone":      "9999999999",
		"skills":     "Go, SQL",
		"bio":        "Final year",
		"cgpa":       "8.9",
	}
	status, res, raw = doJSON(t, f, "PUT", "/api/v1/me", student.Token, profile)
	expectStatus(t, "update profile", status, fiber.StatusOK, raw)
	var updated authData
	decodeData(t, res, &updated.User)
	if !updated.User.ProfileComplete || updated.User.Completion != 100 {
		t.Fatalf("update profile: expected complete, got %+v", updated.User)
	}

	status, res, raw = doJSON(t, f, "GET", "/api/v1/me/completion", student.Token, nil)
	expectStatus(t, "completion", status, fiber.StatusOK, raw)
	var completion struct {
		Filled  int `json:"filled"`
		Total   int `json:"total"`
		Percent int `json:"percent"`
	}
	decodeData(t, res, &completion)
	if completion.Filled != 9 || completion.Total != 9 || completion.Percent != 100 {
		t.Fatalf("completion: unexpected %+v", completion)
	}

	status, res, raw = doJSON(t, f, "POST", "/api/v1/auth/login", "", map[string]any{
		"email":    "admin@campusprep.com",
		"password": "admin123",
	})
	expectStatus(t, "admin login", status, fiber.StatusOK, raw)
	var admin authData
	decodeData(t, res, &admin)
	if admin.Dashboard != "/admin" || admin.User.Role != "admin" {
		t.Fatalf("admin login: unexpected %+v", admin)
	}

	status, _, raw = doJSON(t, f, "PUT", "/api/v1/me", admin.Token, profile)
	expectStatus(t, "admin update profile", status, fiber.StatusForbidden, raw)

	status, res, raw = doJSON(t, f, "POST", "/api/v1/companies", admin.Token, map[string]any{
		"name":  "Acme",
		"roles": []string{"SDE", " ", "Analyst"},
	})
	expectStatus(t, "admin create company", status, fiber.StatusCreated, raw)
	var acme struct {
		ID    string   `json:"id"`
		Roles []string `json:"roles"`
	}
	decodeData(t, res, &acme)
	if acme.ID == "" || len(acme.Roles) != 2 {
		t.Fatalf("admin create company: unexpected %+v", acme)
	}

	status, _, raw = doJSON(t, f, "POST", "/api/v1/companies", admin.Token, map[string]any{"logo": "x"})
	expectStatus(t, "create company without name", status, fiber.StatusBadRequest, raw)

	status, res, raw = doJSON(t, f, "GET", "/api/v1/companies/"+acme.ID, "", nil)
	expectStatus(t, "get company", status, fiber.StatusOK, raw)

	status, res, raw = doJSON(t, f, "GET", "/api/v1/companies", "", nil)
	expectStatus(t, "list companies after add", status, fiber.StatusOK, raw)
	decodeData(t, res, &companies)
	if len(companies) != 4 || companies[3].ID != acme.ID {
		t.Fatalf("expected Acme appended last, got %+v", companies)
	}

	status, _, raw = doJSON(t, f, "DELETE", "/api/v1/companies/"+acme.ID, admin.Token, nil)
	expectStatus(t, "delete company", status, fiber.StatusOK, raw)
	status, _, raw = doJSON(t, f, "DELETE", "/api/v1/companies/"+acme.ID, admin.Token, nil)
	expectStatus(t, "delete company again", status, fiber.StatusNotFound, raw)
	status, _, raw = doJSON(t, f, "GET", "/api/v1/companies/"+acme.ID, "", nil)
	expectStatus(t, "get deleted company", status, fiber.StatusNotFound, raw)

	status, res, raw = doJSON(t, f, "GET", "/api/v1/users", admin.Token, nil)
	expectStatus(t, "admin list users", status, fiber.StatusOK, raw)
	if strings.Contains(raw, "password") {
		t.Fatalf("list users leaks password: %s", raw)
	}
	var users []idItem
	decodeData(t, res, &users)
	if len(users) != 1 || users[0].ID != "asha_college_edu" {
		t.Fatalf("admin list users: unexpected %+v", users)
	}

	status, _, raw = doJSON(t, f, "DELETE", "/api/v1/users/admin", admin.Token, nil)
	expectStatus(t, "delete admin", status, fiber.StatusForbidden, raw)

	status, res, raw = doJSON(t, f, "GET", "/api/v1/faqs?type=hr", "", nil)
	expectStatus(t, "faqs by type", status, fiber.StatusOK, raw)
	var faqs []idItem
	decodeData(t, res, &faqs)
	if len(faqs) != 1 {
		t.Fatalf("expected 1 hr faq, got %d", len(faqs))
	}
	status, _, raw = doJSON(t, f, "GET", "/api/v1/faqs?type=coding", "", nil)
	expectStatus(t, "faqs bad type", status, fiber.StatusBadRequest, raw)

	status, res, raw = doJSON(t, f, "GET", "/api/v1/updates?new=true&limit=1", "", nil)
	expectStatus(t, "new updates", status, fiber.StatusOK, raw)
	var updates []idItem
	decodeData(t, res, &updates)
	if len(updates) != 1 {
		t.Fatalf("expected 1 new update, got %d", len(updates))
	}

	status, _, raw = doJSON(t, f, "POST", "/api/v1/auth/logout", student.Token, nil)
	expectStatus(t, "logout", status, fiber.StatusOK, raw)
	status, _, raw = doJSON(t, f, "GET", "/api/v1/me", student.Token, nil)
	expectStatus(t, "me after logout", status, fiber.StatusUnauthorized, raw)

	status, res, raw = doJSON(t, f, "POST", "/api/v1/auth/login", "", map[string]any{
		"email":    "asha@college.edu",
		"password": "s3cret",
	})
	expectStatus(t, "student login", status, fiber.StatusOK, raw)
	var again authData
	decodeData(t, res, &again)
	if !again.User.ProfileComplete || again.User.Department != "CSE" {
		t.Fatalf("student login: profile not persisted %+v", again.User)
	}

	status, _, raw = doJSON(t, f, "POST", "/api/v1/auth/login", "", map[string]any{
		"email":    "asha@college.edu",
		"password": "wrong",
	})
	expectStatus(t, "wrong password", status, fiber.StatusUnauthorized, raw)
}

func stringsOrDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
