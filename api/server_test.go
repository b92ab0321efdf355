package api

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminPassword = "admin123"
	testKeySecret     = "test-secret"
)

// testGateway stands in for the payment provider.
type testGateway struct {
	orderID string
}

func (g *testGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	if g.orderID == "" {
		return "order_test", nil
	}
	return g.orderID, nil
}

func newTestServer(t *testing.T) (*httptest.Server, database.Database) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Education{},
		&models.Experience{},
		&models.Skill{},
		&models.Project{},
		&models.Achievement{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Course{},
		&models.CourseSubscription{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	currentDB := database.New(db)

	admin := &models.User{Username: "admin", Email: "admin@example.com", IsAdmin: true}
	if err := admin.SetPassword(testAdminPassword); err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}
	if err := currentDB.UserRepo().Add(admin); err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}

	cfg := map[string]string{
		"UPLOAD_ROOT":         t.TempDir(),
		"SESSION_SECRET":      "session-test-secret",
		"RAZORPAY_KEY_ID":     "rzp_test_key",
		"RAZORPAY_KEY_SECRET": testKeySecret,
	}

	router, err := newRouter(currentDB,
		withConfig(cfg),
		withStartupTime(time.Now()),
		withPaymentGateway(&testGateway{}),
	)
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, currentDB
}

// noRedirectClient returns responses as-is instead of following 3xx.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// loginAdmin authenticates as the seeded admin and returns the session
// cookies.
func loginAdmin(t *testing.T, ts *httptest.Server) []*http.Cookie {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": testAdminPassword})
	resp, err := http.Post(ts.URL+"/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("login failed with status %d: %s", resp.StatusCode, raw)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("login did not set a session cookie")
	}
	return cookies
}

// doJSON issues a request with the given cookies and decodes the JSON
// response into out (when non-nil). It returns the response for status
// and header checks.
func doJSON(t *testing.T, ts *httptest.Server, method, path string, cookies []*http.Cookie, payload, out interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := noRedirectClient().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}
	return resp
}

func signPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

// errorBody is the standard error payload shape.
type errorBody struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}
