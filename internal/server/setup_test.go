package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"piggybank/internal/config"
	"piggybank/internal/logger"
	"piggybank/internal/testutil"
)

// testApp holds the full application stack for end-to-end tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// setupApp creates the real router backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := &config.Config{Env: "test", CORSAllowedOrigins: []string{"*"}}
	return &testApp{DB: db, Router: New(db, cfg)}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray parses the response body into a slice of objects.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object, got %s", rec.Body.String())
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// createGoal creates a goal through the API and returns its id.
func (app *testApp) createGoal(t *testing.T, title string, target float64) float64 {
	t.Helper()
	rec := app.request("POST", "/goals", fmt.Sprintf(`{"title":%q,"target_amount":%v}`, title, target))
	assertStatus(t, rec, http.StatusOK)
	return parseJSON(t, rec)["id"].(float64)
}

// createTransaction records a transaction through the API and returns its id.
func (app *testApp) createTransaction(t *testing.T, goalID float64, txType string, amount float64) float64 {
	t.Helper()
	rec := app.request("POST", "/transactions",
		fmt.Sprintf(`{"goal_id":%.0f,"amount":%v,"transaction_type":%q}`, goalID, amount, txType))
	assertStatus(t, rec, http.StatusOK)
	return parseJSON(t, rec)["id"].(float64)
}

// balanceOf reads the goal's current balance through the API.
func (app *testApp) balanceOf(t *testing.T, goalID float64) float64 {
	t.Helper()
	rec := app.request("GET", fmt.Sprintf("/goals/%.0f", goalID), "")
	assertStatus(t, rec, http.StatusOK)
	return parseJSON(t, rec)["current_balance"].(float64)
}
