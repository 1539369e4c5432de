package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"piggybank/internal/models"
	"piggybank/internal/pagination"
	"piggybank/internal/services"
	"piggybank/internal/validator"
)

// --- mock goal service ---

type mockGoalService struct {
	listGoalsFn            func(page pagination.PageRequest) ([]models.Goal, error)
	getGoalFn              func(id uint) (*models.Goal, error)
	createGoalFn           func(input services.GoalInput) (*models.Goal, error)
	updateGoalFn           func(id uint, p services.GoalPatch) (*models.Goal, error)
	deleteGoalFn           func(id uint) error
	listGoalTransactionsFn func(id uint, page pagination.PageRequest) ([]models.Transaction, error)
	getGoalProgressFn      func(id uint) (*services.GoalProgress, error)
	resetGoalProgressFn    func(id uint) (*models.Goal, error)
}

func (m *mockGoalService) ListGoals(page pagination.PageRequest) ([]models.Goal, error) {
	if m.listGoalsFn != nil {
		return m.listGoalsFn(page)
	}
	return []models.Goal{}, nil
}

func (m *mockGoalService) GetGoal(id uint) (*models.Goal, error) {
	if m.getGoalFn != nil {
		return m.getGoalFn(id)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) CreateGoal(input services.GoalInput) (*models.Goal, error) {
	if m.createGoalFn != nil {
		return m.createGoalFn(input)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) UpdateGoal(id uint, p services.GoalPatch) (*models.Goal, error) {
	if m.updateGoalFn != nil {
		return m.updateGoalFn(id, p)
	}
	return &models.Goal{}, nil
}

func (m *mockGoalService) DeleteGoal(id uint) error {
	if m.deleteGoalFn != nil {
		return m.deleteGoalFn(id)
	}
	return nil
}

func (m *mockGoalService) ListGoalTransactions(id uint, page pagination.PageRequest) ([]models.Transaction, error) {
	if m.listGoalTransactionsFn != nil {
		return m.listGoalTransactionsFn(id, page)
	}
	return []models.Transaction{}, nil
}

func (m *mockGoalService) GetGoalProgress(id uint) (*services.GoalProgress, error) {
	if m.getGoalProgressFn != nil {
		return m.getGoalProgressFn(id)
	}
	return &services.GoalProgress{}, nil
}

func (m *mockGoalService) ResetGoalProgress(id uint) (*models.Goal, error) {
	if m.resetGoalProgressFn != nil {
		return m.resetGoalProgressFn(id)
	}
	return &models.Goal{}, nil
}

// --- mock transaction service ---

type mockTransactionService struct {
	listTransactionsFn  func(page pagination.PageRequest, filter services.TransactionFilter) ([]models.Transaction, error)
	getTransactionFn    func(id uint) (*models.Transaction, error)
	createTransactionFn func(input services.TransactionInput) (*models.Transaction, error)
	updateTransactionFn func(id uint, p services.TransactionPatch) (*models.Transaction, error)
	deleteTransactionFn func(id uint) error
}

func (m *mockTransactionService) ListTransactions(page pagination.PageRequest, filter services.TransactionFilter) ([]models.Transaction, error) {
	if m.listTransactionsFn != nil {
		return m.listTransactionsFn(page, filter)
	}
	return []models.Transaction{}, nil
}

func (m *mockTransactionService) GetTransaction(id uint) (*models.Transaction, error) {
	if m.getTransactionFn != nil {
		return m.getTransactionFn(id)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) CreateTransaction(input services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(input)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(id uint, p services.TransactionPatch) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(id, p)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) DeleteTransaction(id uint) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(id)
	}
	return nil
}

// --- mock settings service ---

type mockSettingsService struct {
	getSettingsFn    func() (*models.Settings, error)
	updateSettingsFn func(p services.SettingsPatch) (*models.Settings, error)
}

func (m *mockSettingsService) GetSettings() (*models.Settings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn()
	}
	return models.DefaultSettings(), nil
}

func (m *mockSettingsService) UpdateSettings(p services.SettingsPatch) (*models.Settings, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(p)
	}
	return models.DefaultSettings(), nil
}

func (m *mockSettingsService) EnsureDefaults() error { return nil }

// --- mock audit service ---

type auditCall struct {
	action       string
	resourceType string
	resourceID   uint
	changes      map[string]interface{}
}

type mockAuditService struct {
	calls []auditCall
}

func (m *mockAuditService) Log(action, resourceType string, resourceID uint, _ string, changes map[string]interface{}) {
	m.calls = append(m.calls, auditCall{action, resourceType, resourceID, changes})
}

// verify interface compliance
var (
	_ services.GoalServicer        = (*mockGoalService)(nil)
	_ services.TransactionServicer = (*mockTransactionService)(nil)
	_ services.SettingsServicer    = (*mockSettingsService)(nil)
	_ services.AuditServicer       = (*mockAuditService)(nil)
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
