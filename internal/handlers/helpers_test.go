package handlers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"piggybank/internal/patch"
)

var errDatabaseDown = errors.New("dial tcp 10.0.0.5:5432: connection refused")

func TestParseFlexibleTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2027-01-15", time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"2027-01-15T08:30:00", time.Date(2027, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"2027-01-15T08:30:00Z", time.Date(2027, 1, 15, 8, 30, 0, 0, time.UTC)},
		{"2027-01-15T08:30:00.5+03:00", time.Date(2027, 1, 15, 5, 30, 0, 500000000, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFlexibleTime(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := parseFlexibleTime("15/01/2027"); err == nil {
			t.Error("expected error")
		}
	})
}

func TestChangedFields(t *testing.T) {
	changes := changedFields(map[string]interface{}{
		"title":       patch.Value("Bike"),
		"description": patch.Null[string](),
		"image_url":   patch.Field[string]{},
		"plain":       42,
	})

	if _, ok := changes["image_url"]; ok {
		t.Error("expected absent field to be dropped")
	}
	for _, key := range []string{"title", "description", "plain"} {
		if _, ok := changes[key]; !ok {
			t.Errorf("expected %q to be kept", key)
		}
	}
}

func TestRespondWithError_UnknownError(t *testing.T) {
	r := setupGoalRouter(NewGoalHandler(&mockGoalService{
		deleteGoalFn: func(uint) error { return errDatabaseDown },
	}, &mockAuditService{}))

	rec := doRequest(r, "DELETE", "/goals/1", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
}
