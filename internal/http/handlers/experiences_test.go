package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "mavuso/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

// withMockDB swaps the shared connection for a sqlmock one so handlers built
// on the zero-value repos hit the mock.
func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	prev := intconfig.DB
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = prev
		db.Close()
	})
	return mock
}

func experienceRowColumns() []string {
	return []string{
		"id", "host_id", "title", "description", "category", "price", "duration",
		"location", "max_participants", "images", "requirements", "active",
		"created_at", "updated_at", "host_name",
	}
}

func expectExperienceLookup(mock sqlmock.Sqlmock, id, hostID int64, active bool) {
	now := time.Now()
	mock.ExpectQuery("FROM experiences e").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(experienceRowColumns()).
			AddRow(id, hostID, "Braai night", "", "food", 50.0, "", "Soweto", 8,
				"[]", "", active, now, now, "Thabo Mokoena"))
}

func asUser(id int64) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("user_id", id) }
}

func TestUpdateExperienceEmptyBodyNonHost(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mock := withMockDB(t)

	// ownership check fails: user 99 does not own experience 7
	mock.ExpectQuery("SELECT 1 FROM experiences").
		WithArgs(int64(7), int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	r := gin.New()
	r.PUT("/api/experiences/:id", asUser(99), UpdateExperience)

	req := httptest.NewRequest(http.MethodPut, "/api/experiences/7", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for a non-host update", w.Code)
	}
	if strings.Contains(w.Body.String(), `"hostId"`) {
		t.Fatalf("row must not leak to a non-host: %s", w.Body.String())
	}

	// no UPDATE and no row fetch may have happened
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
