package repositories

import (
	"strings"
	"testing"

	"mavuso/internal/domain"
	"mavuso/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBuildListQueryAlwaysActiveOnly(t *testing.T) {
	query, args := buildListQuery(models.ExperienceFilter{})

	if !strings.Contains(query, "e.active = TRUE") {
		t.Fatalf("listing must always restrict to active rows, got: %s", query)
	}
	if !strings.Contains(query, "ORDER BY e.created_at DESC") {
		t.Fatalf("listing must order by creation date desc, got: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("empty filter should produce no args, got %d", len(args))
	}
}

func TestBuildListQueryCategoryExactMatch(t *testing.T) {
	query, args := buildListQuery(models.ExperienceFilter{Category: "food"})

	if !strings.Contains(query, "e.category = $1") {
		t.Fatalf("category filter must be exact equality, got: %s", query)
	}
	if len(args) != 1 || args[0] != "food" {
		t.Fatalf("args = %v, want [food]", args)
	}
}

func TestBuildListQueryFiltersCombineWithAND(t *testing.T) {
	min, max := 10.0, 100.0
	query, args := buildListQuery(models.ExperienceFilter{
		Search:   "hike",
		Category: "outdoors",
		Location: "Cape Town",
		PriceMin: &min,
		PriceMax: &max,
	})

	for _, clause := range []string{
		"e.active = TRUE",
		"ILIKE $1",
		"e.category = $2",
		"e.location ILIKE $3",
		"e.price >= $4",
		"e.price <= $5",
	} {
		if !strings.Contains(query, clause) {
			t.Fatalf("query missing clause %q: %s", clause, query)
		}
	}
	if got := strings.Count(query, " AND "); got != 5 {
		t.Fatalf("expected 5 AND-joined clauses, got %d in: %s", got, query)
	}
	if len(args) != 5 {
		t.Fatalf("args = %v, want 5 values", args)
	}
}

func TestBuildListQuerySearchCoversTitleAndDescription(t *testing.T) {
	query, args := buildListQuery(models.ExperienceFilter{Search: "wine"})

	if !strings.Contains(query, "e.title ILIKE $1") || !strings.Contains(query, "e.description ILIKE $1") {
		t.Fatalf("search must match title or description with one arg, got: %s", query)
	}
	if len(args) != 1 || args[0] != "%wine%" {
		t.Fatalf("args = %v, want [%%wine%%]", args)
	}
}

func TestBuildListQueryIgnoresBlankFilters(t *testing.T) {
	query, args := buildListQuery(models.ExperienceFilter{Search: "  ", Category: "", Location: " "})

	if strings.Contains(query, "ILIKE") || strings.Contains(query, "category =") {
		t.Fatalf("blank filters must not add clauses: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("args = %v, want none", args)
	}
}

func TestBuildExperiencePatchPresence(t *testing.T) {
	sets, args := buildExperiencePatch(models.ExperienceUpdate{})
	if len(sets) != 0 || len(args) != 0 {
		t.Fatalf("empty update should produce nothing, got %v / %v", sets, args)
	}

	title := "New title"
	active := false
	sets, args = buildExperiencePatch(models.ExperienceUpdate{Title: &title, Active: &active})
	if len(sets) != 2 {
		t.Fatalf("expected 2 set clauses, got %v", sets)
	}
	if sets[0] != "title=$1" || sets[1] != "active=$2" {
		t.Fatalf("unexpected clauses: %v", sets)
	}
	if args[1] != false {
		t.Fatalf("active=false must be settable via presence, got %v", args[1])
	}
}

func TestUpdateEmptyPatchRejectsNonHost(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// ownership check runs even when there is nothing to set
	mock.ExpectQuery("SELECT 1 FROM experiences").
		WithArgs(int64(7), int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	repo := ExperienceRepo{DB: db}
	err = repo.Update(7, 99, models.ExperienceUpdate{})
	if !domain.IsNotFound(err) {
		t.Fatalf("empty update by a non-host must read as not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateEmptyPatchNoOpForHost(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT 1 FROM experiences").
		WithArgs(int64(7), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	repo := ExperienceRepo{DB: db}
	if err := repo.Update(7, 2, models.ExperienceUpdate{}); err != nil {
		t.Fatalf("empty update by the host should be a no-op, got %v", err)
	}

	// no UPDATE may have been issued
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBuildExperiencePatchSerializesImages(t *testing.T) {
	images := []string{"a.jpg", "b.jpg"}
	sets, args := buildExperiencePatch(models.ExperienceUpdate{Images: &images})

	if len(sets) != 1 || sets[0] != "images=$1" {
		t.Fatalf("unexpected clauses: %v", sets)
	}
	if args[0] != `["a.jpg","b.jpg"]` {
		t.Fatalf("images must be serialized as JSON text, got %v", args[0])
	}
}
