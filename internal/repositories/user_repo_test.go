package repositories

import (
	"testing"

	"mavuso/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBuildProfilePatchKeyPresence(t *testing.T) {
	sets, args := buildProfilePatch(models.ProfileUpdate{})
	if len(sets) != 0 || len(args) != 0 {
		t.Fatalf("no keys present should produce nothing, got %v / %v", sets, args)
	}

	bio := ""
	sets, args = buildProfilePatch(models.ProfileUpdate{Bio: &bio})
	if len(sets) != 1 || sets[0] != "bio=$1" {
		t.Fatalf("present empty string must still update, got %v", sets)
	}
	if args[0] != "" {
		t.Fatalf("bio arg = %v, want empty string", args[0])
	}
}

func TestBuildProfilePatchSerializesInterests(t *testing.T) {
	interests := []string{"hiking", "wine"}
	sets, args := buildProfilePatch(models.ProfileUpdate{Interests: &interests})

	if len(sets) != 1 || sets[0] != "interests=$1" {
		t.Fatalf("unexpected clauses: %v", sets)
	}
	if args[0] != `["hiking","wine"]` {
		t.Fatalf("interests must be serialized as JSON text, got %v", args[0])
	}
}

func TestBuildProfilePatchNumbersPlaceholdersInOrder(t *testing.T) {
	first, last, phone := "Amahle", "Dlamini", "+27 82 000 0000"
	sets, _ := buildProfilePatch(models.ProfileUpdate{
		FirstName: &first,
		LastName:  &last,
		Phone:     &phone,
	})

	want := []string{"first_name=$1", "last_name=$2", "phone=$3"}
	if len(sets) != len(want) {
		t.Fatalf("sets = %v, want %v", sets, want)
	}
	for i := range want {
		if sets[i] != want[i] {
			t.Fatalf("sets[%d] = %s, want %s", i, sets[i], want[i])
		}
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	name := "Ghost"
	mock.ExpectExec("UPDATE users SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := UserRepo{DB: db}
	err = repo.UpdateProfile(404, models.ProfileUpdate{FirstName: &name})
	if err == nil {
		t.Fatal("updating a missing user must fail")
	}
}
