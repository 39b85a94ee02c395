package services

import (
	"errors"
	"testing"
	"time"

	"mavuso/internal/domain"
	"mavuso/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := AuthService{Secret: []byte("test-secret")}

	token, err := svc.IssueToken(models.User{ID: 42, Email: "amahle@example.com"})
	if err != nil {
		t.Fatalf("issue token error: %v", err)
	}

	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if id != 42 {
		t.Fatalf("round-tripped user id = %d, want 42", id)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := AuthService{Secret: []byte("secret-a")}
	verifier := AuthService{Secret: []byte("secret-b")}

	token, err := issuer.IssueToken(models.User{ID: 42})
	if err != nil {
		t.Fatalf("issue token error: %v", err)
	}

	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token signed with another secret should not verify")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc := AuthService{Secret: []byte("test-secret")}
	if _, err := svc.ParseToken("not-a-token"); err == nil {
		t.Fatal("garbage token should not verify")
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WithArgs("amahle@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	svc := AuthService{DB: db, Secret: []byte("test-secret")}
	_, _, err = svc.SignUp("Amahle@Example.com", "password123", "Amahle", "Dlamini", "")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}

	// no INSERT may have been attempted
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	svc := AuthService{Secret: []byte("test-secret")}
	_, _, err := svc.SignUp("amahle@example.com", "short", "Amahle", "Dlamini", "")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
}

func userRowColumns() []string {
	return []string{
		"id", "email", "first_name", "last_name", "bio", "interests",
		"location", "phone", "verified", "created_at", "updated_at", "password_hash",
	}
}

func TestSignInWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	now := time.Now()

	mock.ExpectQuery("FROM users").
		WithArgs("amahle@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns()).
			AddRow(int64(42), "amahle@example.com", "Amahle", "Dlamini", "", "[]", "", "", false, now, now, string(hash)))

	svc := AuthService{DB: db, Secret: []byte("test-secret")}
	_, token, err := svc.SignIn("amahle@example.com", "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if token != "" {
		t.Fatal("no token may be issued on failed sign-in")
	}
}

func TestSignInUnknownEmailSameError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM users").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns()))

	svc := AuthService{DB: db, Secret: []byte("test-secret")}
	_, _, err = svc.SignIn("nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must read as invalid credentials, got %v", err)
	}
}

func TestSignInSuccessIssuesMatchingToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	now := time.Now()

	mock.ExpectQuery("FROM users").
		WithArgs("amahle@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns()).
			AddRow(int64(42), "amahle@example.com", "Amahle", "Dlamini", "", "[]", "", "", false, now, now, string(hash)))

	svc := AuthService{DB: db, Secret: []byte("test-secret")}
	user, token, err := svc.SignIn("amahle@example.com", "right-password")
	if err != nil {
		t.Fatalf("sign-in error: %v", err)
	}

	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if id != user.ID {
		t.Fatalf("token encodes user %d, want %d", id, user.ID)
	}
}
