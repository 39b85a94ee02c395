package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "mavuso/internal/config"
	"mavuso/internal/domain"
	"mavuso/internal/domain/models"
	"mavuso/internal/repositories"
	"mavuso/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost = 12
	tokenTTL   = 7 * 24 * time.Hour
)

// ErrInvalidCredentials is returned for both unknown email and wrong password
// so the API cannot be used for user enumeration.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	UserRepo  repositories.UserRepo
	DB        *sql.DB
	Secret    []byte
	RequestID string
}

func (s AuthService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AuthService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

func (s AuthService) secret() []byte {
	if len(s.Secret) > 0 {
		return s.Secret
	}
	return intconfig.JWTSecret()
}

func (s AuthService) SignUp(email, password, firstName, lastName, phone string) (models.User, string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return models.User{}, "", domain.ValidationError{Field: "email", Msg: "required"}
	}
	if len(password) < 8 {
		return models.User{}, "", domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}
	if utils.TrimOrEmpty(firstName) == "" || utils.TrimOrEmpty(lastName) == "" {
		return models.User{}, "", domain.ValidationError{Field: "name", Msg: "first and last name are required"}
	}

	utils.LogEvent(s.RequestID, "auth", "signup", "email="+email)

	exists, err := s.users().EmailExists(email)
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}
	if exists {
		return models.User{}, "", domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}

	user, err := s.users().Create(email, string(hash), utils.TrimOrEmpty(firstName), utils.TrimOrEmpty(lastName), utils.TrimOrEmpty(phone))
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}
	return user, token, nil
}

func (s AuthService) SignIn(email, password string) (models.User, string, error) {
	email = utils.NormalizeEmail(email)
	user, hash, err := s.users().GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", domain.InternalError{Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}
	return user, token, nil
}

// IssueToken signs a 7-day HS256 session token for the user.
func (s AuthService) IssueToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	})
	return token.SignedString(s.secret())
}

// ParseToken verifies the signature and expiry and returns the user id.
func (s AuthService) ParseToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret(), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims")
	}
	idVal, ok := claims["user_id"].(float64)
	if !ok || idVal <= 0 {
		return 0, fmt.Errorf("invalid user_id claim")
	}
	return int64(idVal), nil
}

// UserFromToken resolves a raw token to the stored user row. Any parse,
// expiry, or lookup failure reads the same to callers: unauthenticated.
func (s AuthService) UserFromToken(tokenString string) (models.User, error) {
	id, err := s.ParseToken(tokenString)
	if err != nil {
		return models.User{}, err
	}
	return s.users().GetByID(id)
}
