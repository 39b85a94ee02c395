package handlers

import (
	"errors"
	"net/http"

	"mavuso/internal/http/middleware"
	"mavuso/internal/services"

	"github.com/gin-gonic/gin"
)

const cookieMaxAge = 7 * 24 * 3600

type signUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, token, cookieMaxAge, "/", "", false, true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
}

// POST /api/auth/signup
func SignUp(c *gin.Context) {
	var req signUpRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AuthService{RequestID: middleware.GetRequestID(c)}
	user, token, err := svc.SignUp(req.Email, req.Password, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// POST /api/auth/signin
func SignIn(c *gin.Context) {
	var req signInRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.AuthService{RequestID: middleware.GetRequestID(c)}
	user, token, err := svc.SignIn(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// POST /api/auth/signout
func SignOut(c *gin.Context) {
	clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
