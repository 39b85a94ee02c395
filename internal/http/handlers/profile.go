package handlers

import (
	"net/http"

	"mavuso/internal/domain/models"
	"mavuso/internal/http/middleware"
	"mavuso/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/profile (auth)
func GetProfile(c *gin.Context) {
	repo := repositories.UserRepo{}
	user, err := repo.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// PUT /api/profile (auth) — PATCH-style by key presence.
func UpdateProfile(c *gin.Context) {
	var upd models.ProfileUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}

	userID := middleware.CurrentUserID(c)
	repo := repositories.UserRepo{}
	if err := repo.UpdateProfile(userID, upd); err != nil {
		RespondDomainError(c, err)
		return
	}

	user, err := repo.GetByID(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
