package handlers

import (
	"net/http"
	"strconv"

	"mavuso/internal/domain/models"
	"mavuso/internal/http/middleware"
	"mavuso/internal/repositories"
	"mavuso/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/reviews (auth)
func CreateReview(c *gin.Context) {
	var in models.ReviewInput
	if !BindJSONOrError(c, &in) {
		return
	}

	svc := services.ReviewService{}
	review, err := svc.Create(middleware.CurrentUserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "review": review})
}

// GET /api/experiences/:id/reviews
func GetExperienceReviews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid experience id", nil)
		return
	}

	repo := repositories.ReviewRepo{}
	reviews, err := repo.ListForExperience(id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load reviews", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews})
}
