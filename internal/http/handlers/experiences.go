package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"mavuso/internal/domain/models"
	"mavuso/internal/http/middleware"
	"mavuso/internal/repositories"
	"mavuso/internal/utils"

	"github.com/gin-gonic/gin"
)

type createExperienceRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	Duration        string   `json:"duration"`
	Location        string   `json:"location"`
	MaxParticipants int      `json:"maxParticipants"`
	Images          []string `json:"images"`
	Requirements    string   `json:"requirements"`
}

func parsePriceParam(c *gin.Context, name string) (*float64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid "+name, err)
		return nil, false
	}
	return &v, true
}

// GET /api/experiences?category&location&priceMin&priceMax&search
func ListExperiences(c *gin.Context) {
	filter := models.ExperienceFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Location: c.Query("location"),
	}

	var ok bool
	if filter.PriceMin, ok = parsePriceParam(c, "priceMin"); !ok {
		return
	}
	if filter.PriceMax, ok = parsePriceParam(c, "priceMax"); !ok {
		return
	}

	repo := repositories.ExperienceRepo{}
	experiences, err := repo.List(filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load experiences", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "experiences": experiences})
}

// GET /api/experiences/:id
func GetExperience(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid experience id", nil)
		return
	}

	repo := repositories.ExperienceRepo{}
	exp, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !exp.Active {
		RespondError(c, http.StatusNotFound, "experience not found", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "experience": exp})
}

// POST /api/experiences (auth)
func CreateExperience(c *gin.Context) {
	var req createExperienceRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Category) == "" ||
		strings.TrimSpace(req.Location) == "" {
		RespondError(c, http.StatusBadRequest, "title, category and location are required", nil)
		return
	}
	if req.Price < 0 {
		RespondError(c, http.StatusBadRequest, "price cannot be negative", nil)
		return
	}
	if req.MaxParticipants < 1 {
		RespondError(c, http.StatusBadRequest, "maxParticipants must be at least 1", nil)
		return
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	repo := repositories.ExperienceRepo{}
	exp, err := repo.Create(models.Experience{
		HostID:          middleware.CurrentUserID(c),
		Title:           utils.NormalizeSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		Category:        strings.TrimSpace(req.Category),
		Price:           req.Price,
		Duration:        strings.TrimSpace(req.Duration),
		Location:        utils.NormalizeSpace(req.Location),
		MaxParticipants: req.MaxParticipants,
		Images:          images,
		Requirements:    strings.TrimSpace(req.Requirements),
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create experience", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "experience": exp})
}

// PUT /api/experiences/:id (auth, host only)
func UpdateExperience(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid experience id", nil)
		return
	}

	var upd models.ExperienceUpdate
	if !BindJSONOrError(c, &upd) {
		return
	}
	if upd.Price != nil && *upd.Price < 0 {
		RespondError(c, http.StatusBadRequest, "price cannot be negative", nil)
		return
	}
	if upd.MaxParticipants != nil && *upd.MaxParticipants < 1 {
		RespondError(c, http.StatusBadRequest, "maxParticipants must be at least 1", nil)
		return
	}

	repo := repositories.ExperienceRepo{}
	if err := repo.Update(id, middleware.CurrentUserID(c), upd); err != nil {
		RespondDomainError(c, err)
		return
	}

	exp, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "experience": exp})
}
