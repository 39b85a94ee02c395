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

type createSlotRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// GET /api/experiences/:id/slots?date=YYYY-MM-DD
// Guests see open slots only; the host sees everything.
func ListTimeSlots(c *gin.Context) {
	experienceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || experienceID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid experience id", nil)
		return
	}

	expRepo := repositories.ExperienceRepo{}
	exp, err := expRepo.GetByID(experienceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	isHost := middleware.OptionalUserID(c) == exp.HostID
	if !exp.Active && !isHost {
		RespondError(c, http.StatusNotFound, "experience not found", nil)
		return
	}
	includeTaken := isHost

	slotRepo := repositories.SlotRepo{}
	slots, err := slotRepo.List(experienceID, c.Query("date"), includeTaken)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load time slots", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots})
}

// POST /api/experiences/:id/slots (auth, host only)
func CreateTimeSlot(c *gin.Context) {
	experienceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || experienceID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid experience id", nil)
		return
	}

	var req createSlotRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
		return
	}
	start, err := utils.ParseClock(req.StartTime)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid startTime, expected HH:MM", nil)
		return
	}
	end, err := utils.ParseClock(req.EndTime)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid endTime, expected HH:MM", nil)
		return
	}
	if !end.After(start) {
		RespondError(c, http.StatusBadRequest, "endTime must be after startTime", nil)
		return
	}

	expRepo := repositories.ExperienceRepo{}
	exp, err := expRepo.GetByID(experienceID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exp.HostID != middleware.CurrentUserID(c) {
		RespondError(c, http.StatusForbidden, "only the host can add time slots", nil)
		return
	}

	slotRepo := repositories.SlotRepo{}
	slot, err := slotRepo.Create(models.TimeSlot{
		ExperienceID: experienceID,
		Date:         utils.FormatDate(date),
		StartTime:    strings.TrimSpace(req.StartTime),
		EndTime:      strings.TrimSpace(req.EndTime),
	})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create time slot", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "slot": slot})
}
