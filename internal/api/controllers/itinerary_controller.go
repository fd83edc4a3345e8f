package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
	}
}

// GenerateItinerary godoc
// @Summary Generate an itinerary from a parsed travel intent
// @Description Rank catalog candidates for the intent and assemble a day-by-day schedule
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Intent and constraints"
// @Success 200 {object} response_models.Itinerary
// @Failure 400 {object} utils.APIResponse
// @Router /itineraries/generate [post]
func (i *ItineraryController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Intent with city, start_date and end_date is required")
		return
	}

	itinerary, err := i.itineraryService.Generate(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary generated successfully")
}

// RegenerateDay godoc
// @Summary Regenerate a single day of an itinerary
// @Description Rebuild one day under overridden constraints, leaving all other days untouched
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Param dayIndex path int true "Zero-based day index"
// @Param request body request_models.DayOverrides false "Constraint overrides"
// @Success 200 {object} response_models.Itinerary
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /itineraries/{itineraryId}/days/{dayIndex}/regenerate [post]
func (i *ItineraryController) RegenerateDay(c *gin.Context) {
	itineraryID := c.Param("itineraryId")
	if itineraryID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	dayIndex, err := strconv.Atoi(c.Param("dayIndex"))
	if err != nil || dayIndex < 0 {
		utils.RespondError(c, http.StatusBadRequest, "Day index must be a non-negative integer")
		return
	}

	var overrides request_models.DayOverrides
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&overrides); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid overrides payload")
			return
		}
	}

	itinerary, err := i.itineraryService.RegenerateDay(c.Request.Context(), itineraryID, dayIndex, overrides)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Day regenerated successfully")
}

// GetItinerary godoc
// @Summary Get an itinerary by ID
// @Tags Itinerary
// @Produce json
// @Param itineraryId path string true "Itinerary ID"
// @Success 200 {object} response_models.Itinerary
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{itineraryId} [get]
func (i *ItineraryController) GetItinerary(c *gin.Context) {
	itineraryID := c.Param("itineraryId")
	if itineraryID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	itinerary, err := i.itineraryService.GetItinerary(c.Request.Context(), itineraryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, itinerary, "Itinerary fetched successfully")
}
