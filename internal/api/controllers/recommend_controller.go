package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type RecommendController struct {
	recommendService services.RecommendServiceInterface
}

func NewRecommendController(recommendService services.RecommendServiceInterface) *RecommendController {
	return &RecommendController{
		recommendService: recommendService,
	}
}

// Recommend godoc
// @Summary Semantic catalog recommendations
// @Description Embed the query and return the nearest catalog items by cosine similarity
// @Tags Recommend
// @Accept json
// @Produce json
// @Param request body request_models.RecommendRequest true "Query, optional domain/city filters"
// @Success 200 {array} response_models.Recommendation
// @Router /recommend [post]
func (r *RecommendController) Recommend(c *gin.Context) {
	var req request_models.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Query is required")
		return
	}

	recommendations, err := r.recommendService.Recommend(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, recommendations, "Recommendations fetched successfully")
}
