package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
}

func NewCatalogController(catalogService services.CatalogServiceInterface) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

func (p *CatalogController) ListCatalogItems(c *gin.Context) {
	domain := c.Param("domain")
	if domain == "" {
		utils.RespondError(c, http.StatusBadRequest, "Catalog domain is required")
		return
	}

	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	items, err := p.catalogService.ListCatalogItems(c.Request.Context(), domain, c.Query("city"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Catalog items fetched successfully")
}

func (p *CatalogController) GetCatalogItem(c *gin.Context) {
	itemID := c.Param("id")
	if itemID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Catalog item ID is required")
		return
	}

	item, err := p.catalogService.GetCatalogItem(c.Request.Context(), itemID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Catalog item fetched successfully")
}
