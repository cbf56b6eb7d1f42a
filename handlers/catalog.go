package handlers

import (
	"net/http"
	"strconv"

	"deskhive/models"
	"deskhive/services/catalog"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public read side of the catalog.
type CatalogHandler struct {
	Service catalog.Service
}

// NewCatalogHandler returns a handler over the given catalog service.
func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{Service: svc}
}

// ListLocationsHandler handles GET /api/locations. An empty list is a valid
// response, not an error.
func (h *CatalogHandler) ListLocationsHandler(c *gin.Context) {
	locs, err := h.Service.ListLocations(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch locations", err.Error())
		return
	}
	if locs == nil {
		locs = []models.Location{}
	}
	c.JSON(http.StatusOK, locs)
}

// ListOfferingsHandler handles GET /api/pricing-catalog/:locationId. A city
// with no packages yet returns an empty list.
func (h *CatalogHandler) ListOfferingsHandler(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("locationId"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid location id", c.Param("locationId"))
		return
	}

	offs, err := h.Service.ListOfferings(c.Request.Context(), locationID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch pricing catalog", err.Error())
		return
	}
	if offs == nil {
		offs = []models.ServiceOffering{}
	}
	c.JSON(http.StatusOK, offs)
}
