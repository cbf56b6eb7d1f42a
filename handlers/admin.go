package handlers

import (
	"net/http"
	"strconv"

	"deskhive/models"
	"deskhive/services/admin"
	"deskhive/services/catalog"
	"deskhive/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves admin login and catalog management.
type AdminHandler struct {
	Catalog catalog.Service
}

// NewAdminHandler returns a handler over the given catalog service.
func NewAdminHandler(catalogSvc catalog.Service) *AdminHandler {
	return &AdminHandler{Catalog: catalogSvc}
}

// LoginHandler handles POST /api/admin/login.
func (h *AdminHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	token, err := admin.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CreateLocationHandler handles POST /api/admin/locations.
func (h *AdminHandler) CreateLocationHandler(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid location payload", err.Error())
		return
	}
	created, err := h.Catalog.CreateLocation(c.Request.Context(), loc)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create location", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateLocationHandler handles PUT /api/admin/locations/:id.
func (h *AdminHandler) UpdateLocationHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid location id", c.Param("id"))
		return
	}
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid location payload", err.Error())
		return
	}
	loc.ID = id
	if err := h.Catalog.UpdateLocation(c.Request.Context(), loc); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update location", err.Error())
		return
	}
	c.JSON(http.StatusOK, loc)
}

// DeleteLocationHandler handles DELETE /api/admin/locations/:id.
func (h *AdminHandler) DeleteLocationHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid location id", c.Param("id"))
		return
	}
	if err := h.Catalog.DeleteLocation(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete location", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// CreateOfferingHandler handles POST /api/admin/offerings.
func (h *AdminHandler) CreateOfferingHandler(c *gin.Context) {
	var off models.ServiceOffering
	if err := c.ShouldBindJSON(&off); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid offering payload", err.Error())
		return
	}
	created, err := h.Catalog.CreateOffering(c.Request.Context(), off)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create offering", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateOfferingHandler handles PUT /api/admin/offerings/:id.
func (h *AdminHandler) UpdateOfferingHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid offering id", c.Param("id"))
		return
	}
	var off models.ServiceOffering
	if err := c.ShouldBindJSON(&off); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid offering payload", err.Error())
		return
	}
	off.ID = id
	if err := h.Catalog.UpdateOffering(c.Request.Context(), off); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update offering", err.Error())
		return
	}
	c.JSON(http.StatusOK, off)
}

// DeleteOfferingHandler handles DELETE /api/admin/offerings/:id.
func (h *AdminHandler) DeleteOfferingHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid offering id", c.Param("id"))
		return
	}
	if err := h.Catalog.DeleteOffering(c.Request.Context(), id); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete offering", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
