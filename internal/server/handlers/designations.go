package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"triton-system/internal/database/models"
)

type DesignationHandler struct {
	db *gorm.DB
}

func NewDesignationHandler(db *gorm.DB) *DesignationHandler {
	return &DesignationHandler{db: db}
}

type createDesignationRequest struct {
	Title   string `json:"title" binding:"required"`
	Company string `json:"company" binding:"required"`
	Date    string `json:"date" binding:"required"`
	Color   string `json:"color" binding:"required"`
}

type updateDesignationRequest struct {
	Title   *string `json:"title"`
	Company *string `json:"company"`
	Date    *string `json:"date"`
	Color   *string `json:"color"`
}

func (h *DesignationHandler) ListDesignations(c *gin.Context) {
	var designations []models.Designation
	if err := h.db.Order("id").Find(&designations).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, designations)
}

func (h *DesignationHandler) CreateDesignation(c *gin.Context) {
	var req createDesignationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	designation := models.Designation{
		Title:   req.Title,
		Company: req.Company,
		Date:    req.Date,
		Color:   req.Color,
	}
	if err := h.db.Create(&designation).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating designation")
		return
	}

	c.JSON(http.StatusCreated, designation)
}

func (h *DesignationHandler) GetDesignation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var designation models.Designation
	if err := h.db.First(&designation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Designation")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, designation)
}

func (h *DesignationHandler) UpdateDesignation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var designation models.Designation
	if err := h.db.First(&designation, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Designation")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	var req updateDesignationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if req.Title != nil {
		designation.Title = *req.Title
	}
	if req.Company != nil {
		designation.Company = *req.Company
	}
	if req.Date != nil {
		designation.Date = *req.Date
	}
	if req.Color != nil {
		designation.Color = *req.Color
	}

	if err := h.db.Save(&designation).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating designation")
		return
	}

	c.JSON(http.StatusOK, designation)
}

func (h *DesignationHandler) DeleteDesignation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := h.db.Delete(&models.Designation{}, id)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting designation")
		return
	}
	if result.RowsAffected == 0 {
		notFound(c, "Designation")
		return
	}

	c.Status(http.StatusNoContent)
}
