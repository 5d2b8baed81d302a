package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"triton-system/internal/database/models"
	"triton-system/internal/server/middleware"
)

// InventoryHandler serves jewellery items, RFID tags, and the mapping
// between them.
type InventoryHandler struct {
	db *gorm.DB
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

type createJewelleryRequest struct {
	JewelleryID    string `json:"jewellery_id" binding:"required"`
	DesignNumber   string `json:"design_number"`
	CollectionType string `json:"collection_type"`
	MetalType      string `json:"metal_type"`
	Category       string `json:"category"`
	SubCategory    string `json:"sub_category"`
	Status         string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type updateJewelleryRequest struct {
	DesignNumber   *string `json:"design_number"`
	CollectionType *string `json:"collection_type"`
	MetalType      *string `json:"metal_type"`
	Category       *string `json:"category"`
	SubCategory    *string `json:"sub_category"`
	Status         *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type createRFIDRequest struct {
	Tag    string `json:"tag" binding:"required"`
	Status string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type updateRFIDRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

type createMappingRequest struct {
	Jewellery int64 `json:"jewellery" binding:"required"`
	RFID      int64 `json:"rfid" binding:"required"`
}

func creatorID(c *gin.Context) *int64 {
	if id := middleware.CurrentUserID(c); id > 0 {
		return &id
	}
	return nil
}

// --- Jewellery ---

func (h *InventoryHandler) ListJewellery(c *gin.Context) {
	query := h.db.Order("id")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var items []models.Jewellery
	if err := query.Find(&items).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) CreateJewellery(c *gin.Context) {
	var req createJewelleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	var existing models.Jewellery
	if err := h.db.Where("jewellery_id = ?", req.JewelleryID).First(&existing).Error; err == nil {
		errorJSON(c, http.StatusConflict, "Jewellery ID already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	item := models.Jewellery{
		JewelleryID:    req.JewelleryID,
		DesignNumber:   req.DesignNumber,
		CollectionType: req.CollectionType,
		MetalType:      req.MetalType,
		Category:       req.Category,
		SubCategory:    req.SubCategory,
		Status:         models.StatusActive,
		AddedByID:      creatorID(c),
	}
	if req.Status != "" {
		item.Status = req.Status
	}

	if err := h.db.Create(&item).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating jewellery")
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) GetJewellery(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var item models.Jewellery
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Jewellery")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) UpdateJewellery(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var item models.Jewellery
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Jewellery")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	var req updateJewelleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if req.DesignNumber != nil {
		item.DesignNumber = *req.DesignNumber
	}
	if req.CollectionType != nil {
		item.CollectionType = *req.CollectionType
	}
	if req.MetalType != nil {
		item.MetalType = *req.MetalType
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.SubCategory != nil {
		item.SubCategory = *req.SubCategory
	}
	if req.Status != nil {
		item.Status = *req.Status
	}

	if err := h.db.Save(&item).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating jewellery")
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) DeleteJewellery(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var item models.Jewellery
	if err := h.db.First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Jewellery")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("jewellery_id = ?", id).Delete(&models.RFIDJewelleryMap{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Jewellery{}, id).Error
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting jewellery")
		return
	}

	c.Status(http.StatusNoContent)
}

// --- RFID ---

func (h *InventoryHandler) ListRFID(c *gin.Context) {
	query := h.db.Order("id")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tags []models.RFID
	if err := query.Find(&tags).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *InventoryHandler) CreateRFID(c *gin.Context) {
	var req createRFIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	var existing models.RFID
	if err := h.db.Where("tag = ?", req.Tag).First(&existing).Error; err == nil {
		errorJSON(c, http.StatusConflict, "RFID tag already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	tag := models.RFID{
		Tag:       req.Tag,
		Status:    models.StatusActive,
		AddedByID: creatorID(c),
	}
	if req.Status != "" {
		tag.Status = req.Status
	}

	if err := h.db.Create(&tag).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating RFID tag")
		return
	}

	c.JSON(http.StatusCreated, tag)
}

func (h *InventoryHandler) GetRFID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var tag models.RFID
	if err := h.db.First(&tag, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "RFID tag")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, tag)
}

func (h *InventoryHandler) UpdateRFID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var tag models.RFID
	if err := h.db.First(&tag, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "RFID tag")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	var req updateRFIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if req.Status != nil {
		tag.Status = *req.Status
	}

	if err := h.db.Save(&tag).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating RFID tag")
		return
	}

	c.JSON(http.StatusOK, tag)
}

func (h *InventoryHandler) DeleteRFID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var tag models.RFID
	if err := h.db.First(&tag, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "RFID tag")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rfid_id = ?", id).Delete(&models.RFIDJewelleryMap{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RFID{}, id).Error
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting RFID tag")
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Mapping ---

func (h *InventoryHandler) ListMappings(c *gin.Context) {
	var mappings []models.RFIDJewelleryMap
	if err := h.db.Order("id").Find(&mappings).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, mappings)
}

// CreateMapping surfaces duplicate pairs as a conflict; only the fixtures
// loader is allowed to skip them silently.
func (h *InventoryHandler) CreateMapping(c *gin.Context) {
	var req createMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	var jewellery models.Jewellery
	if err := h.db.First(&jewellery, req.Jewellery).Error; err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid jewellery specified")
		return
	}
	var tag models.RFID
	if err := h.db.First(&tag, req.RFID).Error; err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid RFID tag specified")
		return
	}

	var existing models.RFIDJewelleryMap
	if err := h.db.Where("jewellery_id = ? AND rfid_id = ?", req.Jewellery, req.RFID).First(&existing).Error; err == nil {
		errorJSON(c, http.StatusConflict, "Mapping already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	mapping := models.RFIDJewelleryMap{
		JewelleryID: req.Jewellery,
		RFIDID:      req.RFID,
		Status:      models.StatusActive,
		AddedByID:   creatorID(c),
	}

	if err := h.db.Create(&mapping).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating mapping")
		return
	}

	c.JSON(http.StatusCreated, mapping)
}

func (h *InventoryHandler) DeleteMapping(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := h.db.Delete(&models.RFIDJewelleryMap{}, id)
	if result.Error != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting mapping")
		return
	}
	if result.RowsAffected == 0 {
		notFound(c, "Mapping")
		return
	}

	c.Status(http.StatusNoContent)
}
