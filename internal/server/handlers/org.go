package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"triton-system/internal/database/models"
)

// OrgHandler serves the Company -> Location -> Shop hierarchy. Deletes
// cascade down the tree (and across to Roles anchored on the deleted nodes)
// inside one transaction, so the behavior is identical on every store the
// tests and production use.
type OrgHandler struct {
	db *gorm.DB
}

func NewOrgHandler(db *gorm.DB) *OrgHandler {
	return &OrgHandler{db: db}
}

type companyResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	LocationsCount int64     `json:"locations_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type locationResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Company     int64     `json:"company"`
	CompanyName string    `json:"company_name"`
	ShopsCount  int64     `json:"shops_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type shopResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Location     int64     `json:"location"`
	LocationName string    `json:"location_name"`
	CompanyName  string    `json:"company_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type createLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Company int64  `json:"company" binding:"required"`
}

type updateLocationRequest struct {
	Name    *string `json:"name"`
	Company *int64  `json:"company"`
}

type createShopRequest struct {
	Name     string `json:"name" binding:"required"`
	Location int64  `json:"location" binding:"required"`
}

type updateShopRequest struct {
	Name     *string `json:"name"`
	Location *int64  `json:"location"`
}

func (h *OrgHandler) companyToResponse(company models.Company) (companyResponse, error) {
	var count int64
	if err := h.db.Model(&models.Location{}).Where("company_id = ?", company.ID).Count(&count).Error; err != nil {
		return companyResponse{}, err
	}
	return companyResponse{
		ID:             company.ID,
		Name:           company.Name,
		LocationsCount: count,
		CreatedAt:      company.CreatedAt,
	}, nil
}

func (h *OrgHandler) locationToResponse(location models.Location) (locationResponse, error) {
	var count int64
	if err := h.db.Model(&models.Shop{}).Where("location_id = ?", location.ID).Count(&count).Error; err != nil {
		return locationResponse{}, err
	}
	resp := locationResponse{
		ID:         location.ID,
		Name:       location.Name,
		Company:    location.CompanyID,
		ShopsCount: count,
		CreatedAt:  location.CreatedAt,
	}
	if location.Company != nil {
		resp.CompanyName = location.Company.Name
	}
	return resp, nil
}

func shopToResponse(shop models.Shop) shopResponse {
	resp := shopResponse{
		ID:        shop.ID,
		Name:      shop.Name,
		Location:  shop.LocationID,
		CreatedAt: shop.CreatedAt,
	}
	if shop.Location != nil {
		resp.LocationName = shop.Location.Name
		if shop.Location.Company != nil {
			resp.CompanyName = shop.Location.Company.Name
		}
	}
	return resp
}

// --- Companies ---

func (h *OrgHandler) ListCompanies(c *gin.Context) {
	var companies []models.Company
	if err := h.db.Order("id").Find(&companies).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	resp := make([]companyResponse, len(companies))
	for i, company := range companies {
		out, err := h.companyToResponse(company)
		if err != nil {
			errorJSON(c, http.StatusInternalServerError, "Database error")
			return
		}
		resp[i] = out
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrgHandler) CreateCompany(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	company := models.Company{Name: req.Name}
	if err := h.db.Create(&company).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating company")
		return
	}

	resp, err := h.companyToResponse(company)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrgHandler) GetCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var company models.Company
	if err := h.db.First(&company, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Company")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	resp, err := h.companyToResponse(company)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrgHandler) UpdateCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var company models.Company
	if err := h.db.First(&company, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Company")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	company.Name = req.Name
	if err := h.db.Save(&company).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating company")
		return
	}

	resp, err := h.companyToResponse(company)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrgHandler) DeleteCompany(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var company models.Company
	if err := h.db.First(&company, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Company")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var locationIDs []int64
		if err := tx.Model(&models.Location{}).Where("company_id = ?", id).Pluck("id", &locationIDs).Error; err != nil {
			return err
		}
		if err := deleteLocationsTree(tx, locationIDs); err != nil {
			return err
		}
		if err := deleteRolesWhere(tx, "company_id = ?", id); err != nil {
			return err
		}
		return tx.Delete(&models.Company{}, id).Error
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting company")
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Locations ---

func (h *OrgHandler) ListLocations(c *gin.Context) {
	query := h.db.Preload("Company").Order("id")
	if company := c.Query("company"); company != "" {
		id, err := strconv.ParseInt(company, 10, 64)
		if err != nil || id <= 0 {
			errorJSON(c, http.StatusBadRequest, "Invalid company filter")
			return
		}
		query = query.Where("company_id = ?", id)
	}

	var locations []models.Location
	if err := query.Find(&locations).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	resp := make([]locationResponse, len(locations))
	for i, location := range locations {
		out, err := h.locationToResponse(location)
		if err != nil {
			errorJSON(c, http.StatusInternalServerError, "Database error")
			return
		}
		resp[i] = out
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrgHandler) CreateLocation(c *gin.Context) {
	var req createLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	var company models.Company
	if err := h.db.First(&company, req.Company).Error; err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid company specified")
		return
	}

	location := models.Location{Name: req.Name, CompanyID: req.Company}
	if err := h.db.Create(&location).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating location")
		return
	}
	location.Company = &company

	resp, err := h.locationToResponse(location)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrgHandler) GetLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var location models.Location
	if err := h.db.Preload("Company").First(&location, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Location")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	resp, err := h.locationToResponse(location)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrgHandler) UpdateLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var location models.Location
	if err := h.db.First(&location, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Location")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Company != nil {
		var company models.Company
		if err := h.db.First(&company, *req.Company).Error; err != nil {
			errorJSON(c, http.StatusBadRequest, "Invalid company specified")
			return
		}
		location.CompanyID = *req.Company
	}

	if err := h.db.Save(&location).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating location")
		return
	}

	h.db.Preload("Company").First(&location, location.ID)
	resp, err := h.locationToResponse(location)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrgHandler) DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var location models.Location
	if err := h.db.First(&location, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Location")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		return deleteLocationsTree(tx, []int64{id})
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting location")
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Shops ---

func (h *OrgHandler) ListShops(c *gin.Context) {
	query := h.db.Preload("Location").Preload("Location.Company").Order("id")
	if location := c.Query("location"); location != "" {
		id, err := strconv.ParseInt(location, 10, 64)
		if err != nil || id <= 0 {
			errorJSON(c, http.StatusBadRequest, "Invalid location filter")
			return
		}
		query = query.Where("location_id = ?", id)
	}

	var shops []models.Shop
	if err := query.Find(&shops).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	resp := make([]shopResponse, len(shops))
	for i, shop := range shops {
		resp[i] = shopToResponse(shop)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrgHandler) CreateShop(c *gin.Context) {
	var req createShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	var location models.Location
	if err := h.db.Preload("Company").First(&location, req.Location).Error; err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid location specified")
		return
	}

	shop := models.Shop{Name: req.Name, LocationID: req.Location}
	if err := h.db.Create(&shop).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating shop")
		return
	}
	shop.Location = &location

	c.JSON(http.StatusCreated, shopToResponse(shop))
}

func (h *OrgHandler) GetShop(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var shop models.Shop
	if err := h.db.Preload("Location").Preload("Location.Company").First(&shop, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Shop")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, shopToResponse(shop))
}

func (h *OrgHandler) UpdateShop(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Shop")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	var req updateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Location != nil {
		var location models.Location
		if err := h.db.First(&location, *req.Location).Error; err != nil {
			errorJSON(c, http.StatusBadRequest, "Invalid location specified")
			return
		}
		shop.LocationID = *req.Location
	}

	if err := h.db.Save(&shop).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating shop")
		return
	}

	h.db.Preload("Location").Preload("Location.Company").First(&shop, shop.ID)
	c.JSON(http.StatusOK, shopToResponse(shop))
}

func (h *OrgHandler) DeleteShop(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Shop")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		return deleteShopsTree(tx, []int64{id})
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting shop")
		return
	}

	c.Status(http.StatusNoContent)
}

// --- Cascade helpers ---

func deleteLocationsTree(tx *gorm.DB, locationIDs []int64) error {
	if len(locationIDs) == 0 {
		return nil
	}

	var shopIDs []int64
	if err := tx.Model(&models.Shop{}).Where("location_id IN ?", locationIDs).Pluck("id", &shopIDs).Error; err != nil {
		return err
	}
	if err := deleteShopsTree(tx, shopIDs); err != nil {
		return err
	}
	if err := deleteRolesWhere(tx, "location_id IN ?", locationIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", locationIDs).Delete(&models.Location{}).Error
}

func deleteShopsTree(tx *gorm.DB, shopIDs []int64) error {
	if len(shopIDs) == 0 {
		return nil
	}
	if err := deleteRolesWhere(tx, "shop_id IN ?", shopIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", shopIDs).Delete(&models.Shop{}).Error
}

// deleteRolesWhere removes roles matching the condition and clears the
// profile references pointing at them (SET NULL semantics).
func deleteRolesWhere(tx *gorm.DB, condition string, args ...interface{}) error {
	var roleIDs []int64
	if err := tx.Model(&models.Role{}).Where(condition, args...).Pluck("id", &roleIDs).Error; err != nil {
		return err
	}
	if len(roleIDs) == 0 {
		return nil
	}
	if err := tx.Model(&models.Profile{}).Where("role_id IN ?", roleIDs).Update("role_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", roleIDs).Delete(&models.Role{}).Error
}
