package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"triton-system/internal/database/models"
)

type RoleHandler struct {
	db *gorm.DB
}

func NewRoleHandler(db *gorm.DB) *RoleHandler {
	return &RoleHandler{db: db}
}

type roleResponse struct {
	models.Role
	CompanyName  string `json:"company_name"`
	LocationName string `json:"location_name"`
	ShopName     string `json:"shop_name"`
}

type createRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Company     int64  `json:"company" binding:"required"`
	Location    int64  `json:"location" binding:"required"`
	Shop        int64  `json:"shop" binding:"required"`

	RoleCreate bool `json:"role_create"`
	RoleEdit   bool `json:"role_edit"`
	RoleDelete bool `json:"role_delete"`
	RoleView   bool `json:"role_view"`
	UserCreate bool `json:"user_create"`
	UserEdit   bool `json:"user_edit"`
	UserDelete bool `json:"user_delete"`
	UserView   bool `json:"user_view"`
}

type updateRoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Company     *int64  `json:"company"`
	Location    *int64  `json:"location"`
	Shop        *int64  `json:"shop"`

	RoleCreate *bool `json:"role_create"`
	RoleEdit   *bool `json:"role_edit"`
	RoleDelete *bool `json:"role_delete"`
	RoleView   *bool `json:"role_view"`
	UserCreate *bool `json:"user_create"`
	UserEdit   *bool `json:"user_edit"`
	UserDelete *bool `json:"user_delete"`
	UserView   *bool `json:"user_view"`
}

func roleToResponse(role models.Role) roleResponse {
	resp := roleResponse{Role: role}
	if role.Company != nil {
		resp.CompanyName = role.Company.Name
	}
	if role.Location != nil {
		resp.LocationName = role.Location.Name
	}
	if role.Shop != nil {
		resp.ShopName = role.Shop.Name
	}
	return resp
}

func roleQuery(db *gorm.DB) *gorm.DB {
	return db.Preload("Company").Preload("Location").Preload("Shop")
}

func (h *RoleHandler) ListRoles(c *gin.Context) {
	var roles []models.Role
	if err := roleQuery(h.db).Order("id").Find(&roles).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	resp := make([]roleResponse, len(roles))
	for i, role := range roles {
		resp[i] = roleToResponse(role)
	}
	c.JSON(http.StatusOK, resp)
}

// CreateRole requires the whole org triple to reference existing rows. The
// three references are validated independently, not checked against each
// other for hierarchy membership.
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req createRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	var existing models.Role
	if err := h.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		errorJSON(c, http.StatusConflict, "Role name already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	if !h.orgTripleExists(c, req.Company, req.Location, req.Shop) {
		return
	}

	role := models.Role{
		Name:        req.Name,
		Description: req.Description,
		CompanyID:   req.Company,
		LocationID:  req.Location,
		ShopID:      req.Shop,
		RoleCreate:  req.RoleCreate,
		RoleEdit:    req.RoleEdit,
		RoleDelete:  req.RoleDelete,
		RoleView:    req.RoleView,
		UserCreate:  req.UserCreate,
		UserEdit:    req.UserEdit,
		UserDelete:  req.UserDelete,
		UserView:    req.UserView,
	}

	if err := h.db.Create(&role).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating role")
		return
	}

	roleQuery(h.db).First(&role, role.ID)
	c.JSON(http.StatusCreated, roleToResponse(role))
}

func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var role models.Role
	if err := roleQuery(h.db).First(&role, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Role")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, roleToResponse(role))
}

func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var role models.Role
	if err := h.db.First(&role, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Role")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if req.Name != nil && *req.Name != role.Name {
		var existing models.Role
		if err := h.db.Where("name = ? AND id <> ?", *req.Name, id).First(&existing).Error; err == nil {
			errorJSON(c, http.StatusConflict, "Role name already exists")
			return
		} else if err != gorm.ErrRecordNotFound {
			errorJSON(c, http.StatusInternalServerError, "Database error")
			return
		}
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}

	company := role.CompanyID
	location := role.LocationID
	shop := role.ShopID
	if req.Company != nil {
		company = *req.Company
	}
	if req.Location != nil {
		location = *req.Location
	}
	if req.Shop != nil {
		shop = *req.Shop
	}
	if req.Company != nil || req.Location != nil || req.Shop != nil {
		if !h.orgTripleExists(c, company, location, shop) {
			return
		}
		role.CompanyID = company
		role.LocationID = location
		role.ShopID = shop
	}

	if req.RoleCreate != nil {
		role.RoleCreate = *req.RoleCreate
	}
	if req.RoleEdit != nil {
		role.RoleEdit = *req.RoleEdit
	}
	if req.RoleDelete != nil {
		role.RoleDelete = *req.RoleDelete
	}
	if req.RoleView != nil {
		role.RoleView = *req.RoleView
	}
	if req.UserCreate != nil {
		role.UserCreate = *req.UserCreate
	}
	if req.UserEdit != nil {
		role.UserEdit = *req.UserEdit
	}
	if req.UserDelete != nil {
		role.UserDelete = *req.UserDelete
	}
	if req.UserView != nil {
		role.UserView = *req.UserView
	}

	if err := h.db.Save(&role).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating role")
		return
	}

	roleQuery(h.db).First(&role, role.ID)
	c.JSON(http.StatusOK, roleToResponse(role))
}

func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var role models.Role
	if err := h.db.First(&role, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "Role")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		return deleteRolesWhere(tx, "id = ?", id)
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting role")
		return
	}

	c.Status(http.StatusNoContent)
}

// orgTripleExists writes the error response itself so callers can bail with
// a bare return.
func (h *RoleHandler) orgTripleExists(c *gin.Context, companyID, locationID, shopID int64) bool {
	var company models.Company
	if err := h.db.First(&company, companyID).Error; err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid company specified")
		return false
	}
	var location models.Location
	if err := h.db.First(&location, locationID).Error; err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid location specified")
		return false
	}
	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid shop specified")
		return false
	}
	return true
}
