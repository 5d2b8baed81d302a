package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"triton-system/internal/database/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type profileResponse struct {
	Role       *int64       `json:"role"`
	RoleDetail *models.Role `json:"role_detail"`
	Phone      string       `json:"phone"`
	Status     string       `json:"status"`
	Steps      int          `json:"steps"`
	Company    string       `json:"company"`
	Location   string       `json:"location"`
	Shop       string       `json:"shop"`
}

type userResponse struct {
	ID        int64           `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	CreatedAt time.Time       `json:"created_at"`
	Profile   profileResponse `json:"profile"`
}

// userToResponse flattens a preloaded User into the stable API shape. The
// company/location/shop names are derived from the role's org references at
// read time; they are never persisted on the profile.
func userToResponse(u models.User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Username,
		CreatedAt: u.CreatedAt,
		Profile: profileResponse{
			Status: "Pending",
		},
	}

	if u.Profile == nil {
		return resp
	}

	resp.Profile.Role = u.Profile.RoleID
	resp.Profile.Phone = u.Profile.Phone
	resp.Profile.Status = u.Profile.Status
	resp.Profile.Steps = u.Profile.Steps

	if role := u.Profile.Role; role != nil {
		resp.Profile.RoleDetail = role
		if role.Company != nil {
			resp.Profile.Company = role.Company.Name
		}
		if role.Location != nil {
			resp.Profile.Location = role.Location.Name
		}
		if role.Shop != nil {
			resp.Profile.Shop = role.Shop.Name
		}
	}

	return resp
}

func userQuery(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Profile").
		Preload("Profile.Role").
		Preload("Profile.Role.Company").
		Preload("Profile.Role.Location").
		Preload("Profile.Role.Shop")
}

type profileRequest struct {
	Role   *int64 `json:"role"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
	Steps  int    `json:"steps"`
}

type createUserRequest struct {
	Username string          `json:"username" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password"`
	Profile  *profileRequest `json:"profile"`
}

type profileUpdateRequest struct {
	Role   *int64  `json:"role"`
	Phone  *string `json:"phone"`
	Status *string `json:"status"`
	Steps  *int    `json:"steps"`
}

type updateUserRequest struct {
	Username *string               `json:"username"`
	Email    *string               `json:"email"`
	Profile  *profileUpdateRequest `json:"profile"`
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := userQuery(h.db).Order("id").Find(&users).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = userToResponse(u)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := userQuery(h.db).First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "User")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

// CreateUser is the admin-side create; unlike registration it allows an
// initial profile and an empty password (account unusable for login until a
// password is set).
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if taken, err := h.credentialsTaken(req.Username, req.Email, 0); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	} else if taken {
		errorJSON(c, http.StatusConflict, "Username or email already exists")
		return
	}

	profile := models.Profile{Status: "Pending"}
	if req.Profile != nil {
		if req.Profile.Role != nil {
			if !h.roleExists(*req.Profile.Role) {
				errorJSON(c, http.StatusBadRequest, "Invalid role specified")
				return
			}
			profile.RoleID = req.Profile.Role
		}
		profile.Phone = req.Profile.Phone
		if req.Profile.Status != "" {
			profile.Status = req.Profile.Status
		}
		profile.Steps = req.Profile.Steps
	}

	password := ""
	if req.Password != "" {
		pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			errorJSON(c, http.StatusInternalServerError, "Error hashing password")
			return
		}
		password = string(pwHash)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: password,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	h.respondWithUser(c, http.StatusCreated, user.ID)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.Preload("Profile").First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "User")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	if req.Username != nil && *req.Username != user.Username {
		if taken, err := h.credentialsTaken(*req.Username, "", user.ID); err != nil {
			errorJSON(c, http.StatusInternalServerError, "Database error")
			return
		} else if taken {
			errorJSON(c, http.StatusConflict, "Username already exists")
			return
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		if taken, err := h.credentialsTaken("", *req.Email, user.ID); err != nil {
			errorJSON(c, http.StatusInternalServerError, "Database error")
			return
		} else if taken {
			errorJSON(c, http.StatusConflict, "Email already exists")
			return
		}
		user.Email = *req.Email
	}

	profile := user.Profile
	if profile == nil {
		// Every user gets a profile at creation; a missing row is corruption,
		// not a lazy-create opportunity.
		errorJSON(c, http.StatusInternalServerError, "Profile record missing")
		return
	}
	if req.Profile != nil {
		if req.Profile.Role != nil {
			if *req.Profile.Role == 0 {
				profile.RoleID = nil
			} else {
				if !h.roleExists(*req.Profile.Role) {
					errorJSON(c, http.StatusBadRequest, "Invalid role specified")
					return
				}
				profile.RoleID = req.Profile.Role
			}
		}
		if req.Profile.Phone != nil {
			profile.Phone = *req.Profile.Phone
		}
		if req.Profile.Status != nil {
			profile.Status = *req.Profile.Status
		}
		if req.Profile.Steps != nil {
			profile.Steps = *req.Profile.Steps
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Save(profile).Error
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error updating user")
		return
	}

	h.respondWithUser(c, http.StatusOK, user.ID)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "User")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		// Inventory rows keep existing with a nulled creator reference.
		if err := tx.Model(&models.Jewellery{}).Where("added_by_id = ?", id).Update("added_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.RFID{}).Where("added_by_id = ?", id).Update("added_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.RFIDJewelleryMap{}).Where("added_by_id = ?", id).Update("added_by_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error deleting user")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) respondWithUser(c *gin.Context, status int, id int64) {
	var user models.User
	if err := userQuery(h.db).First(&user, id).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(status, userToResponse(user))
}

func (h *UserHandler) credentialsTaken(username, email string, excludeID int64) (bool, error) {
	query := h.db.Model(&models.User{})
	switch {
	case username != "" && email != "":
		query = query.Where("username = ? OR email = ?", username, email)
	case username != "":
		query = query.Where("username = ?", username)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return false, nil
	}
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (h *UserHandler) roleExists(id int64) bool {
	var role models.Role
	return h.db.First(&role, id).Error == nil
}
