package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"triton-system/internal/auth"
	"triton-system/internal/database/models"
	"triton-system/internal/utils"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens auth.TokenStore
}

func NewAuthHandler(db *gorm.DB, tokens auth.TokenStore) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Register creates the identity and its profile atomically. No token is
// issued; the client logs in afterwards.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	var existing models.User
	if err := h.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		errorJSON(c, http.StatusConflict, "Username or email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(pwHash),
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.Profile{UserID: user.ID, Status: "Pending"}
		return tx.Create(&profile).Error
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error creating user")
		return
	}

	var created models.User
	if err := userQuery(h.db).First(&created, user.ID).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusCreated, userToResponse(created))
}

// Login deliberately returns the same body for unknown usernames and wrong
// passwords.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	var user models.User
	if err := userQuery(h.db).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		errorJSON(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	pair, err := utils.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error generating token")
		return
	}

	if err := h.tokens.Save(c.Request.Context(), pair.RefreshID, user.ID, utils.RefreshTokenTTL); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error storing refresh token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  pair.Access,
		"refresh": pair.Refresh,
		"user":    userToResponse(user),
	})
}

// Refresh rotates the refresh token: the presented jti is consumed and a new
// pair is issued.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	claims, err := utils.ParseToken(req.Refresh)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		errorJSON(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	userID, err := h.tokens.Get(c.Request.Context(), claims.ID)
	if err != nil || userID != claims.UserId {
		errorJSON(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	pair, err := utils.GenerateTokenPair(claims.UserId, claims.Username)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error generating token")
		return
	}

	if err := h.tokens.Delete(c.Request.Context(), claims.ID); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error rotating refresh token")
		return
	}
	if err := h.tokens.Save(c.Request.Context(), pair.RefreshID, claims.UserId, utils.RefreshTokenTTL); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error storing refresh token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	claims, err := utils.ParseToken(req.Refresh)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		errorJSON(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	if err := h.tokens.Delete(c.Request.Context(), claims.ID); err != nil {
		errorJSON(c, http.StatusInternalServerError, "Error revoking refresh token")
		return
	}

	c.Status(http.StatusNoContent)
}
