package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"triton-system/internal/database/models"
)

// DashboardHandler serves the read-only widget projections.
type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// TotalUsers reports the identity count plus a growth percentage derived
// from daily count snapshots: percent change against the most recent
// snapshot from a previous day, one decimal place, 0 with no history.
// The first read of a day records that day's snapshot. Snapshot bookkeeping
// is best-effort: failures are logged and the growth falls back to 0 so the
// widget never loses the live count.
func (h *DashboardHandler) TotalUsers(c *gin.Context) {
	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	growth := 0.0
	var prev models.UserCountSnapshot
	err := h.db.Where("created_at < ?", startOfDay).Order("created_at DESC").First(&prev).Error
	switch {
	case err == nil && prev.Total > 0:
		growth, _ = decimal.NewFromInt(total - prev.Total).
			Div(decimal.NewFromInt(prev.Total)).
			Mul(decimal.NewFromInt(100)).
			Round(1).
			Float64()
	case err != nil && err != gorm.ErrRecordNotFound:
		log.Printf("Failed to load user count snapshot: %v", err)
	}

	var todayCount int64
	if err := h.db.Model(&models.UserCountSnapshot{}).Where("created_at >= ?", startOfDay).Count(&todayCount).Error; err != nil {
		log.Printf("Failed to check today's user count snapshot: %v", err)
	} else if todayCount == 0 {
		if err := h.db.Create(&models.UserCountSnapshot{Total: total}).Error; err != nil {
			log.Printf("Failed to record user count snapshot: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "growth": growth})
}

func (h *DashboardHandler) TrafficSources(c *gin.Context) {
	var sources []models.TrafficSource
	if err := h.db.Order("id").Find(&sources).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, sources)
}

func (h *DashboardHandler) NewUsers(c *gin.Context) {
	var users []models.NewUser
	if err := h.db.Order("time_added DESC").Limit(4).Find(&users).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *DashboardHandler) SalesDistribution(c *gin.Context) {
	var sales []models.SalesDistribution
	if err := h.db.Order("id").Find(&sales).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *DashboardHandler) ProjectProgress(c *gin.Context) {
	var project models.Project
	err := h.db.Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Order("id").First(&project).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *DashboardHandler) ActiveAuthors(c *gin.Context) {
	var authors []models.ActiveAuthor
	if err := h.db.Order("id").Find(&authors).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, authors)
}

func (h *DashboardHandler) NewDesignations(c *gin.Context) {
	var designations []models.Designation
	if err := h.db.Order("date DESC").Limit(4).Find(&designations).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, designations)
}

func (h *DashboardHandler) UserActivity(c *gin.Context) {
	var activity []models.UserActivity
	if err := h.db.Order("id").Find(&activity).Error; err != nil {
		errorJSON(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, activity)
}
