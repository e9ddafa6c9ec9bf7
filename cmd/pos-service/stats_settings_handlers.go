package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmacedo/pdv-backend/internal/settings"
	"github.com/rmacedo/pdv-backend/internal/stats"
)

// dashboardHandler godoc
// @Summary Dashboard aggregates
// @Tags stats
// @Produce json
// @Success 200 {object} stats.Summary
// @Router /stats/dashboard [get]
func dashboardHandler(repo stats.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := repo.Summary(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func getSettingsHandler(repo settings.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := repo.Get(c.Request.Context())
		if err != nil {
			if errors.Is(err, settings.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "settings not configured"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func saveSettingsHandler(repo settings.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req settings.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "company_name is required"})
			return
		}

		s := &settings.Settings{
			Name:     req.Name,
			Document: req.Document,
			Phone:    req.Phone,
			Address:  req.Address,
			LogoURL:  req.LogoURL,
		}
		if cur, err := repo.Get(c.Request.Context()); err == nil {
			s.ID = cur.ID
		} else {
			s.ID = uuid.NewString()
		}

		if err := repo.Save(c.Request.Context(), s); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}
