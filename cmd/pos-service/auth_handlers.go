package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmacedo/pdv-backend/internal/config"
	"github.com/rmacedo/pdv-backend/internal/httpx"
	"github.com/rmacedo/pdv-backend/internal/user"
)

// loginHandler godoc
// @Summary Authenticate an operator
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body user.LoginRequest true "credentials"
// @Success 200 {object} map[string]string
// @Failure 401 {object} catalog.HTTPError
// @Router /auth/login [post]
func loginHandler(repo user.Repository, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		u, err := repo.GetByEmail(c.Request.Context(), req.Email)
		if err != nil || !user.CheckPassword(u.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
		tok, err := httpx.IssueToken([]byte(cfg.JWTSecret), u.ID, u.Role, ttl)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":     tok,
			"user_id":   u.ID,
			"full_name": u.FullName,
			"role":      u.Role,
		})
	}
}

func createUserHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email, full_name, role and password are required"})
			return
		}
		if !user.ValidRole(req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
			return
		}

		hash, err := user.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "hash error"})
			return
		}
		u := &user.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			FullName:     req.FullName,
			Role:         req.Role,
			PasswordHash: hash,
		}
		if err := repo.Create(c.Request.Context(), u); err != nil {
			if errors.Is(err, user.ErrAlreadyExist) {
				c.JSON(http.StatusConflict, gin.H{"error": "user exists (email)"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

func listUsersHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": users})
	}
}

func deleteUserHandler(repo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
