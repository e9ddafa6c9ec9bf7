package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmacedo/pdv-backend/internal/client"
)

func listClientsHandler(repo client.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		items, err := repo.List(c.Request.Context(), c.Query("q"), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
	}
}

func getClientHandler(repo client.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cl, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.JSON(http.StatusOK, cl)
	}
}

// createClientHandler godoc
// @Summary Register a client with an optional credit limit
// @Tags clients
// @Accept json
// @Produce json
// @Param payload body client.CreateClientRequest true "client"
// @Success 201 {object} client.Client
// @Failure 400 {object} catalog.HTTPError
// @Router /clients [post]
func createClientHandler(repo client.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req client.CreateClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and document are required"})
			return
		}
		if req.CreditLimit.Sign() < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "credit_limit must not be negative"})
			return
		}

		cl := &client.Client{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Document:    req.Document,
			Address:     req.Address,
			Phone:       req.Phone,
			Email:       req.Email,
			CreditLimit: req.CreditLimit,
			DueDay:      req.DueDay,
		}
		if err := repo.Create(c.Request.Context(), cl); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, cl)
	}
}

func updateClientHandler(repo client.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req client.UpdateClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		cur, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}

		updateLimit := false
		if req.CreditLimit != nil {
			if req.CreditLimit.Sign() < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "credit_limit must not be negative"})
				return
			}
			cur.CreditLimit = *req.CreditLimit
			updateLimit = true
		}
		if req.DueDay != nil {
			cur.DueDay = *req.DueDay
		}
		cur.Name = req.Name
		cur.Document = req.Document
		cur.Address = req.Address
		cur.Phone = req.Phone
		cur.Email = req.Email

		if err := repo.Update(c.Request.Context(), cur, updateLimit); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out, err := repo.GetByID(c.Request.Context(), cur.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteClientHandler(repo client.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// clientPaymentHandler registers a payment received against the client's
// tab, reducing the outstanding balance.
func clientPaymentHandler(repo client.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req client.PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number"})
			return
		}

		if err := repo.Credit(c.Request.Context(), c.Param("id"), req.Amount); err != nil {
			if errors.Is(err, client.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
