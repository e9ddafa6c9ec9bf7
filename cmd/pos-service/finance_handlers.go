package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmacedo/pdv-backend/internal/finance"
)

const dateLayout = "2006-01-02"

func listTransactionsHandler(repo finance.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		items, err := repo.ListTransactions(c.Request.Context(), c.Query("status"), c.Query("type"), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
	}
}

func createTransactionHandler(repo finance.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req finance.CreateTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "description, amount, type and due_date are required"})
			return
		}
		if !finance.ValidType(req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be income or expense"})
			return
		}
		if req.Amount.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number"})
			return
		}
		status := req.Status
		if status == "" {
			status = finance.StatusPending
		}
		if !finance.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending or paid"})
			return
		}
		due, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
			return
		}

		t := &finance.Transaction{
			ID:          uuid.NewString(),
			Description: req.Description,
			Amount:      req.Amount,
			Type:        req.Type,
			Status:      status,
			DueDate:     due,
			CategoryID:  req.CategoryID,
		}
		if err := repo.CreateTransaction(c.Request.Context(), t); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, t)
	}
}

func updateTransactionHandler(repo finance.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req finance.UpdateTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.Status != "" && !finance.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending or paid"})
			return
		}

		t := &finance.Transaction{
			ID:          c.Param("id"),
			Description: req.Description,
			Status:      req.Status,
			CategoryID:  req.CategoryID,
		}
		updateAmount := false
		if req.Amount != nil {
			if req.Amount.Sign() <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number"})
				return
			}
			t.Amount = *req.Amount
			updateAmount = true
		}
		if req.DueDate != "" {
			due, err := time.Parse(dateLayout, req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
				return
			}
			t.DueDate = due
		}
		if req.PaymentDate != "" {
			pd, err := time.Parse(dateLayout, req.PaymentDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "payment_date must be YYYY-MM-DD"})
				return
			}
			t.PaymentDate = &pd
		}

		if err := repo.UpdateTransaction(c.Request.Context(), t, updateAmount); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": t.ID})
	}
}

func deleteTransactionHandler(repo finance.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.DeleteTransaction(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listCategoriesHandler(repo finance.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func createCategoryHandler(repo finance.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req finance.CreateCategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil || !finance.ValidType(req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and a valid type are required"})
			return
		}

		ct := &finance.Category{ID: uuid.NewString(), Name: req.Name, Type: req.Type}
		if err := repo.CreateCategory(c.Request.Context(), ct); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, ct)
	}
}
