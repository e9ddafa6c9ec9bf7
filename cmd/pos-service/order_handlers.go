package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rmacedo/pdv-backend/internal/order"
)

// listOrdersHandler godoc
// @Summary Sales history
// @Tags orders
// @Produce json
// @Param client_id query string false "filter by client"
// @Param status query string false "pending | completed | cancelled"
// @Success 200 {object} order.ListResponse
// @Router /orders [get]
func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		status := c.Query("status")
		if status != "" && !order.ValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		items, err := repo.List(c.Request.Context(), order.Query{
			ClientID: c.Query("client_id"),
			Status:   status,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order.ListResponse{Limit: limit, Offset: offset, Items: items})
	}
}

func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		payments, err := repo.GetPayments(c.Request.Context(), o.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order.Detail{Order: *o, Items: items, Payments: payments})
	}
}

func updateOrderStatusHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !order.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending, completed or cancelled"})
			return
		}

		if err := repo.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
			if errors.Is(err, order.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
	}
}
