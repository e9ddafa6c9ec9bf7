package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmacedo/pdv-backend/internal/catalog"
)

// listProductsHandler godoc
// @Summary List products with search and category filter
// @Tags catalog
// @Produce json
// @Param q query string false "name or sku search"
// @Param category query string false "category filter"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {object} catalog.ListResponse
// @Router /products [get]
func listProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		q := catalog.Query{
			Q:        c.Query("q"),
			Category: c.Query("category"),
			Limit:    limit,
			Offset:   offset,
		}

		items, err := repo.List(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, catalog.ListResponse{
			Q:        q.Q,
			Category: q.Category,
			Limit:    q.Limit,
			Offset:   q.Offset,
			Items:    items,
		})
	}
}

func getProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// createProductHandler godoc
// @Summary Create a product
// @Tags catalog
// @Accept json
// @Produce json
// @Param payload body catalog.CreateProductRequest true "product"
// @Success 201 {object} catalog.Product
// @Failure 400 {object} catalog.HTTPError
// @Router /products [post]
func createProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, sku and sale_price are required"})
			return
		}
		if req.SalePrice.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sale_price must be positive"})
			return
		}

		unit := req.Unit
		if unit == "" {
			unit = "un"
		}
		p := &catalog.Product{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			SKU:         req.SKU,
			SalePrice:   req.SalePrice,
			Cost:        req.Cost,
			Unit:        unit,
			Stock:       req.Stock,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		cur, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		updatePrice := false
		if req.SalePrice != nil {
			if req.SalePrice.Sign() <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "sale_price must be positive"})
				return
			}
			cur.SalePrice = *req.SalePrice
			updatePrice = true
		}
		if req.Cost != nil {
			cur.Cost = *req.Cost
			updatePrice = true
		}
		if req.Stock != nil {
			cur.Stock = *req.Stock
		}
		cur.Name = req.Name
		cur.Description = req.Description
		cur.SKU = req.SKU
		cur.Unit = req.Unit
		if req.Category != "" {
			cur.Category = req.Category
		}
		if req.ImageURL != "" {
			cur.ImageURL = req.ImageURL
		}

		if err := repo.Update(c.Request.Context(), cur, updatePrice); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out, err := repo.GetByID(c.Request.Context(), cur.ID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found after update"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
