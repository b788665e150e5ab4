package api

import (
	"net/http"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/gin-gonic/gin"
)

type catalogHandler struct {
	catalog CatalogService
}

type bulkProductsRequest struct {
	Products []domain.NewProduct `json:"products"`
}

func (h *catalogHandler) listProducts(c *gin.Context) {
	page, err := pageFrom(c)
	if err != nil {
		fail(c, err)
		return
	}

	categoryID, err := optionalUUIDQuery(c, "category_id")
	if err != nil {
		fail(c, err)
		return
	}

	products, info, err := h.catalog.ListProducts(c.Request.Context(), domain.ProductFilter{
		CategoryID: categoryID,
		Search:     optionalQuery(c, "search"),
		Page:       page,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "pagination": info})
}

func (h *catalogHandler) getProduct(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *catalogHandler) createProduct(c *gin.Context) {
	var req domain.NewProduct
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

func (h *catalogHandler) createProducts(c *gin.Context) {
	var req bulkProductsRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	result, err := h.catalog.CreateProducts(c.Request.Context(), req.Products)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *catalogHandler) updateProduct(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var patch domain.ProductPatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, err)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

func (h *catalogHandler) deleteProduct(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *catalogHandler) listCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *catalogHandler) getCategory(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	category, err := h.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *catalogHandler) createCategory(c *gin.Context) {
	var req domain.NewCategory
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	category, err := h.catalog.CreateCategory(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Category created successfully", "category": category})
}

func (h *catalogHandler) updateCategory(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var patch domain.CategoryPatch
	if err := bindJSON(c, &patch); err != nil {
		fail(c, err)
		return
	}

	category, err := h.catalog.UpdateCategory(c.Request.Context(), id, patch)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully", "category": category})
}

func (h *catalogHandler) deleteCategory(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
