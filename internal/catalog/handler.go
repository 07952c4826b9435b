package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"vinylshop/internal/images"
)

type Handler struct {
	Repo   *Repo
	Images *images.Repo
}

func NewHandler(repo *Repo, imgRepo *images.Repo) *Handler {
	return &Handler{Repo: repo, Images: imgRepo}
}

func (h *Handler) RegisterProductRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.listProducts)    // GET /products?category=jazz&minPrice=..&featured=true
	rg.GET("/:id", h.getProduct)  // GET /products/:id
}

func (h *Handler) RegisterCategoryRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.listCategories)
	rg.GET("/:slug", h.getCategory)
}

func (h *Handler) listProducts(c *gin.Context) {
	q := ListQuery{
		CategorySlug: c.Query("category"),
		MinPrice:     parseFloat(c.Query("minPrice")),
		MaxPrice:     parseFloat(c.Query("maxPrice")),
		Featured:     c.Query("featured") == "true",
		OnSale:       c.Query("onSale") == "true",
	}

	products, err := h.Repo.List(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list products failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(products),
		"products": products,
	})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	p, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get product failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	imgs, err := h.Images.List(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get product failed"})
		return
	}
	p.Images = imgs

	c.JSON(http.StatusOK, gin.H{"product": p})
}

func (h *Handler) listCategories(c *gin.Context) {
	cats, err := h.Repo.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list categories failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      len(cats),
		"categories": cats,
	})
}

func (h *Handler) getCategory(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	cat, err := h.Repo.GetCategoryBySlug(c.Request.Context(), slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get category failed"})
		return
	}
	if cat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": cat})
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
