package images

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vinylshop/pkg/models"
)

type Handler struct {
	Repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes mounts the gallery sub-resource. Listing is public;
// mutations sit behind the admin middlewares passed in.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, adminOnly ...gin.HandlerFunc) {
	rg.GET("/:id/images", h.list)

	mut := rg.Group("", adminOnly...)
	mut.POST("/:id/images", h.add)
	mut.PUT("/:id/images/:imageId", h.update)
	mut.DELETE("/:id/images/:imageId", h.remove)
	mut.PUT("/:id/images/:imageId/set-main", h.setMain)
}

func (h *Handler) list(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	imgs, err := h.Repo.List(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list images failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(imgs), "images": imgs})
}

type addReq struct {
	ImageURL string `json:"image_url"`
	IsMain   bool   `json:"is_main"`
	AltText  string `json:"alt_text"`
}

func (h *Handler) add(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url is required"})
		return
	}

	exists, err := h.Repo.ProductExists(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "add image failed"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	next, err := h.Repo.NextDisplayOrder(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "add image failed"})
		return
	}

	img, err := h.Repo.Insert(c.Request.Context(), models.ProductImage{
		ProductID:    productID,
		ImageURL:     req.ImageURL,
		IsMain:       req.IsMain,
		DisplayOrder: next,
		AltText:      req.AltText,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "add image failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "image added", "image": img})
}

type updateReq struct {
	ImageURL     *string `json:"image_url"`
	IsMain       *bool   `json:"is_main"`
	DisplayOrder *int    `json:"display_order"`
	AltText      *string `json:"alt_text"`
}

func (h *Handler) update(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	imageID, ok := pathID(c, "imageId")
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	img, err := h.Repo.UpdateFields(c.Request.Context(), productID, imageID,
		req.ImageURL, req.IsMain, req.DisplayOrder, req.AltText)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update image failed"})
		return
	}
	if img == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image updated", "image": img})
}

func (h *Handler) remove(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	imageID, ok := pathID(c, "imageId")
	if !ok {
		return
	}

	img, err := h.Repo.Delete(c.Request.Context(), productID, imageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete image failed"})
		return
	}
	if img == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted", "image": img})
}

func (h *Handler) setMain(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	imageID, ok := pathID(c, "imageId")
	if !ok {
		return
	}

	img, err := h.Repo.SetMain(c.Request.Context(), productID, imageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "set main failed"})
		return
	}
	if img == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image marked as main", "image": img})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
