package product

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"vinylshop/internal/events"
	"vinylshop/internal/importer"
)

const maxImagesPerProduct = 10

type Handler struct {
	Service  *Service
	Importer *importer.Importer
	Hub      *events.Hub
}

func NewHandler(svc *Service, imp *importer.Importer, hub *events.Hub) *Handler {
	return &Handler{Service: svc, Importer: imp, Hub: hub}
}

// RegisterRoutes mounts the admin product mutations; the group is
// expected to already carry auth + admin middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", h.create)
	rg.PUT("/products/:id", h.update)
	rg.DELETE("/products/:id", h.remove)
	rg.POST("/products/csv", h.importCSV)
}

func (h *Handler) create(c *gin.Context) {
	form, err := ParseForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files, err := imagePayloads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.Service.Create(c.Request.Context(), form, files)
	if err != nil {
		log.Printf("create product failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create product failed"})
		return
	}

	if h.Hub != nil {
		go h.Hub.BroadcastJSON(events.ProductEvent{
			Type: "product.created", ProductID: p.ID, Title: p.Title, At: time.Now().UTC(),
		})
	}

	c.JSON(http.StatusCreated, gin.H{"message": "product created", "product": p})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	form, err := ParseForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files, err := imagePayloads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.Service.Update(c.Request.Context(), id, form, files)
	if err != nil {
		log.Printf("update product %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update product failed"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product updated", "product": p})
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.Service.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("delete product %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete product failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	if h.Hub != nil {
		go h.Hub.BroadcastJSON(events.ProductEvent{
			Type: "product.deleted", ProductID: id, At: time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) importCSV(c *gin.Context) {
	file, err := c.FormFile("csv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "csv file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "csv file is required"})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read csv failed"})
		return
	}

	res, err := h.Importer.Import(c.Request.Context(), string(content))
	if err != nil {
		if errors.Is(err, importer.ErrNoData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "csv must have at least one data row"})
			return
		}
		log.Printf("csv import failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "csv import failed"})
		return
	}

	if h.Hub != nil {
		go h.Hub.BroadcastJSON(events.ImportEvent{
			Type: "import.finished", Created: res.Created, Errors: len(res.Errors), At: time.Now().UTC(),
		})
	}

	// row errors are part of a successful batch response, not a failure
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("import finished: %d products created", res.Created),
		"created": res.Created,
		"errors":  res.Errors,
	})
}

func imagePayloads(c *gin.Context) ([][]byte, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		// no multipart body means no images
		return nil, nil
	}

	headers := mf.File["images"]
	if len(headers) > maxImagesPerProduct {
		return nil, fmt.Errorf("at most %d images per product", maxImagesPerProduct)
	}

	files := make([][]byte, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open image %q", fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read image %q", fh.Filename)
		}
		files = append(files, data)
	}
	return files, nil
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}
