package clothing

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/liliang-cn/closet/internal/api/middleware"
	"github.com/liliang-cn/closet/internal/domain"
	"github.com/liliang-cn/closet/internal/service"
	"github.com/liliang-cn/closet/internal/wardrobe"
)

var registerOnce sync.Once

// RegisterValidators adds the isodate rule to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
				s := fl.Field().String()
				if s == "" {
					return true
				}
				_, ok := wardrobe.ParsePurchaseDate(s)
				return ok
			})
		}
	})
}

// Handler handles wardrobe API requests
type Handler struct {
	wardrobeService *service.WardrobeService
}

// NewHandler creates a new wardrobe handler
func NewHandler(wardrobeService *service.WardrobeService) *Handler {
	RegisterValidators()
	return &Handler{wardrobeService: wardrobeService}
}

// RegisterRoutes registers wardrobe routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clothing := r.Group("/clothing")
	{
		clothing.GET("", h.ListClothing)
		clothing.POST("", h.CreateClothing)
		clothing.GET("/:id", h.GetClothing)
		clothing.PUT("/:id", h.UpdateClothing)
		clothing.DELETE("/:id", h.DeleteClothing)
	}

	r.GET("/stats", h.GetStats)

	shaping := r.Group("/wardrobe")
	{
		shaping.POST("/query", h.Query)
		shaping.POST("/aggregate", h.Aggregate)
	}
}

// Clothing handlers

func (h *Handler) ListClothing(c *gin.Context) {
	var criteria domain.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.wardrobeService.Browse(c.Request.Context(), middleware.UserID(c), criteria, c.Query("sortBy"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.ClothingListResponse{Items: items})
}

func (h *Handler) CreateClothing(c *gin.Context) {
	var req domain.CreateClothingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.wardrobeService.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) GetClothing(c *gin.Context) {
	item, err := h.wardrobeService.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) UpdateClothing(c *gin.Context) {
	var req domain.UpdateClothingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.wardrobeService.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteClothing(c *gin.Context) {
	if err := h.wardrobeService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "clothing item deleted"})
}

// Stats handler

func (h *Handler) GetStats(c *gin.Context) {
	var criteria domain.Criteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := h.wardrobeService.Stats(c.Request.Context(), middleware.UserID(c), criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Stateless shaping handlers

func (h *Handler) Query(c *gin.Context) {
	var req domain.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.wardrobeService.Query(req.Items, req.Criteria, req.SortBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.ClothingListResponse{Items: items})
}

func (h *Handler) Aggregate(c *gin.Context) {
	var req domain.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.wardrobeService.Aggregate(req.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "clothing item not found"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
