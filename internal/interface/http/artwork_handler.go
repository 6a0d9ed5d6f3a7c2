package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/rb-marketplace/internal/application"
	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
	"github.com/oksasatya/rb-marketplace/internal/interface/middleware"
	"github.com/oksasatya/rb-marketplace/pkg/response"
	"github.com/oksasatya/rb-marketplace/pkg/validation"
)

type ArtworkHandler struct {
	Svc    *app.MarketplaceService
	Logger *logrus.Logger
}

func NewArtworkHandler(svc *app.MarketplaceService, logger *logrus.Logger) *ArtworkHandler {
	return &ArtworkHandler{Svc: svc, Logger: logger}
}

type listArtworksQuery struct {
	Limit    int    `form:"limit,default=20" binding:"gte=0"`
	Offset   int    `form:"offset,default=0" binding:"gte=0"`
	Category string `form:"category"`
	Sort     string `form:"sort,default=newest" binding:"omitempty,sortkey"`
}

type searchArtworksQuery struct {
	Q     string `form:"q" binding:"max=200"`
	Limit int    `form:"limit,default=20" binding:"gte=0"`
}

type createArtworkRequest struct {
	Title       string      `json:"title" binding:"required,max=200"`
	Description string      `json:"description" binding:"max=5000"`
	ImageURL    string      `json:"image_url" binding:"required"`
	Price       json.Number `json:"price" binding:"required,rbprice"`
	Category    string      `json:"category" binding:"required,category"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// List GET /api/artworks
func (h *ArtworkHandler) List(c *gin.Context) {
	var q listArtworksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	list, err := h.Svc.ListArtworks(entity.ArtworkQuery{
		Limit:    q.Limit,
		Offset:   q.Offset,
		Category: q.Category,
		Sort:     entity.ArtworkSort(q.Sort),
		ViewerID: middleware.UserID(c),
	})
	if err != nil {
		writeError(c, h.Logger, err, "fetch artworks")
		return
	}
	response.Success(c, http.StatusOK, toArtworkList(list), "artworks", gin.H{
		"limit":  entity.ClampArtworkLimit(q.Limit),
		"offset": q.Offset,
		"count":  len(list),
	})
}

// Search GET /api/artworks/search
func (h *ArtworkHandler) Search(c *gin.Context) {
	var q searchArtworksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	list, err := h.Svc.SearchArtworks(c.Request.Context(), q.Q, q.Limit, middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err, "search artworks")
		return
	}
	response.Success(c, http.StatusOK, toArtworkList(list), "search results", gin.H{"q": q.Q, "limit": entity.ClampArtworkLimit(q.Limit), "count": len(list)})
}

// Get GET /api/artworks/:id
func (h *ArtworkHandler) Get(c *gin.Context) {
	v, err := h.Svc.ViewArtwork(c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, h.Logger, err, "fetch artwork")
		return
	}
	response.Success(c, http.StatusOK, toArtworkWithArtist(v), "artwork", nil)
}

// Create POST /api/artworks
func (h *ArtworkHandler) Create(c *gin.Context) {
	var req createArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	price, err := decimal.NewFromString(req.Price.String())
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"price": "must be a valid number"})
		return
	}
	v, err := h.Svc.CreateArtwork(c.Request.Context(), middleware.UserID(c), app.CreateArtworkInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       price,
		Category:    req.Category,
	})
	if err != nil {
		writeError(c, h.Logger, err, "create artwork")
		return
	}
	response.Success(c, http.StatusCreated, toArtworkWithArtist(v), "artwork created", nil)
}

// ToggleLike POST /api/artworks/:id/like
func (h *ArtworkHandler) ToggleLike(c *gin.Context) {
	liked, err := h.Svc.ToggleLike(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, "toggle like")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"is_liked": liked}, "like toggled", nil)
}

// Comments GET /api/artworks/:id/comments
func (h *ArtworkHandler) Comments(c *gin.Context) {
	list, err := h.Svc.ListComments(c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, "fetch comments")
		return
	}
	out := make([]commentResponse, len(list))
	for i, cm := range list {
		out[i] = toCommentResponse(cm)
	}
	response.Success(c, http.StatusOK, out, "comments", nil)
}

// AddComment POST /api/artworks/:id/comments
func (h *ArtworkHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"content": "is required"})
		return
	}
	cm, err := h.Svc.AddComment(middleware.UserID(c), c.Param("id"), req.Content)
	if err != nil {
		writeError(c, h.Logger, err, "create comment")
		return
	}
	response.Success(c, http.StatusCreated, toCommentResponse(cm), "comment created", nil)
}

// Purchase POST /api/artworks/:id/purchase
func (h *ArtworkHandler) Purchase(c *gin.Context) {
	p, err := h.Svc.Purchase(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err, "purchase artwork")
		return
	}
	response.Success(c, http.StatusCreated, toPurchaseResponse(p), "purchase completed", nil)
}
