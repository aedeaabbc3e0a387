package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shouni/astoria-image-kit/pkg/domain"
	"github.com/shouni/astoria-image-kit/pkg/generator"
	"github.com/shouni/astoria-image-kit/pkg/studio"
)

type imageRequest struct {
	Image string `json:"image" binding:"required"`
}

type hairstyleRequest struct {
	Image       string                 `json:"image" binding:"required"`
	Config      domain.HairstyleConfig `json:"config"`
	AutoEnhance bool                   `json:"autoEnhance"`
}

type favoriteResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
	Warning  string `json:"warning,omitempty"`
}

type HairstyleHandler struct {
	loader *generator.SourceLoader
	studio *studio.HairstyleStudio
}

func NewHairstyleHandler(loader *generator.SourceLoader, s *studio.HairstyleStudio) *HairstyleHandler {
	return &HairstyleHandler{loader: loader, studio: s}
}

func (h *HairstyleHandler) Enhance(c *gin.Context) {
	var req imageRequest
	if !bindJSON(c, &req) {
		return
	}
	img, err := h.loader.Load(c.Request.Context(), req.Image)
	if err != nil {
		writeError(c, err)
		return
	}
	enhanced, err := h.studio.Enhance(c.Request.Context(), img)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": enhanced})
}

func (h *HairstyleHandler) Generate(c *gin.Context) {
	var req hairstyleRequest
	if !bindJSON(c, &req) {
		return
	}
	img, err := h.loader.Load(c.Request.Context(), req.Image)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.studio.Generate(c.Request.Context(), img, req.Config, studio.GenerateOptions{AutoEnhance: req.AutoEnhance})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *HairstyleHandler) History(c *gin.Context) {
	results := h.studio.History()
	c.JSON(http.StatusOK, gin.H{"results": nonNil(results), "total": len(results)})
}

func (h *HairstyleHandler) ClearHistory(c *gin.Context) {
	h.studio.ClearHistory()
	c.Status(http.StatusNoContent)
}

func (h *HairstyleHandler) Favorites(c *gin.Context) {
	results := h.studio.Favorites()
	c.JSON(http.StatusOK, gin.H{"results": nonNil(results), "total": len(results)})
}

// ToggleFavorite は保存に失敗しても 200 を返し、warning に理由を入れます。
func (h *HairstyleHandler) ToggleFavorite(c *gin.Context) {
	id := c.Param("id")
	added, err := h.studio.ToggleFavorite(c.Request.Context(), id)
	if errors.Is(err, domain.ErrResultNotFound) {
		writeError(c, err)
		return
	}
	resp := favoriteResponse{ID: id, Favorite: added}
	if err != nil {
		resp.Warning = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HairstyleHandler) ClearFavorites(c *gin.Context) {
	if err := h.studio.ClearFavorites(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{"warning": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
