package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shouni/astoria-image-kit/pkg/export"
	"github.com/shouni/astoria-image-kit/pkg/generator"
	"github.com/shouni/astoria-image-kit/pkg/prompt"
)

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CatalogHandler は UI の選択肢になるカタログを返します。
func CatalogHandler(catalog *prompt.Catalog) gin.HandlerFunc {
	if catalog == nil {
		catalog = prompt.DefaultCatalog()
	}
	body := gin.H{
		"styles":  catalog.Styles(),
		"colors":  catalog.Colors(),
		"genders": catalog.Genders(),
		"volumes": catalog.Volumes(),
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, body)
	}
}

type shareRequest struct {
	Image  string `json:"image" binding:"required"`
	Prefix string `json:"prefix"`
}

type ShareHandler struct {
	loader   *generator.SourceLoader
	exporter *export.Exporter
}

func NewShareHandler(loader *generator.SourceLoader, exporter *export.Exporter) *ShareHandler {
	return &ShareHandler{loader: loader, exporter: exporter}
}

func (h *ShareHandler) Share(c *gin.Context) {
	var req shareRequest
	if !bindJSON(c, &req) {
		return
	}
	img, err := h.loader.Load(c.Request.Context(), req.Image)
	if err != nil {
		writeError(c, err)
		return
	}
	res, err := h.exporter.Share(c.Request.Context(), img, req.Prefix)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
