package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shouni/astoria-image-kit/pkg/studio"
)

type characterRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Style       string `json:"style"`
}

type sceneRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Style  string `json:"style"`
}

type CharacterHandler struct {
	studio *studio.CharacterStudio
}

func NewCharacterHandler(s *studio.CharacterStudio) *CharacterHandler {
	return &CharacterHandler{studio: s}
}

func (h *CharacterHandler) Create(c *gin.Context) {
	var req characterRequest
	if !bindJSON(c, &req) {
		return
	}
	character, err := h.studio.CreateCharacter(c.Request.Context(), req.Name, req.Description, req.Style)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

func (h *CharacterHandler) List(c *gin.Context) {
	characters := h.studio.Characters()
	c.JSON(http.StatusOK, gin.H{"characters": nonNil(characters), "total": len(characters)})
}

func (h *CharacterHandler) Remove(c *gin.Context) {
	if err := h.studio.RemoveCharacter(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CharacterHandler) Reset(c *gin.Context) {
	h.studio.Reset()
	c.Status(http.StatusNoContent)
}

func (h *CharacterHandler) CreateScene(c *gin.Context) {
	var req sceneRequest
	if !bindJSON(c, &req) {
		return
	}
	scene, err := h.studio.CreateScene(c.Request.Context(), c.Param("id"), req.Prompt, req.Style)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, scene)
}

func (h *CharacterHandler) Scenes(c *gin.Context) {
	scenes, err := h.studio.Scenes(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenes": nonNil(scenes), "total": len(scenes)})
}
