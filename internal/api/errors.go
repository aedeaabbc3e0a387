package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shouni/astoria-image-kit/pkg/domain"
	"github.com/shouni/astoria-image-kit/pkg/prompt"
)

// statusOf はエラーを HTTP ステータスに対応付けます。
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCharacterNotFound), errors.Is(err, domain.ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, prompt.ErrUnmappedValue):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	}

	switch domain.KindOf(err) {
	case domain.KindNetwork, domain.KindEmptyResponse:
		return http.StatusBadGateway
	case domain.KindServiceRejected:
		return http.StatusUnprocessableEntity
	case domain.KindDecodeFailure:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	body := gin.H{"error": err.Error()}
	if kind := domain.KindOf(err); kind != domain.KindUnknown {
		body["kind"] = kind.String()
	}
	c.JSON(status, body)
}

// bindJSON はリクエストボディを読み込みます。失敗した場合はエラー応答を書き込んで false を返します。
func bindJSON(c *gin.Context, v any) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	return false
}
