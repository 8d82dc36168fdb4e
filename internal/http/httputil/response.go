package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stellarpath/route-engine/internal/common"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Failure renders an HttpError as the standard envelope.
func Failure(c *gin.Context, err *common.HttpError) {
	c.JSON(err.StatusCode, Response{
		Success: false,
		Code:    err.Code,
		Error:   err.Message,
	})
}

func BadRequest(c *gin.Context, msg string) {
	Failure(c, common.HTTPErrorBadRequest(msg))
}

func NotFound(c *gin.Context, msg string) {
	Failure(c, common.HTTPErrorNotFound(msg))
}

func InternalError(c *gin.Context, msg string) {
	Failure(c, common.HTTPErrorInternalError(msg))
}

func Unavailable(c *gin.Context, msg string) {
	Failure(c, common.HTTPErrorUnavailable(msg))
}
