package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ang3lito/rabiesresq/internal/repository"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// WriteError maps repository sentinels onto HTTP statuses. Constraint
// violations are rejected writes, not server faults.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, NewErrorResponse("not found"))
	case errors.Is(err, repository.ErrUniquenessViolation):
		c.JSON(http.StatusConflict, NewErrorResponse("duplicate value"))
	case errors.Is(err, repository.ErrForeignKeyViolation):
		c.JSON(http.StatusConflict, NewErrorResponse("referenced record does not exist or is still in use"))
	case errors.Is(err, repository.ErrCheckViolation), errors.Is(err, repository.ErrNotNullViolation):
		c.JSON(http.StatusUnprocessableEntity, NewErrorResponse("value rejected by a data constraint"))
	default:
		c.JSON(http.StatusInternalServerError, NewErrorResponse("internal error"))
	}
}
