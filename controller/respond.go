package controller

import (
	"net/http"

	"grocerflow-backend/models"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

func respondError(c *gin.Context, code int, errType, message string, err error) {
	details := message
	if err != nil {
		details = err.Error()
	}
	c.JSON(code, models.APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		Error: &models.APIError{
			Type:    errType,
			Details: details,
		},
	})
}

func badRequest(c *gin.Context, message string, err error) {
	respondError(c, http.StatusBadRequest, "ValidationError", message, err)
}

func serverError(c *gin.Context, message string, err error) {
	respondError(c, http.StatusInternalServerError, "DatabaseError", message, err)
}

func notFound(c *gin.Context, message string, err error) {
	respondError(c, http.StatusNotFound, "NotFoundError", message, err)
}

// actorID pulls the authenticated user id set by the auth middleware
func actorID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return "anonymous"
}

func contextString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
