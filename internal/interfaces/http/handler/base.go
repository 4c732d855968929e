package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/supplier-gateway/internal/domain/procurement"
	"github.com/erp/supplier-gateway/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// gatewayErrorCode maps an error kind to the API error code
func gatewayErrorCode(kind procurement.ErrorKind) string {
	switch kind {
	case procurement.ErrorKindTransport:
		return dto.ErrCodeSupplierUnreachable
	case procurement.ErrorKindAuth:
		return dto.ErrCodeSupplierAuth
	case procurement.ErrorKindBackend:
		return dto.ErrCodeSupplierBackend
	case procurement.ErrorKindLocalValidation:
		return dto.ErrCodeValidation
	default:
		return dto.ErrCodeUnknown
	}
}

// HandleError converts domain and gateway errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var gatewayErr *procurement.GatewayError
	if errors.As(err, &gatewayErr) {
		code := gatewayErrorCode(gatewayErr.Kind)
		h.Error(c, dto.GetHTTPStatus(code), code, gatewayErr.Error())
		return
	}

	switch {
	case errors.Is(err, procurement.ErrOrderNotFound):
		h.NotFound(c, err.Error())
	case errors.Is(err, procurement.ErrSupplierNotConfigured):
		h.ErrorWithCode(c, dto.ErrCodeSupplierNotConfigured, err.Error())
	case errors.Is(err, procurement.ErrPartAlreadyExists):
		h.ErrorWithCode(c, dto.ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, procurement.ErrEmptySKU):
		h.ErrorWithCode(c, dto.ErrCodeValidation, err.Error())
	default:
		h.InternalError(c, "An unexpected error occurred")
	}
}
