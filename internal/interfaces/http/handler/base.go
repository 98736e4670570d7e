// Package handler exposes the finance commands and report queries over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
	"github.com/money/backend/internal/infrastructure/logger"
	"github.com/money/backend/internal/interfaces/http/dto"
	"github.com/money/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// CommandBus routes a command to its handler
type CommandBus interface {
	Dispatch(ctx context.Context, cmd shared.Command) (shared.Key, error)
}

// QueryBus routes a query to its handler
type QueryBus interface {
	Dispatch(ctx context.Context, q shared.Query) (any, error)
}

// BaseHandler provides common handler utilities
type BaseHandler struct{}

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
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.RequestIDFrom(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	h.Error(c, http.StatusBadRequest, code, message)
}

// HandleError converts domain errors to their status; anything else is a 500
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.CodeForDomainError(domainErr.Code)
		if code != dto.ErrCodeInternal {
			h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
			return
		}
	}

	_ = c.Error(err)
	logger.GetGinLogger(c, nil).Error("request failed", zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON binds and validates the body, writing the error response on failure
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.bindError(c, err)
		return false
	}
	return true
}

// BindURI binds and validates path parameters
func (h *BaseHandler) BindURI(c *gin.Context, req any) bool {
	if err := c.ShouldBindUri(req); err != nil {
		h.bindError(c, err)
		return false
	}
	return true
}

// BindQuery binds and validates query parameters
func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.bindError(c, err)
		return false
	}
	return true
}

func (h *BaseHandler) bindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		middleware.HandleValidationError(c, err)
		return
	}
	h.BadRequest(c, dto.ErrCodeInvalidJSON, "Malformed request: "+err.Error())
}

// PathKey binds the :id path parameter as a key of the given aggregate type
func (h *BaseHandler) PathKey(c *gin.Context, keyType string) (shared.Key, bool) {
	var req dto.IDRequest
	if !h.BindURI(c, &req) {
		return shared.Key{}, false
	}
	return shared.KeyFrom(keyType, uuid.MustParse(req.ID)), true
}

// BodyKey parses an id from the request body; the caller has validated it as a uuid
func BodyKey(keyType, id string) shared.Key {
	return shared.KeyFrom(keyType, uuid.MustParse(id))
}

// Execute dispatches a command and answers with the affected key
func (h *BaseHandler) Execute(c *gin.Context, commands CommandBus, cmd shared.Command, status int) {
	key, err := commands.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(status, dto.NewSuccessResponse(dto.KeyResponse{ID: key.ID.String()}))
}

// Answer dispatches a query and answers with its result
func (h *BaseHandler) Answer(c *gin.Context, queries QueryBus, q shared.Query) {
	result, err := queries.Dispatch(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// price converts a price request, answering 400 on failure
func (h *BaseHandler) price(c *gin.Context, req dto.PriceRequest) (valueobject.Price, bool) {
	p, err := req.ToPrice()
	if err != nil {
		h.HandleError(c, shared.NewValidationError(err.Error()))
		return valueobject.Price{}, false
	}
	return p, true
}
