package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	financeapp "github.com/money/backend/internal/application/finance"
	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/interfaces/http/dto"
)

// OutcomeHandler handles outcome commands
type OutcomeHandler struct {
	BaseHandler
	commands CommandBus
}

func NewOutcomeHandler(commands CommandBus) *OutcomeHandler {
	return &OutcomeHandler{commands: commands}
}

// RegisterRoutes mounts /outcomes
func (h *OutcomeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/outcomes")
	g.POST("", h.Create)
	g.POST("/:id/categories", h.AddCategory)
	g.PUT("/:id/amount", h.ChangeAmount)
	g.PUT("/:id/description", h.ChangeDescription)
	g.PUT("/:id/when", h.ChangeWhen)
	g.DELETE("/:id", h.Delete)
}

// Create records money spent in one or more categories; the first is primary
func (h *OutcomeHandler) Create(c *gin.Context) {
	var req dto.CreateOutcomeRequest
	if !h.BindJSON(c, &req) {
		return
	}
	amount, ok := h.price(c, req.Amount)
	if !ok {
		return
	}
	keys := make([]shared.Key, len(req.CategoryIDs))
	for i, id := range req.CategoryIDs {
		keys[i] = BodyKey(finance.AggregateTypeCategory, id)
	}
	h.Execute(c, h.commands, financeapp.CreateOutcome{
		Amount:       amount,
		Description:  req.Description,
		When:         req.When,
		CategoryKeys: keys,
	}, http.StatusCreated)
}

func (h *OutcomeHandler) AddCategory(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeOutcome)
	if !ok {
		return
	}
	var req dto.AddOutcomeCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Execute(c, h.commands, financeapp.AddOutcomeCategory{
		OutcomeKey:  key,
		CategoryKey: BodyKey(finance.AggregateTypeCategory, req.CategoryID),
	}, http.StatusOK)
}

func (h *OutcomeHandler) ChangeAmount(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeOutcome)
	if !ok {
		return
	}
	var req dto.ChangeAmountRequest
	if !h.BindJSON(c, &req) {
		return
	}
	amount, ok := h.price(c, req.Amount)
	if !ok {
		return
	}
	h.Execute(c, h.commands, financeapp.ChangeOutcomeAmount{OutcomeKey: key, Amount: amount}, http.StatusOK)
}

func (h *OutcomeHandler) ChangeDescription(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeOutcome)
	if !ok {
		return
	}
	var req dto.ChangeDescriptionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Execute(c, h.commands, financeapp.ChangeOutcomeDescription{OutcomeKey: key, Description: req.Description}, http.StatusOK)
}

func (h *OutcomeHandler) ChangeWhen(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeOutcome)
	if !ok {
		return
	}
	var req dto.ChangeWhenRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Execute(c, h.commands, financeapp.ChangeOutcomeWhen{OutcomeKey: key, When: req.When}, http.StatusOK)
}

func (h *OutcomeHandler) Delete(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeOutcome)
	if !ok {
		return
	}
	h.Execute(c, h.commands, financeapp.DeleteOutcome{OutcomeKey: key}, http.StatusOK)
}
