package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	financeapp "github.com/money/backend/internal/application/finance"
	reportapp "github.com/money/backend/internal/application/report"
	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/interfaces/http/dto"
)

// ExpenseTemplateHandler handles expense template commands and queries
type ExpenseTemplateHandler struct {
	BaseHandler
	commands CommandBus
	queries  QueryBus
}

func NewExpenseTemplateHandler(commands CommandBus, queries QueryBus) *ExpenseTemplateHandler {
	return &ExpenseTemplateHandler{commands: commands, queries: queries}
}

// RegisterRoutes mounts /expense-templates
func (h *ExpenseTemplateHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/expense-templates")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id/amount", h.ChangeAmount)
	g.PUT("/:id/description", h.ChangeDescription)
	g.PUT("/:id/category", h.ChangeCategory)
	g.PUT("/:id/fixed", h.ChangeFixed)
	g.DELETE("/:id", h.Delete)
}

func (h *ExpenseTemplateHandler) List(c *gin.Context) {
	h.Answer(c, h.queries, reportapp.ListExpenseTemplates{})
}

func (h *ExpenseTemplateHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseTemplateRequest
	if !h.BindJSON(c, &req) {
		return
	}
	amount, ok := h.price(c, req.Amount)
	if !ok {
		return
	}
	h.Execute(c, h.commands, financeapp.CreateExpenseTemplate{
		Amount:      amount,
		Description: req.Description,
		CategoryKey: BodyKey(finance.AggregateTypeCategory, req.CategoryID),
		IsFixed:     req.IsFixed,
	}, http.StatusCreated)
}

func (h *ExpenseTemplateHandler) ChangeAmount(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeExpenseTemplate)
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
	h.Execute(c, h.commands, financeapp.ChangeExpenseTemplateAmount{TemplateKey: key, Amount: amount}, http.StatusOK)
}

func (h *ExpenseTemplateHandler) ChangeDescription(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeExpenseTemplate)
	if !ok {
		return
	}
	var req dto.ChangeDescriptionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Execute(c, h.commands, financeapp.ChangeExpenseTemplateDescription{TemplateKey: key, Description: req.Description}, http.StatusOK)
}

func (h *ExpenseTemplateHandler) ChangeCategory(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeExpenseTemplate)
	if !ok {
		return
	}
	var req dto.ChangeCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Execute(c, h.commands, financeapp.ChangeExpenseTemplateCategory{
		TemplateKey: key,
		CategoryKey: BodyKey(finance.AggregateTypeCategory, req.CategoryID),
	}, http.StatusOK)
}

func (h *ExpenseTemplateHandler) ChangeFixed(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeExpenseTemplate)
	if !ok {
		return
	}
	var req dto.ChangeFixedRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Execute(c, h.commands, financeapp.ChangeExpenseTemplateFixed{TemplateKey: key, IsFixed: *req.IsFixed}, http.StatusOK)
}

func (h *ExpenseTemplateHandler) Delete(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeExpenseTemplate)
	if !ok {
		return
	}
	h.Execute(c, h.commands, financeapp.DeleteExpenseTemplate{TemplateKey: key}, http.StatusOK)
}
