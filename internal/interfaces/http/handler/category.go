package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	financeapp "github.com/money/backend/internal/application/finance"
	reportapp "github.com/money/backend/internal/application/report"
	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/interfaces/http/dto"
)

// CategoryHandler handles category commands and queries
type CategoryHandler struct {
	BaseHandler
	commands CommandBus
	queries  QueryBus
}

func NewCategoryHandler(commands CommandBus, queries QueryBus) *CategoryHandler {
	return &CategoryHandler{commands: commands, queries: queries}
}

// RegisterRoutes mounts /categories
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/categories")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id/name", h.Rename)
	g.PUT("/:id/color", h.ChangeColor)
	g.PUT("/:id/description", h.ChangeDescription)
	g.DELETE("/:id", h.Delete)
}

// List returns categories ordered by name; ?include_deleted=true adds deleted ones
func (h *CategoryHandler) List(c *gin.Context) {
	var req dto.ListCategoriesRequest
	if !h.BindQuery(c, &req) {
		return
	}
	h.Answer(c, h.queries, reportapp.ListCategories{IncludeDeleted: req.IncludeDeleted})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeCategory)
	if !ok {
		return
	}
	h.Answer(c, h.queries, reportapp.GetCategory{CategoryKey: key})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Execute(c, h.commands, financeapp.CreateCategory{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
	}, http.StatusCreated)
}

func (h *CategoryHandler) Rename(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeCategory)
	if !ok {
		return
	}
	var req dto.RenameCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Execute(c, h.commands, financeapp.RenameCategory{CategoryKey: key, Name: req.Name}, http.StatusOK)
}

func (h *CategoryHandler) ChangeColor(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeCategory)
	if !ok {
		return
	}
	var req dto.ChangeColorRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Execute(c, h.commands, financeapp.ChangeCategoryColor{CategoryKey: key, Color: req.Color}, http.StatusOK)
}

func (h *CategoryHandler) ChangeDescription(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeCategory)
	if !ok {
		return
	}
	var req dto.ChangeDescriptionRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Execute(c, h.commands, financeapp.ChangeCategoryDescription{CategoryKey: key, Description: req.Description}, http.StatusOK)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	key, ok := h.PathKey(c, finance.AggregateTypeCategory)
	if !ok {
		return
	}
	h.Execute(c, h.commands, financeapp.DeleteCategory{CategoryKey: key}, http.StatusOK)
}
