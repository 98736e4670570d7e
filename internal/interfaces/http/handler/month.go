package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/money/backend/internal/application/report"
	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/interfaces/http/dto"
)

// MonthHandler answers the monthly spending reports
type MonthHandler struct {
	BaseHandler
	queries QueryBus
}

func NewMonthHandler(queries QueryBus) *MonthHandler {
	return &MonthHandler{queries: queries}
}

// RegisterRoutes mounts /months
func (h *MonthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/months")
	g.GET("", h.List)
	g.GET("/:year/:month/total", h.Total)
	g.GET("/:year/:month/categories", h.Categories)
	g.GET("/:year/:month/outcomes", h.Outcomes)
	g.GET("/:year/:month/categories/:id/outcomes", h.CategoryOutcomes)
}

// List returns the months that have outcomes, oldest first
func (h *MonthHandler) List(c *gin.Context) {
	h.Answer(c, h.queries, reportapp.ListMonthWithOutcome{})
}

func (h *MonthHandler) Total(c *gin.Context) {
	month, ok := h.month(c)
	if !ok {
		return
	}
	h.Answer(c, h.queries, reportapp.GetTotalMonthOutcome{Month: month})
}

// Categories returns one total per primary category
func (h *MonthHandler) Categories(c *gin.Context) {
	month, ok := h.month(c)
	if !ok {
		return
	}
	h.Answer(c, h.queries, reportapp.ListMonthCategoryWithOutcome{Month: month})
}

func (h *MonthHandler) Outcomes(c *gin.Context) {
	month, ok := h.month(c)
	if !ok {
		return
	}
	h.Answer(c, h.queries, reportapp.ListMonthOutcomes{Month: month})
}

func (h *MonthHandler) CategoryOutcomes(c *gin.Context) {
	var req dto.MonthCategoryRequest
	if !h.BindURI(c, &req) {
		return
	}
	month, err := report.NewMonth(req.Year, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Answer(c, h.queries, reportapp.ListCategoryOutcomes{
		CategoryKey: BodyKey(finance.AggregateTypeCategory, req.ID),
		Month:       month,
	})
}

func (h *MonthHandler) month(c *gin.Context) (report.Month, bool) {
	var req dto.MonthRequest
	if !h.BindURI(c, &req) {
		return report.Month{}, false
	}
	month, err := report.NewMonth(req.Year, req.Month)
	if err != nil {
		h.HandleError(c, err)
		return report.Month{}, false
	}
	return month, true
}
