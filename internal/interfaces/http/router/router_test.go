package router_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/money/backend/internal/application/finance"
	reportapp "github.com/money/backend/internal/application/report"
	domain "github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared/valueobject"
	"github.com/money/backend/internal/infrastructure/dispatch"
	"github.com/money/backend/internal/infrastructure/event"
	"github.com/money/backend/internal/infrastructure/eventstore"
	"github.com/money/backend/internal/infrastructure/persistence"
	"github.com/money/backend/internal/interfaces/http/dto"
	"github.com/money/backend/internal/interfaces/http/handler"
	"github.com/money/backend/internal/interfaces/http/router"
	"github.com/money/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAPI(t *testing.T, checks map[string]handler.HealthCheck) *gin.Engine {
	t.Helper()
	log := zap.NewNop()

	serializer := event.NewEventSerializer()
	domain.RegisterEvents(serializer)
	store := eventstore.NewMemoryEventStore(eventstore.WithSerializer(serializer))

	outcomes := persistence.NewMemoryOutcomeReadStore()
	categories := persistence.NewMemoryCategoryReadStore()
	outcomeBuilder := reportapp.NewOutcomeBuilder(outcomes, categories, valueobject.NewPriceFactory(valueobject.EUR), log)
	categoryBuilder := reportapp.NewCategoryBuilder(categories, log)
	templateBuilder := reportapp.NewExpenseTemplateBuilder(persistence.NewMemoryExpenseTemplateReadStore(), log)

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(outcomeBuilder)
	bus.Subscribe(categoryBuilder)
	bus.Subscribe(templateBuilder)

	repo := finance.NewEventSourcedRepository(store, bus, nil, log)
	commands := dispatch.NewCommandDispatcher()
	commands.MustRegister(finance.NewOutcomeHandler(repo), finance.NewCategoryHandler(repo), finance.NewExpenseTemplateHandler(repo))
	queries := dispatch.NewQueryDispatcher()
	queries.MustRegister(outcomeBuilder, categoryBuilder, templateBuilder)

	return router.NewAPI(router.Config{HealthChecks: checks}, log, commands, queries)
}

func createCategory(t *testing.T, api http.Handler, name string) string {
	t.Helper()
	w := testutil.Do(t, api, http.MethodPost, "/api/v1/categories", map[string]string{"name": name, "color": "#00FF00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.DataAs[dto.KeyResponse](t, w).ID
}

func TestAPI_MonthCategoryTotals(t *testing.T) {
	api := newAPI(t, nil)
	food := createCategory(t, api, "Food")

	w := testutil.Do(t, api, http.MethodPost, "/api/v1/outcomes", map[string]any{
		"amount":       map[string]string{"amount": "5.00", "currency": "EUR"},
		"description":  "Lunch",
		"when":         "2016-10-12T12:00:00Z",
		"category_ids": []string{food},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = testutil.Do(t, api, http.MethodGet, "/api/v1/months/2016/10/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := testutil.DataAs[[]report.CategoryWithAmount](t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, food, entries[0].Key.ID.String())
	assert.Equal(t, "Food", entries[0].Name)
	assert.True(t, entries[0].Total.Equals(valueobject.MustPrice("5.00", valueobject.EUR)))

	w = testutil.Do(t, api, http.MethodGet, "/api/v1/months/2016/10/total", nil)
	total := testutil.DataAs[valueobject.Price](t, w)
	assert.True(t, total.Equals(valueobject.MustPrice("5", valueobject.EUR)))

	w = testutil.Do(t, api, http.MethodGet, "/api/v1/months", nil)
	months := testutil.DataAs[[]report.Month](t, w)
	assert.Equal(t, []report.Month{{Year: 2016, Month: 10}}, months)

	w = testutil.Do(t, api, http.MethodGet, "/api/v1/months/2016/10/categories/"+food+"/outcomes", nil)
	outcomes := testutil.DataAs[[]report.OutcomeOverview](t, w)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "Lunch", outcomes[0].Description)
}

func TestAPI_OutcomeLifecycle(t *testing.T) {
	api := newAPI(t, nil)
	food := createCategory(t, api, "Food")
	extra := createCategory(t, api, "Extra")

	w := testutil.Do(t, api, http.MethodPost, "/api/v1/outcomes", map[string]any{
		"amount":       map[string]string{"amount": "5", "currency": "EUR"},
		"when":         "2016-10-12T12:00:00Z",
		"category_ids": []string{food},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := testutil.DataAs[dto.KeyResponse](t, w).ID
	base := "/api/v1/outcomes/" + id

	w = testutil.Do(t, api, http.MethodPost, base+"/categories", map[string]string{"category_id": extra})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, api, http.MethodPost, base+"/categories", map[string]string{"category_id": extra})
	testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeNoOp)

	w = testutil.Do(t, api, http.MethodPut, base+"/amount", map[string]any{"amount": map[string]string{"amount": "7.25", "currency": "EUR"}})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, api, http.MethodPut, base+"/description", map[string]string{"description": "Dinner"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, api, http.MethodPut, base+"/when", map[string]string{"when": "2016-11-01T00:00:00Z"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, api, http.MethodGet, "/api/v1/months/2016/11/outcomes", nil)
	outcomes := testutil.DataAs[[]report.OutcomeOverview](t, w)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "Dinner", outcomes[0].Description)
	assert.True(t, outcomes[0].Amount.Equals(valueobject.MustPrice("7.25", valueobject.EUR)))

	w = testutil.Do(t, api, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, api, http.MethodDelete, base, nil)
	testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeAlreadyDeleted)

	w = testutil.Do(t, api, http.MethodPut, "/api/v1/outcomes/"+uuid.NewString()+"/description", map[string]string{"description": "x"})
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
}

func TestAPI_Categories(t *testing.T) {
	api := newAPI(t, nil)
	food := createCategory(t, api, "Food")
	rent := createCategory(t, api, "Rent")

	w := testutil.Do(t, api, http.MethodPut, "/api/v1/categories/"+food+"/name", map[string]string{"name": "Eating"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, api, http.MethodPut, "/api/v1/categories/"+food+"/name", map[string]string{"name": "Eating"})
	testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeNoOp)

	w = testutil.Do(t, api, http.MethodPut, "/api/v1/categories/"+food+"/color", map[string]string{"color": "#123456"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, api, http.MethodPut, "/api/v1/categories/"+food+"/description", map[string]string{"description": "groceries"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, api, http.MethodDelete, "/api/v1/categories/"+rent, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, api, http.MethodGet, "/api/v1/categories/"+food, nil)
	view := testutil.DataAs[report.CategoryView](t, w)
	assert.Equal(t, "Eating", view.Name)
	assert.Equal(t, "#123456", view.Color)
	assert.Equal(t, "groceries", view.Description)

	w = testutil.Do(t, api, http.MethodGet, "/api/v1/categories", nil)
	assert.Len(t, testutil.DataAs[[]report.CategoryView](t, w), 1)

	w = testutil.Do(t, api, http.MethodGet, "/api/v1/categories?include_deleted=true", nil)
	assert.Len(t, testutil.DataAs[[]report.CategoryView](t, w), 2)

	w = testutil.Do(t, api, http.MethodGet, "/api/v1/categories/"+uuid.NewString(), nil)
	testutil.AssertErrorResponse(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
}

func TestAPI_ExpenseTemplates(t *testing.T) {
	api := newAPI(t, nil)
	food := createCategory(t, api, "Food")
	other := createCategory(t, api, "Other")

	w := testutil.Do(t, api, http.MethodPost, "/api/v1/expense-templates", map[string]any{
		"amount":      map[string]string{"amount": "10.00", "currency": "USD"},
		"description": "Coffee",
		"category_id": food,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := testutil.DataAs[dto.KeyResponse](t, w).ID
	base := "/api/v1/expense-templates/" + id

	w = testutil.Do(t, api, http.MethodPut, base+"/amount", map[string]any{"amount": map[string]string{"amount": "12.50", "currency": "USD"}})
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, api, http.MethodPut, base+"/category", map[string]string{"category_id": other})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, api, http.MethodPut, base+"/fixed", map[string]any{"is_fixed": false})
	testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeNoOp)
	w = testutil.Do(t, api, http.MethodPut, base+"/fixed", map[string]any{"is_fixed": true})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, api, http.MethodPut, base+"/description", map[string]string{"description": "Espresso"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutil.Do(t, api, http.MethodGet, "/api/v1/expense-templates", nil)
	templates := testutil.DataAs[[]report.ExpenseTemplateView](t, w)
	require.Len(t, templates, 1)
	assert.True(t, templates[0].Amount.Equals(valueobject.MustPrice("12.50", valueobject.USD)))
	assert.Equal(t, other, templates[0].CategoryKey.ID.String())
	assert.True(t, templates[0].IsFixed)
	assert.Equal(t, "Espresso", templates[0].Description)

	w = testutil.Do(t, api, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = testutil.Do(t, api, http.MethodGet, "/api/v1/expense-templates", nil)
	assert.Empty(t, testutil.DataAs[[]report.ExpenseTemplateView](t, w))
}

func TestAPI_Validation(t *testing.T) {
	api := newAPI(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"missing categories", http.MethodPost, "/api/v1/outcomes", map[string]any{
			"amount": map[string]string{"amount": "5", "currency": "EUR"}, "when": "2016-10-12T12:00:00Z",
		}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"unsupported currency", http.MethodPost, "/api/v1/outcomes", map[string]any{
			"amount": map[string]string{"amount": "5", "currency": "XXX"}, "when": "2016-10-12T12:00:00Z",
			"category_ids": []string{uuid.NewString()},
		}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"non-positive amount", http.MethodPost, "/api/v1/outcomes", map[string]any{
			"amount": map[string]string{"amount": "0", "currency": "EUR"}, "when": "2016-10-12T12:00:00Z",
			"category_ids": []string{uuid.NewString()},
		}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"bad color", http.MethodPost, "/api/v1/categories", map[string]string{"name": "Food", "color": "green"},
			http.StatusBadRequest, dto.ErrCodeValidation},
		{"bad id", http.MethodDelete, "/api/v1/categories/not-a-uuid", nil, http.StatusBadRequest, dto.ErrCodeValidation},
		{"bad month", http.MethodGet, "/api/v1/months/2016/13/total", nil, http.StatusBadRequest, dto.ErrCodeValidation},
		{"fixed flag missing", http.MethodPut, "/api/v1/expense-templates/" + uuid.NewString() + "/fixed", map[string]any{},
			http.StatusBadRequest, dto.ErrCodeValidation},
		{"malformed json", http.MethodPost, "/api/v1/categories", "not json", http.StatusBadRequest, dto.ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.Do(t, api, tt.method, tt.path, tt.body)
			testutil.AssertErrorResponse(t, w, tt.status, tt.code)
		})
	}
}

func TestAPI_MixedCurrencyTotal(t *testing.T) {
	api := newAPI(t, nil)
	food := createCategory(t, api, "Food")
	for _, currency := range []string{"EUR", "USD"} {
		w := testutil.Do(t, api, http.MethodPost, "/api/v1/outcomes", map[string]any{
			"amount":       map[string]string{"amount": "1", "currency": currency},
			"when":         "2016-10-12T12:00:00Z",
			"category_ids": []string{food},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := testutil.Do(t, api, http.MethodGet, "/api/v1/months/2016/10/total", nil)
	testutil.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, dto.ErrCodeCurrencyMismatch)
}

func TestAPI_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		api := newAPI(t, map[string]handler.HealthCheck{
			"database": func(context.Context) error { return nil },
		})
		w := testutil.Do(t, api, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", testutil.DataAs[handler.HealthResponse](t, w).Status)
	})

	t.Run("failing dependency", func(t *testing.T) {
		api := newAPI(t, map[string]handler.HealthCheck{
			"redis": func(context.Context) error { return errors.New("connection refused") },
		})
		w := testutil.Do(t, api, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "connection refused")
	})

	t.Run("request id is echoed", func(t *testing.T) {
		api := newAPI(t, nil)
		w := testutil.Do(t, api, http.MethodGet, "/health", nil)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}
