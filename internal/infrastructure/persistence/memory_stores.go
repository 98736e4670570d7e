package persistence

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
)

// MemoryOutcomeReadStore is a map-backed OutcomeReadStore
type MemoryOutcomeReadStore struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]report.OutcomeView
}

// NewMemoryOutcomeReadStore creates an empty store
func NewMemoryOutcomeReadStore() *MemoryOutcomeReadStore {
	return &MemoryOutcomeReadStore{rows: make(map[uuid.UUID]report.OutcomeView)}
}

func cloneOutcome(v report.OutcomeView) report.OutcomeView {
	v.CategoryKeys = slices.Clone(v.CategoryKeys)
	return v
}

func (s *MemoryOutcomeReadStore) Save(_ context.Context, view *report.OutcomeView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[view.Key.ID] = cloneOutcome(*view)
	return nil
}

func (s *MemoryOutcomeReadStore) Find(_ context.Context, key shared.Key) (*report.OutcomeView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.rows[key.ID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	v = cloneOutcome(v)
	return &v, nil
}

func (s *MemoryOutcomeReadStore) Delete(_ context.Context, key shared.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, key.ID)
	return nil
}

func (s *MemoryOutcomeReadStore) FindByMonth(_ context.Context, month report.Month) ([]report.OutcomeView, error) {
	return s.filter(func(v report.OutcomeView) bool {
		return month.Contains(v.When)
	}), nil
}

func (s *MemoryOutcomeReadStore) FindByCategoryAndMonth(_ context.Context, categoryKey shared.Key, month report.Month) ([]report.OutcomeView, error) {
	return s.filter(func(v report.OutcomeView) bool {
		return month.Contains(v.When) && slices.ContainsFunc(v.CategoryKeys, func(k shared.Key) bool {
			return k.ID == categoryKey.ID
		})
	}), nil
}

func (s *MemoryOutcomeReadStore) filter(keep func(report.OutcomeView) bool) []report.OutcomeView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]report.OutcomeView, 0)
	for _, v := range s.rows {
		if !v.IsDeleted && keep(v) {
			out = append(out, cloneOutcome(v))
		}
	}
	slices.SortFunc(out, func(a, b report.OutcomeView) int {
		if c := a.When.Compare(b.When); c != 0 {
			return c
		}
		return cmp.Compare(a.Key.ID.String(), b.Key.ID.String())
	})
	return out
}

func (s *MemoryOutcomeReadStore) ListMonths(_ context.Context) ([]report.Month, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[report.Month]struct{})
	months := make([]report.Month, 0)
	for _, v := range s.rows {
		if v.IsDeleted {
			continue
		}
		m := report.MonthOf(v.When)
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		months = append(months, m)
	}
	slices.SortFunc(months, func(a, b report.Month) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})
	return months, nil
}

func (s *MemoryOutcomeReadStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.rows)
	return nil
}

// MemoryCategoryReadStore is a map-backed CategoryReadStore
type MemoryCategoryReadStore struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]report.CategoryView
}

// NewMemoryCategoryReadStore creates an empty store
func NewMemoryCategoryReadStore() *MemoryCategoryReadStore {
	return &MemoryCategoryReadStore{rows: make(map[uuid.UUID]report.CategoryView)}
}

func (s *MemoryCategoryReadStore) Save(_ context.Context, view *report.CategoryView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[view.Key.ID] = *view
	return nil
}

func (s *MemoryCategoryReadStore) Find(_ context.Context, key shared.Key) (*report.CategoryView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.rows[key.ID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &v, nil
}

func (s *MemoryCategoryReadStore) Delete(_ context.Context, key shared.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, key.ID)
	return nil
}

func (s *MemoryCategoryReadStore) FindAll(_ context.Context, includeDeleted bool) ([]report.CategoryView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]report.CategoryView, 0, len(s.rows))
	for _, v := range s.rows {
		if v.IsDeleted && !includeDeleted {
			continue
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b report.CategoryView) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Key.ID.String(), b.Key.ID.String())
	})
	return out, nil
}

func (s *MemoryCategoryReadStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.rows)
	return nil
}

// MemoryExpenseTemplateReadStore is a map-backed ExpenseTemplateReadStore
type MemoryExpenseTemplateReadStore struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]report.ExpenseTemplateView
}

// NewMemoryExpenseTemplateReadStore creates an empty store
func NewMemoryExpenseTemplateReadStore() *MemoryExpenseTemplateReadStore {
	return &MemoryExpenseTemplateReadStore{rows: make(map[uuid.UUID]report.ExpenseTemplateView)}
}

func (s *MemoryExpenseTemplateReadStore) Save(_ context.Context, view *report.ExpenseTemplateView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[view.Key.ID] = *view
	return nil
}

func (s *MemoryExpenseTemplateReadStore) Find(_ context.Context, key shared.Key) (*report.ExpenseTemplateView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.rows[key.ID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &v, nil
}

func (s *MemoryExpenseTemplateReadStore) Delete(_ context.Context, key shared.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, key.ID)
	return nil
}

func (s *MemoryExpenseTemplateReadStore) FindAll(_ context.Context) ([]report.ExpenseTemplateView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]report.ExpenseTemplateView, 0, len(s.rows))
	for _, v := range s.rows {
		if !v.IsDeleted {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b report.ExpenseTemplateView) int {
		if c := cmp.Compare(a.Description, b.Description); c != 0 {
			return c
		}
		return cmp.Compare(a.Key.ID.String(), b.Key.ID.String())
	})
	return out, nil
}

func (s *MemoryExpenseTemplateReadStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.rows)
	return nil
}

var (
	_ report.OutcomeReadStore         = (*MemoryOutcomeReadStore)(nil)
	_ report.OutcomeReadStore         = (*GormOutcomeReadStore)(nil)
	_ report.CategoryReadStore        = (*MemoryCategoryReadStore)(nil)
	_ report.CategoryReadStore        = (*GormCategoryReadStore)(nil)
	_ report.ExpenseTemplateReadStore = (*MemoryExpenseTemplateReadStore)(nil)
	_ report.ExpenseTemplateReadStore = (*GormExpenseTemplateReadStore)(nil)
)
