package client

import (
	"fmt"
	"sync"

	"github.com/obrolin/forum/internal/errs"
	"github.com/obrolin/forum/internal/model"
)

// CategoryFilter is pure view state: the currently selected category.
// Changing it is the sole trigger for re-querying the thread list.
type CategoryFilter struct {
	mu     sync.Mutex
	active string
}

// NewCategoryFilter starts on the "all categories" sentinel.
func NewCategoryFilter() *CategoryFilter {
	return &CategoryFilter{active: model.CategoryAll}
}

// SetActive selects a category or the "all" sentinel.
func (f *CategoryFilter) SetActive(category string) error {
	if category != model.CategoryAll && !model.ValidCategory(category) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidCategory, category)
	}
	f.mu.Lock()
	f.active = category
	f.mu.Unlock()
	return nil
}

// Active returns the selected category.
func (f *CategoryFilter) Active() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}
