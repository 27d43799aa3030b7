package admin

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

const AllCategory = "all"

var DefaultCategories = []string{AllCategory, "Main Course", "Beverage", "Dessert", "Appetizer"}

var (
	ErrEmptyCategory     = errors.New("category name is empty")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrUnknownCategory   = errors.New("unknown category")
)

// CategoryManager keeps menu category labels in memory. Names compare
// case-sensitively here while Filter compares terms case-insensitively; the
// two are left as they are.
type CategoryManager struct {
	mu         sync.Mutex
	categories []string
	active     string
}

func NewCategoryManager() *CategoryManager {
	return &CategoryManager{categories: slices.Clone(DefaultCategories), active: AllCategory}
}

func (m *CategoryManager) Categories() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.categories)
}

func (m *CategoryManager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *CategoryManager) Add(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyCategory
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.Contains(m.categories, name) {
		return "", ErrDuplicateCategory
	}
	m.categories = append(m.categories, name)
	return name, nil
}

// Delete removes name. AllCategory is never removed and unknown names are
// ignored. Deleting the active category resets the filter to AllCategory.
func (m *CategoryManager) Delete(name string) {
	if name == AllCategory {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = slices.DeleteFunc(m.categories, func(c string) bool { return c == name })
	if m.active == name {
		m.active = AllCategory
	}
}

// SetActive selects the menu filter; an empty name selects AllCategory.
func (m *CategoryManager) SetActive(name string) error {
	if name == "" {
		name = AllCategory
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.categories, name) {
		return ErrUnknownCategory
	}
	m.active = name
	return nil
}
