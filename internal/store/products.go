package store

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/safar/go-warehouse/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Catalog owns the product list. Names are not unique: lookups by name act on
// the first-created match, removal by name drops every match.
type Catalog struct {
	guard
	products []*models.Product
	byID     map[uuid.UUID]*models.Product
	byName   map[string][]uuid.UUID
	now      func() time.Time
}

func NewCatalog() *Catalog {
	return &Catalog{
		byID:   make(map[uuid.UUID]*models.Product),
		byName: make(map[string][]uuid.UUID),
		now:    time.Now,
	}
}

// nameKey applies full Unicode case folding, so "ΟΔΟΣ" and "οδος" share a
// key. A Caser is stateful, so each call builds its own.
func nameKey(name string) string {
	return cases.Fold().String(name)
}

func validateProduct(name string, price decimal.Decimal, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative, got %s", ErrInvalidInput, price)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative, got %d", ErrInvalidInput, quantity)
	}
	return nil
}

func (c *Catalog) Add(name string, price decimal.Decimal, quantity int) (models.Product, error) {
	if err := validateProduct(name, price, quantity); err != nil {
		return models.Product{}, err
	}

	now := c.now()
	product := &models.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_ = c.withWrite(func() error {
		c.products = append(c.products, product)
		c.byID[product.ID] = product
		key := nameKey(name)
		c.byName[key] = append(c.byName[key], product.ID)
		return nil
	})

	return *product, nil
}

func (c *Catalog) Get(id uuid.UUID) (models.Product, error) {
	var (
		product models.Product
		found   bool
	)
	c.withRead(func() {
		if p, ok := c.byID[id]; ok {
			product, found = *p, true
		}
	})
	if !found {
		return models.Product{}, fmt.Errorf("%w: id %s", ErrProductNotFound, id)
	}
	return product, nil
}

// firstByName must be called with the lock held.
func (c *Catalog) firstByName(name string) *models.Product {
	ids := c.byName[nameKey(name)]
	if len(ids) == 0 {
		return nil
	}
	return c.byID[ids[0]]
}

func (c *Catalog) FindByName(name string) (models.Product, error) {
	var (
		product models.Product
		found   bool
	)
	c.withRead(func() {
		if p := c.firstByName(name); p != nil {
			product, found = *p, true
		}
	})
	if !found {
		return models.Product{}, fmt.Errorf("%w: %q", ErrProductNotFound, name)
	}
	return product, nil
}

func (c *Catalog) Update(name string, price decimal.Decimal, quantity int) (models.Product, error) {
	if price.IsNegative() {
		return models.Product{}, fmt.Errorf("%w: price must not be negative, got %s", ErrInvalidInput, price)
	}
	if quantity < 0 {
		return models.Product{}, fmt.Errorf("%w: quantity must not be negative, got %d", ErrInvalidInput, quantity)
	}

	var updated models.Product
	err := c.withWrite(func() error {
		p := c.firstByName(name)
		if p == nil {
			return fmt.Errorf("%w: %q", ErrProductNotFound, name)
		}
		p.Price = price
		p.Quantity = quantity
		p.UpdatedAt = c.now()
		updated = *p
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}

	return updated, nil
}

// Remove deletes every product whose name matches case-insensitively and
// reports how many were removed.
func (c *Catalog) Remove(name string) int {
	var removed int
	_ = c.withWrite(func() error {
		key := nameKey(name)
		ids := c.byName[key]
		if len(ids) == 0 {
			return nil
		}
		delete(c.byName, key)
		for _, id := range ids {
			delete(c.byID, id)
		}
		before := len(c.products)
		c.products = slices.DeleteFunc(c.products, func(p *models.Product) bool {
			return nameKey(p.Name) == key
		})
		removed = before - len(c.products)
		return nil
	})
	return removed
}

func (c *Catalog) List() []models.Product {
	var products []models.Product
	c.withRead(func() {
		products = make([]models.Product, 0, len(c.products))
		for _, p := range c.products {
			products = append(products, *p)
		}
	})
	return products
}

// Search yields, in catalog order, the products whose name contains query
// case-insensitively. Each iteration works on a fresh copy of the catalog.
func (c *Catalog) Search(query string) iter.Seq[models.Product] {
	needle := nameKey(query)
	return func(yield func(models.Product) bool) {
		for _, p := range c.List() {
			if !strings.Contains(nameKey(p.Name), needle) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

func (c *Catalog) Len() int {
	var n int
	c.withRead(func() {
		n = len(c.products)
	})
	return n
}
