package store

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/safar/go-warehouse/internal/config"
	"github.com/safar/go-warehouse/internal/models"
	"github.com/shopspring/decimal"
)

type Options struct {
	Admin       AdminAccount
	SeedCatalog bool
}

func DefaultOptions() Options {
	return Options{
		Admin:       DefaultAdminAccount(),
		SeedCatalog: true,
	}
}

func OptionsFromConfig(cfg *config.SeedConfig) Options {
	return Options{
		Admin: AdminAccount{
			Name:     cfg.AdminName,
			Login:    cfg.AdminLogin,
			Password: cfg.AdminPassword,
		},
		SeedCatalog: cfg.Catalog,
	}
}

type SeedProduct struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

var DemoCatalog = []SeedProduct{
	{Name: "Laptop", Price: decimal.NewFromInt(300000), Quantity: 20},
	{Name: "Mouse", Price: decimal.NewFromInt(10000), Quantity: 70},
	{Name: "Phone", Price: decimal.NewFromInt(230000), Quantity: 40},
}

// Store is the entry point for command layers: it ties the catalog, the
// account directory and the order ledger together.
type Store struct {
	Catalog   *Catalog
	Directory *Directory
	Ledger    *Ledger
}

func New(opts Options) (*Store, error) {
	directory, err := NewDirectory(opts.Admin)
	if err != nil {
		return nil, err
	}

	s := &Store{
		Catalog:   NewCatalog(),
		Directory: directory,
		Ledger:    NewLedger(),
	}

	if opts.SeedCatalog {
		for _, p := range DemoCatalog {
			if _, err := s.Catalog.Add(p.Name, p.Price, p.Quantity); err != nil {
				return nil, fmt.Errorf("seed product %s: %w", p.Name, err)
			}
		}
	}

	return s, nil
}

func (s *Store) Register(name, login, password string) (*models.User, error) {
	return s.Directory.Register(name, login, password)
}

func (s *Store) Login(login, password string) (*models.User, error) {
	return s.Directory.Authenticate(login, password)
}

func (s *Store) ListUsers() []models.User {
	return s.Directory.List()
}

func (s *Store) ListProducts() []models.Product {
	return s.Catalog.List()
}

func (s *Store) SearchProducts(query string) []models.Product {
	products := slices.Collect(s.Catalog.Search(query))
	if products == nil {
		return []models.Product{}
	}
	return products
}

func (s *Store) AddProduct(name string, price decimal.Decimal, quantity int) (models.Product, error) {
	return s.Catalog.Add(name, price, quantity)
}

func (s *Store) UpdateProduct(name string, price decimal.Decimal, quantity int) (models.Product, error) {
	return s.Catalog.Update(name, price, quantity)
}

func (s *Store) RemoveProduct(name string) int {
	return s.Catalog.Remove(name)
}

// OrderHandle is a draft order being filled by its owner.
type OrderHandle struct {
	order *models.Order
	user  *models.User
}

func (h *OrderHandle) ID() int64 {
	return h.order.ID
}

func (s *Store) StartOrder(user *models.User) (*OrderHandle, error) {
	order, err := s.Ledger.CreateOrder(user)
	if err != nil {
		return nil, err
	}
	return &OrderHandle{order: order, user: user}, nil
}

func (s *Store) AddToOrder(h *OrderHandle, productID uuid.UUID) error {
	if h == nil {
		return ErrOrderNotFound
	}

	product, err := s.Catalog.Get(productID)
	if err != nil {
		return err
	}

	return s.Ledger.AddLine(h.order, product)
}

func (s *Store) DraftTotal(h *OrderHandle) decimal.Decimal {
	if h == nil {
		return decimal.Zero
	}
	return s.Ledger.Total(h.order)
}

func (s *Store) Finalize(h *OrderHandle) (models.Order, error) {
	if h == nil {
		return models.Order{}, ErrOrderNotFound
	}
	return s.Ledger.Finalize(h.order, h.user)
}

// PlaceOrder builds and finalizes an order in one step. Nothing is recorded if
// any product is missing.
func (s *Store) PlaceOrder(user *models.User, productIDs []uuid.UUID) (models.Order, error) {
	h, err := s.StartOrder(user)
	if err != nil {
		return models.Order{}, err
	}

	for _, id := range productIDs {
		if err := s.AddToOrder(h, id); err != nil {
			return models.Order{}, fmt.Errorf("add product to order %d: %w", h.ID(), err)
		}
	}

	return s.Finalize(h)
}

func (s *Store) MyOrders(user *models.User) []models.Order {
	return s.Ledger.UserOrders(user)
}

func (s *Store) AllOrders() []models.Order {
	return s.Ledger.List()
}

func (s *Store) SetOrderStatus(id int64, status string) (models.Order, error) {
	return s.Ledger.SetStatus(id, status)
}

func (s *Store) OrderStats() models.OrderStats {
	return s.Ledger.Stats()
}
