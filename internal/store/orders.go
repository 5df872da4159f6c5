package store

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/safar/go-warehouse/internal/models"
	"github.com/shopspring/decimal"
)

// Ledger owns every finalized order and the id counter. The same lock guards
// the orders, the ledger's list and each user's order list.
type Ledger struct {
	guard
	lastID int64
	orders []*models.Order
	byID   map[int64]*models.Order
	now    func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{
		byID: make(map[int64]*models.Order),
		now:  time.Now,
	}
}

// CreateOrder allocates the next order id and returns an empty draft owned by
// user. The draft is not visible until Finalize.
func (l *Ledger) CreateOrder(user *models.User) (*models.Order, error) {
	if user == nil {
		return nil, ErrUserNotFound
	}

	var order *models.Order
	_ = l.withWrite(func() error {
		l.lastID++
		now := l.now()
		order = &models.Order{
			ID:        l.lastID,
			UserID:    user.ID,
			UserLogin: user.Login,
			Status:    models.OrderStatusNew,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return nil
	})

	return order, nil
}

// AddLine appends one unit of product to the draft, priced as it is now.
func (l *Ledger) AddLine(order *models.Order, product models.Product) error {
	if order == nil {
		return ErrOrderNotFound
	}

	return l.withWrite(func() error {
		if l.byID[order.ID] == order {
			return fmt.Errorf("%w: order %d", ErrOrderFinalized, order.ID)
		}

		order.Lines = append(order.Lines, models.Line{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    1,
			UnitPrice:   product.Price,
			Subtotal:    product.Price,
		})
		order.UpdatedAt = l.now()
		return nil
	})
}

func byOrderID(a, b *models.Order) int {
	return cmp.Compare(a.ID, b.ID)
}

func insertByID(orders []*models.Order, order *models.Order) []*models.Order {
	i, _ := slices.BinarySearchFunc(orders, order, byOrderID)
	return slices.Insert(orders, i, order)
}

// Finalize registers the draft in the ledger and in the user's order list.
func (l *Ledger) Finalize(order *models.Order, user *models.User) (models.Order, error) {
	if order == nil {
		return models.Order{}, ErrOrderNotFound
	}
	if user == nil {
		return models.Order{}, ErrUserNotFound
	}
	if order.UserID != user.ID {
		return models.Order{}, fmt.Errorf("%w: order %d belongs to another user", ErrInvalidInput, order.ID)
	}

	var finalized models.Order
	err := l.withWrite(func() error {
		if _, exists := l.byID[order.ID]; exists {
			return fmt.Errorf("%w: order %d", ErrOrderFinalized, order.ID)
		}

		l.orders = insertByID(l.orders, order)
		l.byID[order.ID] = order
		user.Orders = insertByID(user.Orders, order)
		finalized = order.Clone()
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	return finalized, nil
}

func (l *Ledger) Total(order *models.Order) decimal.Decimal {
	if order == nil {
		return decimal.Zero
	}

	var total decimal.Decimal
	l.withRead(func() {
		total = order.Total()
	})
	return total
}

func (l *Ledger) Get(id int64) (models.Order, error) {
	var (
		order models.Order
		found bool
	)
	l.withRead(func() {
		if o, ok := l.byID[id]; ok {
			order, found = o.Clone(), true
		}
	})
	if !found {
		return models.Order{}, fmt.Errorf("%w: id %d", ErrOrderNotFound, id)
	}
	return order, nil
}

func (l *Ledger) SetStatus(id int64, status string) (models.Order, error) {
	var updated models.Order
	err := l.withWrite(func() error {
		order, ok := l.byID[id]
		if !ok {
			return fmt.Errorf("%w: id %d", ErrOrderNotFound, id)
		}
		order.Status = status
		order.UpdatedAt = l.now()
		updated = order.Clone()
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	return updated, nil
}

func cloneOrders(orders []*models.Order) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Clone())
	}
	return out
}

func (l *Ledger) UserOrders(user *models.User) []models.Order {
	if user == nil {
		return []models.Order{}
	}

	var orders []models.Order
	l.withRead(func() {
		orders = cloneOrders(user.Orders)
	})
	return orders
}

func (l *Ledger) List() []models.Order {
	var orders []models.Order
	l.withRead(func() {
		orders = cloneOrders(l.orders)
	})
	return orders
}

// Stats is recomputed on every call so it reflects the current orders.
func (l *Ledger) Stats() models.OrderStats {
	stats := models.OrderStats{TotalAmount: decimal.Zero}
	l.withRead(func() {
		stats.Count = len(l.orders)
		for _, o := range l.orders {
			stats.TotalAmount = stats.TotalAmount.Add(o.Total())
		}
	})
	return stats
}
