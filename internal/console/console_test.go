package console

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safar/go-warehouse/internal/logging"
	"github.com/safar/go-warehouse/internal/models"
	"github.com/safar/go-warehouse/internal/store"
)

func runSession(t *testing.T, s *store.Store, lines ...string) string {
	t.Helper()

	var out strings.Builder
	input := strings.NewReader(strings.Join(lines, "\n") + "\n")
	err := NewSession(s, input, &out, logging.Discard()).Run()
	require.NoError(t, err)
	return out.String()
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.DefaultOptions())
	require.NoError(t, err)
	return s
}

func TestRegisterLoginAndOrder(t *testing.T) {
	s := newStore(t)

	out := runSession(t, s,
		"1", "Bob", "bob", "pw",
		"2", "bob", "pw",
		"2", "1", "2", "0",
		"3",
		"0",
		"0",
	)

	assert.Contains(t, out, "Registration successful!")
	assert.Contains(t, out, "--- USER MENU ---")
	assert.Contains(t, out, "Running total: 310000.00")
	assert.Contains(t, out, "Order created: Order #1 by bob | Status: New | Total: 310000.00")
	assert.Contains(t, out, "Bye")

	stats := s.OrderStats()
	assert.Equal(t, 1, stats.Count)
	assert.True(t, stats.TotalAmount.Equal(decimal.NewFromInt(310000)))
}

func TestLoginFailure(t *testing.T) {
	s := newStore(t)

	out := runSession(t, s, "2", "bob", "wrong", "0")

	assert.Contains(t, out, "ERROR: invalid login or password.")
	assert.NotContains(t, out, "--- USER MENU ---")
}

func TestInvalidMenuInput(t *testing.T) {
	s := newStore(t)
	_, err := s.Register("Bob", "bob", "pw")
	require.NoError(t, err)

	out := runSession(t, s,
		"7",
		"2", "bob", "pw",
		"2", "abc", "9", "3", "0",
		"0", "0",
	)

	assert.Contains(t, out, "Invalid choice")
	assert.Contains(t, out, "Enter a number from 0 to 3.")
	orders := s.AllOrders()
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Lines, 1)
	assert.Equal(t, "Phone", orders[0].Lines[0].ProductName)
}

func TestSearch(t *testing.T) {
	s := newStore(t)
	_, err := s.Register("Bob", "bob", "pw")
	require.NoError(t, err)

	out := runSession(t, s,
		"2", "bob", "pw",
		"1", "lap",
		"1", "tablet",
		"3",
		"0", "0",
	)

	assert.Contains(t, out, "Laptop")
	assert.Contains(t, out, "No products found.")
	assert.Contains(t, out, "You have no orders.")
}

func TestAdminManagesOrdersAndProducts(t *testing.T) {
	s := newStore(t)
	bob, err := s.Register("Bob", "bob", "pw")
	require.NoError(t, err)
	order, err := s.PlaceOrder(bob, nil)
	require.NoError(t, err)

	out := runSession(t, s,
		"2", "admin", "admin",
		"1",
		"2", "1", "Shipped",
		"2", "99", "Lost",
		"3", "1", "Tablet", "-5", "150000", "x", "5",
		"3", "2", "mouse", "9000", "65",
		"3", "2", "tablet-pro",
		"3", "3", "PHONE",
		"4",
		"0", "0",
	)

	assert.Contains(t, out, "--- ADMIN MENU ---")
	assert.Contains(t, out, "- admin (Admin)")
	assert.Contains(t, out, "- bob\n")
	assert.Contains(t, out, "New status (e.g. Processing, Shipped, Delivered, Cancelled): ")
	assert.Contains(t, out, "Status changed!")
	assert.Contains(t, out, "Order not found.")
	assert.Contains(t, out, "Enter a non-negative number.")
	assert.Contains(t, out, "Enter a non-negative whole number.")
	assert.Contains(t, out, "Product added!")
	assert.Contains(t, out, "Changes saved!")
	assert.Contains(t, out, "Product not found.")
	assert.Contains(t, out, "Removed 1 product(s)!")
	assert.Contains(t, out, "Total orders: 1")
	assert.Contains(t, out, "Total amount: 0.00")

	stored, err := s.Ledger.Get(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, stored.Status)

	mouse, err := s.Catalog.FindByName("Mouse")
	require.NoError(t, err)
	assert.True(t, mouse.Price.Equal(decimal.NewFromInt(9000)))
	assert.Equal(t, 65, mouse.Quantity)

	tablet, err := s.Catalog.FindByName("tablet")
	require.NoError(t, err)
	assert.True(t, tablet.Price.Equal(decimal.NewFromInt(150000)))
	assert.Equal(t, 5, tablet.Quantity)

	_, err = s.Catalog.FindByName("Phone")
	assert.True(t, store.IsNotFound(err))
}

func TestSessionEndsWhenInputRunsOut(t *testing.T) {
	s := newStore(t)

	var out strings.Builder
	err := NewSession(s, strings.NewReader("2\nadmin\nadmin\n3\n1\nTablet\n"), &out, logging.Discard()).Run()

	assert.NoError(t, err)
	assert.Len(t, s.ListProducts(), 3)
}

func TestOverlongLineDoesNotEndSession(t *testing.T) {
	s := newStore(t)
	longName := strings.Repeat("x", 70000)

	out := runSession(t, s,
		"1", longName, "bob", "pw",
		"2", "bob", "pw",
		"0",
		"0",
	)

	assert.Contains(t, out, "Registration successful!")
	assert.Contains(t, out, "--- USER MENU ---")
	assert.Contains(t, out, "Bye")

	users := s.ListUsers()
	require.Len(t, users, 2)
	assert.Equal(t, longName, users[1].Name)
}

func TestLastLineWithoutNewline(t *testing.T) {
	s := newStore(t)

	var out strings.Builder
	err := NewSession(s, strings.NewReader("0"), &out, logging.Discard()).Run()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Bye")
}
