package store

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustAdd(t *testing.T, c *Catalog, name string, price int64, quantity int) {
	t.Helper()
	if _, err := c.Add(name, decimal.NewFromInt(price), quantity); err != nil {
		t.Fatalf("Add %s: %v", name, err)
	}
}

func TestAddProduct(t *testing.T) {
	c := NewCatalog()

	product, err := c.Add("Laptop", decimal.NewFromInt(300000), 20)
	if err != nil {
		t.Fatalf("Add product: %v", err)
	}

	if product.Name != "Laptop" {
		t.Errorf("Expected name Laptop, got %s", product.Name)
	}
	if !product.Price.Equal(decimal.NewFromInt(300000)) {
		t.Errorf("Expected price 300000, got %s", product.Price)
	}

	got, err := c.Get(product.ID)
	if err != nil {
		t.Fatalf("Get product: %v", err)
	}
	if got.Quantity != 20 {
		t.Errorf("Expected quantity 20, got %d", got.Quantity)
	}
}

func TestAddProductAllowsDuplicateNames(t *testing.T) {
	c := NewCatalog()
	mustAdd(t, c, "Cable", 100, 1)
	mustAdd(t, c, "cable", 200, 2)

	if c.Len() != 2 {
		t.Errorf("Expected 2 products, got %d", c.Len())
	}
}

func TestAddProductRejectsInvalidInput(t *testing.T) {
	c := NewCatalog()

	cases := []struct {
		name     string
		product  string
		price    decimal.Decimal
		quantity int
	}{
		{"negative price", "Laptop", decimal.NewFromInt(-1), 1},
		{"negative quantity", "Laptop", decimal.NewFromInt(1), -1},
		{"blank name", "   ", decimal.NewFromInt(1), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Add(tc.product, tc.price, tc.quantity)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got: %v", err)
			}
		})
	}

	if c.Len() != 0 {
		t.Errorf("Rejected products must not be stored, got %d", c.Len())
	}
}

func TestFindByNameIsCaseInsensitive(t *testing.T) {
	c := NewCatalog()
	mustAdd(t, c, "Mouse", 10000, 70)

	product, err := c.FindByName("mOUSE")
	if err != nil {
		t.Fatalf("Find product: %v", err)
	}
	if product.Name != "Mouse" {
		t.Errorf("Expected Mouse, got %s", product.Name)
	}

	if _, err := c.FindByName("Mous"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound for partial name, got: %v", err)
	}
}

func TestNameMatchingFoldsNonLatinCase(t *testing.T) {
	c := NewCatalog()
	mustAdd(t, c, "οδος", 500, 1)
	mustAdd(t, c, "Straße", 700, 1)

	product, err := c.FindByName("ΟΔΟΣ")
	if err != nil {
		t.Fatalf("Find by upper-case Greek name: %v", err)
	}
	if product.Name != "οδος" {
		t.Errorf("Expected οδος, got %s", product.Name)
	}

	if _, err := c.FindByName("STRASSE"); err != nil {
		t.Errorf("Find by folded German name: %v", err)
	}

	var found int
	for range c.Search("ΔΟΣ") {
		found++
	}
	if found != 1 {
		t.Errorf("Expected search to find 1 product, got %d", found)
	}

	if removed := c.Remove("ΟΔΟΣ"); removed != 1 {
		t.Errorf("Expected 1 removed, got %d", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 product left, got %d", c.Len())
	}
}

func TestUpdateProduct(t *testing.T) {
	c := NewCatalog()
	mustAdd(t, c, "Mouse", 10000, 70)

	updated, err := c.Update("mouse", decimal.NewFromInt(9000), 65)
	if err != nil {
		t.Fatalf("Update product: %v", err)
	}
	if !updated.Price.Equal(decimal.NewFromInt(9000)) || updated.Quantity != 65 {
		t.Errorf("Expected 9000/65, got %s/%d", updated.Price, updated.Quantity)
	}

	stored, err := c.FindByName("Mouse")
	if err != nil {
		t.Fatalf("Find product: %v", err)
	}
	if !stored.Price.Equal(decimal.NewFromInt(9000)) || stored.Quantity != 65 {
		t.Errorf("Update not stored, got %s/%d", stored.Price, stored.Quantity)
	}

	_, err = c.Update("tablet", decimal.NewFromInt(1), 1)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}
}

func TestUpdateProductRejectsNegativeValues(t *testing.T) {
	c := NewCatalog()
	mustAdd(t, c, "Mouse", 10000, 70)

	if _, err := c.Update("Mouse", decimal.NewFromInt(-5), 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for price, got: %v", err)
	}
	if _, err := c.Update("Mouse", decimal.NewFromInt(5), -1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for quantity, got: %v", err)
	}

	stored, _ := c.FindByName("Mouse")
	if !stored.Price.Equal(decimal.NewFromInt(10000)) || stored.Quantity != 70 {
		t.Errorf("Rejected update changed the product: %s/%d", stored.Price, stored.Quantity)
	}
}

func TestUpdateProductChangesFirstCreatedMatch(t *testing.T) {
	c := NewCatalog()
	mustAdd(t, c, "Cable", 100, 1)
	mustAdd(t, c, "CABLE", 200, 2)

	if _, err := c.Update("cable", decimal.NewFromInt(50), 5); err != nil {
		t.Fatalf("Update product: %v", err)
	}

	products := c.List()
	if !products[0].Price.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected first match updated to 50, got %s", products[0].Price)
	}
	if !products[1].Price.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected second match untouched at 200, got %s", products[1].Price)
	}
}

func TestRemoveProductRemovesAllMatches(t *testing.T) {
	c := NewCatalog()
	mustAdd(t, c, "Cable", 100, 1)
	mustAdd(t, c, "Mouse", 10000, 70)
	mustAdd(t, c, "cable", 200, 2)

	if removed := c.Remove("CABLE"); removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}

	for p := range c.Search("cable") {
		t.Errorf("Expected no cable after removal, found %s", p.Name)
	}
	if _, err := c.FindByName("cable"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}

	products := c.List()
	if len(products) != 1 || products[0].Name != "Mouse" {
		t.Errorf("Expected only Mouse left, got %v", products)
	}

	if removed := c.Remove("cable"); removed != 0 {
		t.Errorf("Second removal should be a no-op, removed %d", removed)
	}
}

func TestRemoveKeepsSimilarNames(t *testing.T) {
	c := NewCatalog()
	mustAdd(t, c, "Phone", 230000, 40)
	mustAdd(t, c, "Phone Case", 5000, 10)

	c.Remove("phone")

	products := c.List()
	if len(products) != 1 || products[0].Name != "Phone Case" {
		t.Errorf("Expected Phone Case to remain, got %v", products)
	}
}

func TestSearchProducts(t *testing.T) {
	c := NewCatalog()
	mustAdd(t, c, "Laptop", 300000, 20)
	mustAdd(t, c, "Mouse", 10000, 70)
	mustAdd(t, c, "Mousepad", 3000, 15)
	mustAdd(t, c, "Phone", 230000, 40)

	var names []string
	for p := range c.Search("MOUSE") {
		names = append(names, p.Name)
	}
	if len(names) != 2 || names[0] != "Mouse" || names[1] != "Mousepad" {
		t.Errorf("Expected [Mouse Mousepad] in catalog order, got %v", names)
	}

	seq := c.Search("o")
	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	if first != 4 || second != first {
		t.Errorf("Expected restartable search with 4 results, got %d then %d", first, second)
	}

	for range c.Search("tablet") {
		t.Error("Expected no results for tablet")
	}
}

func TestSearchStopsEarly(t *testing.T) {
	c := NewCatalog()
	mustAdd(t, c, "Laptop", 300000, 20)
	mustAdd(t, c, "Phone", 230000, 40)

	seen := 0
	for range c.Search("") {
		seen++
		break
	}
	if seen != 1 {
		t.Errorf("Expected iteration to stop after 1, got %d", seen)
	}
}
