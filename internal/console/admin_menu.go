package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/safar/go-warehouse/internal/models"
	"github.com/safar/go-warehouse/internal/store"
)

func (s *Session) adminMenu(admin *models.User) error {
	for {
		s.println()
		s.println("--- ADMIN MENU ---")
		s.println("1. List users")
		s.println("2. Manage orders")
		s.println("3. Manage products")
		s.println("4. Order statistics")
		s.println("0. Log out")

		choice, err := s.prompt("Choice")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			s.listUsers()
		case "2":
			err = s.manageOrders(admin)
		case "3":
			err = s.manageProducts()
		case "4":
			s.stats()
		case "0":
			return nil
		default:
			s.println("Invalid choice")
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) listUsers() {
	s.println()
	s.println("Users:")
	for _, u := range s.store.ListUsers() {
		marker := ""
		if u.IsAdmin() {
			marker = " (Admin)"
		}
		s.printf("- %s%s\n", u.Login, marker)
	}
}

func (s *Session) manageOrders(admin *models.User) error {
	s.println()
	s.println("All orders:")
	for _, o := range s.store.AllOrders() {
		s.println(formatOrder(o))
	}

	id, err := s.promptInt("Order ID to change status (0 to go back)", 0, math.MaxInt)
	if err != nil {
		return err
	}
	if id == 0 {
		return nil
	}

	status, err := s.prompt(fmt.Sprintf("New status (e.g. %s)", strings.Join(models.SuggestedStatuses, ", ")))
	if err != nil {
		return err
	}
	if status == "" {
		s.println("Status must not be empty.")
		return nil
	}

	order, err := s.store.SetOrderStatus(int64(id), status)
	if err != nil {
		if store.IsNotFound(err) {
			s.println("Order not found.")
			return nil
		}
		return err
	}

	s.log.Info("order status changed", "order_id", order.ID, "status", order.Status, "by", admin.Login)
	s.println("Status changed!")
	return nil
}

func (s *Session) manageProducts() error {
	s.println()
	s.println("Products:")
	for _, p := range s.store.ListProducts() {
		s.println(formatProduct(p))
	}
	s.println("1. Add product")
	s.println("2. Update product")
	s.println("3. Remove product")
	s.println("0. Back")

	choice, err := s.prompt("Choice")
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return s.addProduct()
	case "2":
		return s.updateProduct()
	case "3":
		return s.removeProduct()
	case "0":
		return nil
	default:
		s.println("Invalid choice")
		return nil
	}
}

func (s *Session) addProduct() error {
	name, err := s.prompt("Name")
	if err != nil {
		return err
	}
	price, err := s.promptDecimal("Price")
	if err != nil {
		return err
	}
	quantity, err := s.promptQuantity("Quantity")
	if err != nil {
		return err
	}

	product, err := s.store.AddProduct(name, price, quantity)
	if err != nil {
		s.printf("Could not add product: %v\n", err)
		return nil
	}

	s.log.Info("product added", "product_id", product.ID, "name", product.Name)
	s.println("Product added!")
	return nil
}

func (s *Session) updateProduct() error {
	name, err := s.prompt("Product name")
	if err != nil {
		return err
	}
	if _, err := s.store.Catalog.FindByName(name); err != nil {
		s.println("Product not found.")
		return nil
	}

	price, err := s.promptDecimal("New price")
	if err != nil {
		return err
	}
	quantity, err := s.promptQuantity("New quantity")
	if err != nil {
		return err
	}

	product, err := s.store.UpdateProduct(name, price, quantity)
	if err != nil {
		if store.IsNotFound(err) {
			s.println("Product not found.")
			return nil
		}
		s.printf("Could not update product: %v\n", err)
		return nil
	}

	s.log.Info("product updated", "product_id", product.ID, "price", product.Price.String(), "quantity", product.Quantity)
	s.println("Changes saved!")
	return nil
}

func (s *Session) removeProduct() error {
	name, err := s.prompt("Product name")
	if err != nil {
		return err
	}

	removed := s.store.RemoveProduct(name)
	s.log.Info("products removed", "name", name, "count", removed)
	if removed == 0 {
		s.println("Product not found.")
		return nil
	}
	s.printf("Removed %d product(s)!\n", removed)
	return nil
}

func (s *Session) stats() {
	stats := s.store.OrderStats()
	s.println()
	s.println("Statistics:")
	s.printf("Total orders: %d\n", stats.Count)
	s.printf("Total amount: %s\n", formatMoney(stats.TotalAmount))
}
