package console

import (
	"github.com/safar/go-warehouse/internal/models"
)

func (s *Session) userMenu(user *models.User) error {
	for {
		s.println()
		s.println("--- USER MENU ---")
		s.println("1. Search products")
		s.println("2. Create order")
		s.println("3. My orders")
		s.println("0. Log out")

		choice, err := s.prompt("Choice")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.search()
		case "2":
			err = s.createOrder(user)
		case "3":
			s.myOrders(user)
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

func (s *Session) search() error {
	query, err := s.prompt("Product name")
	if err != nil {
		return err
	}

	found := false
	for p := range s.store.Catalog.Search(query) {
		found = true
		s.println(formatProduct(p))
	}
	if !found {
		s.println("No products found.")
	}
	return nil
}

func (s *Session) createOrder(user *models.User) error {
	h, err := s.store.StartOrder(user)
	if err != nil {
		return err
	}

	for {
		products := s.store.ListProducts()
		s.println()
		s.println("Available products:")
		for i, p := range products {
			s.printf("%d. %s\n", i+1, formatProduct(p))
		}

		n, err := s.promptInt("Product number (0 to finish)", 0, len(products))
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}

		if err := s.store.AddToOrder(h, products[n-1].ID); err != nil {
			s.printf("Could not add product: %v\n", err)
			continue
		}
		s.printf("Added %s. Running total: %s\n", products[n-1].Name, formatMoney(s.store.DraftTotal(h)))
	}

	order, err := s.store.Finalize(h)
	if err != nil {
		s.printf("Could not create order: %v\n", err)
		return nil
	}

	s.log.Info("order placed", "order_id", order.ID, "user_id", user.ID, "lines", len(order.Lines), "total", order.Total().String())
	s.println("Order created: " + formatOrder(order))
	return nil
}

func (s *Session) myOrders(user *models.User) {
	orders := s.store.MyOrders(user)
	if len(orders) == 0 {
		s.println("You have no orders.")
		return
	}
	for _, o := range orders {
		s.println(formatOrder(o))
	}
}
