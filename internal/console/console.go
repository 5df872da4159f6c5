// Package console runs the menu-driven text interface on top of the store.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/safar/go-warehouse/internal/models"
	"github.com/safar/go-warehouse/internal/store"
	"github.com/shopspring/decimal"
)

// errInputClosed ends the session when the input runs out.
var errInputClosed = errors.New("input closed")

type Session struct {
	store *store.Store
	in    *bufio.Reader
	out   io.Writer
	log   *slog.Logger
}

func NewSession(s *store.Store, in io.Reader, out io.Writer, log *slog.Logger) *Session {
	return &Session{
		store: s,
		in:    bufio.NewReader(in),
		out:   out,
		log:   log,
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

// prompt reads one whole line of any length. A last line without a trailing
// newline still counts.
func (s *Session) prompt(label string) (string, error) {
	s.printf("%s: ", label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			return "", errInputClosed
		}
	}
	return strings.TrimSpace(line), nil
}

// promptInt keeps asking until the answer is an integer in [lo, hi].
func (s *Session) promptInt(label string, lo, hi int) (int, error) {
	for {
		text, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err != nil || n < lo || n > hi {
			s.printf("Enter a number from %d to %d.\n", lo, hi)
			continue
		}
		return n, nil
	}
}

func (s *Session) promptDecimal(label string) (decimal.Decimal, error) {
	for {
		text, err := s.prompt(label)
		if err != nil {
			return decimal.Zero, err
		}
		d, err := decimal.NewFromString(text)
		if err != nil || d.IsNegative() {
			s.println("Enter a non-negative number.")
			continue
		}
		return d, nil
	}
}

func (s *Session) promptQuantity(label string) (int, error) {
	for {
		text, err := s.prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err != nil || n < 0 {
			s.println("Enter a non-negative whole number.")
			continue
		}
		return n, nil
	}
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatProduct(p models.Product) string {
	return fmt.Sprintf("%-15s | %12s | %4d pcs", p.Name, formatMoney(p.Price), p.Quantity)
}

func formatOrder(o models.Order) string {
	return fmt.Sprintf("Order #%d by %s | Status: %s | Total: %s", o.ID, o.UserLogin, o.Status, formatMoney(o.Total()))
}

// Run shows the main menu until the user exits or the input ends.
func (s *Session) Run() error {
	for {
		s.println()
		s.println("WAREHOUSE ACCOUNTING SYSTEM")
		s.println("1. Register")
		s.println("2. Log in")
		s.println("0. Exit")

		choice, err := s.prompt("Choice")
		if err != nil {
			return ignoreClosed(err)
		}

		switch choice {
		case "1":
			err = s.register()
		case "2":
			err = s.login()
		case "0":
			s.println("Bye")
			return nil
		default:
			s.println("Invalid choice")
		}
		if err != nil {
			return ignoreClosed(err)
		}
	}
}

func ignoreClosed(err error) error {
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

func (s *Session) register() error {
	name, err := s.prompt("Name")
	if err != nil {
		return err
	}
	login, err := s.prompt("Login")
	if err != nil {
		return err
	}
	password, err := s.prompt("Password")
	if err != nil {
		return err
	}

	user, err := s.store.Register(name, login, password)
	if err != nil {
		s.printf("Registration failed: %v\n", err)
		return nil
	}

	s.log.Info("user registered", "user_id", user.ID, "login", user.Login)
	s.println("Registration successful!")
	return nil
}

func (s *Session) login() error {
	login, err := s.prompt("Login")
	if err != nil {
		return err
	}
	password, err := s.prompt("Password")
	if err != nil {
		return err
	}

	user, err := s.store.Login(login, password)
	if err != nil {
		s.log.Warn("login failed", "login", login)
		s.println("ERROR: invalid login or password.")
		return nil
	}

	s.log.Info("user logged in", "user_id", user.ID, "role", user.Role.String())
	s.println("Logged in.")

	if user.IsAdmin() {
		return s.adminMenu(user)
	}
	return s.userMenu(user)
}
