// Package cli is the console menu driving the store.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/checkout"
	"storefront/pkg/logger"
	"storefront/pkg/order"
	"storefront/pkg/payment"
)

var (
	// ErrInvalidInput indicates a non-numeric answer where a number was required.
	ErrInvalidInput = errors.New("invalid input, please enter a valid number")
	// ErrInvalidMenuChoice indicates a main menu choice outside 1-4.
	ErrInvalidMenuChoice = errors.New("invalid menu choice, please select 1-4")
	// ErrInvalidConfirmation indicates an answer other than Y or N.
	ErrInvalidConfirmation = errors.New("please enter Y or N")
)

const rule = "---------------------------------------------------------"

// Store is the checkout behavior the menu depends on.
type Store interface {
	Checkout(ctx context.Context, c *cart.Cart, method payment.Method) (order.Order, error)
	History(ctx context.Context) ([]order.Order, error)
}

// App reads menu selections from in and dispatches them to the store.
type App struct {
	in      *bufio.Scanner
	out     io.Writer
	errOut  io.Writer
	catalog *catalog.Catalog
	cart    *cart.Cart
	store   Store
	log     *logger.Logger
}

// New creates the menu application around the session cart.
func New(in io.Reader, out, errOut io.Writer, cat *catalog.Catalog, c *cart.Cart, store Store, lg *logger.Logger) *App {
	return &App{
		in:      bufio.NewScanner(in),
		out:     out,
		errOut:  errOut,
		catalog: cat,
		cart:    c,
		store:   store,
		log:     lg,
	}
}

// Run loops over the main menu until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := a.step(ctx)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.out, "\nThank you for shopping with us!")
			return nil
		}
		if err != nil {
			a.report(ctx, err)
		}
		if quit {
			return nil
		}
	}
}

func (a *App) step(ctx context.Context) (quit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error(ctx, "menu iteration panicked", "panic", r)
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	fmt.Fprint(a.out, "\n===== Online Store Menu =====\n1. View Products\n2. View Shopping Cart\n3. View Orders\n4. Exit\n")
	choice, err := a.readInt("Enter your choice (1-4): ")
	if err != nil {
		return false, err
	}

	switch choice {
	case 1:
		return false, a.browse(ctx)
	case 2:
		return false, a.viewCart(ctx)
	case 3:
		return false, a.viewOrders(ctx)
	case 4:
		fmt.Fprintln(a.out, "Thank you for shopping with us!")
		return true, nil
	default:
		return false, ErrInvalidMenuChoice
	}
}

func (a *App) browse(ctx context.Context) error {
	for {
		a.printProducts()
		id, err := a.readInt("Enter the ID of the product you want to add to the shopping cart: ")
		if err != nil {
			return err
		}
		if err := a.addToCart(id); err != nil {
			a.report(ctx, err)
		} else {
			fmt.Fprintln(a.out, "Product added successfully!")
		}

		more, err := a.readYesNo("Do you want to add another product? (Y/N): ")
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (a *App) addToCart(id int) error {
	p, err := a.catalog.Find(id)
	if err != nil {
		return err
	}
	return a.cart.Add(p, 1)
}

func (a *App) viewCart(ctx context.Context) error {
	if a.cart.IsEmpty() {
		fmt.Fprintln(a.out, "Your shopping cart is empty.")
		return nil
	}
	if err := a.printCart(); err != nil {
		return err
	}

	yes, err := a.readYesNo("Do you want to check out all the products? (Y/N): ")
	if err != nil || !yes {
		return err
	}

	fmt.Fprintln(a.out, "\nSelect payment method:")
	for i, m := range payment.Methods() {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, m)
	}
	n, err := a.readInt(fmt.Sprintf("Enter your choice (1-%d): ", len(payment.Methods())))
	if err != nil {
		return err
	}
	method, err := payment.FromChoice(n)
	if err != nil {
		return err
	}

	o, err := a.store.Checkout(ctx, a.cart, method)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\nYou have successfully checked out the products!")
	fmt.Fprintf(a.out, "Order ID: %s\n", o.ID)
	fmt.Fprintf(a.out, "Payment Method: %s\n", o.PaymentMethod)
	fmt.Fprintf(a.out, "Total Amount: %s\n", money(o.Total))
	return nil
}

func (a *App) viewOrders(ctx context.Context) error {
	orders, err := a.store.History(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n===== Order History =====")
	for _, o := range orders {
		fmt.Fprintln(a.out, rule)
		fmt.Fprintf(a.out, "Order ID: %s\nPayment Method: %s\n", o.ID, o.PaymentMethod)
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tName\tPrice\tQty")
		for _, l := range o.Lines {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", l.ProductID, l.Name, money(l.Price), l.Quantity)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Total Amount: %s\n", money(o.Total))
	}
	fmt.Fprintln(a.out, rule)
	return nil
}

func (a *App) printProducts() {
	fmt.Fprintln(a.out, "\nAvailable Products:")
	fmt.Fprintln(a.out, rule)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tPrice")
	for _, p := range a.catalog.List() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, money(p.Price))
	}
	tw.Flush()
	fmt.Fprintln(a.out, rule)
}

func (a *App) printCart() error {
	total, err := a.cart.Total()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\nShopping Cart:")
	fmt.Fprintln(a.out, rule)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tPrice\tQty\tTotal")
	for _, l := range a.cart.Lines() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", l.Product.ID, l.Product.Name, money(l.Product.Price), l.Quantity, money(l.Subtotal()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "Total: %s\n", money(total))
	fmt.Fprintln(a.out, rule)
	return nil
}

// readInt prompts until the answer parses as an integer. Only io.EOF or a
// read error ends the loop.
func (a *App) readInt(prompt string) (int, error) {
	for {
		line, err := a.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintf(a.errOut, "Error: %v\n", ErrInvalidInput)
	}
}

func (a *App) readYesNo(prompt string) (bool, error) {
	line, err := a.readLine(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToUpper(line) {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	default:
		return false, ErrInvalidConfirmation
	}
}

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.in.Text()), nil
}

func (a *App) report(ctx context.Context, err error) {
	a.log.Warn(ctx, "menu action failed", "error", err)
	msg := err.Error()
	if errors.Is(err, checkout.ErrOrderNotRecorded) {
		msg += " (your cart has been kept)"
	}
	fmt.Fprintf(a.errOut, "Error: %s\n", msg)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
