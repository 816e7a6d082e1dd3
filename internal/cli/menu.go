package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tungshoop/tungcart/internal/export"
	service "github.com/tungshoop/tungcart/internal/services"
)

// Menu is the interactive shopping loop. It is a thin wrapper: every decision
// about stock and quantities belongs to the cart service.
type Menu struct {
	cart     *service.CartService
	exporter *export.Exporter
	in       *bufio.Scanner
	out      io.Writer
}

func NewMenu(cart *service.CartService, exporter *export.Exporter, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		cart:     cart,
		exporter: exporter,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

func (m *Menu) Run(ctx context.Context) {
	for {
		fmt.Fprintln(m.out, "\n=*=*=*=*=*= TUNGCART SHOPPING MENU =*=*=*=*=*=")
		fmt.Fprintln(m.out, "1. View Products")
		fmt.Fprintln(m.out, "2. Add Product to Cart")
		fmt.Fprintln(m.out, "3. View Cart")
		fmt.Fprintln(m.out, "4. Update Quantity in Cart")
		fmt.Fprintln(m.out, "5. Remove Item from Cart")
		fmt.Fprintln(m.out, "6. Clear Cart")
		fmt.Fprintln(m.out, "7. Checkout")
		fmt.Fprintln(m.out, "8. Export Cart")
		fmt.Fprintln(m.out, "9. Exit")

		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			m.displayProducts()
		case "2":
			m.addItem(ctx)
		case "3":
			m.displayCart()
		case "4":
			m.updateQuantity(ctx)
		case "5":
			m.removeItem(ctx)
		case "6":
			if ok, err := m.cart.ClearCart(ctx); !ok {
				fmt.Fprintf(m.out, "❌ %s\n", err.Error())
			} else {
				fmt.Fprintln(m.out, "🗑️ Cart cleared.")
			}
		case "7":
			m.checkout(ctx)
		case "8":
			m.exportCart()
		case "9":
			fmt.Fprintln(m.out, "👋 Exiting... Have a great day!")

			return
		default:
			fmt.Fprintln(m.out, "⚠️ Invalid choice, please try again.")
		}
	}
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)

	if !m.in.Scan() {
		return "", false
	}

	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) promptInt(label string) (int, bool) {
	raw, ok := m.prompt(label)
	if !ok {
		return 0, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(m.out, "❌ Please enter a valid number!")

		return 0, false
	}

	return value, true
}

func (m *Menu) displayProducts() {
	products := m.cart.Products()
	if len(products) == 0 {
		fmt.Fprintln(m.out, "⚠️ Catalog is empty!")

		return
	}

	fmt.Fprintln(m.out, "\n-*-*-*-*-*- PRODUCT CATALOG -*-*-*-*-*-")

	for _, p := range products {
		fmt.Fprintln(m.out, p.DisplayDetails())
	}
}

func (m *Menu) displayCart() {
	snapshot := m.cart.Snapshot()
	if snapshot.Empty() {
		fmt.Fprintln(m.out, "🛒 Your cart is empty, time to add some items!")

		return
	}

	fmt.Fprintln(m.out, "\n-=*=--=*=--=*=- CART CONTENTS -=*=--=*=--=*=-")

	for _, item := range snapshot.Items {
		fmt.Fprintf(m.out, "Item: %s | Quantity: %d | Unit Price: ₺%s | Subtotal: ₺%s\n",
			item.Name, item.Quantity, item.Price, item.Subtotal)
	}

	fmt.Fprintf(m.out, "Total Amount: ₺%s\n", snapshot.Total)
}

func (m *Menu) addItem(ctx context.Context) {
	productID, ok := m.prompt("Enter Product ID: ")
	if !ok {
		return
	}

	quantity, ok := m.promptInt("Enter Quantity: ")
	if !ok {
		return
	}

	if ok, err := m.cart.AddItem(ctx, productID, quantity); !ok {
		fmt.Fprintf(m.out, "⚠️ %s\n", err.Error())
	} else {
		fmt.Fprintf(m.out, "✅ %dx '%s' added to cart.\n", quantity, productID)
	}
}

func (m *Menu) updateQuantity(ctx context.Context) {
	productID, ok := m.prompt("Enter Product ID: ")
	if !ok {
		return
	}

	quantity, ok := m.promptInt("Enter New Quantity: ")
	if !ok {
		return
	}

	if ok, err := m.cart.UpdateQuantity(ctx, productID, quantity); !ok {
		fmt.Fprintf(m.out, "⚠️ %s\n", err.Error())
	} else {
		fmt.Fprintln(m.out, "✅ Quantity updated.")
	}
}

func (m *Menu) removeItem(ctx context.Context) {
	productID, ok := m.prompt("Enter Product ID to remove: ")
	if !ok {
		return
	}

	if ok, err := m.cart.RemoveItem(ctx, productID); !ok {
		fmt.Fprintf(m.out, "⚠️ %s\n", err.Error())
	} else {
		fmt.Fprintln(m.out, "✅ Item removed from cart.")
	}
}

func (m *Menu) checkout(ctx context.Context) {
	m.displayCart()

	if _, err := m.cart.Checkout(ctx); err != nil {
		fmt.Fprintf(m.out, "❌ %s\n", err.Error())

		return
	}

	fmt.Fprintln(m.out, "💳 Checkout complete. Thank you for shopping with us!")
}

func (m *Menu) exportCart() {
	snapshot := m.cart.Snapshot()
	if snapshot.Empty() {
		fmt.Fprintln(m.out, "🛒 Cart is empty, nothing to export.")

		return
	}

	format, ok := m.prompt(fmt.Sprintf("Enter format (%s): ", strings.Join(export.Formats(), ", ")))
	if !ok {
		return
	}

	path, err := m.exporter.Export(snapshot, format, "")
	if err != nil {
		fmt.Fprintf(m.out, "⚠️ %s\n", err.Error())

		return
	}

	fmt.Fprintf(m.out, "✅ Cart exported to %s\n", path)
}
