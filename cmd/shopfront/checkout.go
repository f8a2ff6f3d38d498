package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/cart"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/checkout"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/gateway"
)

// runCheckout walks the shopper through the three-step wizard on the
// terminal. "back" on step 2 or 3 returns to the previous step with
// entered values kept.
func runCheckout(ctx context.Context, gw *gateway.Client, ledger *cart.Ledger, in io.Reader, out io.Writer) error {
	wizard := checkout.NewWizard(gw, ledger, nil)
	if wizard.Status() == checkout.StatusEmptyCart {
		fmt.Fprintln(out, "Your cart is empty. Add something before checking out.")
		return nil
	}

	reader := bufio.NewReader(in)
	var readErr error
	prompt := func(label, preset string) string {
		if readErr != nil {
			return preset
		}
		if preset != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, preset)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		line, err := reader.ReadString('\n')
		if err != nil {
			readErr = err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return preset
		}
		return line
	}

	for wizard.Status() == checkout.StatusInProgress {
		if readErr != nil {
			return fmt.Errorf("checkout aborted: %w", readErr)
		}
		switch wizard.Step() {
		case checkout.StepShipping:
			fmt.Fprintln(out, "\n— Shipping —")
			s := wizard.Shipping()
			s.FirstName = prompt("First name", s.FirstName)
			s.LastName = prompt("Last name", s.LastName)
			s.Email = prompt("Email", s.Email)
			s.Address = prompt("Address", s.Address)
			s.City = checkout.FormatCity(prompt("City", s.City))
			s.Zip = checkout.FormatZip(prompt("ZIP", s.Zip))
			if errs := wizard.SubmitShipping(s); len(errs) > 0 {
				printFieldErrors(out, errs)
			}

		case checkout.StepPayment:
			fmt.Fprintln(out, "\n— Payment — (type \"back\" to return to shipping)")
			p := wizard.Payment()
			name := prompt("Name on card", p.NameOnCard)
			if strings.EqualFold(name, "back") {
				wizard.Back()
				continue
			}
			p.NameOnCard = name
			p.CardNumber = checkout.FormatCardNumber(prompt("Card number", p.CardNumber))
			p.Expiry = checkout.FormatExpiry(prompt("Expiry (MM/YY)", p.Expiry))
			p.CVV = checkout.FormatCVV(prompt("CVV", p.CVV))
			if errs := wizard.SubmitPayment(p); len(errs) > 0 {
				printFieldErrors(out, errs)
			}

		case checkout.StepReview:
			fmt.Fprintln(out, "\n— Review —")
			s := wizard.Shipping()
			fmt.Fprintf(out, "Ship to: %s %s, %s, %s %s\n", s.FirstName, s.LastName, s.Address, s.City, s.Zip)
			for _, item := range ledger.Items() {
				fmt.Fprintf(out, "  %s x%d  $%.2f\n", item.Name, item.Quantity, item.Subtotal())
			}
			fmt.Fprintf(out, "Subtotal $%.2f  Tax $%.2f  Total $%.2f\n",
				wizard.Subtotal(), wizard.Tax(), wizard.GrandTotal())

			answer := prompt("Place order? (yes/back)", "yes")
			if readErr != nil {
				return fmt.Errorf("checkout aborted: %w", readErr)
			}
			if strings.EqualFold(answer, "back") {
				wizard.Back()
				continue
			}
			results := wizard.PlaceOrder(ctx)
			fmt.Fprintln(out, "\nOrder confirmed! You'll receive a confirmation email shortly.")
			for _, r := range results {
				if r.Err == nil && r.OrderID != 0 {
					fmt.Fprintf(out, "  line for product %d recorded as order %d\n", r.ProductID, r.OrderID)
				}
			}
		}
	}
	return nil
}

func printFieldErrors(out io.Writer, errs map[string]string) {
	fmt.Fprintln(out, "Please fix:")
	for field, msg := range errs {
		fmt.Fprintf(out, "  %s: %s\n", field, msg)
	}
}
