package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/cart"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/domain"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/gateway"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/session"
)

// productCmd covers catalog reads plus the admin mutations. The admin
// gate mirrors the web client: role ADMIN or the literal admin user.
func productCmd(ctx context.Context, args []string, gw *gateway.Client, sess *session.Manager) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: shopfront product get|add|update|delete ...")
	}
	switch args[0] {
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: shopfront product get <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		p, err := gw.GetProduct(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("%d  %s\n  %s\n  $%.2f, %d in stock, category %s\n",
			p.ID, p.Name, p.Description, p.Price, p.StockQuantity, p.Category)
		return nil

	case "add":
		if !sess.IsAdmin() {
			return fmt.Errorf("admin access required")
		}
		if len(args) != 5 {
			return fmt.Errorf("usage: shopfront product add <name> <price> <stock> <category>")
		}
		price, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", args[2])
		}
		stock, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid stock %q", args[3])
		}
		created, err := gw.CreateProduct(ctx, domain.Product{
			Name:          args[1],
			Price:         price,
			StockQuantity: stock,
			Category:      args[4],
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created product %d\n", created.ID)
		return nil

	case "update":
		if !sess.IsAdmin() {
			return fmt.Errorf("admin access required")
		}
		if len(args) != 6 {
			return fmt.Errorf("usage: shopfront product update <id> <name> <price> <stock> <category>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		price, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q", args[3])
		}
		stock, err := strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("invalid stock %q", args[4])
		}
		if err := gw.UpdateProduct(ctx, id, domain.Product{
			ID:            id,
			Name:          args[2],
			Price:         price,
			StockQuantity: stock,
			Category:      args[5],
		}); err != nil {
			return err
		}
		fmt.Printf("Updated product %d\n", id)
		return nil

	case "delete":
		if !sess.IsAdmin() {
			return fmt.Errorf("admin access required")
		}
		if len(args) != 2 {
			return fmt.Errorf("usage: shopfront product delete <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := gw.DeleteProduct(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted product %d\n", id)
		return nil

	default:
		return fmt.Errorf("unknown product subcommand %q", args[0])
	}
}

func cartCmd(ctx context.Context, args []string, gw *gateway.Client, ledger *cart.Ledger) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "show":
		items := ledger.Items()
		if len(items) == 0 {
			fmt.Println("Your cart is empty.")
			return nil
		}
		for _, item := range items {
			fmt.Printf("%6d  %-30s  x%-3d  $%.2f\n", item.ProductID, item.Name, item.Quantity, item.Subtotal())
		}
		fmt.Printf("%d items, subtotal $%.2f\n", ledger.Count(), ledger.Total())
		return nil

	case "add":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: shopfront cart add <productId> [quantity]")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		quantity := 1
		if len(args) == 3 {
			quantity, err = strconv.Atoi(args[2])
			if err != nil || quantity < 1 {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
		}
		product, err := gw.GetProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to look up product %d: %w", id, err)
		}
		ledger.AddItem(*product, quantity)
		fmt.Printf("Added %s x%d (cart: %d items)\n", product.Name, quantity, ledger.Count())
		return nil

	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: shopfront cart set <productId> <quantity>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		quantity, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[2])
		}
		ledger.UpdateQuantity(id, quantity)
		fmt.Printf("Cart: %d items\n", ledger.Count())
		return nil

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: shopfront cart rm <productId>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		ledger.RemoveItem(id)
		fmt.Printf("Cart: %d items\n", ledger.Count())
		return nil

	case "clear":
		ledger.Clear()
		fmt.Println("Cart cleared.")
		return nil

	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}
