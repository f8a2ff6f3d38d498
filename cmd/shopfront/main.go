package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/caffeinated-sam/Hackathon-E-Commerce/config"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/cart"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/domain"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/gateway"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/session"
	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	kv := openStore(cfg, logger)
	defer kv.Close()

	gw := gateway.New(cfg.APIURL, cfg.APITimeout, logger)
	sess := session.NewManager(kv, gw, logger)
	gw.SetTokenSource(sess.Token)
	gw.SetUnauthorizedHook(func() {
		logger.Warn("session rejected by gateway, signing out")
		sess.Logout()
		fmt.Fprintln(os.Stderr, "Session expired. Please sign in again.")
	})
	ledger := cart.NewLedger(kv, logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := dispatch(ctx, os.Args[1], os.Args[2:], gw, sess, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore builds the configured durable store. A durable backend that
// cannot be opened degrades to the in-memory store so the client stays
// usable for the session.
func openStore(cfg *config.Config, logger *slog.Logger) store.KV {
	switch cfg.StoreBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return store.NewFallback(store.NewRedis(client, "shopfront:"), logger)
	case "memory":
		return store.NewMemory()
	default:
		path := cfg.StorePath
		if path == "" {
			p, err := store.DefaultPath()
			if err != nil {
				logger.Warn("no writable profile directory, state will not persist", "error", err)
				return store.NewMemory()
			}
			path = p
		}
		db, err := store.OpenSQLite(path)
		if err != nil {
			logger.Warn("failed to open local store, state will not persist", "path", path, "error", err)
			return store.NewMemory()
		}
		return store.NewFallback(db, logger)
	}
}

func dispatch(ctx context.Context, cmd string, args []string, gw *gateway.Client, sess *session.Manager, ledger *cart.Ledger) error {
	switch cmd {
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: shopfront login <username> <password>")
		}
		if !sess.Login(ctx, args[0], args[1]) {
			return fmt.Errorf("login failed: %s", sess.Err())
		}
		printSession(sess)
		return nil

	case "register":
		if len(args) != 3 {
			return fmt.Errorf("usage: shopfront register <username> <password> <email>")
		}
		if !sess.Register(ctx, args[0], args[1], args[2]) {
			return fmt.Errorf("registration failed: %s", sess.Err())
		}
		printSession(sess)
		return nil

	case "logout":
		sess.Logout()
		fmt.Println("Signed out.")
		return nil

	case "whoami":
		printSession(sess)
		return nil

	case "products":
		products, err := gw.ListProducts(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("%6d  %-30s  $%.2f  (%d in stock)\n", p.ID, p.Name, p.Price, p.StockQuantity)
		}
		return nil

	case "product":
		return productCmd(ctx, args, gw, sess)

	case "cart":
		return cartCmd(ctx, args, gw, ledger)

	case "checkout":
		return runCheckout(ctx, gw, ledger, os.Stdin, os.Stdout)

	case "orders":
		orders, err := gw.ListOrders(ctx)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("%6d  product %d x%d  %s  %s\n", o.ID, o.ProductID, o.Quantity, o.CustomerName, o.Status)
		}
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printSession(sess *session.Manager) {
	s, ok := sess.Current()
	if !ok {
		fmt.Println("Not signed in.")
		return
	}
	mode := ""
	if s.Kind == domain.SessionDemo {
		mode = " (demo mode)"
	}
	fmt.Printf("Signed in as %s [%s]%s\n", s.User.Username, s.User.Role, mode)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q", raw)
	}
	return id, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `shopfront — terminal storefront client

Commands:
  login <username> <password>
  register <username> <password> <email>
  logout | whoami
  products
  product get|add|update|delete ...
  cart show|add|set|rm|clear ...
  checkout
  orders`)
}
