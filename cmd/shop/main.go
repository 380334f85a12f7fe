// Command shop is the storefront client: it talks to the backend API,
// keeps the login session on disk, and mirrors the server-owned cart.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vitrine/internal/api"
	"vitrine/internal/cart"
	"vitrine/internal/config"
	"vitrine/internal/session"
	"vitrine/pkg/events"
)

// shopApp bundles the wired client-side components the commands run against.
type shopApp struct {
	cfg      *config.Config
	store    *session.Store
	sessions *session.Manager
	client   *api.Client
	cart     *cart.Synchronizer
	guard    *cart.AddGuard
	bus      *events.Bus

	stopWatcher func()
}

var app *shopApp

var rootCmd = &cobra.Command{
	Use:   "shop",
	Short: "Storefront client",
	Long: `shop is the command-line storefront client.

Browse the catalog, manage your cart, check out, and review orders.
Admins additionally manage the catalog and order statuses.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		app, err = newShopApp()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil && app.stopWatcher != nil {
			app.stopWatcher()
		}
	},
}

func newShopApp() (*shopApp, error) {
	cfg := config.Load()

	store, err := session.NewStore(cfg.SessionDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	bus := events.NewBus()
	client := api.New(cfg.APIBaseURL, store, bus)

	a := &shopApp{
		cfg:      cfg,
		store:    store,
		sessions: session.NewManager(store, client),
		client:   client,
		cart:     cart.New(client),
		guard:    cart.NewAddGuard(),
		bus:      bus,
	}
	a.stopWatcher = a.watchFailures()
	return a, nil
}

// watchFailures prints broadcast API failures to stderr so they surface even
// when a command swallows the error locally.
func (a *shopApp) watchFailures() func() {
	ch, cancel := a.bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for f := range ch {
			fmt.Fprintf(os.Stderr, "API error: %s\n", f.Message)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// requireLogin fails fast for commands that need an authenticated session.
func requireLogin() error {
	if !app.store.IsAuthenticated() {
		return fmt.Errorf("not logged in: run 'shop login <email>' first")
	}
	return nil
}

// requireAdmin fails fast for admin-only commands.
func requireAdmin() error {
	if err := requireLogin(); err != nil {
		return err
	}
	if !app.store.IsAdmin() {
		return fmt.Errorf("this command requires an admin account")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(cartCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(adminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
