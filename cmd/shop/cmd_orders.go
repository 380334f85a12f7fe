package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vitrine/internal/models"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	RunE:  runMyOrders,
}

func runMyOrders(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	orders, err := app.client.MyOrders(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	if len(orders) == 0 {
		fmt.Println("No orders yet.")
		return nil
	}
	for _, order := range orders {
		printOrder(order, false)
	}
	return nil
}

func printOrder(order models.Order, withUser bool) {
	fmt.Printf("Order %s  %s  $%s  %s\n",
		order.ID, order.CreatedAt.Format(time.RFC3339), order.Total.StringFixed(2), order.Status)
	if withUser {
		fmt.Printf("  User: %s\n", order.UserID)
	}
	for _, item := range order.Items {
		fmt.Printf("  %-35s x%-3d $%s\n", item.Product.Name, item.Quantity, item.LineTotal.StringFixed(2))
	}
}
