package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit your cart",
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <productId> [quantity]",
	Short: "Add a product to the cart",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCartAdd,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <productId>",
	Short: "Remove a product from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartSetCmd = &cobra.Command{
	Use:   "set <productId> <quantity>",
	Short: "Set a cart line to an exact quantity",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartSet,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

func init() {
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartClearCmd)
}

func runCartShow(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	if err := app.cart.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	printCartState()
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	quantity := 1
	if len(args) == 2 {
		q, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %q", args[1])
		}
		quantity = q
	}

	productID := args[0]
	if !app.guard.Begin(productID) {
		fmt.Println("An add for this product is already in flight.")
		return nil
	}
	defer app.guard.End(productID)

	if err := app.cart.AddToCart(cmd.Context(), productID, quantity); err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	fmt.Println("Cart updated.")
	printCartState()
	return nil
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	if err := app.cart.RemoveFromCart(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove from cart: %w", err)
	}
	printCartState()
	return nil
}

func runCartSet(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("quantity must be a number: %q", args[1])
	}
	if err := app.cart.UpdateQuantity(cmd.Context(), args[0], quantity); err != nil {
		return fmt.Errorf("failed to update quantity: %w", err)
	}
	printCartState()
	return nil
}

func runCartClear(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	if err := app.cart.ClearCart(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	fmt.Println("Cart cleared.")
	return nil
}

func printCartState() {
	state := app.cart.State()
	if state.Err != "" {
		fmt.Printf("Warning: %s\n", state.Err)
	}
	if len(state.Items) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, item := range state.Items {
		fmt.Printf("  %-4s %-35s x%-3d $%s\n", item.ProductID, item.Product.Name, item.Quantity, item.LineTotal.StringFixed(2))
	}
	fmt.Printf("Items: %d  Subtotal: $%s\n", state.Count, state.Total.StringFixed(2))
}
