package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"vitrine/internal/api"
	"vitrine/internal/models"
)

// Order pricing mirrors the storefront's summary box: shipping is free from
// $100, tax is a flat 8% of the subtotal.
var (
	freeShippingFrom = decimal.NewFromInt(100)
	shippingFlatRate = decimal.NewFromFloat(9.99)
	taxRate          = decimal.NewFromFloat(0.08)
)

var checkoutAddress models.Address
var checkoutPayment models.PaymentData

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Turn your cart into an order",
	RunE:  runCheckout,
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutAddress.Street, "street", "", "shipping street")
	checkoutCmd.Flags().StringVar(&checkoutAddress.City, "city", "", "shipping city")
	checkoutCmd.Flags().StringVar(&checkoutAddress.State, "state", "", "shipping state or province")
	checkoutCmd.Flags().StringVar(&checkoutAddress.ZipCode, "zip", "", "shipping zip or postal code")
	checkoutCmd.Flags().StringVar(&checkoutAddress.Country, "country", "", "shipping country")
	checkoutCmd.Flags().StringVar(&checkoutPayment.CardholderName, "card-name", "", "cardholder name")
	checkoutCmd.Flags().StringVar(&checkoutPayment.CardNumber, "card-number", "", "card number")
	checkoutCmd.Flags().StringVar(&checkoutPayment.ExpiryDate, "expiry", "", "card expiry (MM/YY)")
	checkoutCmd.Flags().StringVar(&checkoutPayment.CVV, "cvv", "", "card CVV")
}

func runCheckout(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}

	validate := validator.New()
	if err := validate.Struct(checkoutAddress); err != nil {
		return fmt.Errorf("incomplete shipping address: %w", err)
	}
	if err := validate.Struct(checkoutPayment); err != nil {
		return fmt.Errorf("incomplete payment details: %w", err)
	}

	// Check out against the freshest server cart, not a stale mirror.
	if err := app.cart.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	state := app.cart.State()
	if len(state.Items) == 0 {
		return fmt.Errorf("your cart is empty")
	}

	subtotal := state.Total
	shipping := shippingFlatRate
	if subtotal.GreaterThanOrEqual(freeShippingFrom) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(shipping).Add(tax)

	fmt.Printf("Subtotal: $%s\n", subtotal.StringFixed(2))
	if shipping.IsZero() {
		fmt.Println("Shipping: Free")
	} else {
		fmt.Printf("Shipping: $%s\n", shipping.StringFixed(2))
	}
	fmt.Printf("Tax:      $%s\n", tax.StringFixed(2))
	fmt.Printf("Total:    $%s\n", total.StringFixed(2))

	order, err := app.client.Checkout(cmd.Context(), api.CheckoutRequest{
		Items:           state.Items,
		ShippingAddress: checkoutAddress,
		PaymentData:     checkoutPayment,
		Total:           total,
	})
	if err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	// The server cleared the cart as part of checkout; resync the mirror.
	// A failed resync is not fatal, the order already exists.
	_ = app.cart.Refresh(cmd.Context())

	fmt.Printf("\nOrder %s placed. Status: %s\n", order.ID, order.Status)
	return nil
}
