package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"vitrine/internal/models"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Catalog and order administration",
}

var adminOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List every order",
	RunE:  runAdminOrders,
}

var adminOrdersStatusCmd = &cobra.Command{
	Use:   "status <orderId> <status>",
	Short: "Set an order's status",
	Long:  `Set an order's status. Valid statuses: pending, processing, shipped, delivered, cancelled.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminOrderStatus,
}

var adminProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the catalog",
}

var (
	adminProductName        string
	adminProductDescription string
	adminProductPrice       string
	adminProductImageURL    string
	adminProductCategory    string
	adminProductStock       int
	adminProductFeatured    bool
)

var adminProductsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	RunE:  runAdminProductCreate,
}

var adminProductsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminProductUpdate,
}

var adminProductsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminProductDelete,
}

var adminProductsImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Bulk-import products from a JSON file",
	Long: `Bulk-import products from a JSON file holding an array of products.
Products whose IDs already exist are skipped, not overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdminProductImport,
}

func init() {
	adminCmd.AddCommand(adminOrdersCmd)
	adminOrdersCmd.AddCommand(adminOrdersStatusCmd)
	adminCmd.AddCommand(adminProductsCmd)
	adminProductsCmd.AddCommand(adminProductsCreateCmd)
	adminProductsCmd.AddCommand(adminProductsUpdateCmd)
	adminProductsCmd.AddCommand(adminProductsDeleteCmd)
	adminProductsCmd.AddCommand(adminProductsImportCmd)

	for _, cmd := range []*cobra.Command{adminProductsCreateCmd, adminProductsUpdateCmd} {
		cmd.Flags().StringVar(&adminProductName, "name", "", "product name")
		cmd.Flags().StringVar(&adminProductDescription, "description", "", "product description")
		cmd.Flags().StringVar(&adminProductPrice, "price", "0", "product price")
		cmd.Flags().StringVar(&adminProductImageURL, "image-url", "", "product image URL")
		cmd.Flags().StringVar(&adminProductCategory, "category", "", "product category")
		cmd.Flags().IntVar(&adminProductStock, "stock", 0, "units in stock")
		cmd.Flags().BoolVar(&adminProductFeatured, "featured", false, "mark as featured")
	}
	adminProductsCreateCmd.MarkFlagRequired("name")
	adminProductsCreateCmd.MarkFlagRequired("price")
}

func runAdminOrders(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	orders, err := app.client.AllOrders(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}
	if len(orders) == 0 {
		fmt.Println("No orders.")
		return nil
	}
	for _, order := range orders {
		printOrder(order, true)
	}
	return nil
}

func runAdminOrderStatus(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	status := models.OrderStatus(args[1])
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", args[1])
	}
	if err := app.client.UpdateOrderStatus(cmd.Context(), args[0], status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	fmt.Printf("Order %s is now %s.\n", args[0], status)
	return nil
}

func productFromFlags() (models.Product, error) {
	price, err := decimal.NewFromString(adminProductPrice)
	if err != nil {
		return models.Product{}, fmt.Errorf("invalid price %q: %w", adminProductPrice, err)
	}
	return models.Product{
		Name:        adminProductName,
		Description: adminProductDescription,
		Price:       price,
		ImageURL:    adminProductImageURL,
		Category:    adminProductCategory,
		Stock:       adminProductStock,
		Featured:    adminProductFeatured,
	}, nil
}

func runAdminProductCreate(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	product, err := productFromFlags()
	if err != nil {
		return err
	}
	created, err := app.client.CreateProduct(cmd.Context(), product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	fmt.Printf("Created product %s (%s).\n", created.ID, created.Name)
	return nil
}

func runAdminProductUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	product, err := productFromFlags()
	if err != nil {
		return err
	}
	updated, err := app.client.UpdateProduct(cmd.Context(), args[0], product)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	fmt.Printf("Updated product %s (%s).\n", updated.ID, updated.Name)
	return nil
}

func runAdminProductDelete(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}
	if err := app.client.DeleteProduct(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	fmt.Printf("Deleted product %s.\n", args[0])
	return nil
}

func runAdminProductImport(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(); err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return fmt.Errorf("import file is not a JSON product array: %w", err)
	}

	result, err := app.client.ImportProducts(cmd.Context(), products)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if len(result.Errors) > 0 {
		fmt.Printf("Import complete! Created: %d, Skipped: %d. Errors: %d\n", result.Created, result.Skipped, len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	} else {
		fmt.Printf("Import complete! Created: %d, Skipped: %d\n", result.Created, result.Skipped)
	}

	// Show the catalog as the backend now holds it.
	return runProductsList(cmd, nil)
}
