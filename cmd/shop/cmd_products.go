package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vitrine/internal/models"
)

var (
	productsCategory string
	productsFeatured bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
	RunE:  runProductsList,
}

var productsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one product in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductShow,
}

func init() {
	productsCmd.Flags().StringVar(&productsCategory, "category", "", "only show this category")
	productsCmd.Flags().BoolVar(&productsFeatured, "featured", false, "only show featured products")
	productsCmd.AddCommand(productsShowCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	products, err := app.client.ListProducts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	shown := 0
	for _, p := range products {
		if productsCategory != "" && !strings.EqualFold(p.Category, productsCategory) {
			continue
		}
		if productsFeatured && !p.Featured {
			continue
		}
		printProductLine(p)
		shown++
	}
	if shown == 0 {
		fmt.Println("No products match.")
	}
	return nil
}

func runProductShow(cmd *cobra.Command, args []string) error {
	product, err := app.client.GetProduct(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load product: %w", err)
	}

	fmt.Printf("%s\n", product.Name)
	fmt.Println(strings.Repeat("-", len(product.Name)))
	if product.Description != "" {
		fmt.Println(product.Description)
	}
	fmt.Printf("Price:    $%s\n", product.Price.StringFixed(2))
	fmt.Printf("Category: %s\n", product.Category)
	fmt.Printf("Stock:    %d\n", product.Stock)
	if product.Featured {
		fmt.Println("Featured")
	}
	return nil
}

func printProductLine(p models.Product) {
	marker := " "
	if p.Featured {
		marker = "*"
	}
	fmt.Printf("%s %-4s %-35s $%9s  stock %d\n", marker, p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
}
