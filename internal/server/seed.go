package server

import (
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"vitrine/internal/models"
)

// Seed populates the repositories with the demo catalog and the two demo
// accounts (customer@demo.com/password, admin@demo.com/admin123). Existing
// rows are left alone, so seeding a persistent database twice is harmless.
func Seed(repos Repositories) {
	seedUsers(repos)
	seedProducts(repos)
}

func seedUsers(repos Repositories) {
	demo := []struct {
		id       string
		email    string
		name     string
		role     string
		password string
	}{
		{"user-demo-customer", "customer@demo.com", "Demo Customer", models.RoleCustomer, "password"},
		{"user-demo-admin", "admin@demo.com", "Demo Admin", models.RoleAdmin, "admin123"},
	}

	for _, d := range demo {
		if existing, err := repos.Users.GetByEmail(d.email); err == nil && existing != nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password for demo user %s: %v", d.email, err)
			continue
		}
		user := &models.User{
			ID:       d.id,
			Email:    d.email,
			Name:     d.name,
			Role:     d.role,
			Password: string(hash),
		}
		if err := repos.Users.Create(user); err != nil {
			log.Printf("Error seeding demo user %s: %v", d.email, err)
		}
	}
}

func seedProducts(repos Repositories) {
	catalog := []models.Product{
		{ID: "1", Name: "Apple AirPods Pro", Description: "Active Noise Cancellation, Transparency mode, and spatial audio. Up to 6 hours of listening time with ANC enabled.", Price: decimal.NewFromFloat(199.99), ImageURL: "https://images.pexels.com/photos/8534088/pexels-photo-8534088.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Electronics", Stock: 50, Featured: true},
		{ID: "2", Name: "Sony WH-1000XM4 Headphones", Description: "Industry-leading noise canceling with Dual Noise Sensor technology. Up to 30-hour battery life with quick charge.", Price: decimal.NewFromFloat(349.99), ImageURL: "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Electronics", Stock: 25, Featured: true},
		{ID: "3", Name: "Organic Cotton T-Shirt", Description: "Comfortable and sustainable organic cotton t-shirt available in multiple colors. Made from 100% certified organic cotton.", Price: decimal.NewFromFloat(29.99), ImageURL: "https://images.pexels.com/photos/996329/pexels-photo-996329.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Clothing", Stock: 100},
		{ID: "4", Name: "Smart Fitness Watch", Description: "Advanced fitness tracking with heart rate monitoring, GPS, and smartphone integration. Water-resistant design for all activities.", Price: decimal.NewFromFloat(299.99), ImageURL: "https://images.pexels.com/photos/437037/pexels-photo-437037.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Electronics", Stock: 25, Featured: true},
		{ID: "5", Name: "Artisan Coffee Beans", Description: "Single-origin coffee beans roasted to perfection. Rich, full-bodied flavor with notes of chocolate and caramel.", Price: decimal.NewFromFloat(24.99), ImageURL: "https://images.pexels.com/photos/894695/pexels-photo-894695.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Food & Beverage", Stock: 75},
		{ID: "6", Name: "Minimalist Desk Lamp", Description: "Modern LED desk lamp with adjustable brightness and color temperature. Perfect for home office or study space.", Price: decimal.NewFromFloat(89.99), ImageURL: "https://images.pexels.com/photos/1112598/pexels-photo-1112598.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Home & Garden", Stock: 40},
		{ID: "7", Name: "Premium Yoga Mat", Description: "Non-slip yoga mat made from eco-friendly materials. Provides excellent grip and cushioning for all yoga practices.", Price: decimal.NewFromFloat(59.99), ImageURL: "https://images.pexels.com/photos/3822622/pexels-photo-3822622.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Sports & Fitness", Stock: 60, Featured: true},
		{ID: "8", Name: "Ceramic Plant Pot Set", Description: "Beautiful set of 3 ceramic plant pots in different sizes. Perfect for indoor plants and home decoration.", Price: decimal.NewFromFloat(45.99), ImageURL: "https://images.pexels.com/photos/1005058/pexels-photo-1005058.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Home & Garden", Stock: 35},
		{ID: "9", Name: "Leather Crossbody Bag", Description: "Handcrafted genuine leather crossbody bag with multiple compartments. Stylish and functional for everyday use.", Price: decimal.NewFromFloat(129.99), ImageURL: "https://images.pexels.com/photos/1152077/pexels-photo-1152077.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Fashion", Stock: 20},
		{ID: "10", Name: "Stainless Steel Water Bottle", Description: "Insulated stainless steel water bottle that keeps drinks cold for 24 hours or hot for 12 hours. BPA-free and eco-friendly.", Price: decimal.NewFromFloat(34.99), ImageURL: "https://images.pexels.com/photos/1000084/pexels-photo-1000084.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Sports & Fitness", Stock: 80},
		{ID: "11", Name: "Wireless Phone Charger", Description: "Fast wireless charging pad compatible with all Qi-enabled devices. Sleek design with LED charging indicator.", Price: decimal.NewFromFloat(39.99), ImageURL: "https://images.pexels.com/photos/4526414/pexels-photo-4526414.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Electronics", Stock: 45, Featured: true},
		{ID: "12", Name: "MacBook Pro 14-inch", Description: "Apple M2 Pro chip, 16GB RAM, 512GB SSD. Perfect for professionals and creatives with stunning Liquid Retina XDR display.", Price: decimal.NewFromFloat(1999.99), ImageURL: "https://images.pexels.com/photos/205421/pexels-photo-205421.jpeg?auto=compress&cs=tinysrgb&w=500", Category: "Electronics", Stock: 15, Featured: true},
	}

	for i := range catalog {
		if existing, err := repos.Products.GetByID(catalog[i].ID); err == nil && existing != nil {
			continue
		}
		if err := repos.Products.Create(&catalog[i]); err != nil {
			log.Printf("Error seeding product %s: %v", catalog[i].Name, err)
		}
	}
}
