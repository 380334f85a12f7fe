// Command devserver runs the fixture storefront backend: the REST API the
// shop client talks to, seeded with the demo catalog and demo accounts.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vitrine/internal/config"
	"vitrine/internal/models"
	"vitrine/internal/server"
	"vitrine/internal/server/services"
	"vitrine/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	server.Seed(repos)

	// The broker is optional: without RABBITMQ_URL orders are still created,
	// just not announced.
	var publisher services.OrderEventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			handler := func(msg amqp.Delivery) error {
				log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeOrderEvents(handler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	app := server.New(repos, cfg.JWTSecret, publisher)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

func buildRepositories(cfg *config.Config) (server.Repositories, error) {
	switch cfg.DBDriver {
	case "memory":
		return server.MemoryRepositories(), nil
	case "postgres":
		db, err := gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
		if err != nil {
			return server.Repositories{}, err
		}
		return gormRepositories(db)
	default: // sqlite
		db, err := gorm.Open(sqlite.Open(cfg.DBDSN), &gorm.Config{})
		if err != nil {
			return server.Repositories{}, err
		}
		return gormRepositories(db)
	}
}

func gormRepositories(db *gorm.DB) (server.Repositories, error) {
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.Order{}); err != nil {
		return server.Repositories{}, err
	}
	return server.GORMRepositories(db), nil
}
