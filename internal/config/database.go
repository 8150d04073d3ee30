package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/GuilhermeTebaldi/saleday-sub000/internal/models"
)

var DB *gorm.DB // global instance

func InitDB() error {

	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	dsn := os.Getenv("SERVICE_URI")
	if dsn == "" {
		log.Fatal("CANNOT READ SERVICE_URI IN ENVIRONMENT")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Message{},
		&models.ProductQuestion{},
		&models.Order{},
	)

	if err != nil {
		return err
	}

	DB = db

	log.Println("DB SYNC")
	return nil
}
