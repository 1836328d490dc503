package initializers

import (
	"log"

	"github.com/savoria/savoria-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Setting{},
		&models.Reservation{},
	)
	if err != nil {
		log.Fatal("Failed to sync database:", err)
	}
	log.Println("Database synced successfully.")
}
