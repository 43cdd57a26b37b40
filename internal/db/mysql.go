package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const maxConnectAttempts = 10

// NewMySQL returns a connected GORM DB instance, retrying for a bounded
// number of attempts so the service survives a database that is still
// starting up.
func NewMySQL(dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 1; i <= maxConnectAttempts; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			return db, nil
		}
		log.Printf("connect mysql (attempt %d/%d): %v", i, maxConnectAttempts, err)
		time.Sleep(2 * time.Second)
	}

	return nil, fmt.Errorf("connect mysql after %d attempts: %w", maxConnectAttempts, err)
}
