package data

import (
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/truthlenz/truthlenz/src/verifier/types"
)

func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(&types.VerificationCache{}, &types.VerificationFeedback{}); err != nil {
		log.Printf("mysql: migrate: %v", err)
	}
	return db
}
