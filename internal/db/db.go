package db

import (
	"log"

	"github.com/idolchat/idolchat/internal/billing"
	"github.com/idolchat/idolchat/internal/chat"
	"github.com/idolchat/idolchat/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func Connect(dsn string) *gorm.DB {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gdb.AutoMigrate(
		&models.User{},
		&billing.Subscriber{},
		&chat.Message{},
		&chat.RelayJob{},
	); err != nil {
		log.Fatalf("db migrate: %v", err)
	}
	return gdb
}
