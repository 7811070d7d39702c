package main

import (
	"fmt"
	"log"
	"os"

	"slserver/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// テーブルの作成
func AutoMigrateDB(db *gorm.DB) {
	err := db.AutoMigrate(&models.User{}, &models.RoomRecord{})
	if err != nil {
		panic("Error migrating tables: " + err.Error())
	}
	fmt.Println("User and RoomRecord tables created successfully")
}

func main() {
	// 環境変数からデータベースの接続情報を取得
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := "host=" + host + " user=" + user + " dbname=" + dbname + " password=" + password + " sslmode=" + sslmode
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	AutoMigrateDB(db)
}
