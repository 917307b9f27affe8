// file: database/connect.go
package database

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"FrostCTF/config"
	"FrostCTF/models"
)

var DB *gorm.DB

func Connect(cfg config.Config) {
	var err error
	// TranslateError 统一把驱动层唯一键冲突翻译为 gorm.ErrDuplicatedKey
	DB, err = gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// SetMaxIdleConns 用于设置连接池中空闲连接的最大数量。
	sqlDB.SetMaxIdleConns(10)

	// SetMaxOpenConns 设置打开数据库连接的最大数量。
	sqlDB.SetMaxOpenConns(100)

	// SetConnMaxLifetime 设置了连接可复用的最大时间。
	// 这对于解决 MySQL 的 'wait_timeout' 问题至关重要。
	sqlDB.SetConnMaxLifetime(time.Hour)
}

// MigrateTables 建表/同步表结构，启动时调用
func MigrateTables() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Event{},
		&models.EventSponsor{},
		&models.Category{},
		&models.Challenge{},
		&models.Hint{},
		&models.HintReveal{},
		&models.Completion{},
		&models.SubmissionLog{},
		&models.Resource{},
		&models.Team{},
		&models.TeamMember{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}
