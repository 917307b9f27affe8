// file: services/testutil_test.go
package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"FrostCTF/models"
)

// newTestDB 每个测试一个独立的内存库。连接数限制为 1，
// 避免 :memory: 在多连接下各自为营。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Event{},
		&models.Category{},
		&models.Challenge{},
		&models.Hint{},
		&models.Completion{},
		&models.HintReveal{},
		&models.SubmissionLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
