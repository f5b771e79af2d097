package database

import (
	"errors"
	"log"
	"os"
	"time"

	"sugoroku/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migrated successfully.")
}

// Migrate runs the schema migrations on the given connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Space{},
		&models.Room{},
		&models.Membership{},
		&models.RoomLog{},
	)
}

// Seed creates the records the engine expects on a fresh database: the
// reserved virus user and the default board. It is idempotent.
func Seed(db *gorm.DB, virusNickname string) error {
	var virus models.User
	err := db.Where("is_virus = ?", true).First(&virus).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		virus = models.User{
			Nickname:     virusNickname,
			Email:        virusNickname + "@system.local",
			PasswordHash: "-", // never logs in
			IsVirus:      true,
		}
		if err := db.Create(&virus).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Board{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	board := models.Board{
		Name:         "default",
		GoalPosition: 10,
		Spaces: []models.Space{
			{Position: 2, Effect: models.EffectMoveForward, EffectNum: 3},
			{Position: 4, Effect: models.EffectMoveBackward, EffectNum: 2},
			{Position: 6, Effect: models.EffectSkipTurn},
			{Position: 8, Effect: models.EffectGoToStart},
		},
	}
	return db.Create(&board).Error
}
