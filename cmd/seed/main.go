package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/velora-live/velora/db"
	"github.com/velora-live/velora/internal/config"
	"github.com/velora-live/velora/internal/models"
	"github.com/velora-live/velora/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect", zap.Error(err))
	}

	if err := db.Migrate(conn); err != nil {
		logger.Fatal("database migrate", zap.Error(err))
	}

	if err := wipe(conn); err != nil {
		logger.Fatal("wipe", zap.Error(err))
	}

	if err := seed(conn, logger); err != nil {
		logger.Fatal("seed", zap.Error(err))
	}

	logger.Info("seed complete")
}

func wipe(conn *gorm.DB) error {
	tables := []interface{}{
		&models.PointEvent{},
		&models.CreditsHistory{},
		&models.Relation{},
		&models.GroupInvitation{},
		&models.GroupMember{},
		&models.Group{},
		&models.AgencyHistory{},
		&models.AgencyMember{},
		&models.Profile{},
		&models.Item{},
		&models.StoreSection{},
		&models.LevelThreshold{},
		&models.User{},
		&models.Agency{},
	}

	session := conn.Session(&gorm.Session{AllowGlobalUpdate: true})

	if err := session.Exec("DELETE FROM store_section_items").Error; err != nil {
		return err
	}
	for _, table := range tables {
		if err := session.Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

func seed(conn *gorm.DB, logger *zap.Logger) error {
	users := services.NewUserService(conn, logger)
	analytics := services.NewAnalyticsService(conn, logger)

	accounts := []services.CreateUserInput{
		{Name: "John Doe", Email: "john@example.com", Password: "Password123"},
		{Name: "Jane Smith", Email: "jane@example.com", Password: "Password123"},
		{Name: "Alice Johnson", Email: "alice@example.com", Password: "Password123"},
	}

	var created []*models.User
	for _, account := range accounts {
		user, err := users.Register(account)
		if err != nil {
			return err
		}
		created = append(created, user)
		logger.Info("seeded user", zap.String("email", user.Email), zap.String("public_id", user.PublicID))
	}

	john, jane, alice := created[0], created[1], created[2]

	thresholds := []models.LevelThreshold{
		{Level: 2, FameThreshold: 100, RichThreshold: 50},
		{Level: 3, FameThreshold: 500, RichThreshold: 250},
		{Level: 4, FameThreshold: 2000, RichThreshold: 1000},
		{Level: 5, FameThreshold: 10000, RichThreshold: 5000},
	}
	if err := conn.Create(&thresholds).Error; err != nil {
		return err
	}

	items := []models.Item{
		{Name: "Excalibur", Type: "frame", Price: 100, Image: "sword.png"},
		{Name: "Ruby Glow", Type: "color", Price: 40, Image: "ruby.png"},
		{Name: "Golden Rose", Type: "gift", Price: 250, Image: "rose.png"},
	}
	if err := conn.Create(&items).Error; err != nil {
		return err
	}

	section := models.StoreSection{SectionName: "Frames", Items: items}
	if err := conn.Create(&section).Error; err != nil {
		return err
	}

	agency := models.Agency{Name: "Starlight Agency", Balance: 10000, AdminID: john.ID}
	if err := conn.Create(&agency).Error; err != nil {
		return err
	}
	member := models.AgencyMember{
		AgencyID:    agency.ID,
		UserID:      jane.ID,
		DayTarget:   100,
		MonthTarget: 3000,
		Credit:      450,
	}
	if err := conn.Create(&member).Error; err != nil {
		return err
	}
	if err := conn.Model(jane).Update("host_agency_id", agency.ID).Error; err != nil {
		return err
	}
	history := models.AgencyHistory{AgencyID: agency.ID, UserID: jane.ID, Amount: 450, Date: time.Now()}
	if err := conn.Create(&history).Error; err != nil {
		return err
	}

	group := models.Group{Name: "Night Owls", Description: "Late night hosts", AdminID: john.ID}
	if err := conn.Create(&group).Error; err != nil {
		return err
	}
	invitation := models.GroupInvitation{
		GroupID:   group.ID,
		UserID:    alice.ID,
		Status:    models.InvitationPending,
		InvitedAt: time.Now(),
	}
	if err := conn.Create(&invitation).Error; err != nil {
		return err
	}

	if err := users.Follow(jane.ID, john.PublicID); err != nil {
		return err
	}
	if err := users.Follow(alice.ID, john.PublicID); err != nil {
		return err
	}

	now := time.Now()
	events := []struct {
		user       *models.User
		fame, rich int64
		at         time.Time
	}{
		{john, 5, 2, now.AddDate(0, 0, -1)},
		{john, 3, 1, now.AddDate(0, 0, -1)},
		{john, 1, 1, now},
		{jane, 8, 4, now},
	}
	for _, event := range events {
		if err := analytics.RecordEvent(event.user.ID, event.fame, event.rich, "room-1", event.at); err != nil {
			return err
		}
	}

	return nil
}
