package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"bizdesk-backend/auth"
	"bizdesk-backend/models"
	"bizdesk-backend/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "bizdesk")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	// Parent tables before children.
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.Partner{},
		&models.SiteSettings{},
		&models.Stage{},
		&models.Service{},
		&models.ContactInquiry{},
		&models.TimeSlot{},
		&models.ConsultationBooking{},
		&models.Client{},
		&models.ClientService{},
		&models.Blog{},
		&models.FAQ{},
		&models.Testimonial{},
		&models.ServicePackage{},
		&models.EmailTemplate{},
		&models.AnalyticsEvent{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase fills an empty database with a default admin, the settings
// row, the starter stage catalogue and two weeks of weekday timeslots.
// Every section is count-guarded so reruns are no-ops.
func SeedDatabase() {
	seedAdmin()
	seedSettings()
	seedStages()
	seedTimeslots()
}

func seedAdmin() {
	ctx := context.Background()
	admins := repository.NewAdminRepository(DB)

	count, err := admins.Count(ctx)
	if err != nil {
		log.Printf("warning: failed to count admins: %v", err)
		return
	}
	if count > 0 {
		return
	}
	hash, err := auth.HashPassword(envOrDefault("ADMIN_PASSWORD", "admin123"))
	if err != nil {
		log.Printf("warning: failed to hash default admin password: %v", err)
		return
	}
	admin := models.Admin{
		ID:           uuid.NewString(),
		Username:     envOrDefault("ADMIN_USERNAME", "admin"),
		PasswordHash: hash,
		Email:        "admin@bizdesk.example",
	}
	if err := admins.Create(ctx, &admin); err != nil {
		log.Printf("warning: failed to create default admin: %v", err)
		return
	}
	log.Println("Default admin seeded")
}

func seedSettings() {
	var count int64
	DB.Model(&models.SiteSettings{}).Count(&count)
	if count > 0 {
		return
	}
	settings := models.DefaultSettings()
	if err := DB.Create(&settings).Error; err != nil {
		log.Printf("warning: failed to create default settings: %v", err)
		return
	}
	log.Println("Default settings seeded")
}

func seedStages() {
	var count int64
	DB.Model(&models.Stage{}).Count(&count)
	if count > 0 {
		return
	}

	audience := func(tags ...string) datatypes.JSON {
		b, _ := json.Marshal(tags)
		return datatypes.JSON(b)
	}

	stages := []models.Stage{
		{
			ID:       1,
			Title:    "Start",
			Subtitle: "Launch your business the right way",
			Phase:    "ideation",
			Services: []models.Service{
				{
					ServiceID:   "company-registration",
					Name:        "Company Registration",
					Description: "Private limited, LLP and OPC incorporation with end-to-end filing support.",
					Icon:        "building",
					Price:       "From ₹7,999",
					Duration:    "7-10 days",
					RelevantFor: audience("startup"),
				},
				{
					ServiceID:   "gst-registration",
					Name:        "GST Registration",
					Description: "GST registration and first-return handholding for new businesses.",
					Icon:        "receipt",
					Price:       "From ₹1,999",
					Duration:    "3-5 days",
					RelevantFor: audience("startup", "msme"),
				},
			},
		},
		{
			ID:       2,
			Title:    "Grow",
			Subtitle: "Stay compliant while you scale",
			Phase:    "growth",
			Services: []models.Service{
				{
					ServiceID:   "accounting-compliance",
					Name:        "Accounting & Compliance",
					Description: "Monthly bookkeeping, payroll, ROC filings and annual compliance calendar.",
					Icon:        "calculator",
					Price:       "From ₹4,999/mo",
					Duration:    "Ongoing",
					RelevantFor: audience("startup", "msme"),
				},
				{
					ServiceID:   "trademark-filing",
					Name:        "Trademark Filing",
					Description: "Brand name and logo trademark search, filing and objection handling.",
					Icon:        "shield",
					Price:       "From ₹5,999",
					Duration:    "2-3 days to file",
					RelevantFor: audience("startup", "msme"),
				},
			},
		},
		{
			ID:       3,
			Title:    "Scale",
			Subtitle: "Funding, audits and beyond",
			Phase:    "scale",
			Services: []models.Service{
				{
					ServiceID:   "fundraising-support",
					Name:        "Fundraising Support",
					Description: "Pitch readiness, due diligence preparation and term sheet advisory.",
					Icon:        "trending-up",
					Price:       "Custom",
					Duration:    "Engagement based",
					RelevantFor: audience("startup"),
				},
			},
		},
	}

	if err := DB.Create(&stages).Error; err != nil {
		log.Printf("warning: failed to seed stages: %v", err)
		return
	}
	log.Println("Stages seeded")
}

func seedTimeslots() {
	var count int64
	DB.Model(&models.TimeSlot{}).Count(&count)
	if count > 0 {
		return
	}

	times := []string{"10:00", "12:00", "15:00", "17:00"}
	slots := make([]models.TimeSlot, 0, 10*len(times))
	day := time.Now()
	for added := 0; added < 10; day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for _, t := range times {
			slots = append(slots, models.TimeSlot{
				ID:          uuid.NewString(),
				Date:        day.Format("2006-01-02"),
				Time:        t,
				IsAvailable: true,
			})
		}
		added++
	}

	if err := DB.Create(&slots).Error; err != nil {
		log.Printf("warning: failed to seed timeslots: %v", err)
		return
	}
	log.Println("Timeslots seeded")
}
