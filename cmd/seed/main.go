package main

import (
	"context"
	"log"

	"diarium/internal/auth"
	"diarium/internal/cache"
	"diarium/internal/config"
	"diarium/internal/db"
	"diarium/internal/model"
	"diarium/internal/repository"
	"diarium/internal/service"
)

// Development-only seed tool: creates a demo user with a handful of
// entries so the API has data to serve locally.
const (
	demoUsername = "demo"
	demoEmail    = "demo@example.com"
	demoPassword = "secret1"
)

var demoEntries = []struct {
	title   string
	content string
}{
	{"Day 1", "Set the diary up today. Writing things down already feels lighter."},
	{"Day 2", "Rain all afternoon. Read on the sofa and let the phone stay in the other room."},
	{"Day 3", "Long walk by the river. Note to self: bring bread for the ducks next time."},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.DiaryEntry{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)

	_, user, err := authService.Register(ctx, demoUsername, demoEmail, demoPassword)
	if err != nil {
		// Re-running the seed against an already seeded database is fine.
		existing, lookupErr := userRepo.FindByEmail(ctx, demoEmail)
		if lookupErr != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		user = existing
		log.Printf("Demo user already present: %s", user.Email)
	} else {
		log.Printf("Created demo user: %s", user.Email)
	}

	diaryRepo := repository.NewDiaryRepository(gormDB)
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	diaryService := service.NewDiaryService(diaryRepo, cacheClient)

	existing, err := diaryService.List(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list entries: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d entries, nothing to do", len(existing))
		return
	}

	for _, seed := range demoEntries {
		entry, err := diaryService.Create(ctx, user.ID, seed.title, seed.content)
		if err != nil {
			log.Fatalf("Failed to create entry %q: %v", seed.title, err)
		}
		log.Printf("Created entry %s (%s)", entry.ID, entry.Title)
	}

	log.Println("Seed completed")
}
