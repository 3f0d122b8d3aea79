package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filecatalog/internal/config"
	"filecatalog/internal/database"
	"filecatalog/internal/domain/file"
	"filecatalog/internal/logger"
)

type seedFile struct {
	name     string
	category file.Category
	size     int64
	date     string // YYYY-MM-DD
}

// Demo catalog shown by the web client before real uploads exist.
var seedFiles = []seedFile{
	{"IMG_2024_001.jpg", file.CategoryPhotos, 4_200_000, "2024-10-15"},
	{"IMG_2024_002.jpg", file.CategoryPhotos, 3_800_000, "2024-10-14"},
	{"IMG_2023_156.jpg", file.CategoryPhotos, 5_100_000, "2023-12-22"},
	{"IMG_2023_089.jpg", file.CategoryPhotos, 4_500_000, "2023-06-10"},
	{"IMG_2022_234.jpg", file.CategoryPhotos, 3_900_000, "2022-05-05"},
	{"video_2024_summer.mp4", file.CategoryVideos, 124_000_000, "2024-08-10"},
	{"family_trip.mov", file.CategoryVideos, 89_000_000, "2024-07-05"},
	{"Отчет_2024.pdf", file.CategoryDocuments, 2_100_000, "2024-10-20"},
	{"Договор.docx", file.CategoryDocuments, 145_000, "2024-10-18"},
	{"Inception.mkv", file.CategoryMovies, 8_500_000_000, "2024-09-12"},
	{"Presentation.pptx", file.CategoryWork, 15_000_000, "2024-10-18"},
	{"vscode-installer.exe", file.CategorySoftware, 95_000_000, "2024-10-01"},
	{"Playlist_Summer.mp3", file.CategoryMusic, 6_800_000, "2024-07-20"},
	{"backup_2024.zip", file.CategoryArchives, 1_200_000_000, "2024-10-01"},
}

func main() {
	reset := flag.Bool("reset", false, "delete all existing records first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(false, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.DatabaseURL == config.DatabaseMemory {
		zlog.Fatal("seeding the memory store is pointless, set DATABASE_URL")
	}

	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("DB connection failed", zap.Error(err))
	}
	defer database.Close(db)

	zlog.Info("running AutoMigrate")
	if err := file.AutoMigrate(db); err != nil {
		zlog.Fatal("AutoMigrate failed", zap.Error(err))
	}

	if *reset {
		zlog.Info("cleaning old data")
		if err := db.Exec("DELETE FROM file_records").Error; err != nil {
			zlog.Fatal("cleanup failed", zap.Error(err))
		}
	}

	store := file.NewGormStore(db)
	ctx := context.Background()

	for _, sf := range seedFiles {
		createdAt, err := time.Parse(time.DateOnly, sf.date)
		if err != nil {
			zlog.Fatal("bad seed date", zap.String("date", sf.date), zap.Error(err))
		}
		rec, err := file.NewRecord(uuid.New().String(), sf.name, sf.category, sf.size, createdAt)
		if err != nil {
			zlog.Fatal("bad seed record", zap.String("name", sf.name), zap.Error(err))
		}
		if err := store.Put(ctx, rec); err != nil {
			zlog.Fatal("insert failed", zap.String("name", sf.name), zap.Error(err))
		}
	}

	zlog.Info("seed completed", zap.Int("records", len(seedFiles)))
}
