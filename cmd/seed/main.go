// Seed fills the database with synthetic stations, readings and
// citizen reports for local development.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"pravaah/adapters/db/postgres/migrations"
	"pravaah/adapters/postgres"
	redisadapter "pravaah/adapters/redis"
	"pravaah/app"
	"pravaah/internal/config"
	"pravaah/internal/testkit"
	"pravaah/ports"
)

func main() {
	stations := flag.Int("stations", 12, "number of stations to create")
	readings := flag.Int("readings", 30, "readings per station, one per day")
	reports := flag.Int("reports", 8, "citizen reports to create")
	seed := flag.Uint64("seed", 42, "fixture seed")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := migrations.NewMigrator(db.DB).Up(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fixtures := testkit.New(*seed)
	stationRepo := postgres.NewStationRepository(db)
	reportRepo := postgres.NewCitizenReportRepository(db)

	var cache ports.ReadingsCache
	if cfg.Redis.Enabled {
		if rdb, err := redisadapter.NewClient(ctx, cfg.Redis.URL); err == nil {
			cache = redisadapter.NewReadingsCache(rdb)
		} else {
			log.Printf("Redis unavailable, seeding without cache: %v", err)
		}
	}
	stationSvc := app.NewStationService(stationRepo, cache, nil)

	for i := 0; i < *stations; i++ {
		st := fixtures.Station()
		if err := stationRepo.SaveStation(ctx, &st); err != nil {
			log.Fatalf("Failed to save station: %v", err)
		}
		for _, reading := range fixtures.ReadingHistory(st.ID, *readings) {
			reading := reading
			if err := stationSvc.RecordReading(ctx, &reading); err != nil {
				log.Fatalf("Failed to record reading: %v", err)
			}
		}
		log.Printf("Seeded station %s with %d readings", st.Name, *readings)
	}

	for i := 0; i < *reports; i++ {
		report := fixtures.CitizenReport()
		if err := reportRepo.Save(ctx, &report); err != nil {
			log.Fatalf("Failed to save citizen report: %v", err)
		}
	}

	log.Printf("Seed complete: %d stations, %d citizen reports", *stations, *reports)
}
