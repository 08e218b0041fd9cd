// Command main runs the demo data seeder.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/jamiebhpark/MentalHealthApp/internal/bootstrap"
	"github.com/jamiebhpark/MentalHealthApp/internal/config"
	"github.com/jamiebhpark/MentalHealthApp/internal/seed"
	"github.com/jamiebhpark/MentalHealthApp/internal/service"
)

func main() {
	defaults := seed.DefaultOptions

	// Parse command line flags
	numUsers := flag.Int("users", defaults.NumUsers, "Number of anonymous users to create")
	records := flag.Int("records", defaults.RecordsPerUser, "Emotion records per user")
	numPosts := flag.Int("posts", defaults.NumPosts, "Number of posts to create")
	maxDays := flag.Int("days", defaults.MaxDays, "Spread records and posts over this many past days")
	randSeed := flag.Int64("seed", 0, "Random seed (0 = random)")
	fixture := flag.String("fixture", "", "Load a YAML fixture instead of generating data")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.StoreDriver == config.StoreMemory {
		log.Fatal("STORE_DRIVER=memory keeps nothing after exit; use SEED_DEMO on the server instead")
	}

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close(ctx)

	s := seed.NewSeeder(store, service.NewDataService(store, bootstrap.ServiceOptions(cfg)))

	var report seed.Report
	if *fixture != "" {
		log.Printf("Applying fixture %s", *fixture)
		fx, err := seed.LoadFixture(*fixture)
		if err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
		report, err = s.ApplyFixture(ctx, fx)
		if err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
	} else {
		log.Printf("Target: %d users x %d records, %d posts", *numUsers, *records, *numPosts)
		opts := defaults
		opts.NumUsers = *numUsers
		opts.RecordsPerUser = *records
		opts.NumPosts = *numPosts
		opts.MaxDays = *maxDays
		opts.RandSeed = *randSeed
		opts.XPPerRecord = cfg.XPPerRecord
		report, err = s.Seed(ctx, opts)
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}

	log.Printf("Seeded %d users, %d records, %d posts, %d likes, %d comments",
		len(report.Users), report.Records, report.Posts, report.Likes, report.Comments)
	for _, id := range report.Users {
		log.Printf("  user %s", id)
	}
}
