package cmd

import (
	"context"
	"log"
	"time"

	objectstorage "github.com/sce-foundation/sce-portal/internal/object/storage"
	positionstorage "github.com/sce-foundation/sce-portal/internal/position/storage"
	poststorage "github.com/sce-foundation/sce-portal/internal/post/storage"
	"github.com/sce-foundation/sce-portal/internal/seed"
	userstorage "github.com/sce-foundation/sce-portal/internal/user/storage"
	"github.com/sce-foundation/sce-portal/pkg/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo data",
	Long:  `Seed the database with the demo catalog: a bootstrap administrator, anomalous objects, posts and open positions. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

		db, err := initGormDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		seeder := seed.NewSeeder(
			userstorage.NewUserRepository(db),
			objectstorage.NewObjectRepository(db),
			poststorage.NewPostRepository(db),
			positionstorage.NewPositionRepository(db),
			logger.L(),
			cfg.Security.BootstrapEmail,
		)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := seeder.Run(ctx); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
	},
}
