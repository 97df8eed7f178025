package cmd

import (
	"concert-ticket-pipeline/db/migration"
	"context"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"os"
)

// migrationTableKeys are exported to the environment for goose ENVSUB.
var migrationTableKeys = []string{"store.orders.table", "store.seat_inventory.table"}

func runMigrateCmd(ctx context.Context, cfg *viper.Viper, up bool) {
	for _, key := range migrationTableKeys {
		if err := os.Setenv(envName(key), mustGetString(cfg, key)); err != nil {
			log.Fatalln(err)
		}
	}

	db, err := goose.OpenDBWithDriver("pgx", dbConnString(cfg))
	if err != nil {
		log.Fatalln("unable to open database", err)
	}
	defer db.Close()

	goose.SetBaseFS(migration.FS)

	if up {
		err = goose.UpContext(ctx, db, ".")
	} else {
		err = goose.DownContext(ctx, db, ".")
	}
	if err != nil {
		log.Fatalln("unable to migrate", err)
	}

	slog.InfoContext(ctx, "migration finished", slog.Bool("up", up))
}
