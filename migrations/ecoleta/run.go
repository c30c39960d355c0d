package main

import (
	"github.com/ecoleta/ecoleta/migrations"
	"github.com/ecoleta/ecoleta/pkg/config"
	"github.com/ecoleta/ecoleta/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, migrations.FS); err != nil {
		panic(err)
	}
}
