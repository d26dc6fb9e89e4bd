package main

import (
	"github.com/pressly/goose/v3"

	"github.com/jamespares/chinaprof/storage/database"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	if len(args) == 0 {
		cli.printMigrateUsage()
		return errHelp
	}

	engine := cli.db.DriverName()
	if err := database.SetUpMigrations(engine); err != nil {
		return err
	}
	return gooseRunFunc(args[0], cli.db.DB, database.MigrationsDir(engine), args[1:]...)
}

func (cli *commandLine) printMigrateUsage() {
	cli.println("Usage: migrate COMMAND")
	cli.println("  up                   Migrate the DB to the most recent version available")
	cli.println("  up-by-one            Migrate the DB up by 1")
	cli.println("  up-to VERSION        Migrate the DB to a specific VERSION")
	cli.println("  down                 Roll back the version by 1")
	cli.println("  down-to VERSION      Roll back to a specific VERSION")
	cli.println("  redo                 Re-run the latest migration")
	cli.println("  reset                Roll back all migrations")
	cli.println("  status               Dump the migration status for the current DB")
	cli.println("  version              Print the current version of the database")
}
