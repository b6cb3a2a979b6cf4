package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicService/internal/config"
	"github.com/m04kA/SMC-ClinicService/internal/infra/migrator"
)

// Context общие зависимости команд
type Context struct {
	Migrator *migrator.Migrator
}

type UpCmd struct{}

func (c *UpCmd) Run(ctx *Context) error {
	if err := ctx.Migrator.Up(); err != nil {
		return err
	}
	fmt.Println("migrations applied")
	return nil
}

type DownCmd struct {
	Steps int `arg:"" optional:"" default:"1" help:"Number of migrations to roll back."`
}

func (c *DownCmd) Run(ctx *Context) error {
	if err := ctx.Migrator.Down(c.Steps); err != nil {
		return err
	}
	fmt.Printf("rolled back %d migration(s)\n", c.Steps)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *Context) error {
	version, dirty, err := ctx.Migrator.Version()
	if err != nil {
		return err
	}
	fmt.Printf("version=%d dirty=%t\n", version, dirty)
	return nil
}

type ForceCmd struct {
	Version int `arg:"" help:"Schema version to record without running migrations."`
}

func (c *ForceCmd) Run(ctx *Context) error {
	if err := ctx.Migrator.Force(c.Version); err != nil {
		return err
	}
	fmt.Printf("forced version %d\n", c.Version)
	return nil
}

var CLI struct {
	Config string `help:"Config file path." type:"path" default:"config.toml"`

	Up      UpCmd      `cmd:"" help:"Apply all pending migrations."`
	Down    DownCmd    `cmd:"" help:"Roll back the last migrations."`
	Version VersionCmd `cmd:"" help:"Print the current schema version."`
	Force   ForceCmd   `cmd:"" help:"Set the schema version after fixing a dirty state."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("migrate"),
		kong.Description("Database migrations for SMC-ClinicService"),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, err := migrator.New(db)
	if err != nil {
		db.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = kctx.Run(&Context{Migrator: m})
	if closeErr := m.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
