package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/somtoval/foretrust-api/internal/db"
	"github.com/somtoval/foretrust-api/internal/provision"
	"github.com/somtoval/foretrust-api/internal/repository/postgres"
	"github.com/somtoval/foretrust-api/internal/service/auth"
)

// Provision creates the admin account once per deployment. A deliberate
// replacement for bootstrapping a default admin inside the server: the
// password comes from the operator, never from code.
func main() {
	var (
		dsn      string
		username string
		email    string
		password string
	)

	fs := pflag.NewFlagSet("provision", pflag.ContinueOnError)
	fs.StringVarP(&dsn, "database", "d", os.Getenv("DATABASE_URI"), "Database connection string")
	fs.StringVarP(&username, "username", "u", "admin", "Admin username")
	fs.StringVarP(&email, "email", "m", "", "Admin email")
	fs.StringVarP(&password, "password", "p", os.Getenv("ADMIN_PASSWORD"), "Admin password (prefer ADMIN_PASSWORD env)")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	ctx := context.Background()

	pool, err := db.ConnectAndMigrate(ctx, dsn)
	if err != nil {
		slog.Error("can't connect to db", "error", err.Error())
		os.Exit(1)
	}
	defer pool.Close()

	created, err := provision.EnsureAdmin(ctx, &postgres.UserRepo{DB: pool}, auth.BcryptHasher{}, username, email, password)
	if err != nil {
		slog.Error("can't provision admin user", "error", err.Error())
		os.Exit(1)
	}

	if created {
		slog.Info("admin user created", "username", username)
		return
	}
	slog.Info("admin user exists already, nothing to do", "username", username)
}
