// create-admin seeds an admin account so the first operator can sign in.
//
//	go run ./src/cmd/create-admin --email ops@cycleparadise.lk --first Ops --last Team --password '...'
package main

import (
	"context"
	"cycleparadise/src/boot"
	"cycleparadise/src/config"
	"cycleparadise/src/db"
	"cycleparadise/src/models"
	"cycleparadise/src/repositories"
	"cycleparadise/src/types"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type options struct {
	email     string
	firstName string
	lastName  string
	password  string
	role      string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "create-admin: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*options, error) {
	var opts options
	flagSet := pflag.NewFlagSet("create-admin", pflag.ContinueOnError)
	flagSet.StringVar(&opts.email, "email", "", "login email of the new account (required)")
	flagSet.StringVar(&opts.firstName, "first", "", "first name (required)")
	flagSet.StringVar(&opts.lastName, "last", "", "last name (required)")
	flagSet.StringVar(&opts.password, "password", "", "initial password, at least 8 characters (required)")
	flagSet.StringVar(&opts.role, "role", string(types.ROLE_ADMIN), "ADMIN or EDITOR")
	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	opts.email = strings.ToLower(strings.TrimSpace(opts.email))
	opts.role = strings.ToUpper(opts.role)
	switch {
	case opts.email == "" || opts.firstName == "" || opts.lastName == "":
		return nil, errors.New("--email, --first and --last are required")
	case len(opts.password) < minPasswordLength:
		return nil, fmt.Errorf("--password must be at least %d characters", minPasswordLength)
	case opts.role != string(types.ROLE_ADMIN) && opts.role != string(types.ROLE_EDITOR):
		return nil, fmt.Errorf("unknown role %q", opts.role)
	}
	return &opts, nil
}

func newAdmin(opts *options) (*models.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &models.AdminUser{
		Email:        opts.email,
		PasswordHash: string(hash),
		FirstName:    opts.firstName,
		LastName:     opts.lastName,
		Role:         types.AdminRole(opts.role),
		IsActive:     true,
	}, nil
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	user, err := newAdmin(opts)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	conn, err := db.Open(cfg.DSN(), false)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close(conn)
	if err := boot.InitDb(conn); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}

	if err := repositories.NewUserRepository(conn).Create(ctx, user); err != nil {
		return err
	}
	fmt.Printf("created %s %s (%s)\n", user.Role, user.Email, user.ID)
	return nil
}
