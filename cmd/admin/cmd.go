package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/pressly/goose/v3"
	"golang.org/x/term"

	"schooladmin/internal/domain"
	"schooladmin/migrations"
)

var (
	readPasswordFunc = term.ReadPassword
	gooseRunFunc     = runMigrations

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db    *sql.DB
	users domain.UserService
	out   io.Writer
}

func runMigrations(ctx context.Context, command string, db *sql.DB, args ...string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.RunContext(ctx, command, db, ".", args...)
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                  - run goose migrations (up, down, status, redo, reset, version, up-to N, down-to N)")
	fmt.Fprintln(cli.out, "  adduser -email EMAIL -name NAME [-admin] - create or refresh a staff account; the password is prompted")
	fmt.Fprintln(cli.out, "  resetpassword -email EMAIL               - set a staff password; the password is prompted")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		if err := gooseRunFunc(ctx, args[2], cli.db, args[3:]...); err != nil {
			return fmt.Errorf("migrate %s: %w", args[2], err)
		}
		return nil

	case "adduser":
		fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
		fs.SetOutput(cli.out)
		email := fs.String("email", "", "The staff member's email.")
		name := fs.String("name", "", "The staff member's display name.")
		admin := fs.Bool("admin", false, "Also grant the admin role.")
		if err := fs.Parse(args[2:]); err != nil {
			return errHelp
		}
		if strings.TrimSpace(*email) == "" || strings.TrimSpace(*name) == "" {
			fs.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		user, err := cli.users.CreateStaff(ctx, *email, *name, pwd, *admin)
		if user != nil {
			fmt.Fprintf(cli.out, "staff account %s ready (id %s)\n", user.Email, user.ID)
		}
		return err

	case "resetpassword":
		fs := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
		fs.SetOutput(cli.out)
		email := fs.String("email", "", "The staff member's email. The password will be prompted next.")
		if err := fs.Parse(args[2:]); err != nil {
			return errHelp
		}
		if strings.TrimSpace(*email) == "" {
			fs.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if err := cli.users.SetPassword(ctx, *email, pwd); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "password updated")
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password: ")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	return string(pwd), nil
}
