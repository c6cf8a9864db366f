// Package admin implements the command-line administration of user accounts:
// creating a user, deleting one or all users and listing them.
package admin

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/flagx"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/go-playground/validator/v10"
	"golang.org/x/term"
)

// ErrUsage is returned for an unknown command or bad command flags.
var ErrUsage = errors.New("usage error")

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// Users is the subset of the user service the admin commands need.
type Users interface {
	CreateUser(ctx context.Context, username, password string) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	ListUsers(ctx context.Context, p models.PageParams) (models.Page[models.User], error)
}

type App struct {
	users    Users
	out      io.Writer
	validate *validator.Validate
}

func NewApp(users Users, out io.Writer) *App {
	return &App{users: users, out: out, validate: validator.New()}
}

const usage = `Usage: admin <command> [flags]

Commands:
  create-user -username NAME   create a user, the password is prompted
  delete-user -id N            delete one user
  purge                        delete every user
  list [-page P] [-limit L]    list users

The database is taken from DATABASE_DSN, a .env file, -c config.json or
-d DSN given after the command.
`

// Execute runs the command named by the first element of args.
func (a *App) Execute(ctx context.Context, args []string) error {
	cmd, rest := flagx.SplitCommand(args)

	switch cmd {
	case "create-user":
		return a.createUser(ctx, rest)
	case "delete-user":
		return a.deleteUser(ctx, rest)
	case "purge":
		return a.purge(ctx)
	case "list":
		return a.list(ctx, rest)
	case "help", "":
		fmt.Fprint(a.out, usage)
		if cmd == "" {
			return ErrUsage
		}
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

type newUser struct {
	Username string `validate:"required,min=3,max=30"`
	Password string `validate:"required,min=8"`
}

func (a *App) createUser(ctx context.Context, args []string) error {
	var username string
	fs := a.flagSet("create-user")
	fs.StringVar(&username, "username", "", "user name (3-30 characters)")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-username"})); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	fmt.Fprint(a.out, "Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.out)
	if err != nil {
		return fmt.Errorf("error reading password: %w", err)
	}
	defer common.WipeByteArray(pw)

	if err := a.validate.Struct(newUser{Username: username, Password: string(pw)}); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorValidation, describe(err))
	}

	u, err := a.users.CreateUser(ctx, username, string(pw))
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return fmt.Errorf("username %q already exists: %w", username, err)
		}
		return err
	}

	fmt.Fprintf(a.out, "created user %q with id %d\n", u.UserName, u.ID)
	return nil
}

func (a *App) deleteUser(ctx context.Context, args []string) error {
	var id int64
	fs := a.flagSet("delete-user")
	fs.Int64Var(&id, "id", 0, "user id")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-id"})); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if id <= 0 {
		return fmt.Errorf("%w: -id must be a positive number", ErrUsage)
	}

	if err := a.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("user with id %d not found: %w", id, err)
		}
		return err
	}

	fmt.Fprintf(a.out, "deleted user %d\n", id)
	return nil
}

func (a *App) purge(ctx context.Context) error {
	n, err := a.users.DeleteAll(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %d users\n", n)
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	p := models.PageParams{Page: models.DefaultPage, Limit: models.DefaultLimit}
	fs := a.flagSet("list")
	fs.IntVar(&p.Page, "page", p.Page, "page number, starting at 1")
	fs.IntVar(&p.Limit, "limit", p.Limit, "users per page (1-100)")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-page", "-limit"})); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	page, err := a.users.ListUsers(ctx, p)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tACTIVE\tCREATED")
	for _, u := range page.Results {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%s\n", u.ID, u.UserName, u.IsActive, u.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "page %d of %d, %d users total\n", page.Page, page.TotalPages, page.TotalResults)
	return nil
}

func describe(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
