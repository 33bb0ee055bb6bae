// Package console implements the maintenance commands of the console binary.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BruksfildServices01/orders-api/internal/auth"
	"github.com/BruksfildServices01/orders-api/internal/config"
	userdomain "github.com/BruksfildServices01/orders-api/internal/domain/user"
	"github.com/BruksfildServices01/orders-api/internal/fixtures"
	"github.com/BruksfildServices01/orders-api/internal/logger"
	ucUser "github.com/BruksfildServices01/orders-api/internal/usecase/user"
)

var ErrUnknownCommand = errors.New("unknown command")

type Console struct {
	cfg     *config.Config
	out     io.Writer
	users   userdomain.Repository
	seeder  *fixtures.Seeder
	objects fixtures.ObjectGetter

	keyBits int
}

func New(
	cfg *config.Config,
	out io.Writer,
	users userdomain.Repository,
	seeder *fixtures.Seeder,
	objects fixtures.ObjectGetter,
) *Console {
	return &Console{
		cfg:     cfg,
		out:     out,
		users:   users,
		seeder:  seeder,
		objects: objects,
		keyBits: auth.DefaultKeyBits,
	}
}

func Usage(w io.Writer) {
	fmt.Fprintln(w, `usage: console <command> [args]

commands:
  setup                 generate keys, seed the database and print an admin token
  generate-keys         write the JWT keypair unless it already exists
  seed-database         load the default admin and the configured fixtures
  generate-token EMAIL  print a bearer token for the given user`)
}

func (c *Console) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		Usage(c.out)
		return ErrUnknownCommand
	}

	switch args[0] {
	case "setup":
		return c.Setup(ctx)
	case "generate-keys":
		return c.GenerateKeys()
	case "seed-database":
		return c.SeedDatabase(ctx)
	case "generate-token":
		if len(args) != 2 {
			return errors.New("generate-token requires exactly one email argument")
		}
		token, err := c.GenerateToken(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, token)
		return nil
	}

	Usage(c.out)
	return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
}

func (c *Console) GenerateKeys() error {
	created, err := auth.GenerateKeyPair(c.cfg.JWTPrivateKeyPath, c.cfg.JWTPublicKeyPath, c.keyBits)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(c.out, "JWT keypair written to %s and %s\n", c.cfg.JWTPrivateKeyPath, c.cfg.JWTPublicKeyPath)
	} else {
		fmt.Fprintln(c.out, "JWT keypair already present, skipping")
	}
	return nil
}

func (c *Console) SeedDatabase(ctx context.Context) error {
	f, err := fixtures.Load(ctx, c.cfg.FixturesPath, c.objects)
	if err != nil {
		return err
	}

	res, err := c.seeder.Seed(ctx, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "database seeded: %d users, %d orders created\n", res.UsersCreated, res.OrdersCreated)
	return nil
}

// GenerateToken issues a token with the keys currently configured, so it
// must run after GenerateKeys when RS256 is wanted.
func (c *Console) GenerateToken(ctx context.Context, email string) (string, error) {
	u, err := c.users.GetUserByEmail(ctx, ucUser.NormalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("find %s: %w", email, err)
	}

	issuer, err := auth.FromConfig(c.cfg)
	if err != nil {
		return "", err
	}

	return issuer.Issue(u)
}

func (c *Console) Setup(ctx context.Context) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"generate-keys", c.GenerateKeys},
		{"seed-database", func() error { return c.SeedDatabase(ctx) }},
	}

	for _, s := range steps {
		if err := s.run(); err != nil {
			logger.Log.Error("setup failed", logger.String("step", s.name), logger.Error(err))
			fmt.Fprintf(c.out, "setup failed at %s: %v\n", s.name, err)
			return err
		}
	}

	admin := fixtures.DefaultAdmin
	token, err := c.GenerateToken(ctx, admin.Email)
	if err != nil {
		fmt.Fprintf(c.out, "setup failed at generate-token: %v\n", err)
		return err
	}

	fmt.Fprintf(c.out, "\nsetup complete\n\n  email:    %s\n  password: %s\n  token:    %s\n", admin.Email, admin.Password, token)
	return nil
}
