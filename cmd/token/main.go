// Command token issues operator access tokens for the payroll API.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/config"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/jwt"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "token",
		Usage: "issue an operator access token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "operator", Aliases: []string{"o"}, Usage: "operator ID stored as the token subject", Required: true},
			&cli.StringFlag{Name: "role", Aliases: []string{"r"}, Usage: "admin or clerk", Value: string(jwt.RoleClerk)},
		},
		Action: issue,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Failed to issue token", "error", err)
		os.Exit(1)
	}
}

func issue(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	role, err := jwt.ParseRole(c.String("role"))
	if err != nil {
		return err
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
		GenerateAccessToken(c.String("operator"), role)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, token)
	fmt.Fprintf(c.App.ErrWriter, "expires %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	return nil
}
