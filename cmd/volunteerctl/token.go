package main

import (
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/volunteerhub/volunteer-server/internal/config"
	"github.com/volunteerhub/volunteer-server/internal/tokens"
)

var tokenCommand = &cli.Command{
	Name:  "token",
	Usage: "Print a session token for an email, signed with JWT_SECRET",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "email",
			Aliases:  []string{"e"},
			Usage:    "Identity email embedded in the token",
			Required: true,
		},
		&cli.DurationFlag{
			Name:  "ttl",
			Usage: "Token lifetime (defaults to JWT_TOKEN_TTL)",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ttl := cfg.JWT.TokenTTL
		if c.Duration("ttl") > 0 {
			ttl = c.Duration("ttl")
		}
		return writeToken(c.App.Writer, tokens.NewCodec(cfg.JWT.Secret, ttl), c.String("email"))
	},
}

func writeToken(w io.Writer, codec *tokens.Codec, email string) error {
	raw, err := codec.Issue(map[string]interface{}{"email": email})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\nexpires: %s\n", raw, time.Now().Add(codec.TTL()).UTC().Format(time.RFC3339))
	return err
}
