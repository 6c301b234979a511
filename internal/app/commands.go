package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	apperrors "tiercache/internal/common/errors"
)

// Command returns the root command. Build a fresh one for every Run.
func (a *App) Command() *cli.Command {
	return &cli.Command{
		Name:   "tiercache",
		Usage:  "inspect and edit the tiered cache (redis, memory, fallback directory)",
		Writer: a.out,
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "print the JSON value stored under KEY",
				ArgsUsage: "KEY",
				Action:    a.get,
			},
			{
				Name:      "set",
				Usage:     "store a JSON value under KEY in every tier",
				ArgsUsage: "KEY JSON",
				Action:    a.set,
			},
			{
				Name:      "delete",
				Aliases:   []string{"del"},
				Usage:     "remove KEY from every tier",
				ArgsUsage: "KEY",
				Action:    a.delete,
			},
			{
				Name:      "exists",
				Usage:     "report whether any tier holds KEY",
				ArgsUsage: "KEY",
				Action:    a.exists,
			},
			{
				Name:  "clear",
				Usage: "flush the whole redis database and every file in the fallback directory",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "confirm the flush",
					},
				},
				Action: a.clear,
			},
			{
				Name:   "ping",
				Usage:  "check whether redis is reachable",
				Action: a.ping,
			},
		},
	}
}

func (a *App) get(ctx context.Context, cmd *cli.Command) error {
	key, err := keyArg(cmd, 1)
	if err != nil {
		return err
	}

	value, found := a.Cache.Get(key)
	if !found {
		return apperrors.NotFoundError(fmt.Sprintf("key %q", key))
	}

	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.SerializationError("cannot print value", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

func (a *App) set(ctx context.Context, cmd *cli.Command) error {
	key, err := keyArg(cmd, 2)
	if err != nil {
		return err
	}

	var value any
	if err := json.Unmarshal([]byte(cmd.Args().Get(1)), &value); err != nil {
		return apperrors.ValidationError("value must be valid JSON").WithContext("key", key)
	}

	a.Cache.Set(key, value)
	return nil
}

func (a *App) delete(ctx context.Context, cmd *cli.Command) error {
	key, err := keyArg(cmd, 1)
	if err != nil {
		return err
	}

	a.Cache.Delete(key)
	return nil
}

func (a *App) exists(ctx context.Context, cmd *cli.Command) error {
	key, err := keyArg(cmd, 1)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.out, a.Cache.Exists(key))
	return err
}

func (a *App) clear(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return apperrors.ValidationError("clear flushes the entire redis database and fallback directory; rerun with --yes")
	}

	a.Cache.Clear()
	return nil
}

func (a *App) ping(ctx context.Context, cmd *cli.Command) error {
	status := "down"
	switch {
	case a.Redis == nil:
		status = "disabled"
	case a.Cache.IsRemoteAvailable():
		status = "up"
	}

	_, err := fmt.Fprintf(a.out, "redis %s\n", status)
	return err
}

func keyArg(cmd *cli.Command, want int) (string, error) {
	if cmd.Args().Len() != want {
		return "", apperrors.ValidationError(fmt.Sprintf("%s expects %s", cmd.Name, cmd.ArgsUsage))
	}
	key := cmd.Args().First()
	if key == "" {
		return "", apperrors.ValidationError("key must not be empty")
	}
	return key, nil
}
