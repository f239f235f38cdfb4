package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"matrix/client"
	"matrix/config"
	"matrix/render"
	"matrix/tetris"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[?25h"
)

func main() {
	cmd := &cli.Command{
		Name:  "matrix",
		Usage: "falling blocks in a terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file, settings are read from the environment when empty",
				Sources: cli.EnvVars("MATRIX_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play with the keyboard",
				Action: play,
			},
			{
				Name:      "replay",
				Usage:     "hard drop every piece of a feed file and print the final matrix",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "png",
						Usage: "also write the final matrix as a PNG image to `PATH`",
					},
				},
				Action: replay,
			},
			{
				Name:  "remote",
				Usage: "play with the keyboard against a matrix server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "server address, defaults to the configured one",
					},
				},
				Action: remote,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, nil, err
	}
	l, err := cfg.Logger(os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

func newMatrix(cfg *config.Config) func() (*tetris.Matrix, error) {
	return func() (*tetris.Matrix, error) {
		return tetris.New(cfg.Rows, cfg.Cols, tetris.NewRandomSpawner(cfg.RandSeed()))
	}
}

func play(_ context.Context, cmd *cli.Command) error {
	cfg, l, err := setup(cmd)
	if err != nil {
		return err
	}
	return runClient(cfg, l, &client.Options{
		Local:  client.LocalGame(newMatrix(cfg), cfg.Tick, l),
		Online: client.OnlineGame(cfg.Server.Addr, cfg.Tick, l),
	})
}

func remote(_ context.Context, cmd *cli.Command) error {
	cfg, l, err := setup(cmd)
	if err != nil {
		return err
	}
	addr := cfg.Server.Addr
	if a := cmd.String("addr"); a != "" {
		addr = a
	}
	online := client.OnlineGame(addr, cfg.Tick, l)
	return runClient(cfg, l, &client.Options{Local: online, Online: online})
}

func runClient(cfg *config.Config, l *slog.Logger, o *client.Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("play needs an interactive terminal")
	}
	r, err := render.New(&render.Options{
		Writer:  os.Stdout,
		Logger:  l,
		NoColor: cfg.NoColor || !render.Colorful(os.Stdout),
		Raw:     true,
	})
	if err != nil {
		return err
	}
	c, err := client.New(r, l, o)
	if err != nil {
		return err
	}
	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	defer func() {
		if err := c.Close(); err != nil {
			l.Error("unable to close keyboard", slog.String("error", err.Error()))
		}
	}()
	c.Start()
	r.Clear()
	return nil
}

func replay(_ context.Context, cmd *cli.Command) error {
	cfg, l, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.NArg() != 1 {
		return cli.Exit("replay needs exactly one feed FILE", 2)
	}
	path := cmd.Args().First()
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open feed: %w", err)
	}
	defer f.Close()

	placements, err := tetris.ParseFeed(f)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", path, err)
	}
	m, err := tetris.New(cfg.Rows, cfg.Cols, tetris.NewFeedSpawner(placements))
	if err != nil {
		return err
	}
	lines, err := tetris.Replay(m)
	switch {
	case errors.Is(err, tetris.ErrGameOver):
		l.Warn("game over before the end of the feed", slog.Int("placements", len(placements)))
	case err != nil:
		return fmt.Errorf("unable to replay %s: %w", path, err)
	}
	l.Debug("feed replayed", slog.String("file", path), slog.Int("placements", len(placements)), slog.Int("lines", lines))

	r, err := render.New(&render.Options{Writer: os.Stdout, Logger: l, NoColor: true})
	if err != nil {
		return err
	}
	r.Frame(m.Snapshot())

	if out := cmd.String("png"); out != "" {
		if err := writePNG(out, m.Snapshot(), cfg.CellSize); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, s *tetris.Snapshot, size int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("unable to close image: %w", cerr)
		}
	}()
	return render.WritePNG(f, s, size)
}
