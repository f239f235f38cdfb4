package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"matrix/config"
	"matrix/pb"
	"matrix/server"
	"matrix/tetris"

	"google.golang.org/grpc"
)

func main() {
	path := flag.String("config", os.Getenv("MATRIX_CONFIG"), "YAML config file")
	flag.Parse()

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	l, err := cfg.Logger(os.Stderr)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	lis, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	defer lis.Close()

	s := grpc.NewServer()
	pb.RegisterMatrixServiceServer(s, server.New(func() (*tetris.Matrix, error) {
		return tetris.New(cfg.Rows, cfg.Cols, tetris.NewRandomSpawner(cfg.RandSeed()))
	}, l))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		l.Info("stopping server")
		s.GracefulStop()
	}()

	l.Info("starting server", slog.String("addr", lis.Addr().String()), slog.Int("rows", cfg.Rows), slog.Int("cols", cfg.Cols))
	if err := s.Serve(lis); err != nil {
		l.Error("failed to serve", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
