// Package server hosts matrix games over gRPC. Every game is a session with
// its own matrix, identified by a uuid.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"matrix/pb"
	"matrix/tetris"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// MatrixFactory returns the matrix of a new session.
type MatrixFactory func() (*tetris.Matrix, error)

// session serializes every action on its matrix.
type session struct {
	mu     sync.Mutex
	matrix *tetris.Matrix
}

type matrixServer struct {
	pb.UnimplementedMatrixServiceServer
	sessions  map[string]*session
	newMatrix MatrixFactory
	logger    *slog.Logger
	mu        sync.Mutex
}

func New(f MatrixFactory, l *slog.Logger) pb.MatrixServiceServer {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &matrixServer{
		sessions:  make(map[string]*session),
		newMatrix: f,
		logger:    l,
	}
}

func (s *matrixServer) NewGame(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	m, err := s.newMatrix()
	if err != nil {
		s.logger.Error("unable to create matrix", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "unable to create matrix")
	}
	if err := m.Reset(); err != nil {
		s.logger.Error("unable to reset matrix", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "unable to reset matrix")
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &session{matrix: m}
	n := len(s.sessions)
	s.mu.Unlock()
	s.logger.Info("new game", slog.String("game_id", id), slog.Int("sessions", n))

	return s.state(id, m, tetris.Result{OK: true})
}

func (s *matrixServer) Act(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, a, err := pb.ParseActRequest(req)
	if err != nil {
		return nil, toStatus(err)
	}
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.matrix.GameOver() && a != tetris.Restart {
		return nil, status.Errorf(codes.FailedPrecondition, "game %q is over", id)
	}
	r, err := sess.matrix.Apply(a)
	switch {
	case errors.Is(err, tetris.ErrGameOver):
		s.logger.Info("game over", slog.String("game_id", id), slog.Int("lines", sess.matrix.LinesClear()))
	case err != nil:
		s.logger.Debug("action failed", slog.String("game_id", id), slog.String("action", string(a)), slog.String("error", err.Error()))
		return nil, toStatus(err)
	}
	return s.state(id, sess.matrix, r)
}

func (s *matrixServer) State(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	sess, err := s.session(req.GetValue())
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.state(req.GetValue(), sess.matrix, tetris.Result{OK: true})
}

func (s *matrixServer) EndGame(_ context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	id := req.GetValue()
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()
	if !ok {
		return nil, status.Errorf(codes.NotFound, "game %q not found", id)
	}
	s.logger.Info("game ended", slog.String("game_id", id), slog.Int("sessions", n))
	return &emptypb.Empty{}, nil
}

func (s *matrixServer) session(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "game %q not found", id)
	}
	return sess, nil
}

func (s *matrixServer) state(id string, m *tetris.Matrix, r tetris.Result) (*structpb.Struct, error) {
	st, err := pb.FromSnapshot(id, m.Snapshot(), r)
	if err != nil {
		s.logger.Error("unable to encode state", slog.String("game_id", id), slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "unable to encode state")
	}
	return st, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, pb.ErrMalformedMessage), errors.Is(err, tetris.ErrInvalidAction):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, tetris.ErrNoActivePiece), errors.Is(err, tetris.ErrGameOver):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Error(codes.Internal, fmt.Sprintf("unable to apply action: %v", err))
}
