package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"matrix/pb"
	"matrix/tetris"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const callTimeout = 5 * time.Second

// RemoteGame plays a game hosted by a matrix server. Ticks and actions are
// sent from a single goroutine so the server sees them in order.
type RemoteGame struct {
	client pb.MatrixServiceClient
	conn   *grpc.ClientConn
	id     string
	first  *tetris.Snapshot

	updateCh chan *tetris.Snapshot
	actionCh chan tetris.Action
	doneCh   chan struct{}
	done     sync.Once

	tick   time.Duration
	logger *slog.Logger
}

// OnlineGame returns a factory of games hosted by the server at addr.
func OnlineGame(addr string, tick time.Duration, l *slog.Logger) GameFactory {
	return func() (Game, error) {
		conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("unable to create gRPC client: %w", err)
		}
		r := NewRemoteGame(pb.NewMatrixServiceClient(conn), tick, l)
		r.conn = conn
		return r, nil
	}
}

func NewRemoteGame(c pb.MatrixServiceClient, tick time.Duration, l *slog.Logger) *RemoteGame {
	if tick <= 0 {
		tick = tetris.DefaultTick
	}
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &RemoteGame{
		client:   c,
		updateCh: make(chan *tetris.Snapshot),
		actionCh: make(chan tetris.Action),
		doneCh:   make(chan struct{}),
		tick:     tick,
		logger:   l,
	}
}

// Start opens a session on the server and starts listening for ticks and actions.
func (r *RemoteGame) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	res, err := r.client.NewGame(ctx, &emptypb.Empty{})
	if err != nil {
		r.closeConn()
		return fmt.Errorf("unable to create remote game: %w", err)
	}
	st, snap, err := decode(res)
	if err != nil {
		r.closeConn()
		return err
	}
	r.id = st.GameID
	r.first = snap
	r.logger.Debug("remote game started", slog.String("game_id", r.id))
	go r.listen()
	return nil
}

func (r *RemoteGame) Stop() {
	r.done.Do(func() { close(r.doneCh) })
}

// Action queues a for the listener. It's a no-op once the game is done.
func (r *RemoteGame) Action(a tetris.Action) {
	select {
	case r.actionCh <- a:
	case <-r.doneCh:
	}
}

func (r *RemoteGame) Updates() <-chan *tetris.Snapshot { return r.updateCh }

// ID returns the session id given by the server.
func (r *RemoteGame) ID() string { return r.id }

func (r *RemoteGame) listen() {
	defer func() {
		r.endGame()
		r.closeConn()
		close(r.updateCh)
	}()
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	if !r.publish(r.first) {
		return
	}
	for {
		var a tetris.Action
		select {
		case <-ticker.C:
			a = tetris.Tick
		case a = <-r.actionCh:
		case <-r.doneCh:
			return
		}

		st, snap, err := r.act(a)
		if err != nil {
			if status.Code(err) == codes.FailedPrecondition {
				r.logger.Debug("action not applied", slog.String("error", err.Error()))
				continue
			}
			r.logger.Error("unable to send action", slog.String("action", string(a)), slog.String("error", err.Error()))
			r.Stop()
			return
		}
		if st.Landed {
			ticker.Reset(r.tick)
		}
		if !r.publish(snap) {
			return
		}
		if st.GameOver {
			r.Stop()
			return
		}
	}
}

func (r *RemoteGame) act(a tetris.Action) (*pb.State, *tetris.Snapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	res, err := r.client.Act(ctx, pb.ActRequest(r.id, a))
	if err != nil {
		return nil, nil, err
	}
	return decode(res)
}

func (r *RemoteGame) publish(s *tetris.Snapshot) bool {
	select {
	case r.updateCh <- s:
		return true
	case <-r.doneCh:
		return false
	}
}

func (r *RemoteGame) endGame() {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	if _, err := r.client.EndGame(ctx, wrapperspb.String(r.id)); err != nil {
		r.logger.Debug("unable to end remote game", slog.String("game_id", r.id), slog.String("error", err.Error()))
	}
}

func (r *RemoteGame) closeConn() {
	if r.conn == nil {
		return
	}
	if err := r.conn.Close(); err != nil {
		r.logger.Error("unable to close gRPC client", slog.String("error", err.Error()))
	}
}

func decode(res *structpb.Struct) (*pb.State, *tetris.Snapshot, error) {
	st, err := pb.ToState(res)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to decode state: %w", err)
	}
	snap, err := st.Snapshot()
	if err != nil {
		return nil, nil, fmt.Errorf("unable to decode state: %w", err)
	}
	return st, snap, nil
}
