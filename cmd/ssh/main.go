package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"snake-survival/internal/config"
	"snake-survival/internal/draw"
	"snake-survival/internal/leaderboard"
	"snake-survival/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	// One leaderboard shared by every session on this server.
	board, err := openBoard()
	if err != nil {
		log.Fatal("failed to open leaderboard", "err", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(board),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Reduce latency for game input.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting SSH server", "host", host, "port", port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", "err", err)
	}
}

// openBoard wires the shared leaderboard: a JSON file by default, or the
// path named by LEADERBOARD_FILE.
func openBoard() (*leaderboard.Board, error) {
	if path := config.GetEnv("LEADERBOARD_FILE", ""); path != "" {
		return leaderboard.Open(leaderboard.NewJSONFileStorageAt(path))
	}
	storage, err := leaderboard.NewJSONFileStorage()
	if err != nil {
		return nil, err
	}
	return leaderboard.Open(storage)
}

// gameMiddleware runs an independent game session per SSH connection. Every
// player gets their own simulation; only the leaderboard is shared.
func gameMiddleware(board *leaderboard.Board) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			log.Info("new game session",
				"user", sess.User(), "terminal", pty.Term,
				"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			opts := loop.Options{
				TermSizeFunc: sizeTracker.getSize,
				Submitter:    &leaderboard.LocalSubmitter{Board: board},
				TopScores: func(mode, difficulty string, limit int) []leaderboard.Entry {
					return board.Top(leaderboard.Query{Mode: mode, Difficulty: difficulty, Limit: limit})
				},
			}
			if err := loop.Run(bufio.NewReader(sess), sess, opts); err != nil {
				log.Error("game error", "user", sess.User(), "err", err)
			}

			log.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc.
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
