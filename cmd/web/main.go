package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"snake-survival/internal/api"
	"snake-survival/internal/config"
	"snake-survival/internal/leaderboard"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	board, err := openBoard()
	if err != nil {
		log.Fatal("failed to open leaderboard", "err", err)
	}

	apiServer := api.NewServer(board)
	defer apiServer.Close()

	landing := strings.Replace(htmlPage, "{{.SSHHost}}", sshHost, -1)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, landing)
	})
	mux.Handle("/", apiServer)

	srv := &http.Server{
		Addr:    net.JoinHostPort(host, port),
		Handler: mux,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting web server", "addr", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("shutting down web server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", "err", err)
	}
}

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
