package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"uno-server/internal/api/http"
	"uno-server/internal/config"
	"uno-server/internal/engine"
	"uno-server/internal/logging"
	"uno-server/internal/session"
	"uno-server/internal/store"
	"uno-server/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New("uno-server", cfg.LogLevel)

	players := cfg.Players
	if players <= 0 {
		players = promptPlayers()
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("opening store failed", "path", cfg.DBPath, "err", err)
	}
	defer st.Close()

	seed := cfg.DealSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng, err := engine.NewUno(players, seed)
	if err != nil {
		logger.Fatal("dealing match failed", "players", players, "err", err)
	}

	sess := session.New(eng, st, logger)
	logger.Info("session created", "session", sess.ID, "players", players)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-sess.Done()
		cancel()
	}()

	router := http.NewRouter(sess, st, logger)
	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		if err := router.Run(cfg.HTTPAddr); err != nil {
			logger.Error("http server stopped", "err", err)
		}
	}()

	if err := transport.ListenAndServe(ctx, cfg.TCPAddr, logger, sess.Join); err != nil {
		logger.Fatal("tcp listener failed", "err", err)
	}

	sess.Wait()
	logger.Info("session complete, shutting down", "session", sess.ID)
}

func promptPlayers() int {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter number of players: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintln(os.Stderr, "could not read player count:", err)
			os.Exit(1)
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 2 {
			return n
		}
		fmt.Println("Please enter a number of 2 or more.")
	}
}
