package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/yafetgetachew/battleoftheshapes-sub001/logging"
	"github.com/yafetgetachew/battleoftheshapes-sub001/protocol"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // LAN play only
}

func main() {
	var (
		addr = flag.String("addr", ":27015", "listen address")
		seed = flag.String("seed", defaultWorldSeed, "world seed")
	)
	flag.Parse()

	cfg := defaultWorldConfig()
	cfg.Seed = *seed

	publisher := logging.WithFields(
		logging.NewConsolePublisher(logging.SeverityInfo),
		map[string]any{"seed": cfg.Seed},
	)
	hub := newHub(cfg, publisher)

	mux := http.NewServeMux()
	mux.HandleFunc("/join", func(w http.ResponseWriter, r *http.Request) {
		resp, err := hub.Join()
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, protocol.ErrorMessage{
				Type:   protocol.MessageError,
				Reason: protocol.ReasonServerFull,
			})
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		playerID := r.URL.Query().Get("id")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		sub, ok := hub.Subscribe(playerID, conn)
		if !ok {
			conn.Close()
			return
		}
		go readClient(hub, playerID, sub)
	})
	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"players":   hub.DiagnosticsSnapshot(),
			"telemetry": hub.telemetry.Snapshot(),
		})
	})

	server := &http.Server{Addr: *addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return hub.RunSimulation(ctx)
	})
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	log.Printf("arena host listening on %s", *addr)
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server exited: %v", err)
	}
}

// readClient pumps inbound messages from one subscriber into the command
// queue until the connection drops.
func readClient(hub *Hub, playerID string, sub *subscriber) {
	defer hub.Disconnect(playerID)
	for {
		_, data, err := sub.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg protocol.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("malformed message from %s: %v", playerID, err)
			continue
		}
		hub.HandleClientMessage(playerID, msg, time.Now())
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
