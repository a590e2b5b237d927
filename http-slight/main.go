package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	slight "github.com/rphilander/slight/core"
)

const maxBody = 1 << 20

// Gateway forwards HTTP requests to a running core.
type Gateway struct {
	client *slight.Client
}

func (g *Gateway) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", g.handleManual)
	mux.HandleFunc("POST /eval", g.handleEval)
	mux.HandleFunc("POST /load", g.handleLoad)
	mux.HandleFunc("GET /traces", g.handleList("traces"))
	mux.HandleFunc("GET /history", g.handleList("history"))
	mux.HandleFunc("POST /clear", g.handleClear)
	return mux
}

func (g *Gateway) handleManual(w http.ResponseWriter, r *http.Request) {
	g.forward(w, map[string]any{})
}

// handleEval accepts either {"expr": "..."} or the raw source text.
func (g *Gateway) handleEval(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	expr := string(body)
	if isJSON(r) {
		var req struct {
			Expr string `json:"expr"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
			return
		}
		expr = req.Expr
	}
	g.forward(w, map[string]any{"op": "eval", "expr": expr})
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func (g *Gateway) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		http.Error(w, "missing path", http.StatusBadRequest)
		return
	}
	g.forward(w, map[string]any{"op": "load", "path": req.Path})
}

func (g *Gateway) handleList(op string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := map[string]any{"op": op}
		if s := r.URL.Query().Get("n"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				http.Error(w, "n must be an integer", http.StatusBadRequest)
				return
			}
			req["n"] = n
		}
		g.forward(w, req)
	}
}

func (g *Gateway) handleClear(w http.ResponseWriter, r *http.Request) {
	g.forward(w, map[string]any{"op": "clear"})
}

// forward sends req to the core and writes its response as JSON. A failed
// evaluation is 422; an unreachable core is 502.
func (g *Gateway) forward(w http.ResponseWriter, req map[string]any) {
	resp, err := g.client.Send(req)
	if err != nil {
		http.Error(w, "failed to reach core: "+err.Error(), http.StatusBadGateway)
		return
	}
	status := http.StatusOK
	if ok, _ := resp["ok"].(bool); !ok {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("write response: %v", err)
	}
}

func main() {
	cfg, err := slight.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client, err := slight.Dial(cfg.Socket)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer client.Close()
	log.Printf("connected to slight core: %s", cfg.Socket)

	g := &Gateway{client: client}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           g.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server: %v", err)
	}
}
