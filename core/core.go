package slight

import (
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
)

// Core is the central actor that owns one evaluator session and serves
// requests from socket clients.
type Core struct {
	session   *Session
	history   *History
	requests  chan coreRequest
	done      chan struct{}
	closeOnce sync.Once
	listener  net.Listener
	traces    []Trace
	maxTraces int
}

type coreRequest struct {
	msg      map[string]any
	response chan map[string]any
}

// NewCore creates a core listening on cfg.Socket.
func NewCore(cfg Config) (*Core, error) {
	// Clean up a stale socket
	os.Remove(cfg.Socket)

	c, err := newCore(cfg)
	if err != nil {
		return nil, err
	}
	listener, err := net.Listen("unix", cfg.Socket)
	if err != nil {
		c.closeHistory()
		return nil, fmt.Errorf("listen: %w", err)
	}
	c.listener = listener
	return c, nil
}

func newCore(cfg Config) (*Core, error) {
	ev := NewEvaluator()
	ev.MaxDepth = cfg.MaxDepth
	session := NewSession(ev, io.Discard)
	session.KeepSteps = cfg.KeepSteps

	c := &Core{
		session:   session,
		requests:  make(chan coreRequest, 64),
		done:      make(chan struct{}),
		maxTraces: cfg.MaxTraces,
	}
	if cfg.HistoryDB != "" {
		h, err := OpenHistory(cfg.HistoryDB)
		if err != nil {
			return nil, err
		}
		c.history = h
		session.History = h
	}
	return c, nil
}

// Run starts the actor goroutine and accepts connections. Blocks until shutdown.
func (c *Core) Run() {
	go c.actorLoop()
	c.acceptClients()
}

func (c *Core) acceptClients() {
	for {
		conn, err := c.listener.Accept()
		if err != nil {
			return
		}
		go c.handleClientConnection(conn)
	}
}

// Shutdown cleanly stops the core.
func (c *Core) Shutdown() {
	c.closeOnce.Do(func() {
		if c.listener != nil {
			c.listener.Close()
		}
		close(c.done)
		c.closeHistory()
	})
}

func (c *Core) closeHistory() {
	if c.history != nil {
		if err := c.history.Close(); err != nil {
			log.Printf("close history: %v", err)
		}
	}
}

// actorLoop is the single goroutine that owns the evaluator.
func (c *Core) actorLoop() {
	for {
		select {
		case req := <-c.requests:
			req.response <- c.handleRequest(req.msg)
		case <-c.done:
			return
		}
	}
}

// sendToActor sends a request to the core actor and waits for the response.
func (c *Core) sendToActor(msg map[string]any) map[string]any {
	id, _ := msg["id"].(string)
	resp := make(chan map[string]any, 1)
	select {
	case c.requests <- coreRequest{msg: msg, response: resp}:
	case <-c.done:
		return errorResponse(id, "core is shutting down")
	}
	select {
	case r := <-resp:
		return r
	case <-c.done:
		return errorResponse(id, "core is shutting down")
	}
}

func (c *Core) handleRequest(msg map[string]any) map[string]any {
	id, _ := msg["id"].(string)

	op, _ := msg["op"].(string)
	if op == "" {
		// No op: return the manual
		return c.coreManual(id)
	}

	switch op {
	case "eval":
		return c.handleEval(id, msg)
	case "load":
		return c.handleLoad(id, msg)
	case "traces":
		return c.handleTraces(id, msg)
	case "history":
		return c.handleHistory(id, msg)
	case "clear":
		return c.handleClear(id, msg)
	default:
		return errorResponse(id, fmt.Sprintf("unknown op: %s", op))
	}
}

func (c *Core) coreManual(id string) map[string]any {
	return map[string]any{
		"id": id,
		"ok": true,
		"value": map[string]any{
			"name":    "slight-core",
			"version": "1.0.0",
			"ops": map[string]any{
				"eval":    "Evaluate slight expressions. Params: expr (string)",
				"load":    "Evaluate the contents of a file. Params: path (string)",
				"traces":  "Recent evaluations of this session. Params: n (number, optional)",
				"history": "Recent evaluations from the history database. Params: n (number, optional)",
				"clear":   "Drop all bindings, in-memory traces and stored history.",
			},
			"forms": []any{"δ", "λ", "->", "ε", "ι", "_", "Ω"},
		},
	}
}

func (c *Core) handleEval(id string, msg map[string]any) map[string]any {
	expr, ok := msg["expr"].(string)
	if !ok {
		return errorResponse(id, "eval: missing 'expr' string")
	}
	return c.evalResponse(id, c.session.Run(expr))
}

func (c *Core) handleLoad(id string, msg map[string]any) map[string]any {
	path, ok := msg["path"].(string)
	if !ok {
		return errorResponse(id, "load: missing 'path' string")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errorResponse(id, fmt.Sprintf("load: %s", err))
	}
	return c.evalResponse(id, c.session.Run(string(data)))
}

// evalResponse reports the last result as value. The first failure, if any,
// makes the whole response fail; every per-expression outcome is included.
func (c *Core) evalResponse(id string, traces []*Trace) map[string]any {
	results := make([]any, len(traces))
	var value any
	firstErr := ""
	for i, t := range traces {
		c.appendTrace(t)
		results[i] = t.ToMap()
		if t.Error != "" && firstErr == "" {
			firstErr = t.Error
		}
		value = t.Result
	}
	if firstErr != "" {
		resp := errorResponse(id, firstErr)
		resp["results"] = results
		return resp
	}
	return map[string]any{"id": id, "ok": true, "value": value, "results": results}
}

func (c *Core) handleTraces(id string, msg map[string]any) map[string]any {
	n, err := countParam(msg)
	if err != nil {
		return errorResponse(id, "traces: "+err.Error())
	}
	if n <= 0 || n > len(c.traces) {
		n = len(c.traces)
	}
	start := len(c.traces) - n
	result := make([]any, n)
	for i := 0; i < n; i++ {
		result[i] = c.traces[start+i].ToMap()
	}
	return map[string]any{"id": id, "ok": true, "value": result}
}

func (c *Core) handleHistory(id string, msg map[string]any) map[string]any {
	if c.history == nil {
		return errorResponse(id, "history: no history database configured")
	}
	n, err := countParam(msg)
	if err != nil {
		return errorResponse(id, "history: "+err.Error())
	}
	traces, err := c.history.Recent(n)
	if err != nil {
		return errorResponse(id, err.Error())
	}
	result := make([]any, len(traces))
	for i := range traces {
		result[i] = traces[i].ToMap()
	}
	return map[string]any{"id": id, "ok": true, "value": result}
}

func (c *Core) handleClear(id string, msg map[string]any) map[string]any {
	c.session.Eval.Reset()
	c.traces = nil
	if c.history != nil {
		if err := c.history.Clear(); err != nil {
			return errorResponse(id, err.Error())
		}
	}
	return map[string]any{"id": id, "ok": true, "value": "cleared"}
}

// countParam reads the optional numeric "n" field. Missing means 0.
func countParam(msg map[string]any) (int, error) {
	raw, exists := msg["n"]
	if !exists || raw == nil {
		return 0, nil
	}
	f, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("'n' must be a number")
	}
	return int(f), nil
}

func errorResponse(id, errMsg string) map[string]any {
	return map[string]any{"id": id, "ok": false, "error": errMsg}
}

// --- Connection handling ---

func (c *Core) handleClientConnection(conn net.Conn) {
	defer conn.Close()

	for {
		msg, err := ReadMsg(conn)
		if err != nil {
			if err != io.EOF {
				log.Printf("read client message: %v", err)
			}
			return
		}

		resp := c.sendToActor(msg)
		if err := WriteMsg(conn, resp); err != nil {
			log.Printf("write client response: %v", err)
			return
		}
	}
}

// appendTrace adds a trace and enforces the maxTraces cap.
func (c *Core) appendTrace(t *Trace) {
	c.traces = append(c.traces, *t)
	if c.maxTraces > 0 && len(c.traces) > c.maxTraces {
		// Drop oldest traces
		excess := len(c.traces) - c.maxTraces
		c.traces = c.traces[excess:]
	}
}
