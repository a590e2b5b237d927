package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"

	slight "github.com/rphilander/slight/core"
)

const (
	historyFile = ".slight_history"
	promptMain  = "sl> "
	promptCont  = "... "
)

func main() {
	ast := flag.Bool("ast", false, "print the parsed tree of each argument instead of evaluating")
	steps := flag.Bool("steps", false, "print every reduction step")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: slight [-steps] [FILE...]\n       slight -ast EXPR...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *ast {
		os.Exit(dumpAST(flag.Args()))
	}

	cfg, err := slight.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ev := slight.NewEvaluator()
	ev.MaxDepth = cfg.MaxDepth
	session := slight.NewSession(ev, os.Stdout)
	session.ShowSteps = *steps
	if cfg.HistoryDB != "" {
		h, err := slight.OpenHistory(cfg.HistoryDB)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer h.Close()
		session.History = h
	}

	if flag.NArg() > 0 {
		for _, path := range flag.Args() {
			if !session.Process("load " + path) {
				break
			}
		}
		return
	}
	repl(session)
}

func dumpAST(exprs []string) int {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
	status := 0
	for _, src := range exprs {
		node, err := slight.Parse(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
			continue
		}
		fmt.Println(node)
		cfg.Fdump(os.Stdout, node)
	}
	return status
}

func repl(session *slight.Session) {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))
		if !session.Process(input) {
			return
		}
	}
}

// readInput reads lines until they form a complete input. Host commands
// and inputs that fail for reasons other than running out of tokens are
// returned as is.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := strings.TrimSpace(b.String())
		if src == "exit" || strings.HasPrefix(src, "load ") {
			return src, true
		}
		if _, err := slight.ParseAll(src); slight.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
