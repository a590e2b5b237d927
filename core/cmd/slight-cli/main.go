package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	slight "github.com/rphilander/slight/core"
)

func main() {
	cfg, err := slight.LoadConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Read JSON from stdin
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read stdin: %v\n", err)
		os.Exit(1)
	}

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		fmt.Fprintf(os.Stderr, "parse JSON: %v\n", err)
		os.Exit(1)
	}
	if msg == nil {
		msg = map[string]any{}
	}

	client, err := slight.Dial(cfg.Socket)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	resp, err := client.Send(msg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "send: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "format response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
