// Command client is the interactive terminal front end: it prints
// every server line and forwards typed actions.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"
)

func main() {
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = "127.0.0.1:5555"
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not connect:", err)
		os.Exit(1)
	}
	defer conn.Close()

	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			fmt.Println("Server:", scanner.Text())
		}
		fmt.Println("Disconnected from server.")
		os.Exit(0)
	}()

	fmt.Println("Connected to", addr)
	fmt.Println("Available actions:")
	fmt.Println("  play <card_index> [color]  - play a card")
	fmt.Println("  pick                       - pick a card")
	fmt.Println("  exit                       - leave the game")

	stdin := bufio.NewScanner(os.Stdin)
	for stdin.Scan() {
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			return
		}
		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			fmt.Fprintln(os.Stderr, "send failed:", err)
			return
		}
	}
}
