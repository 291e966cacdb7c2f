package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/todoapp/core/cmd/todoapp/commands"
)

// @title todoapp bridge
// @version 1.0
// @description Loopback bridge between the todoapp desktop front-end and the local task store.
// @description Every route answers with the {success, data, error} envelope.

// @license.name MIT

// @host 127.0.0.1:17420
// @BasePath /
func main() {
	err := commands.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}

	// failed envelopes are already on stdout
	if !errors.Is(err, commands.ErrOperationFailed) {
		fmt.Fprintf(os.Stderr, "todoapp: %v\n", err)
	}
	os.Exit(1)
}
