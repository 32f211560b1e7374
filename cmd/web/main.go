// Command web serves the user directory pages and JSON API.
package main

import (
	"context"
	"log"

	"user-directory/cmd/web/app"
	"user-directory/cmd/web/server"
)

func main() {
	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("application exited with error: %v", err)
	}
}
