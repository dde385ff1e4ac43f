// Command server runs the EDI ingestion backend.
//
// Configuration is read from ./config.yaml (override with CONFIG_PATH)
// and environment variables.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"

	"github.com/heartmarshall/ediflow-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("run: %v", err)
	}
}
