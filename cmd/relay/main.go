// Command relay serves the WhatsApp webhook that answers Paiute dictionary
// questions through a function-calling language model.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/kubishi-relay/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		stop()
		log.Fatalf("relay: %v", err)
	}
}
