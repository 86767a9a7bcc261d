package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/user/boxrec-service/cmd/boxrec-cli/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	commands.ExecuteContext(ctx)
}
