// Package main runs the cart: the interactive shop or one cart operation per command.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/cartkeeper/internal/app"
	"github.com/abgdnv/cartkeeper/internal/transport/cli"
	"github.com/abgdnv/cartkeeper/internal/transport/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("cart failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return cli.NewRootCommand(app.Open, runInteractive).ExecuteContext(ctx)
}

func runInteractive(ctx context.Context, deps *app.Dependencies) error {
	return tui.Run(ctx, deps, tea.WithAltScreen())
}
