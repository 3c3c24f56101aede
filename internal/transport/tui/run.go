package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/abgdnv/cartkeeper/internal/app"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Run starts the terminal UI on restored dependencies and, if the store supports it,
// a watcher that reloads the cart when another process changes it.
// It returns once the user quits or ctx is done, after saving the cart once more.
func Run(ctx context.Context, deps *app.Dependencies, opts ...tea.ProgramOption) error {
	logger := deps.Logger
	model := New(ctx, deps.CartService, deps.Catalog, deps.Notifier, logger)

	g, gCtx := errgroup.WithContext(ctx)
	program := tea.NewProgram(model, append(opts, tea.WithContext(gCtx))...)

	g.Go(func() error {
		defer logger.InfoContext(ctx, "Interactive session ended")
		_, err := program.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("terminal UI failed: %w", err)
		}
		// the user quit; stop the watcher
		return context.Canceled
	})

	if watcher, ok := deps.Watcher(); ok {
		g.Go(func() error {
			err := watcher.Watch(gCtx, deps.Config.Storage.Key, func() {
				program.Send(StorageChangedMsg{})
			})
			if err != nil {
				logger.ErrorContext(ctx, "Storage watcher stopped", "error", err)
			}
			return nil
		})
	}

	logger.InfoContext(ctx, "Interactive session started", "driver", deps.Config.Storage.Driver)
	waitErr := g.Wait()

	// flush the cart once more
	shutdownCtx, cancel := deps.Config.Shutdown.Context()
	defer cancel()
	if err := deps.CartService.Persist(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Error saving cart on exit", "error", err)
	}

	if waitErr != nil && !errors.Is(waitErr, context.Canceled) {
		return waitErr
	}
	return nil
}
