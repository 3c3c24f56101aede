// Package cli exposes the cart operations as one-shot commands.
// Every command restores the saved cart, runs one operation and exits; changes are saved by the cart manager.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/abgdnv/cartkeeper/internal/app"
	"github.com/abgdnv/cartkeeper/internal/cart"
	"github.com/abgdnv/cartkeeper/internal/service"
	"github.com/abgdnv/cartkeeper/pkg/logger"
	"github.com/spf13/cobra"
)

// Opener builds the dependencies for one command run.
type Opener func(ctx context.Context, opts app.Options) (*app.Dependencies, error)

// Interactive runs the terminal UI on restored dependencies until the user quits or ctx is done.
type Interactive func(ctx context.Context, deps *app.Dependencies) error

// NewRootCommand creates the cart command. Without a subcommand it starts the interactive UI.
func NewRootCommand(open Opener, interactive Interactive) *cobra.Command {
	var opts app.Options

	// withCart opens the dependencies, restores the cart and runs fn with a fresh action ID.
	withCart := func(cmd *cobra.Command, fn func(ctx context.Context, deps *app.Dependencies) error) error {
		ctx := logger.WithActionID(cmd.Context())
		deps, err := open(ctx, opts)
		if err != nil {
			return err
		}
		defer func() {
			if err := deps.Close(); err != nil {
				deps.Logger.ErrorContext(ctx, "Error closing dependencies", "error", err)
			}
		}()
		deps.CartService.Restore(ctx)
		return fn(ctx, deps)
	}

	root := &cobra.Command{
		Use:   "cart",
		Short: "Shopping cart kept on this machine",
		Long: `cart keeps a shopping cart in local storage.

Run without arguments to start the interactive shop. The subcommands
run one cart operation against the saved cart and exit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withCart(cmd, interactive)
		},
	}
	root.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "f", "", "config file (default config.yaml)")
	root.PersistentFlags().BoolVar(&opts.Ephemeral, "ephemeral", false, "keep the cart in memory only")

	root.AddCommand(
		newProductsCommand(withCart),
		newShowCommand(withCart),
		newAddCommand(withCart),
		newIndexCommand(withCart, "inc", "Add one unit to the item at position", service.CartService.IncrementQuantity),
		newIndexCommand(withCart, "dec", "Remove one unit from the item at position, keeping at least one", service.CartService.DecrementQuantity),
		newIndexCommand(withCart, "rm", "Remove the item at position", service.CartService.RemoveItem),
		newCheckoutCommand(withCart),
	)
	return root
}

type runner func(cmd *cobra.Command, fn func(ctx context.Context, deps *app.Dependencies) error) error

func newProductsCommand(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the products on offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(_ context.Context, deps *app.Dependencies) error {
				out := cmd.OutOrStdout()
				for i, item := range deps.Catalog.Items() {
					fmt.Fprintf(out, "%d. %-20s %s\n", i+1, item.Name, item.Price)
				}
				return nil
			})
		},
	}
}

func newShowCommand(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart and its total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(_ context.Context, deps *app.Dependencies) error {
				printCart(cmd.OutOrStdout(), deps)
				return nil
			})
		},
	}
}

func newAddCommand(run runner) *cobra.Command {
	var product int
	cmd := &cobra.Command{
		Use:   "add [name price]",
		Short: "Add one unit of a product",
		Long: `Add one unit of a product to the cart, either by name and price
or by its position in the product list (--product).`,
		Example: "  cart add Widget 9.99\n  cart add --product 2",
		Args: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("product") {
				if product < 1 {
					return fmt.Errorf("invalid product position: %d", product)
				}
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, deps *app.Dependencies) error {
				var input cart.ProductInput
				if product > 0 {
					item, err := deps.Catalog.At(product - 1)
					if err != nil {
						return err
					}
					input = item.Input()
				} else {
					input = cart.ProductInput{Name: args[0], Price: args[1]}
				}

				if err := deps.CartService.AddItem(ctx, input); err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), deps.Notifier.ForError(err).Message)
					return err
				}
				printCart(cmd.OutOrStdout(), deps)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&product, "product", "p", 0, "position of the product in the product list")
	return cmd
}

// newIndexCommand builds a command running op on the 1-based position given as its argument.
func newIndexCommand(run runner, use, short string, op func(service.CartService, context.Context, int) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <position>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			return run(cmd, func(ctx context.Context, deps *app.Dependencies) error {
				if !op(deps.CartService, ctx, position-1) {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed")
				}
				printCart(cmd.OutOrStdout(), deps)
				return nil
			})
		},
	}
}

func newCheckoutCommand(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Pay for the cart and empty it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, deps *app.Dependencies) error {
				receipt, err := deps.CartService.Checkout(ctx)
				if err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), deps.Notifier.ForError(err).Message)
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), deps.Notifier.CheckoutSucceeded(receipt.Total).Message)
				fmt.Fprintf(cmd.OutOrStdout(), "Order %s\n", receipt.OrderID)
				return nil
			})
		},
	}
}

func printCart(out io.Writer, deps *app.Dependencies) {
	snapshot := deps.CartService.Snapshot()
	if snapshot.IsEmpty() {
		fmt.Fprintln(out, "Your cart is empty")
		return
	}
	for _, line := range snapshot.Lines {
		fmt.Fprintf(out, "%d. %-20s %s x %d = %s\n",
			line.Index+1,
			line.Name,
			deps.Notifier.Amount(line.Price),
			line.Quantity,
			deps.Notifier.Amount(line.Subtotal))
	}
	fmt.Fprintf(out, "Total: %s\n", deps.Notifier.Amount(snapshot.Total))
}
