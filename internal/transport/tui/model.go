// Package tui is the interactive terminal front-end of the cart.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abgdnv/cartkeeper/internal/catalog"
	"github.com/abgdnv/cartkeeper/internal/notify"
	"github.com/abgdnv/cartkeeper/internal/service"
	"github.com/abgdnv/cartkeeper/pkg/logger"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// StorageChangedMsg tells the model that the persisted cart was changed by another process.
type StorageChangedMsg struct{}

// Model is the bubbletea model of the shop screen and its cart modal.
// All cart manager calls happen inside Update, so the cart is only touched from the program's event loop.
type Model struct {
	ctx      context.Context
	service  service.CartService
	catalog  *catalog.Catalog
	notifier *notify.Notifier
	logger   *slog.Logger

	keys   keyMap
	help   help.Model
	styles styles

	cursor     int
	cartOpen   bool
	cartCursor int
	alert      *notify.Alert
	status     string

	width  int
	height int
}

// New creates the model. The cart should already be restored.
func New(ctx context.Context, svc service.CartService, cat *catalog.Catalog, notifier *notify.Notifier, logger *slog.Logger) Model {
	return Model{
		ctx:      ctx,
		service:  svc,
		catalog:  cat,
		notifier: notifier,
		logger:   logger.With("component", "tui"),
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case StorageChangedMsg:
		ctx := logger.WithActionID(m.ctx)
		m.logger.DebugContext(ctx, "Storage changed, reloading cart")
		m.service.Restore(ctx)
		m.clampCartCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// an open alert blocks everything else until dismissed
	if m.alert != nil {
		if key.Matches(msg, m.keys.Dismiss) {
			m.alert = nil
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	ctx := logger.WithActionID(m.ctx)
	if m.cartOpen {
		m.handleCartKey(ctx, msg)
	} else {
		m.handleCatalogKey(ctx, msg)
	}
	return m, nil
}

func (m *Model) handleCatalogKey(ctx context.Context, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.catalog.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.addSelected(ctx)
	case key.Matches(msg, m.keys.OpenCart):
		m.cartOpen = true
		m.cartCursor = 0
		m.status = ""
	}
}

func (m *Model) handleCartKey(ctx context.Context, msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cartCursor < len(m.service.Snapshot().Lines)-1 {
			m.cartCursor++
		}
	case key.Matches(msg, m.keys.Increment):
		m.service.IncrementQuantity(ctx, m.cartCursor)
	case key.Matches(msg, m.keys.Decrement):
		m.service.DecrementQuantity(ctx, m.cartCursor)
	case key.Matches(msg, m.keys.Remove):
		if m.service.RemoveItem(ctx, m.cartCursor) {
			m.clampCartCursor()
		}
	case key.Matches(msg, m.keys.Checkout):
		m.checkout(ctx)
	case key.Matches(msg, m.keys.CloseCart):
		m.cartOpen = false
	}
}

func (m *Model) addSelected(ctx context.Context) {
	item, err := m.catalog.At(m.cursor)
	if err != nil {
		return
	}
	if err := m.service.AddItem(ctx, item.Input()); err != nil {
		m.showAlert(m.notifier.ForError(err))
		return
	}
	m.status = fmt.Sprintf("Added %s", item.Name)
}

func (m *Model) checkout(ctx context.Context) {
	receipt, err := m.service.Checkout(ctx)
	if err != nil {
		m.showAlert(m.notifier.ForError(err))
		return
	}
	m.cartOpen = false
	m.cartCursor = 0
	m.showAlert(m.notifier.CheckoutSucceeded(receipt.Total))
}

func (m *Model) showAlert(a notify.Alert) {
	m.alert = &a
}

func (m *Model) clampCartCursor() {
	n := len(m.service.Snapshot().Lines)
	if m.cartCursor >= n {
		m.cartCursor = n - 1
	}
	if m.cartCursor < 0 {
		m.cartCursor = 0
	}
}

// Alert returns the alert currently shown, if any.
func (m Model) Alert() (notify.Alert, bool) {
	if m.alert == nil {
		return notify.Alert{}, false
	}
	return *m.alert, true
}

// CartOpen reports whether the cart modal is shown.
func (m Model) CartOpen() bool {
	return m.cartOpen
}

func (m Model) View() string {
	var body string
	switch {
	case m.alert != nil:
		body = m.alertView()
	case m.cartOpen:
		body = m.cartView()
	default:
		body = m.catalogView()
	}
	if m.width > 0 && m.height > 0 && (m.alert != nil || m.cartOpen) {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) catalogView() string {
	var b strings.Builder

	snapshot := m.service.Snapshot()
	badge := m.styles.Badge.Render(fmt.Sprintf("Cart (%d) %s", snapshot.Count, m.notifier.Amount(snapshot.Total)))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Title.Render("Shop"), "   ", badge))
	b.WriteString("\n")

	for i, item := range m.catalog.Items() {
		line := fmt.Sprintf("%-20s %s", item.Name, m.styles.Price.Render(m.displayPrice(item.Price)))
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Item.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.Muted.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.catalogHelp()))
	return b.String()
}

func (m Model) cartView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Your cart"))
	b.WriteString("\n")

	snapshot := m.service.Snapshot()
	if snapshot.IsEmpty() {
		b.WriteString(m.styles.Muted.Render("Your cart is empty"))
		b.WriteString("\n")
	}
	for _, line := range snapshot.Lines {
		row := fmt.Sprintf("%d. %-18s %s x %d = %s",
			line.Index+1,
			line.Name,
			m.notifier.Amount(line.Price),
			line.Quantity,
			m.notifier.Amount(line.Subtotal))
		if line.Index == m.cartCursor {
			b.WriteString(m.styles.Selected.Render("> " + row))
		} else {
			b.WriteString(m.styles.Item.Render("  " + row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Total.Render("Total: " + m.notifier.Amount(snapshot.Total)))
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.cartHelp()))
	return m.styles.Modal.Render(b.String())
}

func (m Model) alertView() string {
	style := m.styles.Alert
	if m.alert.IsError() {
		style = m.styles.AlertErr
	}
	return style.Render(m.alert.Message + "\n\n" + m.help.ShortHelpView(m.keys.alertHelp()))
}

// displayPrice renders a catalog price; text that is not a number is shown as is.
func (m Model) displayPrice(price string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return price
	}
	return m.notifier.Amount(d)
}
