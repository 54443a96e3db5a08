// Package ui is the terminal storefront: it renders the catalog and the cart
// and turns key presses into cart actions.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aman11srivastava/shopping-cart/internal/cartstore"
	"github.com/aman11srivastava/shopping-cart/internal/catalog"
	"github.com/aman11srivastava/shopping-cart/internal/domain"
)

// gridColumns is the number of product cards per row.
const gridColumns = 3

// catalogMsg carries a settled catalog query back to the update loop.
type catalogMsg catalog.Query

// Model is the bubbletea model of the storefront. All cart changes go through
// the store from Update, which bubbletea runs on a single goroutine.
type Model struct {
	ctx     context.Context
	store   *cartstore.Store
	fetcher catalog.Fetcher

	query   catalog.Query
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  Styles

	cursor       int
	drawerOpen   bool
	drawerCursor int
	width        int
	height       int
}

// New creates the storefront model. ctx bounds the catalog fetches and is
// attached to every cart action.
func New(ctx context.Context, store *cartstore.Store, fetcher catalog.Fetcher) Model {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		ctx:     ctx,
		store:   store,
		fetcher: fetcher,
		query:   catalog.NewQuery(),
		spinner: sp,
		help:    help.New(),
		keys:    defaultKeyMap(),
		styles:  styles,
	}
	m.keys.enableFor(m.screen())
	return m
}

// Init starts the catalog fetch and the loading spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog())
}

// loadCatalog runs the fetch off the update loop and reports the result as a
// catalogMsg.
func (m Model) loadCatalog() tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		return catalogMsg(catalog.Run(ctx, fetcher))
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case catalogMsg:
		m.query = catalog.Query(msg)
		m.cursor = clamp(m.cursor, len(m.query.Products))
		m.keys.enableFor(m.screen())
		return m, nil

	case spinner.TickMsg:
		if m.query.Settled() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		m.keys.enableFor(m.screen())
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.screen() {
	case screenError:
		if key.Matches(msg, m.keys.Retry) {
			m.query = catalog.NewQuery()
			return m, tea.Batch(m.spinner.Tick, m.loadCatalog())
		}

	case screenGrid:
		products := m.query.Products
		switch {
		case key.Matches(msg, m.keys.Left):
			m.cursor = clamp(m.cursor-1, len(products))
		case key.Matches(msg, m.keys.Right):
			m.cursor = clamp(m.cursor+1, len(products))
		case key.Matches(msg, m.keys.Up):
			if m.cursor-gridColumns >= 0 {
				m.cursor -= gridColumns
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor+gridColumns < len(products) {
				m.cursor += gridColumns
			}
		case key.Matches(msg, m.keys.Add):
			if len(products) > 0 {
				m.store.AddToCart(m.ctx, products[m.cursor])
			}
		case key.Matches(msg, m.keys.Cart):
			m.drawerOpen = true
			m.drawerCursor = clamp(m.drawerCursor, len(m.store.Cart()))
		}

	case screenDrawer:
		cart := m.store.Cart()
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Cart):
			m.drawerOpen = false
		case key.Matches(msg, m.keys.Up):
			m.drawerCursor = clamp(m.drawerCursor-1, len(cart))
		case key.Matches(msg, m.keys.Down):
			m.drawerCursor = clamp(m.drawerCursor+1, len(cart))
		case key.Matches(msg, m.keys.More):
			if item, ok := m.focusedLine(); ok {
				m.store.AddToCart(m.ctx, item.Product)
			}
		case key.Matches(msg, m.keys.Less):
			if item, ok := m.focusedLine(); ok {
				cart = m.store.RemoveFromCart(m.ctx, item.ID)
				m.drawerCursor = clamp(m.drawerCursor, len(cart))
			}
		}
	}

	return m, nil
}

func (m Model) screen() screen {
	switch {
	case m.query.Status == catalog.StatusLoading:
		return screenLoading
	case m.query.Status == catalog.StatusError:
		return screenError
	case m.drawerOpen:
		return screenDrawer
	default:
		return screenGrid
	}
}

func (m Model) focusedLine() (domain.CartLineItem, bool) {
	cart := m.store.Cart()
	if m.drawerCursor < 0 || m.drawerCursor >= len(cart) {
		return domain.CartLineItem{}, false
	}
	return cart[m.drawerCursor], true
}

// clamp keeps i within [0, n), returning 0 for an empty range.
func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
