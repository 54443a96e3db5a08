package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aman11srivastava/shopping-cart/internal/domain"
)

const (
	defaultWidth = 100
	drawerWidth  = 40
	minCardWidth = 18
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.screen() {
	case screenLoading:
		body = m.spinner.View() + " Loading products..."
	case screenError:
		body = m.viewError()
	default:
		body = m.viewStore()
	}
	return body + "\n\n" + m.help.View(m.keys) + "\n"
}

func (m Model) viewError() string {
	var b strings.Builder
	b.WriteString(m.styles.Error.Render("Something went wrong..."))
	if m.query.Err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(m.query.Err.Error()))
	}
	return b.String()
}

func (m Model) viewStore() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Title.Render("Shopping Cart"),
		"  ",
		m.styles.Badge.Render(fmt.Sprintf("Cart %d", m.store.TotalItems())),
	)

	gridWidth := width
	if m.drawerOpen {
		gridWidth -= drawerWidth
	}
	content := m.viewGrid(gridWidth)
	if m.drawerOpen {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.viewDrawer())
	}

	return header + "\n\n" + content
}

func (m Model) viewGrid(width int) string {
	products := m.query.Products
	if len(products) == 0 {
		return m.styles.Muted.Render("No products available.")
	}

	// Borders and the gap between cards.
	cardWidth := width/gridColumns - 4
	if cardWidth < minCardWidth {
		cardWidth = minCardWidth
	}

	rows := make([]string, 0, (len(products)+gridColumns-1)/gridColumns)
	for start := 0; start < len(products); start += gridColumns {
		end := min(start+gridColumns, len(products))
		cards := make([]string, 0, gridColumns)
		for i := start; i < end; i++ {
			cards = append(cards, m.viewCard(products[i], cardWidth, i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewCard(p domain.Product, width int, focused bool) string {
	style := m.styles.Card
	if focused {
		style = m.styles.CardFocus
	}

	inCart := ""
	if n := m.store.Cart().Amount(p.ID); n > 0 {
		inCart = m.styles.Muted.Render(fmt.Sprintf(" (%d in cart)", n))
	}

	lines := []string{
		m.styles.CardTitle.Render(truncate(p.Title, width-2)),
		m.styles.Category.Render(truncate(p.Category, width-2)),
		m.styles.Price.Render(formatPrice(p.Price)) + inCart,
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) viewDrawer() string {
	cart := m.store.Cart()

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Your Shopping Cart"))
	b.WriteString("\n\n")

	if len(cart) == 0 {
		b.WriteString("No items in cart.")
		return m.styles.Drawer.Width(drawerWidth).Render(b.String())
	}

	inner := drawerWidth - 6
	var total float64
	for i, item := range cart {
		title := truncate(item.Title, inner)
		if i == m.drawerCursor {
			title = m.styles.LineFocus.Render("> " + truncate(item.Title, inner-2))
		}
		lineTotal := float64(item.Amount) * item.Price
		total += lineTotal

		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("Price: %s  Total: %s", formatPrice(item.Price), formatPrice(lineTotal))))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("[-] %d [+]", item.Amount))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Title.Render("Total: " + formatPrice(total)))

	return m.styles.Drawer.Width(drawerWidth).Render(b.String())
}

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
