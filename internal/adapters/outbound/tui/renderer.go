package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/inventario/internal/domain"
)

// ── Palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	optionStyle   = lipgloss.NewStyle().Foreground(fg)
	keyStyle      = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	codeStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("─", 32))
)

var mainOptions = []string{
	"Add products to inventory",
	"View your inventory",
	"Sell products",
	"Configure account",
	"Exit",
}

var addOptions = []string{
	"Manual",
	"Automatic",
	"Back",
}

// RenderMainMenu renders the top-level menu.
func RenderMainMenu() string {
	return renderMenu("What do you want to do?", mainOptions)
}

// RenderAddMenu renders the add-products menu.
func RenderAddMenu() string {
	return renderMenu("How do you want to add the product?", addOptions)
}

func renderMenu(title string, options []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for i, opt := range options {
		b.WriteString(keyStyle.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(" ")
		b.WriteString(optionStyle.Render(opt))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderCodePrompt renders the manual entry prompt (no trailing newline).
func RenderCodePrompt() string {
	return "Enter the code: "
}

// RenderInventory lists every stored code, one per line.
func RenderInventory(codes []domain.ProductCode) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Codes:"))
	b.WriteString("\n")

	if len(codes) == 0 {
		b.WriteString("  " + dimStyle.Render("Inventory is empty.") + "\n")
		return b.String()
	}

	for _, c := range codes {
		b.WriteString("  " + codeStyle.Render(c.String()) + "\n")
	}
	b.WriteString("  " + separatorLine + "\n")
	b.WriteString("  " + dimStyle.Render(pluralCodes(len(codes))) + "\n")
	return b.String()
}

// RenderAdded reports a stored batch.
func RenderAdded(batch domain.Batch) string {
	return passStyle.Render(fmt.Sprintf("Codes %s added successfully", formatCodes(batch.Strings()))) + "\n"
}

// RenderAddFailed reports a batch that was not stored as one unit.
func RenderAddFailed(batch domain.Batch, err error) string {
	msg := RenderFailure(err)
	if batch.IsEmpty() {
		return msg
	}
	return failStyle.Render(fmt.Sprintf("Codes %s were not added", formatCodes(batch.Strings()))) + "\n" + msg
}

// RenderFailure turns an error into the message shown to the operator.
// Storage details stay in the log file.
func RenderFailure(err error) string {
	var oe *domain.OpError
	detail := err
	if errors.As(err, &oe) && oe.Err != nil {
		detail = oe.Err
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return warnStyle.Render("The code cannot be empty, try again") + "\n"
	case domain.KindDuplicate:
		code := ""
		if oe.Code != "" {
			code = " " + oe.Code
		}
		return warnStyle.Render(fmt.Sprintf("Code%s is already in the inventory", code)) + "\n"
	case domain.KindDevice:
		return failStyle.Render(fmt.Sprintf("Could not read codes from the device: %v", detail)) + "\n"
	case domain.KindNotImplemented:
		return RenderNotImplemented()
	default:
		return failStyle.Render("Looks like something went wrong, try again") + "\n"
	}
}

// RenderNotImplemented reports a menu entry that is not available yet.
func RenderNotImplemented() string {
	return warnStyle.Render("This is not available yet") + "\n"
}

// RenderPressEnter asks the operator to acknowledge before returning.
func RenderPressEnter() string {
	return dimStyle.Render("Press Enter to go back") + "\n"
}

// RenderUnknownOption is shown for unrecognized menu input.
func RenderUnknownOption() string {
	return warnStyle.Render("I didn't understand, let's try again") + "\n"
}

// RenderGoodbye is shown on the exit path.
func RenderGoodbye() string {
	return dimStyle.Render("Inventory saved. Bye!") + "\n"
}

func formatCodes(codes []string) string {
	return "{" + strings.Join(codes, ", ") + "}"
}

func pluralCodes(n int) string {
	if n == 1 {
		return "1 code"
	}
	return fmt.Sprintf("%d codes", n)
}
