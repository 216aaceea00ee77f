package render

// DefaultMaxWidth caps the display width regardless of the terminal size.
const DefaultMaxWidth = 79

// tableChrome is the border and padding around the table body: two border
// characters and one space of padding on each side.
const tableChrome = 4

// Layout is the horizontal geometry shared by tables and messages.
type Layout struct {
	TerminalWidth int
	DisplayWidth  int // min(TerminalWidth, max width)
	Margin        int // left margin that centers DisplayWidth on the terminal
	TableSpace    int // room left for the table body inside the borders
}

// ComputeLayout derives the layout for a terminal. A maxWidth of zero or
// less means DefaultMaxWidth.
func ComputeLayout(terminalWidth, maxWidth int) Layout {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	display := terminalWidth
	if display > maxWidth {
		display = maxWidth
	}
	if display < 0 {
		display = 0
	}
	margin := (terminalWidth - display) / 2
	if margin < 0 {
		margin = 0
	}
	return Layout{
		TerminalWidth: terminalWidth,
		DisplayWidth:  display,
		Margin:        margin,
		TableSpace:    display - tableChrome,
	}
}
