package views

import (
	"fmt"
	"strings"
)

type TaskRow struct {
	ID        string
	Text      string
	Done      bool
	Recurring bool
	Overdue   bool
	Urgency   string
	Category  string
	DueDate   string
	Comments  int
	Selected  bool
}

type BlockPanelData struct {
	Label  string
	Active bool
	Rows   []TaskRow
}

type DayPanelData struct {
	Date    string
	IsToday bool
	Blocks  []BlockPanelData
	// Input is the rendered text input when one is open.
	Input   string
}

type SectionGroupData struct {
	Category string
	Stale    bool
	Rows     []TaskRow
}

type SectionData struct {
	Title  string
	Groups []SectionGroupData
}

type CommentData struct {
	Text     string
	At       string
	Selected bool
}

type CommentsPanelData struct {
	TaskText  string
	Recurring bool
	Comments  []CommentData
	Input     string
}

type LoginPanelData struct {
	UsernameView string
	PasswordView string
	Error        string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderDayPanel(data DayPanelData) string {
	var b strings.Builder
	title := data.Date
	if data.IsToday {
		title += " (today)"
	}
	b.WriteString("day: " + title + "\n")
	for _, block := range data.Blocks {
		marker := " "
		if block.Active {
			marker = "*"
		}
		b.WriteString(fmt.Sprintf("\n%s %s\n", marker, block.Label))
		if len(block.Rows) == 0 {
			b.WriteString("    (empty)\n")
			continue
		}
		for _, row := range block.Rows {
			b.WriteString(renderTaskRow(row, false) + "\n")
		}
	}
	if data.Input != "" {
		b.WriteString("\n" + data.Input + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderSectionsPanel(sections []SectionData) string {
	var b strings.Builder
	b.WriteString("sections:\n")
	for _, section := range sections {
		count := 0
		for _, g := range section.Groups {
			count += len(g.Rows)
		}
		b.WriteString(fmt.Sprintf("\n%s (%d):\n", section.Title, count))
		if count == 0 {
			b.WriteString("  (none)\n")
			continue
		}
		for _, g := range section.Groups {
			name := g.Category
			if name == "" {
				name = "(uncategorised)"
			}
			if g.Stale {
				name += " (removed)"
			}
			b.WriteString("  " + name + "\n")
			for _, row := range g.Rows {
				b.WriteString("  " + renderTaskRow(row, true) + "\n")
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderCommentsPanel(data CommentsPanelData) string {
	var b strings.Builder
	b.WriteString("comments: " + data.TaskText)
	if data.Recurring {
		b.WriteString(" (repeats daily)")
	}
	b.WriteString("\nkeys: [a]add [x]delete [j/k]move [esc]back\n")
	if len(data.Comments) == 0 {
		b.WriteString("\n(no comments)\n")
	}
	for _, c := range data.Comments {
		cursor := " "
		if c.Selected {
			cursor = ">"
		}
		body := RenderMarkdown(c.Text)
		if body == "" {
			body = c.Text
		}
		b.WriteString(fmt.Sprintf("\n%s %s\n%s\n", cursor, c.At, body))
	}
	if data.Input != "" {
		b.WriteString("\n" + data.Input + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderLoginPanel(data LoginPanelData) string {
	return fmt.Sprintf("login:\n%s\n%s\n\nkeys: [tab]switch [enter]submit [ctrl+c]quit",
		data.UsernameView,
		data.PasswordView,
	)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func renderTaskRow(row TaskRow, withDate bool) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	check := "[ ]"
	if row.Done {
		check = "[x]"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s %s", cursor, check, urgencyBadge(row.Urgency), row.Text))
	if row.Category != "" {
		b.WriteString(" #" + row.Category)
	}
	if row.Recurring {
		b.WriteString(" (repeat)")
	}
	if row.Overdue {
		b.WriteString(" OVERDUE")
	}
	if withDate && row.DueDate != "" {
		b.WriteString(" due:" + row.DueDate)
	}
	if row.Comments > 0 {
		b.WriteString(fmt.Sprintf(" [%d]", row.Comments))
	}
	return b.String()
}

func urgencyBadge(urgency string) string {
	switch strings.ToLower(urgency) {
	case "high":
		return "!!!"
	case "low":
		return "!  "
	default:
		return "!! "
	}
}
