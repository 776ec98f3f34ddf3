package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/sandeepkv93/dayblocks/internal/model"
	"github.com/sandeepkv93/dayblocks/internal/sections"
	"github.com/sandeepkv93/dayblocks/internal/store"
)

const shortIDLen = 8

// shortID is the tail of an id. Ids are time-ordered, so the tail is the
// part that differs between tasks created close together.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[len(id)-shortIDLen:]
}

// entryJSON is one task together with the slot it lives in.
type entryJSON struct {
	Date     model.DateKey   `json:"date"`
	Block    model.Block     `json:"block"`
	Task     model.Task      `json:"task"`
	Comments []model.Comment `json:"comments,omitempty"`
}

type sectionJSON struct {
	Title   string      `json:"title"`
	Entries []entryJSON `json:"entries"`
}

func checkbox(t model.Task) string {
	if t.Done {
		return "[x]"
	}
	return "[ ]"
}

func badges(t model.Task, comments int) string {
	var parts []string
	if t.Recurring {
		parts = append(parts, "(repeat)")
	}
	if t.Overdue {
		parts = append(parts, color.New(color.FgRed).Sprint("OVERDUE"))
	}
	if comments > 0 {
		parts = append(parts, fmt.Sprintf("[%d]", comments))
	}
	return strings.Join(parts, " ")
}

func urgencyMark(u model.Urgency) string {
	switch u.OrDefault() {
	case model.UrgencyHigh:
		return color.New(color.FgHiRed).Sprint("!!!")
	case model.UrgencyLow:
		return "!"
	default:
		return "!!"
	}
}

func title(w io.Writer, text string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	_, _ = t.Fprint(w, text)
	switch count {
	case 1:
		_, _ = c.Fprintf(w, " - %d task\n", count)
	default:
		_, _ = c.Fprintf(w, " - %d tasks\n", count)
	}
}

func none(w io.Writer) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprint(w, "  none\n\n")
}

func printDay(w io.Writer, snap store.Snapshot, date model.DateKey) {
	_, _ = color.New(color.Bold).Fprintf(w, "%s\n\n", date)
	for _, block := range model.Blocks() {
		printBlock(w, snap, date, block)
	}
}

func printBlock(w io.Writer, snap store.Snapshot, date model.DateKey, block model.Block) {
	list := snap.List(date, block)
	title(w, snap.Label(block), len(list))
	if len(list) == 0 {
		none(w)
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range list {
		tbl.AddRow(shortID(t.ID), checkbox(t), urgencyMark(t.Urgency), t.Text, "#"+t.Category, badges(t, len(snap.Comments[t.ID])))
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w)
}

func printSections(w io.Writer, snap store.Snapshot, classified sections.Sections) {
	for _, section := range classified.All() {
		title(w, section.Bucket.Title(), section.Len())
		if section.Len() == 0 {
			none(w)
			continue
		}
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, g := range section.Groups {
			name := g.Category
			if g.Stale {
				name += " (removed)"
			}
			tbl.AddRow("", color.New(color.Bold).Sprint(name))
			for _, e := range g.Entries {
				tbl.AddRow(shortID(e.Task.ID), checkbox(e.Task), urgencyMark(e.Task.Urgency), e.Task.Text,
					string(e.Date), snap.Label(e.Block), badges(e.Task, len(snap.Comments[e.Task.ID])))
			}
		}
		_, _ = fmt.Fprintln(w, tbl)
		_, _ = fmt.Fprintln(w)
	}
}

func sectionsJSON(snap store.Snapshot, classified sections.Sections) []sectionJSON {
	var out []sectionJSON
	for _, section := range classified.All() {
		s := sectionJSON{Title: section.Bucket.Title(), Entries: []entryJSON{}}
		for _, g := range section.Groups {
			for _, e := range g.Entries {
				s.Entries = append(s.Entries, entryJSON{Date: e.Date, Block: e.Block, Task: e.Task, Comments: snap.Comments[e.Task.ID]})
			}
		}
		out = append(out, s)
	}
	return out
}

func dayJSON(snap store.Snapshot, date model.DateKey) []entryJSON {
	out := []entryJSON{}
	for _, block := range model.Blocks() {
		for _, t := range snap.List(date, block) {
			out = append(out, entryJSON{Date: date, Block: block, Task: t, Comments: snap.Comments[t.ID]})
		}
	}
	return out
}
