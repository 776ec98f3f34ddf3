package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayblocks/internal/rollover"
	"github.com/sandeepkv93/dayblocks/internal/storage"
)

func waitForRolloverCmd(ch <-chan rollover.Result) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return RolloverMsg{Result: res}
	}
}

func waitForChangeCmd(ch <-chan storage.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReloadMsg{Key: ev.Key}
	}
}

func clearNoticeCmd(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearNoticeMsg{Seq: seq}
	})
}
