package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/playdeck/playdeck/style"
)

const notificationTTL = 3 * time.Second

type notifyMsg string

type clearNotificationMsg struct {
	at time.Time
}

// notifier shows one short-lived message next to the controls.
type notifier struct {
	notification string
	notifiedAt   time.Time
}

func notify(text string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg(text)
	}
}

func (n *notifier) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case notifyMsg:
		n.notification = string(msg)
		n.notifiedAt = time.Now()
		at := n.notifiedAt
		return tea.Tick(notificationTTL, func(time.Time) tea.Msg {
			return clearNotificationMsg{at: at}
		})
	case clearNotificationMsg:
		// a newer notification keeps its own timer
		if msg.at.Equal(n.notifiedAt) {
			n.notification = ""
		}
	}
	return nil
}

func (n *notifier) View() string {
	if n.notification == "" {
		return ""
	}
	return style.Faint(n.notification)
}
