package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CommonModel is embedded by every screen.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg returns control to the main menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
