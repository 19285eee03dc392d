// Package view holds the planner's terminal screens: the plan form with its
// live evaluation, the saved snapshot browser and the offer browser.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is a screen the menu can switch to. Title and ShortHelp feed the
// header line drawn above every screen.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// BackMsg returns control from a screen to the menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
