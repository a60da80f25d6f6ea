package main

import "github.com/charmbracelet/lipgloss"

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5534B")).Bold(true)
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6CB6FF"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#768390"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)
