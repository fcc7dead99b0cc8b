package app

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle              = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	subtitleStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	helpStyle                = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle              = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorTextStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	noteTitleStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	noteTitleSelectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	noteBodyStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	noteCardStyle            = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	noteCardSelectedStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("75")).Padding(0, 1)
	selectedStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	menuDropStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("235"))
	contextMenuHeaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("251")).Background(lipgloss.Color("235")).Bold(true)
	confirmDialogBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("208"))
	dialogBorderStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1)
	dialogLabelStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dialogLabelActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	toastInfoStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)
