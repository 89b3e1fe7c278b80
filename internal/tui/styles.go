package tui

import "github.com/rgehrsitz/readiness/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	ColorAccent = tuistyles.ColorAccent

	AppStyle            = tuistyles.AppStyle
	TitleStyle          = tuistyles.TitleStyle
	SubtitleStyle       = tuistyles.SubtitleStyle
	StatusBarStyle      = tuistyles.StatusBarStyle
	StatusKeyStyle      = tuistyles.StatusKeyStyle
	BorderStyle         = tuistyles.BorderStyle
	MetricLabelStyle    = tuistyles.MetricLabelStyle
	MetricPositiveStyle = tuistyles.MetricPositiveStyle
	HelpKeyStyle        = tuistyles.HelpKeyStyle
	HelpDescStyle       = tuistyles.HelpDescStyle
	ErrorStyle          = tuistyles.ErrorStyle
	InfoStyle           = tuistyles.InfoStyle
)

// Re-export helper functions
var (
	ScoreColor = tuistyles.ScoreColor
)
