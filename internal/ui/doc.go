// Package ui provides semantic text formatting for CLI output.
//
// Formatters render content with colors when the terminal supports them and
// fall back to plain decorations (backticks, quotes, a leading $) when
// NO_COLOR is set or color is unavailable.
//
//	ui.Code.Sprint("sitelock encrypt")     // Commands
//	ui.Path.Sprint("encrypted/index.html") // File paths
//	ui.Env.Sprint("SITE_PASSWORD")         // Environment variables
//	ui.Tick() + " Site encrypted"          // Status lines
package ui
