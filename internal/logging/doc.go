// Package logger provides leveled console logging for sitelock commands.
//
// Output is formatted with colored prefixes from fatih/color.
//
// # Verbosity Levels
//
//   - --verbose: info and warning messages
//   - --debug: everything, including debug and error details
//
// Without flags only WarnfAlways output is shown; user-facing results are
// printed by the commands themselves.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Collected %d files", count)
//
// Commands create a logger in PersistentPreRun and pass it down.
package logger
