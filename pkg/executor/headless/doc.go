// Package headless plays a prepared list of moves without an interactive
// terminal.
//
// A script is a YAML file:
//
//	moves:
//	  - e2e4
//	  - g1f3
//	  - f1c4
//	delay: 1.5s
//	stop_on_error: true
//	timeout: 2m
//	artifacts:
//	  enabled: true
//	  output_dir: .tilted/artifacts
//
// Each entry goes through the same controller as a typed line, so commands
// such as "debug" are allowed between moves. After the run an execution.json
// and a summary.md are written to the artifact directory when enabled.
package headless
