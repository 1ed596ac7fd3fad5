// Package cli implements the hatop command line.
//
// The root command runs the dashboard. Its flags, the config file and the
// HATOP_* environment variables are merged by internal/config; a Session
// then owns the log file, the stats socket connection and the Bubble Tea
// program for the length of one run.
//
// # Commands
//
//	hatop [-s socket] [-n] [-i secs] [-m mode]  - Run the dashboard
//	hatop init                                  - Create .hatop.yaml
//	hatop emulate                               - Serve a fake stats socket
//	hatop version                               - Print build information
//	hatop completion <shell>                    - Shell completion script
//
// # Exit Status
//
// Execute maps the returned error to the process status: 0 on a normal
// quit or an interrupt, 1 for configuration and terminal problems, 2 for
// socket and protocol failures, and 70 for anything unexpected.
//
// # Terminal Failures
//
// Errors from the terminal program itself, as opposed to errors the
// dashboard reports, are retried a few times with a short pause before
// the session gives up. The socket connection is kept across retries.
package cli
