// Package cli implements the di command line.
//
// The cobra root command only parses the global flags; everything after
// them is a token list handed to the app router, the way the DeployR CLI
// has always resolved commands:
//
//	di                    - interactive home screen
//	di <resource> <action> [args]
//	di <alias> [args]     - e.g. di login, di endpoint
//	di help [tokens]      - usage only, nothing runs
//	di whoami             - prints the username and nothing else
//
// # Flags
//
//	--diconf, -j <path>   alternate .diconf location
//	--version, -v         print the version and exit
//	--help, -h            route to the help namespace
//
// # Exit codes
//
// Failed commands are reported by the app and exit 1. A malformed config
// file exits 1 after the parse diagnostic. A cancelled prompt exits 130
// without further output.
package cli
