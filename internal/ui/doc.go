// Package ui provides terminal output for the di CLI: the DeployR banner,
// spinners, the archive download bar, the shared error report and a few
// terminal helpers.
//
// Colors are ANSI codes so output degrades cleanly; call Init once at
// startup so non-terminal output carries no escape sequences.
//
//	s := ui.NewSpinner(os.Stderr, "Fetching examples")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail()
package ui
