package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// ProjectURL is where the CLI lives.
	ProjectURL = "https://github.com/Microsoft/deployr-cli"
	// TeamURL is shown in the exit banner.
	TeamURL = "https://github.com/deployr"
)

var brandLines = []string{
	"",
	"________                .__.               __________ ",
	`\______ \   ____ ______ |  |   ____ ___.__.\______   \ `,
	` |    |  \_/ __ \\____ \|  |  /  _ <   |  | |       _/ `,
	" |    `   \\  ___/|  |_> >  |_(  <_> )___  | |    |   \\ ",
	`/_______  /\___  >   __/|____/\____// ____| |____|_  / `,
	`        \/     \/|__|               \/             \/ `,
	"",
}

var (
	brandStyle   = lipgloss.NewStyle().Foreground(ColorBrand)
	sectionStyle = lipgloss.NewStyle().Foreground(ColorBrand).Bold(true).Underline(true)
)

// Brand returns the DeployR banner.
func Brand() string {
	return brandStyle.Render(strings.Join(brandLines, "\n"))
}

// ExitBanner is printed when an interactive session ends.
func ExitBanner() string {
	return strings.Join([]string{
		Brand(),
		"Good Bye!",
		"",
		"The DeployR Team " + lipgloss.NewStyle().Foreground(ColorError).Render(SymbolHeart) + "  " + TeamURL,
		"",
	}, "\n")
}

// GeneralUsage returns the page shown by a bare `di help`.
func GeneralUsage() []string {
	return []string{
		Brand(),
		"The CLI for DeployR - Simple R analytics integration for application developers",
		"open-source and fully customizable",
		ProjectURL,
		"",
		sectionStyle.Render("Usage:"),
		"",
		"  di <resource> <action> <param1> <param2> ...",
		"",
		sectionStyle.Render("Common Commands:"),
		"",
		brandStyle.Render("Main menu"),
		"  di",
		"",
		brandStyle.Render("To set the DeployR server endpoint"),
		"  di endpoint",
		"",
		brandStyle.Render("To log into DeployR"),
		"  di login",
		"",
		brandStyle.Render("To install a pre-built example"),
		"  di install example",
		"",
		sectionStyle.Render("Additional Commands"),
		"  di whoami",
		"  di logout",
		"  di about",
		"  di config",
		"  di users",
		"  di server",
	}
}
