// Package prompt asks the user questions: pick one of a list, confirm,
// free text and masked password input.
package prompt

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/microsoft/deployr-cli/internal/errors"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt (ctrl+c / esc).
var ErrAborted = errors.New(errors.ErrValidation, "Prompt cancelled", "")

// ErrNotInteractive is returned when a prompt is needed but stdin is not a terminal.
var ErrNotInteractive = errors.New(errors.ErrValidation,
	"This command needs an interactive terminal",
	"Run it from a terminal, or pass the values as arguments")

// Validator rejects an answer by returning an error; the message is shown
// and the question is asked again.
type Validator func(string) error

// Prompter is everything the interactive workflows ask of the user.
type Prompter interface {
	// Select returns the index of the chosen label.
	Select(title string, labels []string) (int, error)
	Confirm(title string) (bool, error)
	Input(title, value string, validate Validator) (string, error)
	Password(title string, validate Validator) (string, error)
}

// Choice pairs a label with the value it stands for.
type Choice[T any] struct {
	Label string
	Value T
}

// Choose asks p to pick among choices and returns the chosen value.
func Choose[T any](p Prompter, title string, choices []Choice[T]) (T, error) {
	var zero T
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
	}
	idx, err := p.Select(title, labels)
	if err != nil {
		return zero, err
	}
	if idx < 0 || idx >= len(choices) {
		return zero, errors.New(errors.ErrValidation, "Invalid selection", "")
	}
	return choices[idx].Value, nil
}

// NotEmpty rejects blank answers with message.
func NotEmpty(message string) Validator {
	return func(s string) error {
		if s == "" {
			return errors.New(errors.ErrValidation, message, "")
		}
		return nil
	}
}

// Huh asks questions with charmbracelet/huh forms.
type Huh struct {
	// Accessible renders plain line-based prompts for screen readers.
	Accessible bool
}

// NewHuh returns a huh-backed Prompter. Accessible mode is enabled by
// setting ACCESSIBLE in the environment.
func NewHuh() *Huh {
	return &Huh{Accessible: os.Getenv("ACCESSIBLE") != ""}
}

func (h *Huh) run(field huh.Field) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotInteractive
	}

	form := huh.NewForm(huh.NewGroup(field)).WithAccessible(h.Accessible)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return errors.WrapWithCode(err, errors.ErrValidation, "Failed to get user input", "")
	}
	return nil
}

func (h *Huh) Select(title string, labels []string) (int, error) {
	options := make([]huh.Option[int], len(labels))
	for i, label := range labels {
		options[i] = huh.NewOption(label, i)
	}

	var selected int
	err := h.run(huh.NewSelect[int]().
		Title(title).
		Options(options...).
		Value(&selected))
	return selected, err
}

func (h *Huh) Confirm(title string) (bool, error) {
	var ok bool
	err := h.run(huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok))
	return ok, err
}

func (h *Huh) Input(title, value string, validate Validator) (string, error) {
	field := huh.NewInput().Title(title).Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	err := h.run(field)
	return value, err
}

func (h *Huh) Password(title string, validate Validator) (string, error) {
	var value string
	field := huh.NewInput().Title(title).EchoMode(huh.EchoModePassword).Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	err := h.run(field)
	return value, err
}
