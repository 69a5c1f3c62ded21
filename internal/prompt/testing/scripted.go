// Package testing provides test doubles for the prompt package.
package testing

import (
	"fmt"
	"sync"

	"github.com/microsoft/deployr-cli/internal/prompt"
)

type kind int

const (
	kindSelect kind = iota
	kindConfirm
	kindText
	kindAbort
)

func (k kind) String() string {
	switch k {
	case kindSelect:
		return "select"
	case kindConfirm:
		return "confirm"
	case kindText:
		return "text"
	default:
		return "abort"
	}
}

// Answer is one scripted reply.
type Answer struct {
	kind  kind
	label string
	yes   bool
	text  string
}

// Pick answers a Select by choosing the option with this exact label.
func Pick(label string) Answer { return Answer{kind: kindSelect, label: label} }

// Yes answers a Confirm affirmatively.
func Yes() Answer { return Answer{kind: kindConfirm, yes: true} }

// No answers a Confirm negatively.
func No() Answer { return Answer{kind: kindConfirm} }

// Text answers an Input or Password.
func Text(s string) Answer { return Answer{kind: kindText, text: s} }

// Abort makes the next prompt of any kind return prompt.ErrAborted.
func Abort() Answer { return Answer{kind: kindAbort} }

// ErrExhausted is returned when a prompt is asked after the script ran out.
var ErrExhausted = fmt.Errorf("prompt script exhausted")

// Question records a prompt that was asked.
type Question struct {
	Kind    string
	Title   string
	Labels  []string
	Invalid string // validation message if the scripted answer was rejected
}

// Scripted is a Prompter that replays queued answers in order. Answers
// rejected by a validator are recorded and the next answer is tried, the
// way a real prompt asks again.
type Scripted struct {
	mu      sync.Mutex
	answers []Answer
	Asked   []Question
}

// New creates a Scripted prompter.
func New(answers ...Answer) *Scripted {
	return &Scripted{answers: answers}
}

// Remaining returns the number of unused answers.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

// Titles returns the titles of every prompt asked, in order.
func (s *Scripted) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	titles := make([]string, len(s.Asked))
	for i, q := range s.Asked {
		titles[i] = q.Title
	}
	return titles
}

func (s *Scripted) next(want kind, q Question) (Answer, error) {
	s.Asked = append(s.Asked, q)
	if len(s.answers) == 0 {
		return Answer{}, ErrExhausted
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if a.kind == kindAbort {
		return a, prompt.ErrAborted
	}
	if a.kind != want {
		return a, fmt.Errorf("prompt %q: scripted %s answer for a %s prompt", q.Title, a.kind, want)
	}
	return a, nil
}

func (s *Scripted) Select(title string, labels []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.next(kindSelect, Question{Kind: "select", Title: title, Labels: labels})
	if err != nil {
		return 0, err
	}
	for i, l := range labels {
		if l == a.label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("prompt %q: no option %q in %v", title, a.label, labels)
}

func (s *Scripted) Confirm(title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.next(kindConfirm, Question{Kind: "confirm", Title: title})
	if err != nil {
		return false, err
	}
	return a.yes, nil
}

func (s *Scripted) text(kindName, title string, validate prompt.Validator) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		a, err := s.next(kindText, Question{Kind: kindName, Title: title})
		if err != nil {
			return "", err
		}
		if validate != nil {
			if verr := validate(a.text); verr != nil {
				s.Asked[len(s.Asked)-1].Invalid = verr.Error()
				continue
			}
		}
		return a.text, nil
	}
}

func (s *Scripted) Input(title, value string, validate prompt.Validator) (string, error) {
	return s.text("input", title, validate)
}

func (s *Scripted) Password(title string, validate prompt.Validator) (string, error) {
	return s.text("password", title, validate)
}

var _ prompt.Prompter = (*Scripted)(nil)
