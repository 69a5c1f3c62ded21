package install

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/microsoft/deployr-cli/internal/deployr"
	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/examples"
	"github.com/microsoft/deployr-cli/internal/menu"
	"github.com/microsoft/deployr-cli/internal/prompt"
	"github.com/microsoft/deployr-cli/internal/ui"
	"github.com/microsoft/deployr-cli/internal/util"
)

const (
	backHome = "Take me back home!"
	goBack   = "Take me back"
)

var (
	underline = lipgloss.NewStyle().Underline(true)
	notice    = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	failMark  = lipgloss.NewStyle().Foreground(ui.ColorError)
	rule      = ui.MutedStyle.Underline(true).Render("                                                           ")
)

// session is the state of one install, threaded through its steps.
type session struct {
	w  *Workflow
	id string
	mu sync.Mutex // guards writes to w.Out from upload goroutines

	stage      string
	wanted     string
	example    string
	lang       examples.Language
	dir        string
	descriptor *examples.Descriptor
	password   string
	topic      *examples.Topic
	test       string
}

func isHome(err error) bool {
	return errors.Is(err, menu.ErrHome)
}

func (s *session) enter(stage string) {
	s.stage = stage
	s.w.Log.Debug("install %s: %s", s.id, stage)
}

func (s *session) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w.Out, format, args...)
}

func (s *session) auth() deployr.Auth {
	return deployr.Auth{Endpoint: s.w.Config.Endpoint(), Cookie: s.w.Config.Cookie()}
}

// listExamples offers the classified examples, or skips straight to the
// install when the requested one exists.
func (s *session) listExamples(ctx context.Context) (step, error) {
	s.enter("listExamples")

	var names []string
	err := ui.Track(s.w.Out, s.w.Animate, "Fetching examples", func() error {
		var err error
		names, err = s.w.Source.ListExamples(ctx)
		return err
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInstall,
			"A problem occurred listing the examples",
			"Check your network connection and try again")
	}

	buckets, found := examples.Partition(names, s.wanted)
	if found {
		s.printf("Installing example %s\n\n", underline.Render(s.wanted))
		s.example = s.wanted
		return s.installing, nil
	}
	if s.wanted != "" {
		s.w.Log.Warn("There is no example named %s", s.wanted)
	}

	var choices []prompt.Choice[string]
	for _, lang := range []examples.Language{examples.JavaScript, examples.Java, examples.DotNet} {
		for _, name := range buckets.Get(lang) {
			choices = append(choices, prompt.Choice[string]{Label: name, Value: name})
		}
	}
	choices = append(choices, prompt.Choice[string]{Label: backHome})

	name, err := prompt.Choose(s.w.Prompt, "What example would you like to install?", choices)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, menu.ErrHome
	}
	s.example = name
	return s.installing, nil
}

// installing downloads the example, resolves its local dependencies and,
// when it has a descriptor, installs its analytics onto DeployR.
func (s *session) installing(ctx context.Context) (step, error) {
	s.enter("installing")
	s.lang = examples.Classify(s.example)
	// Commands run with Dir set to the example; a relative program path
	// would be resolved against it a second time.
	dir, err := filepath.Abs(filepath.Join(s.w.Dir, s.example))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrInstall,
			"Cannot resolve the install directory for "+s.example, "")
	}
	s.dir = dir
	s.w.Log.Debug("install %s: %s example %s into %s", s.id, s.lang, s.example, s.dir)

	if err := s.w.Source.Fetch(ctx, s.example, s.dir); err != nil {
		return nil, err
	}
	s.printf("%s\n\n%s\n", ui.SuccessStyle.Render(ui.SymbolSuccess+" download complete."), underline.Render(s.example))

	if err := s.installDependencies(ctx); err != nil {
		return nil, err
	}

	d, ok, err := examples.LoadDescriptor(s.dir)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.w.Log.Info("No %s found, nothing to install on DeployR", examples.DescriptorFile)
		return s.candidateToRun, nil
	}
	s.descriptor = d

	if err := s.ensureSession(ctx); err != nil {
		return nil, err
	}
	if err := s.uploadDependencies(ctx); err != nil {
		return nil, err
	}
	return s.candidateToRun, nil
}

func (s *session) installDependencies(ctx context.Context) error {
	if s.lang != examples.JavaScript {
		return nil
	}

	s.printf("%s\n\n", notice.Render("Resolving npm dependencies, this might take a while..."))
	cmd := s.npm("install", "--production", "--silent")
	code, err := s.w.Runner.Run(ctx, cmd)
	if err != nil {
		return err
	}
	if code != 0 {
		s.w.Log.Warn("%s exited with code %d", cmd, code)
	}
	return nil
}

// ensureSession logs in unless the stored cookie still names a session.
func (s *session) ensureSession(ctx context.Context) error {
	endpoint := s.w.Config.Endpoint()
	if endpoint != "" {
		_, err := s.w.Client.UserAbout(ctx, s.auth())
		if err == nil {
			return nil
		}
		s.w.Log.Debug("install %s: session check: %v", s.id, err)
	}

	hint := ""
	if endpoint == "" {
		hint = " First identify your DeployR server endpoint."
	}
	s.printf("\n%s\n\n", notice.Render("Authentication required to install."+hint))
	return s.w.Login(ctx)
}

// uploadDependencies creates the repository directories the descriptor
// names, then uploads every artifact and waits for all of them.
func (s *session) uploadDependencies(ctx context.Context) error {
	deps := s.descriptor.Install.Repository
	if len(deps) == 0 {
		return nil
	}

	s.printf("\n%s\n\n", notice.Render("Installing "+util.Count(len(deps), "analytics dependency", "analytics dependencies")+" onto DeployR..."))
	for i, dep := range deps {
		s.printf("%d. %s in directory %s\n", i+1, underline.Render(dep.File.Filename), underline.Render(dep.Directory()))
	}
	s.printf("\n")

	auth := s.auth()
	for _, dir := range s.descriptor.Directories() {
		// The directory may exist from an earlier install.
		if err := s.w.Client.CreateDirectory(ctx, auth, dir); err != nil {
			s.w.Log.Debug("install %s: create directory %s: %v", s.id, dir, err)
		}
	}

	owner := ui.MutedStyle.Render(s.w.Config.Username() + "@" + s.w.Config.Endpoint())
	n, err := examples.UploadAll(ctx, s.w.Client, auth, s.dir, deps, func(file *deployr.RepositoryFile) {
		s.printf("%s\n\n%s uploaded to directory %s for %s\n\n",
			ui.SuccessStyle.Render(ui.SymbolSuccess+" upload complete."),
			underline.Render(file.Filename), underline.Render(file.Directory), owner)
	})
	s.w.Log.Debug("install %s: %d of %s succeeded", s.id, n, util.Count(len(deps), "upload", "uploads"))
	if err != nil {
		return err
	}

	s.printf("%s\n\n", ui.SuccessStyle.Render(ui.SymbolSuccess+" installation complete."))
	return nil
}

func (s *session) candidateToRun(ctx context.Context) (step, error) {
	s.enter("candidateToRun")

	ok, err := s.w.Prompt.Confirm("Would you like to run the example:")
	if err != nil || !ok {
		return nil, err
	}

	if s.descriptor != nil && s.descriptor.Run.RequireAuthentication {
		s.printf("\nThis example requires %s's password to run.\n\n", ui.AccentStyle.Render(s.w.Config.Username()))
		return s.verifyPassword, nil
	}
	return s.targets, nil
}

// verifyPassword asks for the password twice and repeats until both match.
func (s *session) verifyPassword(ctx context.Context) (step, error) {
	s.enter("verifyPassword")

	password, err := s.w.Prompt.Password("Password:", prompt.NotEmpty("Please enter a valid password."))
	if err != nil {
		return nil, err
	}
	confirm, err := s.w.Prompt.Password("Verify Password:", nil)
	if err != nil {
		return nil, err
	}

	if password != confirm {
		s.printf("%s Passwords do not match.\n\n", failMark.Render(">>"))
		return s.verifyPassword, nil
	}
	s.password = password
	return s.targets, nil
}

const (
	targetDocs = -1
	targetHome = -2
)

// targets offers the tutorial topics, or runs a standalone example.
func (s *session) targets(ctx context.Context) (step, error) {
	s.enter("targets")
	ui.ClearScreen(s.w.Out)

	tutorial := s.tutorial()
	if len(tutorial.Topics) == 0 {
		s.topic, s.test = nil, ""
		return s.runExample, nil
	}

	var choices []prompt.Choice[int]
	if tutorial.Help != "" {
		choices = append(choices, prompt.Choice[int]{Label: "Example Documentation", Value: targetDocs})
	}
	for i, t := range tutorial.Topics {
		choices = append(choices, prompt.Choice[int]{Label: t.Topic, Value: i})
	}
	choices = append(choices, prompt.Choice[int]{Label: backHome, Value: targetHome})

	picked, err := prompt.Choose(s.w.Prompt, "Examples", choices)
	if err != nil {
		return nil, err
	}

	switch picked {
	case targetHome:
		return nil, menu.ErrHome
	case targetDocs:
		if err := s.w.Open(tutorial.Help); err != nil {
			s.w.Log.Warn("Could not open %s: %v", tutorial.Help, err)
		}
		return s.targets, nil
	}
	s.topic = &tutorial.Topics[picked]
	return s.tutorialChoice, nil
}

func (s *session) tutorial() examples.Tutorial {
	if s.descriptor == nil {
		return examples.Tutorial{}
	}
	return s.descriptor.Run.Tutorial
}

// tutorialChoice picks the test to run within the chosen topic.
func (s *session) tutorialChoice(ctx context.Context) (step, error) {
	s.enter("tutorialChoice")

	choices := make([]prompt.Choice[int], 0, len(s.topic.Menu)+1)
	for i, item := range s.topic.Menu {
		choices = append(choices, prompt.Choice[int]{Label: item.Item, Value: i})
	}
	choices = append(choices, prompt.Choice[int]{Label: goBack, Value: -1})

	picked, err := prompt.Choose(s.w.Prompt, "Examples to run?", choices)
	if err != nil {
		return nil, err
	}
	if picked < 0 {
		return s.targets, nil
	}
	s.test = s.topic.Menu[picked].Args
	return s.runExample, nil
}

// runExample starts the example and waits for it to exit.
func (s *session) runExample(ctx context.Context) (step, error) {
	s.enter("run")

	cmd, err := s.startCommand()
	if err != nil {
		return nil, err
	}

	ui.ClearScreen(s.w.Out)
	s.printf("%s\n", rule)
	code, err := s.w.Runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.printf("%s\n\n", rule)
	if code != 0 {
		s.w.Log.Warn("%s exited with code %d", cmd.Name, code)
	}
	return s.afterRun, nil
}

// afterRun loops back into the tutorial menu or the target menu.
func (s *session) afterRun(ctx context.Context) (step, error) {
	s.enter("afterRun")

	var choices []prompt.Choice[step]
	if s.topic != nil {
		choices = []prompt.Choice[step]{
			{Label: goBack, Value: s.tutorialChoice},
			{Label: "Run more examples", Value: s.targets},
		}
	} else {
		choices = []prompt.Choice[step]{
			{Label: "Run again", Value: s.targets},
			{Label: backHome, Value: nil},
		}
	}

	next, err := prompt.Choose(s.w.Prompt, "What do you want to do?", choices)
	if err != nil {
		return nil, err
	}
	ui.ClearScreen(s.w.Out)
	if next == nil {
		return nil, menu.ErrHome
	}
	return next, nil
}
