package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"remock.dev/pkg/remock/internal/engine"
	m "remock.dev/pkg/remock/internal/model"
)

const consoleHelp = `commands:
  call Class.method(args)            invoke a method on a session instance
  mock Class.method => expr          override a method (newest wins)
  mock Class.method => expr when expr   conditional override
  unmock                             restore all original implementations
  slots                              list call slots
  help                               show this help
  quit                               leave the console`

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// Console is an interactive mocking session over compiled scripts.
type Console struct {
	commands MockCommands
	loader   *engine.Loader
	slots    func() []m.SlotInfo
}

// NewConsole creates a console over a session and its loader. slots supplies
// the current slot table rows for the `slots` command.
func NewConsole(commands MockCommands, loader *engine.Loader, slots func() []m.SlotInfo) *Console {
	return &Console{commands: commands, loader: loader, slots: slots}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func (c *Console) Run() error {
	program := tea.NewProgram(newConsoleModel(c))
	_, err := program.Run()

	return err
}

type consoleModel struct {
	console   *Console
	input     textinput.Model
	lines     []string
	instances map[string]*engine.Object
	quitting  bool
}

func newConsoleModel(c *Console) consoleModel {
	input := textinput.New()
	input.Prompt = promptStyle.Render("remock> ")
	input.Placeholder = "help"
	input.Focus()

	return consoleModel{
		console:   c,
		input:     input,
		lines:     []string{faintStyle.Render("type 'help' for commands")},
		instances: make(map[string]*engine.Object),
	}
}

func (cm consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (cm consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			cm.quitting = true
			return cm, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(cm.input.Value())
			cm.input.SetValue("")

			if line == "" {
				return cm, nil
			}

			if line == "quit" || line == "exit" {
				cm.quitting = true
				return cm, tea.Quit
			}

			cm.lines = append(cm.lines, promptStyle.Render("remock> ")+line)
			cm.lines = append(cm.lines, cm.execute(line)...)

			// Keep the transcript bounded.
			if len(cm.lines) > 200 {
				cm.lines = cm.lines[len(cm.lines)-200:]
			}

			return cm, nil
		}
	}

	var cmd tea.Cmd
	cm.input, cmd = cm.input.Update(msg)

	return cm, cmd
}

func (cm consoleModel) View() string {
	if cm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("remock console") + "\n\n")

	for _, line := range cm.lines {
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + cm.input.View() + "\n")

	return b.String()
}

// execute runs one console command and returns the transcript lines it adds.
func (cm consoleModel) execute(line string) []string {
	word, rest, _ := strings.Cut(line, " ")

	switch word {
	case "help":
		return strings.Split(consoleHelp, "\n")
	case "slots":
		return strings.Split(strings.TrimRight(RenderSlotTable(cm.console.slots()), "\n"), "\n")
	case "unmock":
		cm.console.commands.ClearMethodMocks()
		return []string{"all mocks cleared, originals restored"}
	case "call":
		return cm.executeCall(rest)
	case "mock":
		return cm.executeMock(rest)
	default:
		return []string{errorStyle.Render(fmt.Sprintf("unknown command %q (try 'help')", word))}
	}
}

func (cm consoleModel) executeCall(spec string) []string {
	className, methodName, args, err := engine.ParseCallSpec(spec)
	if err != nil {
		return []string{errorStyle.Render(err.Error())}
	}

	instance, ok := cm.instances[className]
	if !ok {
		versions := cm.console.loader.ClassesByName(className)
		if len(versions) == 0 {
			return []string{errorStyle.Render("no loaded class named " + className)}
		}

		// Session instances come from the newest version and then keep
		// their state across calls.
		instance, err = versions[len(versions)-1].New()
		if err != nil {
			return []string{errorStyle.Render(err.Error())}
		}

		cm.instances[className] = instance
	}

	value, err := instance.Call(methodName, args...)
	if err != nil {
		return []string{errorStyle.Render(err.Error())}
	}

	return []string{m.FormatValue(value)}
}

func (cm consoleModel) executeMock(spec string) []string {
	target, body, found := strings.Cut(spec, "=>")
	if !found {
		return []string{errorStyle.Render("usage: mock Class.method => expr [when expr]")}
	}

	className, methodName, found := strings.Cut(strings.TrimSpace(target), ".")
	if !found {
		return []string{errorStyle.Render("usage: mock Class.method => expr [when expr]")}
	}

	returnsSrc := strings.TrimSpace(body)
	whenSrc := ""

	if idx := strings.Index(body, " when "); idx >= 0 {
		returnsSrc = strings.TrimSpace(body[:idx])
		whenSrc = strings.TrimSpace(body[idx+len(" when "):])
	}

	replacement, err := engine.CompileExpr(returnsSrc)
	if err != nil {
		return []string{errorStyle.Render(err.Error())}
	}

	var predicate m.Predicate

	if whenSrc != "" {
		predicate, err = engine.CompilePredicate(whenSrc)
		if err != nil {
			return []string{errorStyle.Render(err.Error())}
		}
	}

	if err := cm.console.commands.AddMethodMock(className, methodName, replacement, predicate); err != nil {
		return []string{errorStyle.Render(err.Error())}
	}

	if whenSrc != "" {
		return []string{fmt.Sprintf("mocked %s.%s when %s", className, methodName, whenSrc)}
	}

	return []string{fmt.Sprintf("mocked %s.%s", className, methodName)}
}
