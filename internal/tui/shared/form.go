package shared

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"projector/internal/dates"
	"projector/internal/tui/theme"
)

// Field is one labelled input of a Form.
type Field struct {
	Label       string
	Placeholder string
	Value       string
	// Options makes the field a choice list cycled with left/right.
	Options   []string
	Validate  func(string) error
	Password  bool
	CharLimit int
}

// FormResultMsg is sent when a form is submitted or cancelled. Values are
// in field order.
type FormResultMsg struct {
	Tag       string
	Values    []string
	Cancelled bool
}

// Form is a vertical stack of text inputs. Tab and shift+tab move between
// fields; enter on the last field submits.
type Form struct {
	Tag    string
	Title  string
	fields []Field
	inputs []textinput.Model
	focus  int
	Error  string
	Width  int
}

func NewForm(tag, title string, fields ...Field) *Form {
	f := &Form{Tag: tag, Title: title, fields: fields, Width: 60}
	for i, fd := range fields {
		ti := textinput.New()
		ti.Placeholder = fd.Placeholder
		ti.CharLimit = 256
		if fd.CharLimit > 0 {
			ti.CharLimit = fd.CharLimit
		}
		if fd.Password {
			ti.EchoMode = textinput.EchoPassword
		}
		if fd.Options != nil && fd.Value == "" {
			fd.Value = fd.Options[0]
			f.fields[i].Value = fd.Value
		}
		ti.SetValue(fd.Value)
		f.inputs = append(f.inputs, ti)
	}
	f.setFocus(0)
	return f
}

func (f *Form) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *Form) Values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f *Form) result(cancelled bool) tea.Cmd {
	msg := FormResultMsg{Tag: f.Tag, Cancelled: cancelled}
	if !cancelled {
		msg.Values = f.Values()
	}
	return func() tea.Msg { return msg }
}

func (f *Form) validate() error {
	for i, fd := range f.fields {
		if fd.Validate == nil {
			continue
		}
		if err := fd.Validate(strings.TrimSpace(f.inputs[i].Value())); err != nil {
			f.setFocus(i)
			return err
		}
	}
	return nil
}

func (f *Form) cycleOption(delta int) {
	fd := f.fields[f.focus]
	cur := f.inputs[f.focus].Value()
	i := 0
	for j, o := range fd.Options {
		if o == cur {
			i = j
		}
	}
	i = (i + delta + len(fd.Options)) % len(fd.Options)
	f.inputs[f.focus].SetValue(fd.Options[i])
}

func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return f.result(true)
		case "tab", "down":
			f.setFocus((f.focus + 1) % len(f.inputs))
			return nil
		case "shift+tab", "up":
			f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
			return nil
		case "enter":
			if f.focus < len(f.inputs)-1 {
				f.setFocus(f.focus + 1)
				return nil
			}
			if err := f.validate(); err != nil {
				f.Error = err.Error()
				return nil
			}
			return f.result(false)
		case "ctrl+s":
			if err := f.validate(); err != nil {
				f.Error = err.Error()
				return nil
			}
			return f.result(false)
		case "left", "right":
			if f.fields[f.focus].Options != nil {
				if msg.String() == "left" {
					f.cycleOption(-1)
				} else {
					f.cycleOption(1)
				}
				return nil
			}
		}
		if f.fields[f.focus].Options != nil {
			return nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.Error = ""
	return cmd
}

func (f *Form) View() string {
	labelWidth := 0
	for _, fd := range f.fields {
		labelWidth = max(labelWidth, lipgloss.Width(fd.Label))
	}
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Width(labelWidth + 2)

	var b strings.Builder
	b.WriteString(theme.ModalTitle.Render(f.Title) + "\n\n")
	for i, fd := range f.fields {
		in := f.inputs[i].View()
		if fd.Options != nil {
			in = "‹ " + f.inputs[i].Value() + " ›"
			if i == f.focus {
				in = theme.Selected.Render(in)
			}
		}
		b.WriteString(label.Render(fd.Label+":") + in + "\n")
	}
	if f.Error != "" {
		b.WriteString("\n" + theme.Error.Render("Error: "+f.Error) + "\n")
	}
	b.WriteString("\n" + theme.ModalHelp.Render("[tab] next  [enter] confirm  [ctrl+s] save  [esc] cancel"))
	return theme.ModalBox.Width(f.Width).Render(b.String())
}

// Required rejects blank input.
func Required(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errRequired(name)
		}
		return nil
	}
}

type errRequired string

func (e errRequired) Error() string { return string(e) + " is required" }

// OptionalDate accepts "" or YYYY-MM-DD.
func OptionalDate(s string) error {
	if s == "" {
		return nil
	}
	_, err := dates.Parse(s)
	return err
}
