package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ncli/internal/entity"
	"github.com/rileyhilliard/ncli/internal/errors"
)

// PickItem is one host or service offered by the picker.
type PickItem struct {
	Entity entity.Entity
	// Host is the owning host's name for services, "" for hosts.
	Host string
}

func (p PickItem) label() string {
	if p.Host == "" {
		return p.Entity.Name()
	}
	return p.Host + " / " + p.Entity.Name()
}

// pickItem implements list.Item for the Bubbles list component.
type pickItem struct {
	item PickItem
}

func (i pickItem) Title() string {
	return i.item.label()
}

func (i pickItem) Description() string {
	desc := i.item.Entity.State().String()
	for _, f := range i.item.Entity.Fields() {
		if f.Name == entity.PluginOutput.String() && f.Value != "" {
			desc += " | " + Truncate(f.Value, 60)
			break
		}
	}
	return desc
}

func (i pickItem) FilterValue() string {
	return i.item.label() + " " + i.item.Entity.State().String()
}

// EntityPickerModel is a Bubble Tea model for choosing one entity.
type EntityPickerModel struct {
	list     list.Model
	items    []PickItem
	selected *PickItem
	quitting bool
}

type pickerKeyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

var pickerKeys = pickerKeyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "show"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "cancel"),
	),
}

// NewEntityPickerModel creates a picker over items.
func NewEntityPickerModel(items []PickItem) EntityPickerModel {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = pickItem{item: it}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorPrimary).
		BorderForeground(ColorSecondary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorMuted)

	l := list.New(listItems, delegate, 80, 15)
	l.Title = "Select a host or service"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 0, 1, 0)
	l.Styles.HelpStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	return EntityPickerModel{
		list:  l,
		items: items,
	}
}

// Init implements tea.Model.
func (m EntityPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m EntityPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the filter prompt is open, keys belong to it.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, pickerKeys.Enter):
			if it, ok := m.list.SelectedItem().(pickItem); ok {
				m.selected = &it.item
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, pickerKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m EntityPickerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Selected returns the chosen item, or nil if cancelled.
func (m EntityPickerModel) Selected() *PickItem {
	return m.selected
}

// PickEntity shows the picker on the terminal and returns the choice, or
// nil if the user cancels.
func PickEntity(items []PickItem) (*PickItem, error) {
	return PickEntityWithIO(items, os.Stdout, os.Stdin)
}

// PickEntityWithIO shows the picker using custom I/O.
func PickEntityWithIO(items []PickItem, output io.Writer, input io.Reader) (*PickItem, error) {
	if len(items) == 0 {
		return nil, errors.New(errors.ErrModel, "Nothing to pick from", "The snapshot has no hosts or services.")
	}
	if len(items) == 1 {
		return &items[0], nil
	}

	p := tea.NewProgram(
		NewEntityPickerModel(items),
		tea.WithOutput(output),
		tea.WithInput(input),
	)

	final, err := p.Run()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExec, "Picker failed", "Name the host (and service) as arguments instead.")
	}

	if m, ok := final.(EntityPickerModel); ok {
		return m.Selected(), nil
	}
	return nil, nil
}
