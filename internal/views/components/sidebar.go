package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Sidebar holds the language selector and the shell mode opt-in.
type Sidebar struct {
	container      *fyne.Container
	languageSelect *widget.Select
	shellCheck     *widget.Check

	languageChangeHandler func(string)
	shellModeHandler      func(bool)
}

func NewSidebar(languages []string) *Sidebar {
	sidebar := &Sidebar{}
	sidebar.createComponents(languages)
	sidebar.buildLayout()
	sidebar.setupEventHandlers()
	return sidebar
}

func (s *Sidebar) createComponents(languages []string) {
	s.languageSelect = widget.NewSelect(languages, nil)
	s.shellCheck = widget.NewCheck("Allow shell", nil)
}

func (s *Sidebar) buildLayout() {
	s.container = container.NewVBox(
		widget.NewLabelWithStyle("Language", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		s.languageSelect,
		widget.NewSeparator(),
		s.shellCheck,
	)
}

func (s *Sidebar) setupEventHandlers() {
	s.languageSelect.OnChanged = func(language string) {
		if s.languageChangeHandler != nil {
			s.languageChangeHandler(language)
		}
	}

	s.shellCheck.OnChanged = func(allow bool) {
		if s.shellModeHandler != nil {
			s.shellModeHandler(allow)
		}
	}
}

func (s *Sidebar) SetLanguageChangeHandler(handler func(string)) {
	s.languageChangeHandler = handler
}

func (s *Sidebar) SetShellModeHandler(handler func(bool)) {
	s.shellModeHandler = handler
}

func (s *Sidebar) SetLanguage(language string) {
	if s.languageSelect.Selected != language {
		s.languageSelect.SetSelected(language)
	}
}

func (s *Sidebar) GetLanguage() string {
	return s.languageSelect.Selected
}

func (s *Sidebar) SetShellMode(allow bool) {
	if s.shellCheck.Checked != allow {
		s.shellCheck.SetChecked(allow)
	}
}

func (s *Sidebar) GetContainer() *fyne.Container {
	return s.container
}
