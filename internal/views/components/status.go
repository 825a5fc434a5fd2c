package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays the status line and the current file and language.
type StatusBar struct {
	container     *fyne.Container
	statusLabel   *widget.Label
	languageLabel *widget.Label
	pathLabel     *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.statusLabel.Truncation = fyne.TextTruncateEllipsis
	sb.languageLabel = widget.NewLabel("")
	sb.pathLabel = widget.NewLabel("Untitled")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewBorder(
		nil, nil,
		nil,
		container.NewHBox(
			widget.NewSeparator(),
			sb.pathLabel,
			widget.NewSeparator(),
			sb.languageLabel,
		),
		sb.statusLabel,
	)
}

func (sb *StatusBar) SetStatus(status string) {
	if sb.statusLabel.Text != status {
		sb.statusLabel.SetText(status)
	}
}

func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetLanguage(language string) {
	if sb.languageLabel.Text != language {
		sb.languageLabel.SetText(language)
	}
}

// SetPath shows the file being edited; an empty path means untitled.
func (sb *StatusBar) SetPath(path string) {
	if path == "" {
		path = "Untitled"
	}
	if sb.pathLabel.Text != path {
		sb.pathLabel.SetText(path)
	}
}

func (sb *StatusBar) GetPath() string {
	return sb.pathLabel.Text
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
