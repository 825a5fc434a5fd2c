package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the Run and Cancel buttons below the editor.
type Toolbar struct {
	container    *fyne.Container
	runButton    *widget.Button
	cancelButton *widget.Button

	runHandler    func()
	cancelHandler func()

	running bool
}

func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.runButton = widget.NewButtonWithIcon("Run", theme.MediaPlayIcon(), nil)
	t.runButton.Importance = widget.HighImportance

	t.cancelButton = widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), nil)
	t.cancelButton.Importance = widget.MediumImportance
	t.cancelButton.Disable()
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		layout.NewSpacer(),
		t.runButton,
		t.cancelButton,
		layout.NewSpacer(),
	)
}

func (t *Toolbar) setupEventHandlers() {
	t.runButton.OnTapped = func() {
		if t.runHandler != nil {
			t.runHandler()
		}
	}

	t.cancelButton.OnTapped = func() {
		if t.cancelHandler != nil {
			t.cancelHandler()
		}
	}
}

func (t *Toolbar) SetRunHandler(handler func()) {
	t.runHandler = handler
}

func (t *Toolbar) SetCancelHandler(handler func()) {
	t.cancelHandler = handler
}

// SetRunning swaps which of Run and Cancel is enabled.
func (t *Toolbar) SetRunning(running bool) {
	if t.running == running {
		return
	}
	t.running = running

	if running {
		t.runButton.Disable()
		t.cancelButton.Enable()
	} else {
		t.runButton.Enable()
		t.cancelButton.Disable()
	}
}

func (t *Toolbar) IsRunning() bool {
	return t.running
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
