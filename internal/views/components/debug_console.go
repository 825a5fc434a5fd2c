package components

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"omal-editor/internal/models"
)

// DebugConsole lists the code and output of past runs.
type DebugConsole struct {
	container *fyne.Container
	output    *widget.Label
	entries   int
	lastJob   string
}

func NewDebugConsole() *DebugConsole {
	dc := &DebugConsole{}
	dc.output = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	dc.output.Wrapping = fyne.TextWrapBreak

	dc.container = container.NewBorder(
		widget.NewLabelWithStyle("Debug Output", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(dc.output),
	)
	return dc
}

// SetEntries redraws the console when a run was added.
func (dc *DebugConsole) SetEntries(entries []models.DebugEntry) {
	lastJob := ""
	if len(entries) > 0 {
		lastJob = entries[len(entries)-1].JobID
	}
	if len(entries) == dc.entries && lastJob == dc.lastJob {
		return
	}
	dc.entries = len(entries)
	dc.lastJob = lastJob

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	dc.output.SetText(b.String())
}

func (dc *DebugConsole) GetText() string {
	return dc.output.Text
}

func (dc *DebugConsole) GetContainer() *fyne.Container {
	return dc.container
}
