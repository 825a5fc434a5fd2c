package views

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"omal-editor/internal/runner"
)

var outputWindowSize = fyne.NewSize(800, 600)

// NewOutputWindow builds the window that shows one run's result.
func NewOutputWindow(app fyne.App, result runner.Result) fyne.Window {
	w := app.NewWindow(outputTitle(result))
	w.Resize(outputWindowSize)

	text := widget.NewLabelWithStyle(result.Text+"\n", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	text.Wrapping = fyne.TextWrapBreak

	w.SetContent(container.NewVScroll(text))
	return w
}

func outputTitle(result runner.Result) string {
	if result.Language == "" {
		return "Output"
	}
	if result.Duration > 0 {
		return fmt.Sprintf("Output - %s (%s)", result.Language, result.Duration.Round(time.Millisecond))
	}
	return "Output - " + result.Language
}
