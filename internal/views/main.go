package views

import (
	"io"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"omal-editor/internal/controllers"
	"omal-editor/internal/models"
	"omal-editor/internal/runner"
	"omal-editor/internal/services"
	"omal-editor/internal/views/components"
)

const WindowTitle = "Omal Code editor"

var _ controllers.View = (*MainView)(nil)

// MainView renders the editor window. It holds no state of its own beyond
// widgets; everything it shows arrives through Render.
type MainView struct {
	app           fyne.App
	window        fyne.Window
	mainContainer *fyne.Container
	editor        *widget.Entry
	sidebar       *components.Sidebar
	toolbar       *components.Toolbar
	statusBar     *components.StatusBar
	debugConsole  *components.DebugConsole

	fileFilter    storage.FileFilter
	outputWindows int

	newHandler          func()
	openHandler         func()
	saveHandler         func()
	exitHandler         func()
	bufferChangeHandler func(string)
}

// NewMainView builds the editor window. fileTypes feeds the open dialog
// filter.
func NewMainView(app fyne.App, window fyne.Window, languages []string, fileTypes []services.FileType) *MainView {
	view := &MainView{
		app:        app,
		window:     window,
		fileFilter: services.DialogFilter(fileTypes),
	}

	view.initializeComponents(languages)
	view.buildLayout()
	view.buildMenu()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents(languages []string) {
	mv.editor = widget.NewMultiLineEntry()
	mv.editor.TextStyle = fyne.TextStyle{Monospace: true}
	mv.editor.SetPlaceHolder("Write code here, pick a language and press Run")

	mv.sidebar = components.NewSidebar(languages)
	mv.toolbar = components.NewToolbar()
	mv.statusBar = components.NewStatusBar()
	mv.debugConsole = components.NewDebugConsole()
}

func (mv *MainView) buildLayout() {
	split := container.NewVSplit(mv.editor, mv.debugConsole.GetContainer())
	split.SetOffset(0.75)

	bottomArea := container.NewVBox(
		mv.toolbar.GetContainer(),
		widget.NewSeparator(),
		mv.statusBar.GetContainer(),
	)

	mv.mainContainer = container.NewBorder(
		nil,
		bottomArea,
		container.NewPadded(mv.sidebar.GetContainer()),
		nil,
		split,
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) buildMenu() {
	undo := fyne.NewMenuItem("Undo", nil)
	undo.Disabled = true
	redo := fyne.NewMenuItem("Redo", nil)
	redo.Disabled = true

	exit := fyne.NewMenuItem("Exit", func() {
		if mv.exitHandler != nil {
			mv.exitHandler()
			return
		}
		mv.app.Quit()
	})
	exit.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New File", func() { call(mv.newHandler) }),
		fyne.NewMenuItem("Open File", func() { call(mv.openHandler) }),
		fyne.NewMenuItem("Save File", func() { call(mv.saveHandler) }),
		fyne.NewMenuItemSeparator(),
		exit,
	)
	editMenu := fyne.NewMenu("Edit", undo, redo)

	mv.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu))
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

func (mv *MainView) setupEventHandlers() {
	mv.editor.OnChanged = func(text string) {
		if mv.bufferChangeHandler != nil {
			mv.bufferChangeHandler(text)
		}
	}
}

// Event handler setters, called from the entrypoint.

func (mv *MainView) SetNewHandler(handler func()) {
	mv.newHandler = handler
}

func (mv *MainView) SetOpenHandler(handler func()) {
	mv.openHandler = handler
}

func (mv *MainView) SetSaveHandler(handler func()) {
	mv.saveHandler = handler
}

// SetExitHandler replaces the default app.Quit behind File > Exit.
func (mv *MainView) SetExitHandler(handler func()) {
	mv.exitHandler = handler
}

func (mv *MainView) SetRunHandler(handler func()) {
	mv.toolbar.SetRunHandler(handler)
}

func (mv *MainView) SetCancelHandler(handler func()) {
	mv.toolbar.SetCancelHandler(handler)
}

func (mv *MainView) SetLanguageChangeHandler(handler func(string)) {
	mv.sidebar.SetLanguageChangeHandler(handler)
}

func (mv *MainView) SetShellModeHandler(handler func(bool)) {
	mv.sidebar.SetShellModeHandler(handler)
}

func (mv *MainView) SetBufferChangeHandler(handler func(string)) {
	mv.bufferChangeHandler = handler
}

// Render brings every widget in line with snap. Must run on the UI thread.
func (mv *MainView) Render(snap models.Snapshot) {
	if mv.editor.Text != snap.Buffer {
		mv.editor.SetText(snap.Buffer)
	}
	mv.sidebar.SetLanguage(snap.Language)
	mv.sidebar.SetShellMode(snap.AllowShell)
	mv.toolbar.SetRunning(snap.Running)
	mv.statusBar.SetStatus(snap.Status)
	mv.statusBar.SetLanguage(snap.Language)
	mv.statusBar.SetPath(snap.Path)
	mv.debugConsole.SetEntries(snap.Debug)

	title := WindowTitle
	if snap.Path != "" {
		title = filepath.Base(snap.Path) + " - " + WindowTitle
	}
	if mv.window.Title() != title {
		mv.window.SetTitle(title)
	}
}

func (mv *MainView) ChooseOpenFile(onChosen func(path string, r io.ReadCloser)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError("File Open Error", err)
			return
		}
		if reader == nil {
			return
		}
		onChosen(reader.URI().Path(), reader)
	}, mv.window)

	if mv.fileFilter != nil {
		fd.SetFilter(mv.fileFilter)
	}
	fd.Show()
}

// ChooseSaveFile hands over the writer the dialog created; the buffer must
// go through it, since the dialog has already created the file.
func (mv *MainView) ChooseSaveFile(suggested string, onChosen func(path string, w io.WriteCloser)) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mv.ShowError("File Save Error", err)
			return
		}
		if writer == nil {
			return
		}
		onChosen(writer.URI().Path(), writer)
	}, mv.window)

	fd.SetFileName(suggested)
	fd.Show()
}

// ShowOutput opens a new output window for one run. Earlier windows stay
// open.
func (mv *MainView) ShowOutput(result runner.Result) {
	NewOutputWindow(mv.app, result).Show()
	mv.outputWindows++
}

// OutputWindowCount reports how many output windows this view has opened.
func (mv *MainView) OutputWindowCount() int {
	return mv.outputWindows
}

func (mv *MainView) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, mv.window)
}

// ShowError is dialog.ShowError with a caller-chosen title.
func (mv *MainView) ShowError(title string, err error) {
	message := widget.NewLabel(err.Error())
	message.Wrapping = fyne.TextWrapWord
	content := container.NewBorder(nil, nil, widget.NewIcon(theme.ErrorIcon()), nil, message)
	dialog.NewCustom(title, "OK", content, mv.window).Show()
}

func (mv *MainView) Show() {
	mv.window.Show()
}
