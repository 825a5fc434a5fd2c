package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"

	"omal-editor/internal/logger"
	"omal-editor/internal/models"
	"omal-editor/internal/runner"
	"omal-editor/internal/services"
)

const (
	statusRanSuccessfully = "Ran successfully!"
	untitledFile          = "untitled" + services.DefaultExtension
)

// View is the rendering side of the editor. Everything it shows comes from
// Render snapshots and the Show* calls below.
type View interface {
	Render(snap models.Snapshot)
	// ChooseOpenFile and ChooseSaveFile call onChosen only when the user
	// picked a file. onChosen owns the stream and must close it.
	ChooseOpenFile(onChosen func(path string, r io.ReadCloser))
	ChooseSaveFile(suggested string, onChosen func(path string, w io.WriteCloser))
	ShowOutput(result runner.Result)
	ShowInfo(title, message string)
	ShowError(title string, err error)
}

// MainController handles the editor's user actions.
type MainController struct {
	workspace *models.Workspace
	files     *services.FileService
	execution *services.ExecutionService
	logger    logger.Logger

	mainView View
	dispatch func(func())

	mu     sync.Mutex
	job    *runner.Job
	ctx    context.Context
	cancel context.CancelFunc
}

func NewMainController(
	workspace *models.Workspace,
	files *services.FileService,
	execution *services.ExecutionService,
	log logger.Logger,
) *MainController {
	ctx, cancel := context.WithCancel(context.Background())
	return &MainController{
		workspace: workspace,
		files:     files,
		execution: execution,
		logger:    log,
		dispatch:  fyne.Do,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetDispatcher replaces fyne.Do as the way run results reach the UI
// thread.
func (mc *MainController) SetDispatcher(dispatch func(func())) {
	mc.dispatch = dispatch
}

// SetMainView binds the view to the workspace and renders it once. The
// workspace is only mutated on the UI thread, so snapshots render directly.
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.workspace.Subscribe(view.Render)
	view.Render(mc.workspace.Snapshot())
}

// OnNew clears the buffer.
func (mc *MainController) OnNew() {
	mc.workspace.Reset()
}

// OnOpen asks for a file and loads it into the buffer.
func (mc *MainController) OnOpen() {
	mc.mainView.ChooseOpenFile(func(path string, r io.ReadCloser) {
		_ = mc.OpenFrom(path, r)
	})
}

// Open replaces the buffer with the file at path. On failure the buffer is
// left as it was and only the status line reports the error.
func (mc *MainController) Open(path string) error {
	text, err := mc.files.Load(path)
	return mc.opened(path, text, err)
}

// OpenFrom is Open for a stream the file dialog already opened. r is
// closed before returning.
func (mc *MainController) OpenFrom(path string, r io.ReadCloser) error {
	text, err := mc.files.ReadFrom(r, path)
	if closeErr := r.Close(); err == nil && closeErr != nil {
		err = &services.IOError{Op: "load", Path: path, Err: closeErr}
	}
	return mc.opened(path, text, err)
}

func (mc *MainController) opened(path, text string, err error) error {
	if err != nil {
		mc.workspace.SetStatus(fmt.Sprintf("Error opening file: %v", err))
		return err
	}
	mc.workspace.ReplaceBuffer(text, path, "File opened: "+path)
	return nil
}

// OnSave asks for a destination and writes the buffer to it.
func (mc *MainController) OnSave() {
	suggested := untitledFile
	if current := mc.workspace.Path(); current != "" {
		suggested = filepath.Base(current)
	}
	mc.mainView.ChooseSaveFile(suggested, func(path string, w io.WriteCloser) {
		_ = mc.SaveTo(path, w)
	})
}

// Save writes the buffer to path, adding the default extension if path
// has none.
func (mc *MainController) Save(path string) error {
	path = services.WithDefaultExtension(path, services.DefaultExtension)
	return mc.saved(path, mc.files.Save(path, mc.workspace.Buffer()))
}

// SaveTo writes the buffer through a stream the file dialog already opened
// for path, then closes it. The file is saved under exactly that path.
func (mc *MainController) SaveTo(path string, w io.WriteCloser) error {
	err := mc.files.WriteTo(w, path, mc.workspace.Buffer())
	if closeErr := w.Close(); err == nil && closeErr != nil {
		err = &services.IOError{Op: "save", Path: path, Err: closeErr}
	}
	return mc.saved(path, err)
}

func (mc *MainController) saved(path string, err error) error {
	if err != nil {
		mc.workspace.SetStatus(fmt.Sprintf("Error saving file: %v", err))
		return err
	}
	mc.workspace.SetSaved(path, "File saved to "+path)
	return nil
}

func (mc *MainController) OnLanguageChange(language string) {
	if language == mc.workspace.Language() {
		return
	}
	mc.workspace.SetLanguage(language)
	mc.logger.Debug("Controller", "language selected", map[string]interface{}{
		"language": language,
	})
}

func (mc *MainController) OnShellModeChange(allow bool) {
	mc.workspace.SetAllowShell(allow)
}

func (mc *MainController) OnBufferChange(text string) {
	if text == mc.workspace.Buffer() {
		return
	}
	mc.workspace.SetBuffer(text)
}

// OnRun starts running the buffer with the selected language. It returns
// the started job, or nil when a run was already active or could not be
// started.
func (mc *MainController) OnRun() *runner.Job {
	language := mc.workspace.Language()
	source := mc.workspace.Buffer()

	if !mc.workspace.BeginRun(fmt.Sprintf("Running %s...", language)) {
		mc.logger.Debug("Controller", "run ignored, another run is active", nil)
		return nil
	}

	job, err := mc.execution.Start(mc.ctx, language, source, mc.workspace.AllowShell())
	if err != nil {
		mc.logger.Error("Controller", err, map[string]interface{}{"language": language})
		mc.finishRun(runner.Result{Language: language, Code: -1, Text: "Error: " + err.Error()}, err, source)
		return nil
	}

	mc.mu.Lock()
	mc.job = job
	mc.mu.Unlock()

	go func() {
		result, err := job.Wait()
		mc.dispatch(func() {
			mc.finishRun(result, err, source)
		})
	}()
	return job
}

// finishRun delivers one result: one output window, one status update and
// one notification.
func (mc *MainController) finishRun(result runner.Result, err error, source string) {
	mc.mu.Lock()
	mc.job = nil
	mc.mu.Unlock()

	status := statusRanSuccessfully
	if !result.Success {
		status = result.Text
	}
	mc.workspace.FinishRun(status, models.DebugEntry{
		JobID:  result.JobID,
		Code:   source,
		Output: result.Output,
	})

	mc.mainView.ShowOutput(result)
	if err != nil {
		var exitErr *runner.ExternalProcessError
		if errors.As(err, &exitErr) {
			err = errors.New(result.Text)
		}
		mc.mainView.ShowError("Error", err)
		return
	}
	mc.mainView.ShowInfo("Success", "Code ran successfully!")
}

// OnCancel stops the active run, if any.
func (mc *MainController) OnCancel() {
	mc.mu.Lock()
	job := mc.job
	mc.mu.Unlock()

	if job != nil {
		mc.logger.Info("Controller", "run cancel requested", map[string]interface{}{"job": job.ID})
		job.Cancel()
	}
}

// Shutdown cancels any active run and waits for its child to exit.
func (mc *MainController) Shutdown() {
	mc.cancel()

	mc.mu.Lock()
	job := mc.job
	mc.mu.Unlock()

	if job != nil {
		<-job.Done()
	}
	mc.logger.Debug("Controller", "controller shutdown completed", nil)
}
