package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"omal-editor/internal/config"
	"omal-editor/internal/controllers"
	"omal-editor/internal/logger"
	"omal-editor/internal/models"
	"omal-editor/internal/runner"
	"omal-editor/internal/services"
	"omal-editor/internal/shutdown"
	"omal-editor/internal/views"
)

const (
	AppName    = "Omal Code editor"
	AppID      = "com.omal.editor"
	AppVersion = "1.0.0"
)

// Application wires the editor's models, services, controller and view.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	controller *controllers.MainController
	view       *views.MainView
	shutdown   *shutdown.Manager
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.FromEnvironment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "omal-editor: configuration: %v\n", err)
		os.Exit(1)
	}

	application, err := NewApplication(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "omal-editor: %v\n", err)
		os.Exit(1)
	}

	application.Run(ctx)
}

func newLogger(cfg config.Config) logger.Logger {
	if cfg.JSONLogs {
		return logger.NewJSONLogger(cfg.LogLevel)
	}
	return logger.NewConsoleLogger(cfg.LogLevel)
}

func NewApplication(cfg config.Config) (*Application, error) {
	appLogger := newLogger(cfg)

	registry, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("language registry: %w", err)
	}

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(views.WindowTitle)
	window.Resize(fyne.NewSize(800, 800))
	window.CenterOnScreen()
	window.SetMaster()

	appLogger.Info("Application", "starting application", map[string]interface{}{
		"version":          AppVersion,
		"go_version":       runtime.Version(),
		"log_level":        cfg.LogLevel.String(),
		"run_timeout":      cfg.RunTimeout.String(),
		"default_language": registry.Default().Name,
		"config_file":      cfg.Source,
	})

	workspace := models.NewWorkspace(registry.Default().Name)
	files := services.NewFileService(appLogger)
	execution := services.NewExecutionService(registry, runner.New(runner.ExecLauncher{}, cfg.RunTimeout, appLogger))

	controller := controllers.NewMainController(workspace, files, execution, appLogger)
	view := views.NewMainView(fyneApp, window, execution.Languages(), services.DialogFileTypes(execution.Extensions()))

	view.SetNewHandler(controller.OnNew)
	view.SetOpenHandler(controller.OnOpen)
	view.SetSaveHandler(controller.OnSave)
	view.SetRunHandler(func() { controller.OnRun() })
	view.SetCancelHandler(controller.OnCancel)
	view.SetLanguageChangeHandler(controller.OnLanguageChange)
	view.SetShellModeHandler(controller.OnShellModeChange)
	view.SetBufferChangeHandler(controller.OnBufferChange)
	controller.SetMainView(view)

	shutdownManager := shutdown.NewManager(appLogger, shutdown.DefaultStepTimeout)
	shutdownManager.Register("controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		controller: controller,
		view:       view,
		shutdown:   shutdownManager,
	}
	application.setupWindowEvents()
	view.SetExitHandler(func() {
		appLogger.Info("Application", "exit requested from menu", nil)
		shutdownManager.Shutdown()
		fyneApp.Quit()
	})

	appLogger.Info("Application", "initialization complete", map[string]interface{}{
		"languages": execution.Languages(),
	})
	return application, nil
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)
		a.shutdown.Shutdown()
		a.window.Close()
	})
}

// Run shows the main window and blocks in the fyne event loop.
func (a *Application) Run(ctx context.Context) {
	a.shutdown.Listen(ctx, func() {
		fyne.Do(a.fyneApp.Quit)
	})

	a.view.Show()
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	a.logger.Info("Application", "application terminated", nil)
}
