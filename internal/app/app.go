package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shadeos/shade/internal/auth"
	"github.com/shadeos/shade/internal/input"
	"github.com/shadeos/shade/internal/lock"
	"github.com/shadeos/shade/internal/render"
	"github.com/shadeos/shade/internal/state"
	"github.com/shadeos/shade/internal/system"
)

// App wires the lock engine together and runs the single event thread:
// keyboard events and authentication results come in, state transitions
// and redraws go out. Nothing in the loop blocks; verification runs in
// the authenticator and reports back asynchronously.
type App struct {
	Store   *state.Store
	Machine *lock.Machine
	Render  render.Renderer
	Keys    input.Keyboard
	Auth    auth.Authenticator
	Logger  Logger

	// Console switches the active VT to graphics mode and hides the
	// cursor while locked. Off for preview runs.
	Console bool

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, machine *lock.Machine, renderer render.Renderer, keys input.Keyboard, authr auth.Authenticator) *App {
	return &App{
		Store:   store,
		Machine: machine,
		Render:  renderer,
		Keys:    keys,
		Auth:    authr,
		Logger:  NoopLogger{},
		exitCh:  make(chan error, 1),
	}
}

// Exit requests the app to stop running. A nil error means the screen
// unlocked; anything else is a failure that tears the locker down.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)

	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if app.Console {
		if err := system.EnterGraphics(app.Logger); err != nil {
			app.Logger.Errorf("console", "enter graphics failed: %v", err)
		}
		defer func() { _ = system.LeaveGraphics(app.Logger) }()
	}

	if err := app.Keys.Start(ctx); err != nil {
		app.Logger.Errorf("app", "keyboard start error: %v", err)
		return err
	}
	defer app.Keys.Stop()

	// First frame before any input arrives, so the lock is visible
	// immediately.
	app.Render.RedrawWithState(app.Store.Snapshot())

	loopCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.loop(loopCtx)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	return err
}

func (app *App) loop(ctx context.Context) {
	keys := app.Keys.Events()
	results := app.Auth.Results()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-keys:
			if !ok {
				return
			}
			app.handleKey(ctx, ev)
			app.drainKeys(ctx, keys)
			// Redraws for this batch are out; demote the active
			// highlight so it does not persist.
			app.Machine.SettleIdle()
		case result := <-results:
			app.handleResult(result)
		}
	}
}

// drainKeys processes whatever arrived while the last frame was being
// composited, so a fast typist coalesces into fewer settles.
func (app *App) drainKeys(ctx context.Context, keys <-chan input.Event) {
	for {
		select {
		case ev, ok := <-keys:
			if !ok {
				return
			}
			app.handleKey(ctx, ev)
		default:
			return
		}
	}
}

func (app *App) handleKey(ctx context.Context, ev input.Event) {
	switch ev.Kind {
	case input.KeyRune:
		app.Auth.Push(ev.Rune)
		app.Machine.KeyAccepted()
	case input.KeyBackspace:
		app.Auth.Pop()
		app.Machine.KeyDeleted()
	case input.KeyEnter:
		app.Machine.VerifyStarted()
		app.Auth.Verify(ctx)
	case input.KeyEscape:
		app.clearBuffer()
	}
}

func (app *App) handleResult(result auth.Result) {
	app.Logger.Infof("auth", "result: %s", result)
	if app.Machine.AuthResult(result) {
		app.Exit(nil)
		return
	}
	if result == auth.Failure {
		app.clearBuffer()
	}
}

// clearBuffer resets the attempt. A failed secure wipe means password
// material may still be resident, which the locker must not survive.
func (app *App) clearBuffer() {
	if err := app.Machine.ClearBuffer(); err != nil {
		app.Logger.Errorf("auth", "%v", err)
		app.Exit(err)
	}
}

func (app *App) Stop() error {
	return nil
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
