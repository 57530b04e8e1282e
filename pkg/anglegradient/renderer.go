package anglegradient

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"io/fs"
	"sync"
	"sync/atomic"
	"time"

	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-anglegradient/internal/config"
	"github.com/opd-ai/go-anglegradient/internal/gradient"
	"github.com/opd-ai/go-anglegradient/internal/lua"
	"github.com/opd-ai/go-anglegradient/internal/profiling"
	"github.com/opd-ai/go-anglegradient/internal/render"
)

// Renderer renders a gradient document to PNG and keeps an AngleLayer in
// sync with it. It is safe for concurrent use.
type Renderer struct {
	cfg          *config.Config
	opts         Options
	configSource string
	watchPath    string
	configLoader func() (*config.Config, error)

	layer   *gradient.AngleLayer
	stats   profiling.RenderStats
	watcher *documentWatcher
	game    gameConfigurer

	lastError    atomic.Value
	errorHandler ErrorHandler
	eventHandler EventHandler
	mu           sync.RWMutex
}

// gameConfigurer is satisfied by the preview window so reloads can resize it.
type gameConfigurer interface {
	SetConfig(render.Config)
}

// New creates a Renderer from a document file (.lua or .yaml).
// If opts is nil, DefaultOptions() is used.
//
// Example:
//
//	r, err := anglegradient.New("sunset.yaml", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.Render(); err != nil {
//	    log.Fatal(err)
//	}
func New(configPath string, opts *Options) (*Renderer, error) {
	r, err := newRenderer(configPath, opts, func(p *config.Parser) (*config.Config, error) {
		return p.ParseFile(configPath)
	})
	if err != nil {
		return nil, err
	}
	r.watchPath = configPath
	return r, nil
}

// NewFromFS creates a Renderer from a document in a filesystem such as an
// embed.FS. Renderers created this way cannot Watch.
func NewFromFS(fsys fs.FS, configPath string, opts *Options) (*Renderer, error) {
	return newRenderer("embedded:"+configPath, opts, func(p *config.Parser) (*config.Config, error) {
		return p.ParseFromFS(fsys, configPath)
	})
}

// NewFromReader creates a Renderer from a document read from r.
// The format parameter must be "lua" or "yaml". Reload parses the same
// content again.
func NewFromReader(r io.Reader, format string, opts *Options) (*Renderer, error) {
	f, err := config.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	// Read content once (can't re-read a Reader)
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return newRenderer("reader:"+format, opts, func(p *config.Parser) (*config.Config, error) {
		return p.Parse(bytes.Clone(content), f)
	})
}

func newRenderer(source string, opts *Options, parse func(*config.Parser) (*config.Config, error)) (*Renderer, error) {
	if opts == nil {
		defaultOpts := DefaultOptions()
		opts = &defaultOpts
	}
	o := *opts
	if o.Logger == nil {
		o.Logger = NopLogger()
	}

	loader := func() (*config.Config, error) {
		p, err := config.NewParser()
		if err != nil {
			return nil, fmt.Errorf("parser init: %w", err)
		}
		defer p.Close()
		cfg, err := parse(p)
		if err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		applyOptions(cfg, o)
		return cfg, nil
	}

	cfg, err := loader()
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("document loaded", "source", source, "angle", cfg.Spec.AngleDegrees, "stops", len(cfg.Spec.ColorStops))

	return &Renderer{
		cfg:          cfg,
		opts:         o,
		configSource: source,
		configLoader: loader,
		layer:        gradient.NewAngleLayer(cfg.Spec),
	}, nil
}

// applyOptions overrides document values with explicit options.
func applyOptions(cfg *config.Config, opts Options) {
	if opts.Angle != nil {
		cfg.Spec = cfg.Spec.WithAngle(*opts.Angle)
		cfg.HasDirection = false
	}
	if opts.OutputPath != "" {
		cfg.Output = opts.OutputPath
	}
}

// Spec returns the gradient currently being rendered.
func (r *Renderer) Spec() gradient.GradientSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg.Spec
}

// Config returns a copy of the resolved document.
func (r *Renderer) Config() config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return *r.cfg
}

// Layer returns the layer that tracks the document. Reload updates it in
// place, so a window showing it repaints on the next frame.
func (r *Renderer) Layer() *gradient.AngleLayer {
	return r.layer
}

// RenderImage paints the document into a new image.
func (r *Renderer) RenderImage() (*image.RGBA, error) {
	surface, err := r.paint()
	if err != nil {
		return nil, err
	}
	return surface.Image(), nil
}

// RenderTo paints the document and writes it to w as PNG.
func (r *Renderer) RenderTo(w io.Writer) error {
	surface, err := r.paint()
	if err != nil {
		return err
	}
	return surface.WritePNG(w)
}

// RenderFile paints the document and saves it as a PNG at path. An empty
// path means the document's output path.
func (r *Renderer) RenderFile(path string) error {
	if path == "" {
		r.mu.RLock()
		path = r.cfg.Output
		r.mu.RUnlock()
	}
	if path == "" {
		return ErrNoOutput
	}

	surface, err := r.paint()
	if err != nil {
		return err
	}
	if err := surface.SavePNG(path); err != nil {
		return err
	}

	last := r.stats.Snapshot().Last
	r.opts.Logger.Info("rendered", "path", path, "duration", last)
	r.emitEvent(EventRendered, path)
	return nil
}

// Render saves the document to its output path.
func (r *Renderer) Render() error {
	return r.RenderFile("")
}

func (r *Renderer) paint() (*render.ImageSurface, error) {
	start := time.Now()

	r.mu.RLock()
	cfg := *r.cfg
	r.mu.RUnlock()

	width, height := cfg.ImageSize()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}

	surface := render.NewImageSurface(width, height, cfg.Surface)
	err := profiling.Track(context.Background(), r.configSource, profiling.StagePaint, func(ctx context.Context) error {
		surface.Clear(cfg.Background)
		gradient.Paint(cfg.Spec, surface)
		if r.opts.Script == "" {
			return nil
		}
		return profiling.Track(ctx, r.configSource, profiling.StageScript, func(context.Context) error {
			return r.runScript(surface, width, height)
		})
	})
	if err != nil {
		return nil, err
	}
	r.stats.Time(start)
	return surface, nil
}

// runScript executes the configured Lua script with surface as the paint
// target of the angle_gradient_* functions.
func (r *Renderer) runScript(surface *render.ImageSurface, width, height int) error {
	rc := lua.DefaultConfig()
	rc.Stdout = nil
	if r.opts.LuaCPULimit != 0 {
		rc.CPULimit = r.opts.LuaCPULimit
	}
	if r.opts.LuaMemoryLimit != 0 {
		rc.MemoryLimit = r.opts.LuaMemoryLimit
	}

	runtime, err := lua.New(rc)
	if err != nil {
		return fmt.Errorf("script runtime: %w", err)
	}
	defer runtime.Close()

	bindings, err := lua.NewGradientBindings(runtime)
	if err != nil {
		return fmt.Errorf("script bindings: %w", err)
	}
	bindings.SetSurface(surface)
	runtime.SetGlobal("canvas_width", rt.IntValue(int64(width)))
	runtime.SetGlobal("canvas_height", rt.IntValue(int64(height)))

	if _, err := runtime.ExecuteFile(r.opts.Script); err != nil {
		return fmt.Errorf("script %s: %w", r.opts.Script, err)
	}
	if out := runtime.Output(); out != "" {
		r.opts.Logger.Debug("script output", "script", r.opts.Script, "output", out)
	}
	return nil
}

// Reload re-reads the document and updates the layer.
func (r *Renderer) Reload() error {
	var cfg *config.Config
	err := profiling.Track(context.Background(), r.configSource, profiling.StageLoad, func(context.Context) error {
		var err error
		cfg, err = r.configLoader()
		return err
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.cfg = cfg
	game := r.game
	r.mu.Unlock()

	r.layer.SetSpec(cfg.Spec)
	if game != nil {
		game.SetConfig(windowConfig(cfg, r.configSource))
	}

	r.opts.Logger.Info("document reloaded", "source", r.configSource, "angle", cfg.Spec.AngleDegrees)
	r.emitEvent(EventConfigReloaded, r.configSource)
	return nil
}

// Watch reloads and re-renders whenever the document file changes. It
// returns immediately; call Stop to end watching. Failures during a
// reload go to the error handler and leave the previous document active.
func (r *Renderer) Watch() error {
	if r.watchPath == "" {
		return ErrNotWatchable
	}

	r.mu.Lock()
	if r.watcher != nil {
		r.mu.Unlock()
		return nil
	}
	w, err := newDocumentWatcher(r.watchPath, r.opts.WatchDebounce, func() error {
		if err := r.Reload(); err != nil {
			return err
		}
		return r.Render()
	}, r.notifyError)
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("watch %s: %w", r.watchPath, err)
	}
	r.watcher = w
	r.mu.Unlock()

	w.Start()
	r.opts.Logger.Info("watching document", "path", r.watchPath)
	r.emitEvent(EventWatchStarted, r.watchPath)
	return nil
}

// Stop ends watching. It is safe to call when not watching.
func (r *Renderer) Stop() {
	r.mu.Lock()
	w := r.watcher
	r.watcher = nil
	r.mu.Unlock()

	if w == nil {
		return
	}
	w.Stop()
	r.emitEvent(EventWatchStopped, r.watchPath)
}

// Status returns a snapshot of the renderer.
func (r *Renderer) Status() Status {
	snap := r.stats.Snapshot()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var lastErr error
	if v := r.lastError.Load(); v != nil {
		lastErr = v.(errorBox).err
	}
	return Status{
		Watching:              r.watcher != nil,
		RenderCount:           uint64(snap.Count),
		LastRenderDuration:    snap.Last,
		AverageRenderDuration: snap.Average(),
		LastError:             lastErr,
		ConfigSource:          r.configSource,
		OutputPath:            r.cfg.Output,
	}
}

// SetErrorHandler sets a callback for runtime errors.
func (r *Renderer) SetErrorHandler(handler ErrorHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorHandler = handler
}

// SetEventHandler sets a callback for lifecycle events.
func (r *Renderer) SetEventHandler(handler EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.eventHandler = handler
}

// errorBox gives atomic.Value a single concrete type to store.
type errorBox struct{ err error }

func (r *Renderer) notifyError(err error) {
	r.lastError.Store(errorBox{err: err})

	r.mu.RLock()
	handler := r.errorHandler
	logger := r.opts.Logger
	r.mu.RUnlock()

	logger.Warn("render error", "error", err)
	if handler != nil {
		go func() {
			defer func() {
				if p := recover(); p != nil {
					logger.Error("error handler panicked", "panic", p, "original_error", err)
				}
			}()
			handler(err)
		}()
	}

	r.emitEvent(EventError, err.Error())
}

func (r *Renderer) emitEvent(eventType EventType, message string) {
	r.mu.RLock()
	handler := r.eventHandler
	logger := r.opts.Logger
	r.mu.RUnlock()

	if handler == nil {
		return
	}
	go func() {
		defer func() {
			if p := recover(); p != nil {
				logger.Error("event handler panicked", "panic", p, "event", eventType.String())
			}
		}()
		handler(Event{
			Type:      eventType,
			Timestamp: time.Now(),
			Message:   message,
		})
	}()
}

// windowConfig sizes the preview window to the document. Translucent
// backgrounds get a checkerboard backdrop.
func windowConfig(cfg *config.Config, title string) render.Config {
	width, height := cfg.ImageSize()
	return render.Config{
		Width:           width,
		Height:          height,
		Title:           title,
		BackgroundColor: cfg.Background,
		Backdrop:        render.BackgroundModeFor(cfg.Background),
		Surface:         cfg.Surface,
	}
}
