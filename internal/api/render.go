package api

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/watcher"
)

//go:embed templates/*.html
var templates embed.FS

const layoutFile = "layout.html"

// page is the data every template receives. Data is the service view.
type page struct {
	Title string
	Data  any
}

// Renderer executes the catalog HTML templates. Each page is parsed
// together with the shared layout.
type Renderer struct {
	fsys   fs.FS
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// NewRenderer loads templates from dir, or from the embedded set when dir
// is empty.
func NewRenderer(dir string, logger *slog.Logger) (*Renderer, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(templates, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	r := &Renderer{fsys: fsys, dir: dir, logger: logger}
	if err := r.Load(); err != nil {
		return nil, err
	}
	return r, nil
}

var templateFuncs = template.FuncMap{
	"statusClass": func(s domain.CopyStatus) string {
		switch s {
		case domain.StatusAvailable:
			return "text-success"
		case domain.StatusMaintenance:
			return "text-danger"
		default:
			return "text-warning"
		}
	},
}

// Load parses every page. The previous set is kept when parsing fails.
func (r *Renderer) Load() error {
	files, err := fs.Glob(r.fsys, "*.html")
	if err != nil {
		return err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(f), ".html")
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(r.fsys, layoutFile, f)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", f, err)
		}
		pages[name] = t
	}

	r.mu.Lock()
	r.pages = pages
	r.mu.Unlock()
	return nil
}

// Render executes page inside the layout.
func (r *Renderer) Render(w io.Writer, name, title string, data any) error {
	r.mu.RLock()
	t, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	if err := t.ExecuteTemplate(w, "layout", page{Title: title, Data: data}); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	return nil
}

// Watch reloads templates whenever a file under the template directory
// changes. It is a no-op for the embedded set and returns once ctx is done.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}

	w, err := watcher.New(r.logger, watcher.Options{Extensions: []string{".html"}})
	if err != nil {
		return err
	}
	if err := w.Watch(r.dir); err != nil {
		_ = w.Stop()
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events():
				if !ok {
					return
				}
				if err := r.Load(); err != nil {
					r.logger.Error("template reload failed", "path", ev.Path, "error", err)
					continue
				}
				r.logger.Info("templates reloaded", "path", ev.Path, "event", ev.Type.String())
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				r.logger.Warn("template watcher error", "error", err)
			}
		}
	}()

	err = w.Start(ctx)
	if stopErr := w.Stop(); err == nil {
		err = stopErr
	}
	return err
}
