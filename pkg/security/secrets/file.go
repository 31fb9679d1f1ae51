package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileProvider loads secrets from individual files in a directory, one file
// per secret, as Kubernetes mounts them. Values are cached after the first
// read. With watching enabled, a change to a file drops that file's cached
// value; a change to Kubernetes' "..data" link drops them all.
type FileProvider struct {
	BasePath string
	Watch    bool

	mu      sync.RWMutex
	cache   map[string]string
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewFileProvider creates a provider over basePath, which must be a directory.
func NewFileProvider(basePath string, watch bool) (*FileProvider, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat base path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base path is not a directory: %s", basePath)
	}

	p := &FileProvider{
		BasePath: basePath,
		Watch:    watch,
		cache:    make(map[string]string),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	if !watch {
		close(p.doneCh)
		slog.Info("file secret provider started", "path", basePath, "watch", false)
		return p, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}
	p.watcher = watcher
	go p.watchLoop()

	slog.Info("file secret provider started", "path", basePath, "watch", true)
	return p, nil
}

// GetSecret reads the secret stored in <BasePath>/<name>.
//
// The file must be a regular file directly inside BasePath with 0600 or 0400
// permissions. Surrounding whitespace is trimmed.
func (p *FileProvider) GetSecret(_ context.Context, name string) (string, error) {
	p.mu.RLock()
	value, ok := p.cache[name]
	p.mu.RUnlock()
	if ok {
		return value, nil
	}

	path, err := p.secretPath(name)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &NotFoundError{Name: name, Source: "file " + path}
		}
		return "", fmt.Errorf("failed to stat secret file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("secret path is not a regular file: %s", name)
	}
	if mode := info.Mode().Perm(); mode != 0600 && mode != 0400 {
		return "", fmt.Errorf("insecure permissions on %s: %o (expected 0600 or 0400)", path, mode)
	}

	// #nosec G304 - path is confined to BasePath by secretPath
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file: %w", err)
	}

	value = strings.TrimSpace(string(data))
	if value == "" {
		return "", &NotFoundError{Name: name, Source: "file " + path + " is empty"}
	}

	p.mu.Lock()
	p.cache[name] = value
	p.mu.Unlock()

	return value, nil
}

func (p *FileProvider) secretPath(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid secret name %q", name)
	}
	absBase, err := filepath.Abs(p.BasePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	return filepath.Join(absBase, name), nil
}

// Provider returns the provider name.
func (p *FileProvider) Provider() string {
	return "file"
}

// Supports reports whether a file named name exists in the directory.
func (p *FileProvider) Supports(name string) bool {
	path, err := p.secretPath(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Refresh drops every cached value.
func (p *FileProvider) Refresh(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	slog.Debug("refreshing file secrets cache", "path", p.BasePath)
	p.cache = make(map[string]string)
	return nil
}

func (p *FileProvider) invalidate(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cache, name)
}

// Close stops the file watcher.
func (p *FileProvider) Close() error {
	if p.watcher == nil {
		return nil
	}
	select {
	case <-p.stopCh:
		return nil
	default:
	}
	close(p.stopCh)
	err := p.watcher.Close()
	<-p.doneCh
	return err
}

func (p *FileProvider) watchLoop() {
	defer close(p.doneCh)

	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			base := filepath.Base(event.Name)
			slog.Debug("secret file changed", "file", base, "op", event.Op.String())

			if strings.HasPrefix(base, "..") {
				_ = p.Refresh(context.Background())
				continue
			}
			p.invalidate(base)

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("secret file watcher error", "error", err)

		case <-p.stopCh:
			return
		}
	}
}
