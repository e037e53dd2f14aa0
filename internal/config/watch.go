package config

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses editor write bursts into one reload.
const debounce = 200 * time.Millisecond

// Watch reloads the config file whenever it changes and calls onChange
// with the fresh configuration. It blocks until ctx is cancelled; watch
// setup failures are logged and turn Watch into a no-op.
func Watch(ctx context.Context, onChange func(*Config)) {
	path, err := GetConfigPath()
	if err != nil {
		log.Printf("warning: config watch disabled: %v", err)
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("warning: config watch disabled: %v", err)
		return
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save
	// and the inode-level watch would be lost.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		log.Printf("warning: config watch disabled: %v", err)
		return
	}

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			cfg, err := LoadUserConfig()
			if err != nil {
				log.Printf("warning: config reload failed: %v", err)
				continue
			}
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("warning: config watch error: %v", err)
		}
	}
}
