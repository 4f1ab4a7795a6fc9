package main

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watchUploadDir logs create/remove events on the storage root. Files are
// only ever supposed to appear or vanish through the pipeline, so anything
// logged here while no upload or cleanup ran points at out-of-band activity.
// Enabled with UPLOAD_WATCH=true.
func watchUploadDir(dir string) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("upload watcher disabled: %v", err)
		return
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		log.Printf("upload watcher disabled: %v", err)
		return
	}
	log.Printf("Watching %s ...", dir)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				log.Printf("upload dir: created %s", filepath.Base(ev.Name))
			}
			if ev.Op&fsnotify.Remove == fsnotify.Remove {
				log.Printf("upload dir: removed %s", filepath.Base(ev.Name))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}
