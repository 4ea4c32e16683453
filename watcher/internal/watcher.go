package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"footcrop/cropper"
	"footcrop/types"

	"github.com/google/uuid"
)

const defaultPollInterval = time.Second

// Watcher picks up PDFs dropped into the source directory once they have
// stopped changing, crops them into the output directory and archives
// the originals.
type Watcher struct {
	cfg    types.Config
	logger *slog.Logger

	fileMutex       sync.Mutex
	fileFirstSeen   map[string]time.Time
	filesProcessing map[string]bool
}

func NewWatcher(cfg types.Config) (*Watcher, error) {
	if err := createDirectories(cfg.SourceDir, cfg.OutputDir, cfg.ArchiveDir, cfg.BadDir); err != nil {
		return nil, err
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return &Watcher{
		cfg:             cfg,
		logger:          slog.Default(),
		fileFirstSeen:   make(map[string]time.Time),
		filesProcessing: make(map[string]bool),
	}, nil
}

func (w *Watcher) WatchFile(ctx context.Context, fileChan chan<- string) {
	w.logger.Info("start monitoring folder", "dir", w.cfg.SourceDir)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()
	defer w.logger.Info("file watcher stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !w.scan(ctx, fileChan) {
				return
			}
		}
	}
}

// scan makes one pass over the source directory. It returns false when
// ctx was cancelled while handing a file over.
func (w *Watcher) scan(ctx context.Context, fileChan chan<- string) bool {
	files, err := os.ReadDir(w.cfg.SourceDir)
	if err != nil {
		w.logger.Error("error while reading source directory", "error", err)
		return true
	}

	currentFiles := make(map[string]bool)

	for _, file := range files {
		if file.IsDir() || !strings.EqualFold(filepath.Ext(file.Name()), ".pdf") {
			continue
		}

		filePath := filepath.Join(w.cfg.SourceDir, file.Name())
		currentFiles[filePath] = true

		w.fileMutex.Lock()
		if w.filesProcessing[filePath] {
			w.fileMutex.Unlock()
			continue
		}

		if _, exists := w.fileFirstSeen[filePath]; !exists {
			w.fileFirstSeen[filePath] = time.Now()
			w.fileMutex.Unlock()
			w.logger.Info("new file detected", "file", filePath)
			continue
		}

		firstSeen := w.fileFirstSeen[filePath]
		if time.Since(firstSeen) <= w.cfg.MonitoringTime {
			w.fileMutex.Unlock()
			continue
		}
		w.filesProcessing[filePath] = true
		w.fileMutex.Unlock()

		select {
		case fileChan <- filePath:
		case <-ctx.Done():
			return false
		}
	}

	// Forget files that disappeared from the directory.
	w.fileMutex.Lock()
	for filePath := range w.fileFirstSeen {
		if !currentFiles[filePath] {
			delete(w.fileFirstSeen, filePath)
			delete(w.filesProcessing, filePath)
		}
	}
	w.fileMutex.Unlock()

	return true
}

func (w *Watcher) ProcessFile(ctx context.Context, fileChan <-chan string, jobChan chan<- types.Job) {
	defer w.logger.Info("file processor stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case filePath, ok := <-fileChan:
			if !ok {
				return
			}

			job := w.Crop(filePath)

			w.fileMutex.Lock()
			delete(w.filesProcessing, filePath)
			delete(w.fileFirstSeen, filePath)
			w.fileMutex.Unlock()

			select {
			case jobChan <- job:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Crop removes the footer from filePath into the output directory and
// moves the original to the archive, or to the bad directory on failure.
func (w *Watcher) Crop(filePath string) types.Job {
	job := types.Job{
		ID:           uuid.New(),
		Source:       filePath,
		Output:       uniquePath(w.cfg.OutputDir, filepath.Base(filePath)),
		FooterHeight: w.cfg.FooterHeight,
		Box:          w.cfg.Box,
		Status:       types.JobDone,
		CreatedAt:    time.Now(),
	}

	pages, err := cropper.CropFile(filePath, job.Output, cropper.Options{
		FooterHeight: w.cfg.FooterHeight,
		Box:          w.cfg.Box,
	})
	job.Pages = pages

	failed := err != nil
	if failed {
		w.logger.Error("error processing file", "file", filePath, "error", err)
		job.Status = types.JobFailed
		job.Error = err.Error()
		job.Output = ""
	} else {
		w.logger.Info("footer removed", "file", filePath, "pages", pages, "output", job.Output)
	}

	if _, err := w.MoveToArchive(filePath, failed); err != nil {
		w.logger.Error("error moving file to archive", "file", filePath, "error", err)
	}
	return job
}

// MoveToArchive moves filePath into a dated subdirectory of the archive
// (or bad) directory and returns the new path. Name clashes get a
// numeric suffix.
func (w *Watcher) MoveToArchive(filePath string, failed bool) (string, error) {
	state := w.cfg.ArchiveDir
	if failed {
		state = w.cfg.BadDir
	}

	destDir := filepath.Join(state, time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("error creating directory: %w", err)
	}

	destPath := uniquePath(destDir, filepath.Base(filePath))

	if err := os.Rename(filePath, destPath); err == nil {
		return destPath, nil
	}

	// Rename fails across filesystems, fall back to copy and remove.
	if err := copyFile(filePath, destPath); err != nil {
		return "", err
	}
	return destPath, os.Remove(filePath)
}

// uniquePath joins dir and name, adding a _n suffix before the extension
// while the path is taken.
func uniquePath(dir, name string) string {
	path := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	baseName := strings.TrimSuffix(name, ext)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", baseName, counter, ext))
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func createDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
