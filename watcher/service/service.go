package service

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"time"

	"footcrop/store"
	"footcrop/types"
	"footcrop/watcher/internal"
)

type Service struct {
	logger  *slog.Logger
	store   store.DBStorer
	watcher *internal.Watcher
}

func New(cfg types.Config, storer store.DBStorer) (*Service, error) {
	w, err := internal.NewWatcher(cfg)
	if err != nil {
		return nil, err
	}
	return &Service{
		logger:  slog.Default(),
		store:   storer,
		watcher: w,
	}, nil
}

func (s *Service) Stop() {
	s.logger.Info("watcher service stopped")
}

// Run watches the source directory until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fileChan := make(chan string, 10)
	jobChan := make(chan types.Job)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(fileChan)
		s.watcher.WatchFile(ctx, fileChan)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobChan)
		s.watcher.ProcessFile(ctx, fileChan, jobChan)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.JobSave(ctx, jobChan)
	}()

	<-ctx.Done()
	log.Println("Shutting down watcher gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("All goroutines stopped successfully")
	case <-shutdownCtx.Done():
		log.Println("Timeout waiting for goroutines to stop, forcing shutdown...")
	}

	s.Stop()
}

// JobSave journals finished jobs until jobChan is closed.
func (s *Service) JobSave(ctx context.Context, jobChan <-chan types.Job) {
	for job := range jobChan {
		if s.store == nil {
			continue
		}
		if err := s.store.SaveJob(context.WithoutCancel(ctx), job); err != nil {
			s.logger.Error("failed to save job", "job", job.ID, "error", err)
		}
	}
}
