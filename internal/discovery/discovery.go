package discovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"combogrip/internal/domain"
	"combogrip/internal/eventbus"
)

// Sources names everything a scan loads
type Sources struct {
	Files     []string
	RepoRoots []string
	Stdin     io.Reader // nil when nothing is piped in
	MaxDepth  int
}

// Names lists the sources in load order
func (s Sources) Names() []string {
	var names []string
	if s.Stdin != nil {
		names = append(names, StdinSource)
	}
	names = append(names, s.Files...)
	return append(names, s.RepoRoots...)
}

// DiscoveryService loads candidates from files, stdin and repository roots
type DiscoveryService interface {
	StartScan(ctx context.Context, sources Sources) error
	StopScan()
	Reload(ctx context.Context, path string) error
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(bus eventbus.EventBus) DiscoveryService {
	return &discoveryService{bus: bus}
}

// StartScan loads every source concurrently. Each source publishes its own
// CandidatesLoadedEvent or SourceFailedEvent; one failing source does not
// stop the others.
func (ds *discoveryService) StartScan(ctx context.Context, sources Sources) error {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	ds.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	ds.cancelFunc = cancel
	ds.mu.Unlock()

	ds.bus.Publish(eventbus.ScanStartedEvent{Sources: sources.Names()})

	ds.wg.Add(1)
	go func() {
		defer ds.wg.Done()

		var (
			mu    sync.Mutex
			found int
		)
		count := func(n int) {
			mu.Lock()
			found += n
			mu.Unlock()
		}

		g, gctx := errgroup.WithContext(scanCtx)
		if sources.Stdin != nil {
			g.Go(func() error {
				candidates, err := ReadLines(sources.Stdin, StdinSource, domain.SourceStdin)
				count(ds.publish(StdinSource, candidates, err))
				return nil
			})
		}
		for _, path := range sources.Files {
			g.Go(func() error {
				candidates, err := LoadFile(path)
				count(ds.publish(path, candidates, err))
				return nil
			})
		}
		for _, root := range sources.RepoRoots {
			g.Go(func() error {
				repos, err := ScanRepositories(gctx, root, sources.MaxDepth)
				if errors.Is(err, context.Canceled) {
					return err
				}
				candidates := make([]domain.Candidate, 0, len(repos))
				for _, r := range repos {
					candidates = append(candidates, r.Candidate(root))
				}
				count(ds.publish(root, candidates, err))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			log.Printf("Scan stopped: %v", err)
		}

		ds.mu.Lock()
		ds.isScanning = false
		ds.cancelFunc = nil
		ds.mu.Unlock()

		ds.bus.Publish(eventbus.ScanCompletedEvent{CandidatesFound: found})
	}()

	return nil
}

// StopScan stops any ongoing scan and waits for it to finish
func (ds *discoveryService) StopScan() {
	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}

// Reload re-reads one candidate file, replacing its earlier candidates
func (ds *discoveryService) Reload(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	candidates, err := LoadFile(path)
	ds.publish(path, candidates, err)
	return err
}

func (ds *discoveryService) publish(source string, candidates []domain.Candidate, err error) int {
	if err != nil {
		log.Printf("Source %s failed: %v", source, err)
		ds.bus.Publish(eventbus.SourceFailedEvent{Source: source, Err: err})
		return 0
	}
	ds.bus.Publish(eventbus.CandidatesLoadedEvent{Source: source, Candidates: candidates})
	return len(candidates)
}
