package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"combogrip/internal/config"
	"combogrip/internal/discovery"
	"combogrip/internal/domain"
	"combogrip/internal/eventbus"
	"combogrip/internal/logic"
	"combogrip/internal/ui"
	"combogrip/internal/ui/combobox"
)

// errNoSelection makes the process exit non-zero when nothing was chosen
var errNoSelection = errors.New("no selection")

type flags struct {
	configPath string
	logPath    string
	repos      []string
	strategy   string
	max        int
	filter     string
	filterBy   string
	open       string
	query      string
	filterOnly bool
	watch      bool
	clipboard  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errNoSelection) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "combogrip [files...]",
		Short: "Pick one candidate from files, stdin or git repositories",
		Long: `combogrip offers every line of the given files, every line piped on stdin
and every git repository below --repos in a filterable list, and prints the
chosen candidate on stdout.

Examples:
  ls | combogrip
  combogrip --repos ~/code
  combogrip langs.txt --strategy auto --query java --filter-only`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "config file (default ./.combogrip.toml or the user config dir)")
	fl.StringVar(&f.logPath, "log", "", "log file (default in the user cache dir)")
	fl.StringArrayVar(&f.repos, "repos", nil, "directory to scan for git repositories (repeatable)")
	fl.StringVar(&f.strategy, "strategy", "", "selection strategy: manual or auto")
	fl.IntVar(&f.max, "max", 0, "maximum number of displayed items")
	fl.StringVar(&f.filter, "filter", "", "matcher: substring, fuzzy or ranked")
	fl.StringVar(&f.filterBy, "filter-by", "", "field matched against the query: label, detail or source")
	fl.StringVar(&f.open, "open", "", "open the list on focus (eager) or on first input (lazy)")
	fl.StringVarP(&f.query, "query", "q", "", "initial query")
	fl.BoolVar(&f.filterOnly, "filter-only", false, "print the result for --query without starting the TUI")
	fl.BoolVar(&f.watch, "watch", false, "reload candidate files when they change")
	fl.BoolVar(&f.clipboard, "clipboard", false, "copy the selection to the clipboard")
	return cmd
}

func run(cmd *cobra.Command, args []string, f flags) error {
	logFile := setupLogging(f.logPath)
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(f.configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, f, args)
	if err := cfg.Validate(); err != nil {
		log.Printf("Config %s: %v", configSvc.Path(), err)
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	sources := discovery.Sources{
		Files:     cfg.Sources.Files,
		RepoRoots: cfg.Sources.RepoRoots,
		MaxDepth:  cfg.Sources.MaxDepth,
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		sources.Stdin = os.Stdin
	}
	if len(sources.Names()) == 0 {
		return fmt.Errorf("no candidate sources: pass files, pipe lines on stdin or use --repos")
	}

	if f.filterOnly {
		return runFilterOnly(ctx, os.Stdout, bus, cfg, sources, f.query)
	}
	return runTUI(ctx, bus, cfg, sources, f.query)
}

// applyFlags lets explicitly set flags override the config file
func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags, files []string) {
	changed := cmd.Flags().Changed
	if changed("strategy") {
		cfg.Combobox.SelectionStrategy = f.strategy
	}
	if changed("max") {
		cfg.Combobox.MaximumDisplayedItems = f.max
	}
	if changed("filter") {
		cfg.Combobox.Filter = f.filter
	}
	if changed("filter-by") {
		cfg.Combobox.FilterBy = f.filterBy
	}
	if changed("open") {
		cfg.Combobox.OpenDropdown = f.open
	}
	if changed("watch") {
		cfg.Sources.Watch = f.watch
	}
	if changed("clipboard") {
		cfg.UI.CopyToClipboard = f.clipboard
	}
	if len(files) > 0 {
		cfg.Sources.Files = files
	}
	if len(f.repos) > 0 {
		cfg.Sources.RepoRoots = f.repos
	}
}

// setupLogging sends the log to a file so it never draws over the TUI
func setupLogging(path string) *os.File {
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		path = filepath.Join(dir, "combogrip", "combogrip.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(logFile)
	return logFile
}

// collectCandidates runs one scan and returns every candidate in source order
func collectCandidates(ctx context.Context, bus eventbus.EventBus, sources discovery.Sources) ([]domain.Candidate, error) {
	store := logic.NewMemoryCandidateStore()
	store.SetOrder(sources.Names())
	var failures []error
	done := make(chan struct{})

	unsubLoaded := bus.Subscribe(eventbus.EventCandidatesLoaded, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.CandidatesLoadedEvent)
		store.Replace(ev.Source, ev.Candidates)
	})
	defer unsubLoaded()
	unsubFailed := bus.Subscribe(eventbus.EventSourceFailed, func(e eventbus.DomainEvent) {
		failures = append(failures, e.(eventbus.SourceFailedEvent).Err)
	})
	defer unsubFailed()
	unsubDone := bus.Subscribe(eventbus.EventScanCompleted, func(eventbus.DomainEvent) {
		close(done)
	})
	defer unsubDone()

	ds := discovery.NewDiscoveryService(bus)
	if err := ds.StartScan(ctx, sources); err != nil {
		return nil, err
	}
	select {
	case <-done:
	case <-ctx.Done():
		ds.StopScan()
		return nil, ctx.Err()
	}

	// Handlers ran on the bus goroutine before done was closed
	return store.All(), errors.Join(failures...)
}

// runFilterOnly prints the list (or the exact match) for query and exits
func runFilterOnly(ctx context.Context, w io.Writer, bus eventbus.EventBus, cfg *config.Config, sources discovery.Sources, query string) error {
	candidates, err := collectCandidates(ctx, bus, sources)
	if err != nil {
		log.Printf("Some sources failed: %v", err)
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	list, exact := combobox.Select(candidates, query, ui.QueryOptions(cfg))
	if exact != nil {
		fmt.Fprintln(w, exact.Output())
		return nil
	}
	if list.Len() == 0 {
		return errNoSelection
	}
	for _, item := range list.Items {
		fmt.Fprintln(w, item.Value.Output())
	}
	if list.Truncated {
		log.Printf("Result truncated at %d items", cfg.Combobox.MaximumDisplayedItems)
	}
	return nil
}

// forwardedEvents are the bus events the UI reacts to
var forwardedEvents = []eventbus.EventType{
	eventbus.EventScanStarted,
	eventbus.EventCandidatesLoaded,
	eventbus.EventSourceFailed,
	eventbus.EventScanCompleted,
	eventbus.EventError,
}

func runTUI(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, sources discovery.Sources, query string) error {
	uiModel := ui.NewModel(bus, cfg, ui.Options{Query: query})
	defer uiModel.Close()

	// The TUI draws on stderr so the selection can be piped from stdout
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx),
	}
	if sources.Stdin != nil {
		// stdin carries candidates, keys come from the terminal
		opts = append(opts, tea.WithInputTTY())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, t := range forwardedEvents {
		bus.Subscribe(t, forward)
	}
	bus.Subscribe(eventbus.EventSelectionCommitted, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.SelectionCommittedEvent)
		log.Printf("Committed %q (auto=%v)", ev.Candidate.Label, ev.Auto)
	})

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-stop:
				return
			}
		}
	}()

	discoverySvc := discovery.NewDiscoveryService(bus)
	if err := discoverySvc.StartScan(ctx, sources); err != nil {
		return err
	}
	defer discoverySvc.StopScan()

	if cfg.Sources.Watch && len(sources.Files) > 0 {
		watcher, err := discovery.NewWatcher(discoverySvc, sources.Files, 0)
		if err != nil {
			log.Printf("Watch disabled: %v", err)
		} else {
			go watcher.Run(ctx)
			defer watcher.Stop()
		}
	}

	log.Printf("Starting UI...")
	if os.Getenv("COMBOGRIP_E2E_TEST") != "" {
		fmt.Fprint(os.Stderr, "__READY__")
	}
	_, err := p.Run()
	close(stop)
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}

	result := uiModel.Result()
	if result == nil {
		return errNoSelection
	}
	fmt.Println(result.Output())
	return nil
}
