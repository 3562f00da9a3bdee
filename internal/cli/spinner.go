package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/c4export/pkg/observability"
)

// spinnerOut receives spinner frames. It is stderr so stdout stays clean for
// piped output such as "preview -o -".
var spinnerOut io.Writer = os.Stderr

const spinnerTick = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var styleSpinnerCount = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

// Spinner animates a status line on stderr while pages are assembled. Besides
// a free-form message it can show "[done/total] page" once the pipeline
// reports progress through [spinnerHooks].
type Spinner struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	page    string
	done    int
	total   int
	drawn   int // display width of the longest line written

	quit     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext returns a spinner that stops drawing when ctx ends.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		ctx:      ctx,
		cancel:   cancel,
		message:  message,
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start begins drawing in the background.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.finished)
	tick := time.NewTicker(spinnerTick)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			return
		case <-s.ctx.Done():
			s.erase()
			return
		case <-tick.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

// line renders the status text. Callers hold s.mu.
func (s *Spinner) line() string {
	parts := []string{StyleDim.Render(s.message)}
	if s.total > 0 {
		parts = append(parts, styleSpinnerCount.Render(fmt.Sprintf("[%d/%d]", s.done, s.total)))
	}
	if s.page != "" {
		parts = append(parts, s.page)
	}
	return strings.Join(parts, " ")
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := styleIconSpinner.Render(frame) + " " + s.line()
	s.drawn = max(s.drawn, lipgloss.Width(text))
	fmt.Fprint(spinnerOut, "\r"+text)
}

func (s *Spinner) erase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(spinnerOut, "\r"+strings.Repeat(" ", s.drawn+2)+"\r")
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// expect sets the number of pages the counter runs up to.
func (s *Spinner) expect(total int) {
	s.mu.Lock()
	s.total, s.done, s.page = total, 0, ""
	s.mu.Unlock()
}

// advance records one assembled page.
func (s *Spinner) advance(page string) {
	s.mu.Lock()
	s.done++
	s.page = page
	s.mu.Unlock()
}

// Stop halts the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		close(s.quit)
	})
	<-s.finished
	s.erase()
}

// StopWithSuccess stops the spinner and prints message as a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints message as an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context has ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// spinnerHooks mirrors page progress on a spinner and forwards every event to
// the hooks that were registered before it.
type spinnerHooks struct {
	observability.PipelineHooks
	spinner *Spinner
}

// attachSpinner routes pipeline progress to s until the returned func runs.
func attachSpinner(s *Spinner) (detach func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(spinnerHooks{PipelineHooks: prev, spinner: s})
	return func() { observability.SetPipelineHooks(prev) }
}

func (h spinnerHooks) OnExportStart(ctx context.Context, document string, pages int) {
	h.spinner.expect(pages)
	h.PipelineHooks.OnExportStart(ctx, document, pages)
}

func (h spinnerHooks) OnPageAssembled(ctx context.Context, page string, nodes, edges, skipped int, d time.Duration) {
	h.spinner.advance(page)
	h.PipelineHooks.OnPageAssembled(ctx, page, nodes, edges, skipped, d)
}
