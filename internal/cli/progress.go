package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// ChunkProgress renders chunk completion as a progress bar. Its Update
// method matches the pipeline's OnChunk hook and may be called from
// several goroutines.
type ChunkProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	done   int
	mu     sync.Mutex
}

// NewChunkProgress creates a progress bar writing to w, or stderr when w
// is nil.
func NewChunkProgress(w io.Writer) *ChunkProgress {
	if w == nil {
		w = os.Stderr
	}
	return &ChunkProgress{writer: w}
}

// Update records that done of total chunks are finished.
func (p *ChunkProgress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.writer),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Cleaning chunks...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				if _, err := fmt.Fprintln(p.writer); err != nil {
					slog.Warn("Failed to write newline after progress bar", "error", err)
				}
			}),
		)
	}

	// Chunks finish out of order; never move the bar backwards.
	if done <= p.done {
		return
	}
	p.done = done
	if err := p.bar.Set(done); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish completes the bar if it was started.
func (p *ChunkProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bar != nil {
		if err := p.bar.Finish(); err != nil {
			slog.Warn("Failed to finish progress bar", "error", err)
		}
	}
}
