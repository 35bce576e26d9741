// Package report summarises a delta stream for humans.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"galaxy-fx/internal/core"
	"galaxy-fx/internal/delta"
	"galaxy-fx/internal/stream"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Stats aggregates a decoded stream.
type Stats struct {
	Frames      int
	Changes     int
	Appeared    int
	Moved       int
	Disappeared int
	PeakChanges int
	PeakFrame   int
	Bytes       int64
	Digest      string
	PerFrame    []int
}

// MeanChanges returns the average change count per frame.
func (s Stats) MeanChanges() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.Changes) / float64(s.Frames)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Analyze decodes the whole stream and gathers statistics.
func Analyze(r io.Reader) (Stats, error) {
	digest := sha256.New()
	src := &countingReader{r: io.TeeReader(r, digest)}
	dec := stream.NewReader(src)

	var st Stats
	var changes []delta.Change
	for {
		var err error
		changes, err = dec.Next(changes[:0])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return st, err
		}
		n := len(changes)
		st.PerFrame = append(st.PerFrame, n)
		st.Changes += n
		if n > st.PeakChanges {
			st.PeakChanges, st.PeakFrame = n, st.Frames
		}
		for _, c := range changes {
			switch c.Kind() {
			case delta.Appeared:
				st.Appeared++
			case delta.Moved:
				st.Moved++
			case delta.Disappeared:
				st.Disappeared++
			}
		}
		st.Frames++
	}
	st.Bytes = src.n
	st.Digest = hex.EncodeToString(digest.Sum(nil))
	return st, nil
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// Render formats the statistics, the run parameters when known, and a plot
// of changes per frame.
func Render(title string, st Stats, params *core.ParameterSnapshot, width int) string {
	rows := []string{
		headerStyle.Render(title),
		row("Frames", fmt.Sprint(st.Frames)),
		row("Changes", fmt.Sprintf("%d (mean %.1f)", st.Changes, st.MeanChanges())),
		row("Peak", fmt.Sprintf("%d at frame %d", st.PeakChanges, st.PeakFrame)),
		row("Appeared", fmt.Sprint(st.Appeared)),
		row("Moved", fmt.Sprint(st.Moved)),
		row("Disappeared", fmt.Sprint(st.Disappeared)),
		row("Size", fmt.Sprintf("%d bytes", st.Bytes)),
		row("SHA-256", st.Digest),
	}
	summary := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	var blocks []string
	blocks = append(blocks, summary)
	if params != nil {
		var lines []string
		for _, g := range params.Groups {
			for _, p := range g.Params {
				lines = append(lines, row(p.Label, p.Value))
			}
		}
		blocks = append(blocks, panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	out := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)

	if len(st.PerFrame) > 1 {
		if width <= 0 {
			width = 60
		}
		data := make([]float64, len(st.PerFrame))
		for i, n := range st.PerFrame {
			data[i] = float64(n)
		}
		plot := asciigraph.Plot(data, asciigraph.Height(8), asciigraph.Width(width), asciigraph.Caption("changes per frame"))
		out = lipgloss.JoinVertical(lipgloss.Left, out, graphStyle.Render(plot))
	}
	return strings.TrimRight(out, "\n") + "\n"
}
