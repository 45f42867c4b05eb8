// SPDX-License-Identifier: MPL-2.0

package events

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	stepStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
)

type (
	// LogSink renders events as human-readable log lines.
	LogSink struct {
		logger *log.Logger
	}

	// JSONSink writes one JSON object per event.
	JSONSink struct {
		mu  sync.Mutex
		enc *json.Encoder
	}
)

// NewLogSink creates a LogSink writing through logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Handle implements Sink.
func (s *LogSink) Handle(e Event) error {
	switch e.Kind {
	case KindStepStarted:
		s.logger.Info(stepStyle.Render(e.Step))
	case KindCommand:
		s.logger.Info(commandStyle.Render("$ " + e.Message))
	case KindStepSkipped:
		s.logger.Info("skipped", "step", e.Step, "reason", e.Message)
	case KindStepSucceeded:
		s.logger.Debug("step done", "step", e.Step, "took", e.Duration.Round(time.Millisecond))
	case KindInfo:
		s.logger.Info(e.Message, "step", e.Step)
	case KindWarning:
		s.logger.Warn(e.Message, "step", e.Step)
	case KindCompleted:
		s.logger.Info(successStyle.Render(e.Message), "took", e.Duration.Round(time.Millisecond))
	case KindFailed:
		s.logger.Error(failureStyle.Render(e.Message), "err", e.Error)
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
	return nil
}

// NewJSONSink creates a JSONSink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Handle implements Sink.
func (s *JSONSink) Handle(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(e)
}
