package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/turing/internal/presentation/tapeview"
	"github.com/aretw0/turing/pkg/domain"
)

// Handler presents a run. Frame is called before every step when tracing,
// Result once the run is over.
type Handler interface {
	Frame(ctx context.Context, f domain.Frame, steps int) error
	Result(ctx context.Context, rec domain.RunRecord, blank string) error
}

// TextHandler prints tapes for a person to read.
type TextHandler struct {
	Writer  io.Writer
	printer *tapeview.Printer
}

// NewTextHandler writes to w, Stdout when nil, highlighting the head when color is set.
func NewTextHandler(w io.Writer, color bool) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{Writer: w, printer: tapeview.NewPrinter(w, color)}
}

func (h *TextHandler) Frame(ctx context.Context, f domain.Frame, steps int) error {
	return h.printer.Print(f)
}

func (h *TextHandler) Result(ctx context.Context, rec domain.RunRecord, blank string) error {
	name := rec.Machine
	if name == "" {
		name = "machine"
	}
	if _, err := fmt.Fprintf(h.Writer, "%s: %s after %d steps\n", name, rec.Status, rec.Steps); err != nil {
		return err
	}
	return h.printer.Print(domain.FrameOf(rec, blank))
}

// JSONHandler emits one JSON object per line, for scripts.
type JSONHandler struct {
	Encoder *json.Encoder
}

// NewJSONHandler writes to w, Stdout when nil.
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w)}
}

type frameLine struct {
	Type      string   `json:"type"`
	Steps     int      `json:"steps"`
	State     string   `json:"state"`
	Head      int      `json:"head"`
	TapeStart int      `json:"tape_start"`
	Tape      []string `json:"tape"`
}

type resultLine struct {
	Type string `json:"type"`
	domain.RunRecord
}

func (h *JSONHandler) Frame(ctx context.Context, f domain.Frame, steps int) error {
	return h.Encoder.Encode(frameLine{
		Type:      "frame",
		Steps:     steps,
		State:     f.State,
		Head:      f.Head,
		TapeStart: f.Start,
		Tape:      f.Cells,
	})
}

func (h *JSONHandler) Result(ctx context.Context, rec domain.RunRecord, blank string) error {
	return h.Encoder.Encode(resultLine{Type: "result", RunRecord: rec})
}
