package types

import (
	"time"

	"github.com/google/uuid"
)

// Rect is a page rectangle in PDF user space units (1/72 inch),
// origin at the lower-left corner of the page.
type Rect struct {
	LLX float64 `json:"llx"`
	LLY float64 `json:"lly"`
	URX float64 `json:"urx"`
	URY float64 `json:"ury"`
}

func (r Rect) Width() float64 {
	return r.URX - r.LLX
}

func (r Rect) Height() float64 {
	return r.URY - r.LLY
}

// Degenerate reports whether the rectangle has no visible area left.
func (r Rect) Degenerate() bool {
	return r.LLY >= r.URY || r.LLX >= r.URX
}

type BoxKind string

const (
	MediaBox BoxKind = "media"
	CropBox  BoxKind = "crop"
)

type JobStatus string

const (
	JobDone   JobStatus = "done"
	JobFailed JobStatus = "failed"
)

type Job struct {
	ID           uuid.UUID `json:"id"`
	Source       string    `json:"source"`
	Output       string    `json:"output"`
	FooterHeight float64   `json:"footer_height"`
	Box          BoxKind   `json:"box"`
	Pages        int       `json:"pages"`
	Status       JobStatus `json:"status"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Settings struct {
	FooterHeight float64 `db:"footer_height" json:"footer_height"`
	Box          BoxKind `db:"box" json:"box"`
}

type Config struct {
	MonitoringTime time.Duration
	PollInterval   time.Duration
	SourceDir      string
	OutputDir      string
	ArchiveDir     string
	BadDir         string
	FooterHeight   float64
	Box            BoxKind
}
