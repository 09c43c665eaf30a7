package batch

import "github.com/gndm/ytTranscript/internal/transcript"

// Request starts a batch session.
type Request struct {
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

// Session represents a single batch run over a playlist or video URL.
type Session struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Lang     string   `json:"lang,omitempty"`
	Status   string   `json:"status"`
	Error    string   `json:"error,omitempty"`
	Items    []Item   `json:"items"`
	Progress Progress `json:"progress"`
}

// Item is one video in the session.
type Item struct {
	Title     string               `json:"title,omitempty"`
	Input     string               `json:"input"`
	Status    string               `json:"status"`
	ErrorKind string               `json:"error_kind,omitempty"`
	Error     string               `json:"error,omitempty"`
	Count     int                  `json:"segment_count"`
	Segments  []transcript.Segment `json:"segments,omitempty"`
}

// Progress holds aggregate counts for the session.
type Progress struct {
	Total   int `json:"total"`
	Fetched int `json:"fetched"`
	Failed  int `json:"failed"`
}

// Session status constants.
const (
	StatusExpanding = "expanding"
	StatusFetching  = "fetching"
	StatusDone      = "done"
	StatusError     = "error"
)

// Item status constants.
const (
	ItemPending  = "pending"
	ItemFetching = "fetching"
	ItemDone     = "done"
	ItemError    = "error"
)
