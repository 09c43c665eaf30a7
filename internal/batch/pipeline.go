// Package batch fetches transcripts for every video behind a playlist URL.
package batch

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/gndm/ytTranscript/internal/transcript"
	"github.com/gndm/ytTranscript/internal/ytdlp"
)

// Fetcher retrieves one transcript. transcript.Fetch satisfies it.
type Fetcher func(ctx context.Context, input string, cfg transcript.Config) ([]transcript.Segment, error)

// Pipeline manages batch sessions.
type Pipeline struct {
	ytClient ytdlp.Client
	fetch    Fetcher
	base     transcript.Config
	limiter  *rate.Limiter
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewPipeline creates a pipeline that expands playlists with yt and fetches
// each video with fetch, at most rps fetches per second. A non-positive rps
// disables pacing.
func NewPipeline(yt ytdlp.Client, fetch Fetcher, base transcript.Config, rps float64) *Pipeline {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &Pipeline{
		ytClient: yt,
		fetch:    fetch,
		base:     base,
		limiter:  rate.NewLimiter(limit, 1),
		sessions: make(map[string]*Session),
	}
}

// Start begins a new session and returns its id immediately; processing
// runs in a goroutine.
func (p *Pipeline) Start(ctx context.Context, req Request) string {
	session := p.newSession(req)
	log.Printf("[batch] session %s started: %s", session.ID, req.URL)
	go p.run(ctx, session)
	return session.ID
}

// Run processes a session to completion and returns its final state.
func (p *Pipeline) Run(ctx context.Context, req Request) *Session {
	session := p.newSession(req)
	log.Printf("[batch] session %s running: %s", session.ID, req.URL)
	p.run(ctx, session)
	s, _ := p.GetSession(session.ID)
	return s
}

// GetSession returns a copy of the session state. Segment slices are shared
// and must not be modified.
func (p *Pipeline) GetSession(id string) (*Session, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.sessions[id]
	if !ok {
		return nil, false
	}
	cp := *s
	cp.Items = make([]Item, len(s.Items))
	copy(cp.Items, s.Items)
	return &cp, true
}

func (p *Pipeline) newSession(req Request) *Session {
	session := &Session{
		ID:     uuid.NewString(),
		URL:    req.URL,
		Lang:   req.Lang,
		Status: StatusExpanding,
		Items:  []Item{},
	}
	p.mu.Lock()
	p.sessions[session.ID] = session
	p.mu.Unlock()
	return session
}

func (p *Pipeline) expand(ctx context.Context, url string) ([]Item, error) {
	if !ytdlp.IsPlaylistURL(url) {
		return []Item{{Input: url, Status: ItemPending}}, nil
	}

	entries, err := p.ytClient.GetPlaylist(ctx, url)
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Title: e.Title, Input: e.Input(), Status: ItemPending}
	}
	return items, nil
}

func (p *Pipeline) run(ctx context.Context, session *Session) {
	items, err := p.expand(ctx, session.URL)
	if err != nil {
		if ctx.Err() != nil {
			p.setError(session, "canceled")
			return
		}
		p.setError(session, "failed to expand playlist: "+err.Error())
		return
	}

	p.mu.Lock()
	session.Items = items
	session.Progress.Total = len(items)
	session.Status = StatusFetching
	p.mu.Unlock()

	cfg := p.base
	if session.Lang != "" {
		cfg.Lang = session.Lang
	}

	for i := range items {
		if err := p.limiter.Wait(ctx); err != nil {
			p.setError(session, "canceled")
			return
		}

		p.mu.Lock()
		session.Items[i].Status = ItemFetching
		input := session.Items[i].Input
		p.mu.Unlock()

		segments, err := p.fetch(ctx, input, cfg)
		if err != nil && errors.Is(err, context.Canceled) {
			p.setError(session, "canceled")
			return
		}

		p.mu.Lock()
		item := &session.Items[i]
		if err != nil {
			item.Status = ItemError
			item.Error = err.Error()
			if kind, ok := transcript.KindOf(err); ok {
				item.ErrorKind = kind.String()
			}
			session.Progress.Failed++
			log.Printf("[batch] session %s: %s failed: %v", session.ID, input, err)
		} else {
			item.Status = ItemDone
			item.Segments = segments
			item.Count = len(segments)
			session.Progress.Fetched++
		}
		p.mu.Unlock()
	}

	p.mu.Lock()
	session.Status = StatusDone
	log.Printf("[batch] session %s done: %d fetched, %d failed",
		session.ID, session.Progress.Fetched, session.Progress.Failed)
	p.mu.Unlock()
}

func (p *Pipeline) setError(session *Session, msg string) {
	p.mu.Lock()
	session.Status = StatusError
	session.Error = msg
	log.Printf("[batch] session %s error: %s", session.ID, msg)
	p.mu.Unlock()
}
