package overlay

import "github.com/ziadkadry99/termlens/internal/terms"

// cache maps canonical terms to explanations. Entries are write-once.
// With a positive limit the oldest insertion is evicted first.
type cache struct {
	limit   int
	entries map[string]string
	order   []string
}

func newCache(limit int) *cache {
	return &cache{limit: limit, entries: make(map[string]string)}
}

func (c *cache) get(key string) (string, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *cache) put(key, explanation string) {
	if _, ok := c.entries[key]; ok {
		return
	}
	c.entries[key] = explanation
	if c.limit <= 0 {
		return
	}
	c.order = append(c.order, key)
	for len(c.order) > c.limit {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
}

func (c *cache) len() int { return len(c.entries) }

// valid reports whether an explanation may be shown and cached.
func (s *Session) valid(explanation string) bool {
	return Usable(explanation, s.opts.Sentinels)
}

// resolve shows the explanation for term, which must already be the
// current term. Cache hits render synchronously; otherwise the caller
// attaches to the term's flight, issuing the request if none is pending.
func (s *Session) resolve(term string) {
	key := terms.Canonical(term)
	if explanation, ok := s.cache.get(key); ok {
		s.logger.Debug("explanation cache hit", "term", key)
		s.show(explanation, StateShown)
		return
	}

	f, pending := s.inflight[key]
	if !pending {
		f = newFlight(key)
		s.inflight[key] = f
		s.fetches++
		s.logger.Debug("explanation requested", "term", key)
		go s.fetch(f, term)
	} else {
		s.logger.Debug("joined pending explanation", "term", key)
	}
	s.show(s.opts.LoadingMessage, StateLoading)
	s.await(f)
}

func (s *Session) fetch(f *Flight, term string) {
	explanation, err := s.explainer.Explain(s.runCtx, term)
	s.post(func() { s.settle(f, explanation, err) })
}

// settle runs once per flight on the loop: it clears the registry entry,
// caches a valid result and applies it for every attached caller before
// any later event is handled.
func (s *Session) settle(f *Flight, explanation string, err error) {
	if s.inflight[f.key] == f {
		delete(s.inflight, f.key)
	}
	if err == nil && !s.valid(explanation) {
		err = ErrInvalidExplanation
	}
	if err != nil {
		s.logger.Debug("explanation failed", "term", f.key, "err", err)
		f.complete("", err)
		return
	}
	s.cache.put(f.key, explanation)
	f.complete(explanation, nil)
}

func (s *Session) await(f *Flight) {
	s.waiting++
	f.attach(func(explanation string, err error) {
		s.finish(f.key, explanation, err)
	})
}

// finish applies a settled result if its term is still current.
func (s *Session) finish(key, explanation string, err error) {
	s.waiting--
	if key != s.currentKey {
		s.logger.Debug("stale explanation dropped", "term", key, "current", s.currentKey)
		return
	}
	if err != nil {
		s.show(s.opts.FailureMessage, StateShown)
		return
	}
	s.show(explanation, StateShown)
}
