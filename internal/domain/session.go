package domain

import (
	"sort"
	"strings"
)

const (
	CookieMonitorID = "WMONID"
	CookieSessionID = "ZSESSIONID"
)

// Session holds the server-issued cookies. Names keep their first-seen order
// so the rendered Cookie header is stable.
type Session struct {
	values map[string]string
	order  []string
}

func NewSession(snapshot map[string]string) *Session {
	s := &Session{values: make(map[string]string, len(snapshot))}

	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.Set(name, snapshot[name])
	}

	return s
}

func (s *Session) Set(name, value string) {
	if _, ok := s.values[name]; !ok {
		s.order = append(s.order, name)
	}
	s.values[name] = value
}

func (s *Session) Get(name string) (string, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Merge folds raw Set-Cookie header values into the session. Attributes after
// the first ";" are dropped; malformed entries are skipped.
func (s *Session) Merge(setCookies []string) {
	for _, raw := range setCookies {
		pair, _, _ := strings.Cut(raw, ";")
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		s.Set(name, strings.TrimSpace(value))
	}
}

// Header renders the Cookie request header value.
func (s *Session) Header() string {
	pairs := make([]string, 0, len(s.order))
	for _, name := range s.order {
		pairs = append(pairs, name+"="+s.values[name])
	}
	return strings.Join(pairs, "; ")
}

// HasAnchor reports whether the monitor cookie every protocol call carries is present.
func (s *Session) HasAnchor() bool {
	_, ok := s.values[CookieMonitorID]
	return ok
}

func (s *Session) Authenticated() bool {
	_, hasMonitor := s.values[CookieMonitorID]
	_, hasSession := s.values[CookieSessionID]
	return hasMonitor && hasSession
}

func (s *Session) Snapshot() map[string]string {
	snapshot := make(map[string]string, len(s.values))
	for name, value := range s.values {
		snapshot[name] = value
	}
	return snapshot
}
