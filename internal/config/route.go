package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Route is a scenario selection taken from a URL path and query, as in
// "/solar?n=5".
type Route struct {
	Scenario string
	N        int
	HasN     bool
	NError   string
}

// ParseRoute reads the scenario from the last path segment (default
// "N") and the body count from the n query parameter. Like a lenient
// integer parse, trailing garbage after the leading digits is ignored.
func ParseRoute(path, rawQuery string) Route {
	r := Route{Scenario: DefaultScenario}

	if seg := strings.Trim(path, "/"); seg != "" {
		if i := strings.LastIndex(seg, "/"); i >= 0 {
			seg = seg[i+1:]
		}
		if s, err := url.PathUnescape(seg); err == nil && s != "" {
			r.Scenario = s
		}
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil || !query.Has("n") {
		return r
	}

	raw := query.Get("n")
	n, ok := leadingInt(raw)
	if !ok {
		r.NError = fmt.Sprintf("Invalid number format: %q", raw)
		return r
	}
	r.N = n
	r.HasN = true
	return r
}

// Apply copies the route's selection into cfg.
func (r Route) Apply(cfg *Config) {
	cfg.Scenario = r.Scenario
	if r.HasN {
		cfg.Bodies = r.N
	}
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
