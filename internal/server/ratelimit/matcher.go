package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for the health probe so monitors never trip a limit.
var unlimited = EndpointConfig{Path: "/health", Method: http.MethodGet}

// MatchEndpoint finds the rule governing method and path. A rule whose Path ends
// in "/" covers every path beneath it; an exact rule wins over any prefix rule and
// a longer prefix wins over a shorter one. It returns nil when no rule applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && path == unlimited.Path {
		rule := unlimited
		return &rule
	}

	var best *EndpointConfig
	for i := range configs {
		rule := &configs[i]
		if rule.Method != method {
			continue
		}
		if rule.Path == path {
			return rule
		}
		if !strings.HasSuffix(rule.Path, "/") || !strings.HasPrefix(path, rule.Path) {
			continue
		}
		if best == nil || len(rule.Path) > len(best.Path) {
			best = rule
		}
	}
	return best
}
