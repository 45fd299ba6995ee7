package server

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// Proxy forwards every request under prefix to the target, with the prefix stripped.
func Proxy(prefix, target string) (http.Handler, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy target '%s': %w", target, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("proxy target must be absolute: '%s'", target)
	}
	proxy := httputil.NewSingleHostReverseProxy(u)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = u.Host
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("target", target).Str("path", r.URL.Path).Msg("proxy request failed")
		w.WriteHeader(http.StatusBadGateway)
	}
	prefix = "/" + strings.Trim(prefix, "/")
	return http.StripPrefix(prefix, proxy), nil
}
