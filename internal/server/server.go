package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Action string

type Method string

const (
	Root Action = ""
	Data Action = "data"
	Api  Action = "api"
	Form Action = "form"

	GET  Method = "GET"
	POST Method = "POST"
)

const requestIDHeader = "X-Request-ID"

// Handler handles a request and returns the payload and status code to respond with.
// Handlers may set headers and cookies on the writer, but must not write the body.
type Handler func(w http.ResponseWriter, r *http.Request) ([]byte, int, error)

type Route struct {
	Action Action
	Path   string
	Method Method
	Exec   Handler
}

// Pattern returns the path the route is mounted on.
func (r Route) Pattern() string {
	switch {
	case r.Action == Root:
		return fmt.Sprintf("/%s", r.Path)
	case r.Path != "":
		return fmt.Sprintf("/%s/%s", r.Action, r.Path)
	default:
		return fmt.Sprintf("/%s", r.Action)
	}
}

type Server struct {
	name   string
	port   int
	debug  bool
	routes []Route
	mounts map[string]http.Handler
}

func NewServer(name string, port int) *Server {
	return &Server{
		name:   name,
		port:   port,
		routes: make([]Route, 0),
		mounts: make(map[string]http.Handler),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

// AddRoute adds the given route to the server
func (s *Server) AddRoute(method Method, action Action, path string, exec Handler) *Server {
	s.routes = append(s.routes, Route{
		Action: action,
		Path:   path,
		Method: method,
		Exec:   exec,
	})
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	return s
}

// Mount serves a plain http handler under the given pattern.
func (s *Server) Mount(pattern string, handler http.Handler) *Server {
	s.mounts[pattern] = handler
	return s
}

func (s *Server) handle(route Route) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		// the root pattern matches every unknown path
		if route.Action == Root && r.URL.Path != route.Pattern() {
			http.NotFound(w, r)
			return
		}
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		start := time.Now()
		if s.debug {
			log.Info().
				Str("id", id).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Str("remote-address", r.RemoteAddr).
				Msg("started request")
		}
		code := s.exec(route, w, r)
		log.Debug().
			Str("id", id).
			Str("route", route.Pattern()).
			Int("code", code).
			Float64("duration", time.Since(start).Seconds()).
			Msg("completed request")
	}
}

func (s *Server) exec(route Route, w http.ResponseWriter, r *http.Request) int {
	if Method(r.Method) != route.Method {
		w.WriteHeader(http.StatusNotImplemented)
		return http.StatusNotImplemented
	}
	b, code, err := route.Exec(w, r)
	if err != nil {
		s.error(w, err)
		return http.StatusInternalServerError
	}
	if code == 0 {
		code = http.StatusOK
	}
	s.code(w, b, code)
	return code
}

// Handler returns the http handler serving all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, route := range s.routes {
		mux.HandleFunc(route.Pattern(), s.handle(route))
	}
	for pattern, handler := range s.mounts {
		mux.Handle(pattern, handler)
	}
	return mux
}

// Run starts the server and blocks until the context is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Str("server", s.name).Msg("could not shut down server")
		}
	}()

	log.Info().Str("server", s.name).Int("port", s.port).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	w.WriteHeader(code)
	s.respond(w, b)
}

func (s *Server) respond(w http.ResponseWriter, b []byte) {
	if len(b) == 0 {
		return
	}
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("error for http request")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	s.code(w, []byte(err.Error()), http.StatusInternalServerError)
}

// Live is the liveness route of the server.
func Live() Route {
	return Route{
		Action: Data,
		Method: GET,
		Exec: func(w http.ResponseWriter, r *http.Request) (payload []byte, code int, err error) {
			return []byte{}, http.StatusOK, nil
		},
	}
}

// JsonRead decodes the body of the request into v, an empty body is ignored.
func JsonRead(r *http.Request, debug bool, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if debug {
		log.Info().
			Str("url", fmt.Sprintf("%+v", r.URL)).
			Str("method", r.Method).
			Str("body", string(body)).
			Msg("received payload")
	}
	if len(body) > 0 {
		err = json.Unmarshal(body, v)
		if err != nil {
			return err
		}
	}
	return nil
}

// JsonWrite encodes v as the json payload of the response.
func JsonWrite(w http.ResponseWriter, v interface{}) ([]byte, error) {
	w.Header().Set("Content-Type", "application/json")
	return json.Marshal(v)
}
