package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Action string

type Method string

const (
	Data Action = "data"
	Api  Action = "api"

	GET  Method = "GET"
	POST Method = "POST"
)

// Handler executes a request and returns the response payload and status code.
type Handler func(r *http.Request) ([]byte, int, error)

// Route binds a handler to a method and path.
type Route struct {
	Action Action
	Path   string
	Method Method
	Exec   Handler
}

// HttpError carries the status code an error should be reported with.
type HttpError struct {
	Code int
	Err  error
}

func (e *HttpError) Error() string {
	return e.Err.Error()
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

// WithCode attaches a status code to the error.
func WithCode(code int, err error) error {
	return &HttpError{Code: code, Err: err}
}

type Server struct {
	name    string
	port    int
	debug   bool
	metrics bool
	routes  []Route
}

func NewServer(name string, port int) *Server {
	return &Server{
		name:   name,
		port:   port,
		routes: make([]Route, 0),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

// Metrics exposes the prometheus metrics under /metrics
func (s *Server) Metrics() *Server {
	s.metrics = true
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	return s
}

// Handler builds the http handler for all the registered routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, route := range s.routes {
		mux.HandleFunc(route.pattern(), s.handle(route))
	}
	if s.metrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux
}

func (r Route) pattern() string {
	if r.Path != "" {
		return fmt.Sprintf("/%s/%s", r.Action, r.Path)
	}
	return fmt.Sprintf("/%s", r.Action)
}

func (s *Server) handle(route Route) func(w http.ResponseWriter, r *http.Request) {
	request := fmt.Sprintf("%s %s", route.Method, route.pattern())
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if Method(r.Method) != route.Method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		b, code, err := route.Exec(r)
		if err != nil {
			s.error(w, err)
		} else if code != http.StatusOK && code != 0 {
			s.code(w, b, code)
		} else {
			s.respond(w, b)
		}
		if s.debug {
			log.Info().
				Str("request", request).
				Float64("duration", time.Since(start).Seconds()).
				Msg("completed execution")
		}
	}
}

// Run starts the server
func (s *Server) Run() error {
	log.Warn().Str("server", s.name).Int("port", s.port).Msg("starting server")
	if err := http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.Handler()); err != nil {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	w.WriteHeader(code)
	s.write(w, b)
}

func (s *Server) respond(w http.ResponseWriter, b []byte) {
	s.write(w, b)
}

func (s *Server) write(w http.ResponseWriter, b []byte) {
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var he *HttpError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("error for http request")
	} else {
		log.Debug().Err(err).Int("code", code).Msg("rejected http request")
	}
	s.code(w, []byte(err.Error()), code)
}

// Live is the liveness route.
func Live() Route {
	return Route{
		Action: Data,
		Method: GET,
		Exec: func(r *http.Request) (payload []byte, code int, err error) {
			return []byte{}, http.StatusOK, nil
		},
	}
}

// JsonRead reads the json body of the request into v.
func JsonRead(r *http.Request, debug bool, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if debug {
		log.Info().
			Str("url", fmt.Sprintf("%+v", r.URL)).
			Str("remote-address", r.RemoteAddr).
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
