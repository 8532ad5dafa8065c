package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/pump-curve/internal/curve"
	"github.com/drakos74/pump-curve/internal/hydraulics"
	polymath "github.com/drakos74/pump-curve/internal/math"
	"github.com/drakos74/pump-curve/internal/metrics"
	"github.com/drakos74/pump-curve/internal/model"
	"github.com/drakos74/pump-curve/internal/server"
	"github.com/drakos74/pump-curve/internal/storage"
)

// DefaultDegree is used for curves of a case that come without a degree.
const DefaultDegree = 2

var validate = validator.New()

// API exposes the curve fitting over http.
type API struct {
	fitter *curve.Fitter
	store  storage.Persistence
	cases  *cache.Cache
	debug  bool
}

// New creates the api on top of the given fitter and storage.
// Restored cases are kept in memory for the given expiration, zero keeps them until overwritten.
func New(fitter *curve.Fitter, store storage.Persistence, expiration time.Duration, debug bool) *API {
	return &API{
		fitter: fitter,
		store:  store,
		cases:  cache.New(expiration, expiration),
		debug:  debug,
	}
}

// Routes returns all the routes of the api.
func (a *API) Routes() []server.Route {
	return []server.Route{
		server.Live(),
		{Action: server.Api, Path: "fit", Method: server.POST, Exec: a.fit},
		{Action: server.Api, Path: "case", Method: server.POST, Exec: a.storeCase},
		{Action: server.Api, Path: "load", Method: server.GET, Exec: a.loadCase},
		{Action: server.Api, Path: "cases", Method: server.GET, Exec: a.listCases},
		{Action: server.Api, Path: "table", Method: server.GET, Exec: a.table},
		{Action: server.Api, Path: "pipe", Method: server.POST, Exec: a.pipe},
	}
}

func (a *API) fit(r *http.Request) ([]byte, int, error) {
	var req FitRequest
	if err := a.read(r, &req); err != nil {
		return nil, 0, err
	}

	degree := DefaultDegree
	if req.Degree != nil {
		degree = *req.Degree
	}
	points := req.Points.Sorted()
	if req.Percent != nil {
		for i, p := range points {
			points[i] = model.FromPercent(p, req.Percent.Flow, req.Percent.Head)
		}
	}

	result, err := a.fitter.Fit(points, degree, req.Symbol, req.Unit)
	if err != nil {
		return nil, 0, status(err)
	}

	trendline := a.fitter.Trendline(result.Coefficients, points)
	resp := FitResponse{
		Result:    result,
		Points:    points,
		Trendline: trendline,
		Speeds:    a.fitter.SpeedCurves(trendline),
	}
	if req.Percent != nil {
		resp.PercentTrendline = make(model.Points, len(trendline))
		for i, p := range trendline {
			resp.PercentTrendline[i] = model.ToPercent(p, req.Percent.Flow, req.Percent.Head)
		}
	}
	return respond(resp)
}

func (a *API) storeCase(r *http.Request) ([]byte, int, error) {
	var c model.Case
	if err := server.JsonRead(r, a.debug, &c); err != nil {
		return nil, 0, server.WithCode(http.StatusBadRequest, err)
	}
	if c.CaseName == "" {
		c.CaseName = model.CaseName(c.Info)
	}
	if c.Equations.Head.Degree == 0 {
		c.Equations.Head.Degree = DefaultDegree
	}
	if c.Equations.Efficiency.Degree == 0 {
		c.Equations.Efficiency.Degree = DefaultDegree
	}
	if err := c.Validate(); err != nil {
		return nil, 0, status(err)
	}

	c, err := a.fitter.Case(c, c.Equations.Head.Degree, c.Equations.Efficiency.Degree)
	if err != nil {
		return nil, 0, status(err)
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	key := storage.Key{Name: c.CaseName}
	err = a.store.Store(key, c)
	metrics.Observer.Case("store", err)
	if err != nil {
		a.cases.Delete(key.Path())
		return nil, 0, fmt.Errorf("could not store case '%s': %w", c.CaseName, err)
	}
	a.cases.SetDefault(key.Path(), c)

	log.Info().Str("case", c.CaseName).Str("id", c.ID).Msg("stored case")
	return respond(CaseResponse{
		Success: true,
		Message: fmt.Sprintf("case '%s' stored", c.CaseName),
		Case:    c,
	})
}

func (a *API) loadCase(r *http.Request) ([]byte, int, error) {
	c, err := a.load(r)
	if err != nil {
		return nil, 0, err
	}
	return respond(c)
}

func (a *API) table(r *http.Request) ([]byte, int, error) {
	c, err := a.load(r)
	if err != nil {
		return nil, 0, err
	}
	return []byte(model.Table(c.OperatingPoints)), http.StatusOK, nil
}

func (a *API) load(r *http.Request) (model.Case, error) {
	name := r.URL.Query().Get("name")
	if name == "" {
		return model.Case{}, server.WithCode(http.StatusBadRequest, errors.New("missing case name"))
	}

	key := storage.Key{Name: name}
	if cached, ok := a.cases.Get(key.Path()); ok {
		metrics.Observer.Case("cache", nil)
		return cached.(model.Case), nil
	}

	var c model.Case
	err := a.store.Load(key, &c)
	metrics.Observer.Case("load", err)
	if err != nil {
		return c, status(err)
	}

	c, err = a.fitter.Restore(c)
	if err != nil {
		return c, status(err)
	}
	a.cases.SetDefault(key.Path(), c)
	return c, nil
}

func (a *API) listCases(_ *http.Request) ([]byte, int, error) {
	keys, err := a.store.List()
	if err != nil {
		return nil, 0, err
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name
	}
	return respond(names)
}

func (a *API) pipe(r *http.Request) ([]byte, int, error) {
	var req PipeRequest
	if err := a.read(r, &req); err != nil {
		return nil, 0, err
	}

	var err error
	switch req.Solve {
	case SolveDiameter:
		req.Diameter, err = hydraulics.Diameter(req.Flowrate, req.Velocity)
	case SolveFlowrate:
		req.Flowrate, err = hydraulics.Flowrate(req.Diameter, req.Velocity)
	case SolveVelocity:
		req.Velocity, err = hydraulics.Velocity(req.Diameter, req.Flowrate)
	}
	if err != nil {
		return nil, 0, status(err)
	}
	return respond(req)
}

// read decodes the body, applies the defaults and validates the request.
func (a *API) read(r *http.Request, req interface{}) error {
	if err := server.JsonRead(r, a.debug, req); err != nil {
		return server.WithCode(http.StatusBadRequest, err)
	}
	if err := defaults.Set(req); err != nil {
		return server.WithCode(http.StatusBadRequest, err)
	}
	if err := validate.StructCtx(r.Context(), req); err != nil {
		return server.WithCode(http.StatusBadRequest, err)
	}
	return nil
}

func respond(v interface{}) ([]byte, int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, 0, fmt.Errorf("could not marshal response: %w", err)
	}
	return b, http.StatusOK, nil
}

// status maps the domain errors to the http status they should be reported with.
func status(err error) error {
	switch {
	case errors.Is(err, polymath.ErrSingularMatrix):
		return server.WithCode(http.StatusUnprocessableEntity, err)
	case errors.Is(err, polymath.ErrInsufficientData),
		errors.Is(err, polymath.ErrDimensionMismatch),
		errors.Is(err, polymath.ErrDegree),
		errors.Is(err, curve.ErrDegree),
		errors.Is(err, model.ErrInvalidCase),
		errors.Is(err, hydraulics.ErrInvalidInput):
		return server.WithCode(http.StatusBadRequest, err)
	case errors.Is(err, storage.NotFoundErr):
		return server.WithCode(http.StatusNotFound, err)
	default:
		return err
	}
}
