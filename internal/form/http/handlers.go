package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/drakos74/free-iris/internal/form"
	"github.com/drakos74/free-iris/internal/model"
	"github.com/drakos74/free-iris/internal/server"
	"github.com/drakos74/free-iris/internal/view"
	"github.com/rs/zerolog/log"
)

// SessionCookie is the cookie carrying the form session key.
// It lives for the browser session, idle forms are swept on the server.
const SessionCookie = "iris_session"

// Routes returns the routes of the form, backed by the given registry.
func Routes(registry *form.Registry) []server.Route {
	h := &handlers{registry: registry}
	return []server.Route{
		{Action: server.Root, Method: server.GET, Exec: h.page},
		{Action: server.Form, Path: "field", Method: server.POST, Exec: h.field},
		{Action: server.Form, Path: "clear", Method: server.POST, Exec: h.clear},
		{Action: server.Form, Path: "example", Method: server.POST, Exec: h.example},
		{Action: server.Form, Path: "health", Method: server.POST, Exec: h.health},
		{Action: server.Form, Path: "submit", Method: server.POST, Exec: h.submit},
		{Action: server.Form, Path: "compare", Method: server.POST, Exec: h.compare},
		{Action: server.Api, Path: "state", Method: server.GET, Exec: h.state},
	}
}

type handlers struct {
	registry *form.Registry
}

// controller returns the form of the session, starting a new session if needed.
func (h *handlers) controller(w http.ResponseWriter, r *http.Request) *form.Controller {
	var id string
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		id = cookie.Value
	} else {
		id = form.NewSessionID()
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return h.registry.Get(r.Context(), id)
}

func (h *handlers) page(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	c := h.controller(w, r)
	var buf bytes.Buffer
	if err := view.Page(&buf, c.State()); err != nil {
		return nil, 0, fmt.Errorf("could not render page: %w", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return buf.Bytes(), http.StatusOK, nil
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	c := h.controller(w, r)
	b, err := server.JsonWrite(w, c.State())
	return b, http.StatusOK, err
}

// fieldUpdate is the json body of a field update.
type fieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *handlers) field(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	c := h.controller(w, r)
	update, err := readField(r)
	if err != nil {
		return []byte(err.Error()), http.StatusBadRequest, nil
	}
	field, err := model.ParseField(update.Field)
	if err != nil {
		return []byte(err.Error()), http.StatusBadRequest, nil
	}
	if err := c.Update(field, update.Value); err != nil {
		return []byte(err.Error()), http.StatusBadRequest, nil
	}
	if wantsJSON(r) {
		return h.respond(w, r, c)
	}
	return nil, http.StatusNoContent, nil
}

// readField accepts the update either as a json body or as a posted form.
func readField(r *http.Request) (fieldUpdate, error) {
	var update fieldUpdate
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := server.JsonRead(r, false, &update)
		return update, err
	}
	if err := r.ParseForm(); err != nil {
		return update, err
	}
	update.Field = r.PostForm.Get("field")
	update.Value = r.PostForm.Get("value")
	return update, nil
}

func (h *handlers) clear(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	c := h.controller(w, r)
	c.Clear()
	return h.respond(w, r, c)
}

func (h *handlers) example(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	c := h.controller(w, r)
	c.LoadExample()
	return h.respond(w, r, c)
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	c := h.controller(w, r)
	c.CheckHealth(r.Context())
	return h.respond(w, r, c)
}

func (h *handlers) submit(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	c := h.controller(w, r)
	if err := updateFields(r, c); err != nil {
		return []byte(err.Error()), http.StatusBadRequest, nil
	}
	return h.settle(w, r, c, c.Submit(r.Context()))
}

func (h *handlers) compare(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	c := h.controller(w, r)
	if err := updateFields(r, c); err != nil {
		return []byte(err.Error()), http.StatusBadRequest, nil
	}
	return h.settle(w, r, c, c.Compare(r.Context()))
}

// settle answers a submission, failures of the service are part of the rendered state.
func (h *handlers) settle(w http.ResponseWriter, r *http.Request, c *form.Controller, err error) ([]byte, int, error) {
	switch {
	case errors.Is(err, form.ErrInFlight):
		return []byte(err.Error()), http.StatusConflict, nil
	case errors.Is(err, form.ErrClosed):
		return []byte(err.Error()), http.StatusGone, nil
	case err != nil:
		log.Debug().Err(err).Str("form", c.ID()).Msg("submission failed")
	}
	return h.respond(w, r, c)
}

// respond answers with the json state for api clients, or redirects browsers back to the page.
func (h *handlers) respond(w http.ResponseWriter, r *http.Request, c *form.Controller) ([]byte, int, error) {
	if wantsJSON(r) {
		b, err := server.JsonWrite(w, c.State())
		return b, http.StatusOK, err
	}
	w.Header().Set("Location", "/")
	return nil, http.StatusSeeOther, nil
}

// updateFields stores the fields posted along with a submission.
func updateFields(r *http.Request, c *form.Controller) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	for _, field := range model.Fields {
		if values, ok := r.PostForm[string(field)]; ok && len(values) > 0 {
			if err := c.Update(field, values[0]); err != nil {
				return err
			}
		}
	}
	return nil
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
