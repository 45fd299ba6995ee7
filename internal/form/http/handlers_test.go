package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/drakos74/free-iris/client/iris"
	"github.com/drakos74/free-iris/internal/form"
	"github.com/drakos74/free-iris/internal/model"
	"github.com/drakos74/free-iris/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	prediction = `{"predicted_species":"Setosa","predicted_class":0,"confidence":0.97,"all_predictions":[0.97,0.02,0.01],"timestamp":"2024-05-01T10:20:30"}`
	benchmark  = `{"summary":{"speedup":2.5,"efficiency":0.62,"cpu_cores_used":4,"time_saved":1.2},
		"sequential":{"total_time":2.0,"memory_used":10.5,"cpu_count":1,"results":[]},
		"parallel":{"total_time":0.8,"memory_used":22.0,"cpu_count":4,"results":[]},
		"timestamp":"2024-05-01T10:20:30"}`
)

type service struct {
	predictStatus   int
	benchmarkStatus int
}

func (s *service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case iris.HealthPath:
		w.WriteHeader(http.StatusOK)
	case iris.PredictPath:
		w.WriteHeader(s.predictStatus)
		_, _ = w.Write([]byte(prediction))
	case iris.BenchmarkPath:
		w.WriteHeader(s.benchmarkStatus)
		_, _ = w.Write([]byte(benchmark))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type harness struct {
	t      *testing.T
	client *http.Client
	url    string
}

func newHarness(t *testing.T, svc *service) (*harness, func()) {
	upstream := httptest.NewServer(svc)
	registry := form.NewRegistry(iris.NewClient(upstream.URL))
	front := httptest.NewServer(server.NewServer("test", 0).Add(Routes(registry)...).Handler())
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &harness{
			t: t,
			client: &http.Client{
				Jar: jar,
				CheckRedirect: func(req *http.Request, via []*http.Request) error {
					return http.ErrUseLastResponse
				},
			},
			url: front.URL,
		}, func() {
			front.Close()
			registry.Close()
			upstream.Close()
		}
}

func (h *harness) post(path string, values url.Values, asJSON bool) *http.Response {
	req, err := http.NewRequest(http.MethodPost, h.url+path, strings.NewReader(values.Encode()))
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if asJSON {
		req.Header.Set("Accept", "application/json")
	}
	resp, err := h.client.Do(req)
	require.NoError(h.t, err)
	return resp
}

func (h *harness) state(resp *http.Response) form.State {
	defer resp.Body.Close()
	require.Equal(h.t, http.StatusOK, resp.StatusCode)
	var s form.State
	require.NoError(h.t, json.NewDecoder(resp.Body).Decode(&s))
	return s
}

func TestHandlers_CompareFlow(t *testing.T) {
	h, stop := newHarness(t, &service{predictStatus: http.StatusInternalServerError, benchmarkStatus: http.StatusOK})
	defer stop()

	resp, err := h.client.Get(h.url + "/api/state")
	require.NoError(t, err)
	s := h.state(resp)
	assert.Equal(t, model.Healthy, s.Health)
	assert.Equal(t, model.Form{}, s.Form)

	s = h.state(h.post("/form/example", nil, true))
	assert.Equal(t, model.Example(), s.Form)

	s = h.state(h.post("/form/compare", nil, true))
	assert.False(t, s.Comparing)
	assert.Equal(t, model.Failure, s.Prediction.Status)
	assert.Contains(t, s.Prediction.Error, "500")
	assert.Nil(t, s.Prediction.Result)
	assert.Equal(t, model.Success, s.Benchmark.Status)
	assert.Equal(t, 2.5, s.Benchmark.Result.Summary.Speedup)

	s = h.state(h.post("/form/clear", nil, true))
	assert.Equal(t, model.Form{}, s.Form)
	assert.Nil(t, s.Benchmark.Result)
	assert.Empty(t, s.Prediction.Error)
	assert.Equal(t, model.Healthy, s.Health)
}

func TestHandlers_Submit(t *testing.T) {
	h, stop := newHarness(t, &service{predictStatus: http.StatusOK, benchmarkStatus: http.StatusOK})
	defer stop()

	values := url.Values{}
	values.Set("sepal_length", "5.1")
	values.Set("sepal_width", "3.5")
	values.Set("petal_length", "1.4")
	values.Set("petal_width", "0.2")

	s := h.state(h.post("/form/submit", values, true))
	assert.Equal(t, model.Success, s.Prediction.Status)
	assert.Equal(t, "Setosa", s.Prediction.Result.Species)
	assert.Empty(t, s.Prediction.Error)
	assert.Equal(t, model.Idle, s.Benchmark.Status)

	// an empty field never reaches the service
	values.Set("petal_width", "")
	s = h.state(h.post("/form/submit", values, true))
	assert.Equal(t, model.Failure, s.Prediction.Status)
	assert.Contains(t, s.Prediction.Error, "Petal width is required")
}

func TestHandlers_Browser(t *testing.T) {
	h, stop := newHarness(t, &service{predictStatus: http.StatusOK, benchmarkStatus: http.StatusOK})
	defer stop()

	resp := h.post("/form/field", url.Values{"field": {"sepal_length"}, "value": {"6.1"}}, false)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = h.post("/form/field", url.Values{"field": {"stem"}, "value": {"1"}}, false)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = h.post("/form/health", nil, false)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp, err := h.client.Get(h.url + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), `value="6.1"`)
	assert.Contains(t, string(body), "Connected")
}

func TestHandlers_FieldJSON(t *testing.T) {
	h, stop := newHarness(t, &service{predictStatus: http.StatusOK, benchmarkStatus: http.StatusOK})
	defer stop()

	type test struct {
		body string
		code int
	}

	tests := map[string]test{
		"valid":         {body: `{"field":"petal_length","value":"4.7"}`, code: http.StatusOK},
		"unknown-field": {body: `{"field":"stem","value":"1"}`, code: http.StatusBadRequest},
		"malformed":     {body: `{"field":`, code: http.StatusBadRequest},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, h.url+"/form/field", strings.NewReader(tt.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Accept", "application/json")
			resp, err := h.client.Do(req)
			require.NoError(t, err)
			if tt.code != http.StatusOK {
				resp.Body.Close()
				assert.Equal(t, tt.code, resp.StatusCode)
				return
			}
			s := h.state(resp)
			assert.Equal(t, "4.7", s.Form.PetalLength)
		})
	}
}

func TestHandlers_Sessions(t *testing.T) {
	h, stop := newHarness(t, &service{predictStatus: http.StatusOK, benchmarkStatus: http.StatusOK})
	defer stop()

	s := h.state(h.post("/form/example", nil, true))
	assert.Equal(t, model.Example(), s.Form)

	// a client without the session cookie gets its own form
	resp, err := http.Get(h.url + "/api/state")
	require.NoError(t, err)
	other := h.state(resp)
	assert.Equal(t, model.Form{}, other.Form)
}
