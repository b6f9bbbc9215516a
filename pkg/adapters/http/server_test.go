package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendelian/mendel/internal/logging"
	httpadapter "github.com/mendelian/mendel/pkg/adapters/http"
	"github.com/mendelian/mendel/pkg/adapters/memory"
)

const coinDefinition = `{
	"name": "both-heads",
	"spaces": {
		"coin": {
			"outcomes": [
				{"label": "heads", "weight": 1},
				{"label": "tails", "weight": 1}
			]
		}
	},
	"draws": [{"space": "coin", "count": 2}],
	"rule": {
		"kind": "count-at-least",
		"params": {"label": "heads", "min": 2, "result": "both-heads"}
	},
	"trials": 10000,
	"seed": 42
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler := httpadapter.NewHandler(memory.NewStore(), logging.NewNop(), prometheus.NewRegistry())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestSimulate(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/simulate", "application/json", bytes.NewBufferString(coinDefinition))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body httpadapter.SimulateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.NotNil(t, body.Result)
	assert.NotEmpty(t, body.Result.ID)
	assert.Equal(t, "both-heads", body.Result.Name)
	assert.Equal(t, uint64(10000), body.Result.Trials)
	assert.InDelta(t, 0.25, body.Probabilities["both-heads"], 0.02)

	// The stored run is retrievable afterwards.
	got, err := http.Get(srv.URL + "/runs/" + body.Result.ID)
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusOK, got.StatusCode)
}

func TestSimulate_Deterministic(t *testing.T) {
	srv := newTestServer(t)

	run := func() map[string]uint64 {
		resp, err := http.Post(srv.URL+"/simulate", "application/json", bytes.NewBufferString(coinDefinition))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body httpadapter.SimulateResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body.Result.Counts
	}

	assert.Equal(t, run(), run(), "seeded requests must reproduce identical counts")
}

func TestSimulate_BadDefinition(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"no spaces", `{"draws": [{"space": "x"}], "rule": {"kind": "tuple"}, "trials": 10}`},
		{"zero trials", `{
			"spaces": {"c": {"outcomes": [{"label": "a", "weight": 1}]}},
			"draws": [{"space": "c"}],
			"rule": {"kind": "tuple"},
			"trials": 0
		}`},
		{"negative weight", `{
			"spaces": {"c": {"outcomes": [{"label": "a", "weight": -1}]}},
			"draws": [{"space": "c"}],
			"rule": {"kind": "tuple"},
			"trials": 10
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/simulate", "application/json", bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestSimulate_WorkersClamped(t *testing.T) {
	srv := newTestServer(t)

	// An absurd worker count must be clamped, not honored with one random
	// stream and goroutine per requested worker.
	def := `{
		"spaces": {"coin": {"outcomes": [{"label": "heads", "weight": 1}, {"label": "tails", "weight": 1}]}},
		"draws": [{"space": "coin"}],
		"rule": {"kind": "tuple"},
		"trials": 2000,
		"seed": 7,
		"workers": 1000000000
	}`
	resp, err := http.Post(srv.URL+"/simulate", "application/json", bytes.NewBufferString(def))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body httpadapter.SimulateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, uint64(2000), body.Result.Trials)
}

func TestGetRun_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/runs/no-such-run")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListRuns(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/simulate", "application/json", bytes.NewBufferString(coinDefinition))
	require.NoError(t, err)
	resp.Body.Close()

	list, err := http.Get(srv.URL + "/runs")
	require.NoError(t, err)
	defer list.Body.Close()
	require.Equal(t, http.StatusOK, list.StatusCode)

	var body map[string][]string
	require.NoError(t, json.NewDecoder(list.Body).Decode(&body))
	assert.Len(t, body["runs"], 1)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
