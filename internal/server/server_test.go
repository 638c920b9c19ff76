package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/idlab-discover/EconCluster-cli/internal/artifact/artifacttest"
	"github.com/idlab-discover/EconCluster-cli/internal/audit"
	"github.com/idlab-discover/EconCluster-cli/internal/label"
	"github.com/idlab-discover/EconCluster-cli/internal/predictor"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
)

func newServer(t *testing.T, opts Options) *Server {
	t.Helper()
	sch := schema.Core()
	labels, err := label.NewResolver(label.Defaults())
	require.NoError(t, err)
	p, err := predictor.New(sch, artifacttest.Store(t, sch), labels)
	require.NoError(t, err)
	return New(p, opts)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPredictHandler_OK(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := newServer(t, Options{Audit: audit.New(zap.New(core))})

	rec := do(t, s.Handler(), http.MethodPost, "/predict",
		`{"indicators":{"SafetySecurity":9,"Governance":9,"EconomicQuality":9,"LivingConditions":9}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res predictor.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.ClusterID)
	assert.Equal(t, "Advanced/Maju", res.Label)
	assert.Equal(t, []float64{2, 2, 2, 2}, res.StandardizedVector)
	assert.NotEmpty(t, res.RequestID)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, res.RequestID, logs.All()[0].ContextMap()["request_id"])
}

func TestPredictHandler_RequestErrors(t *testing.T) {
	s := newServer(t, Options{})

	tests := []struct {
		name  string
		body  string
		stage string
		want  string
	}{
		{name: "malformed json", body: `{"indicators":`, want: "unexpected EOF"},
		{name: "missing indicators", body: `{}`, want: "required"},
		{name: "out of range", body: `{"indicators":{"SafetySecurity":10.1,"Governance":5,"EconomicQuality":5,"LivingConditions":5}}`, stage: "build", want: "SafetySecurity"},
		{name: "missing required", body: `{"indicators":{"SafetySecurity":5}}`, stage: "build", want: "required indicator missing"},
		{name: "unknown name", body: `{"indicators":{"governance":5,"SafetySecurity":5,"Governance":5,"EconomicQuality":5,"LivingConditions":5}}`, stage: "build", want: `did you mean \"Governance\"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s.Handler(), http.MethodPost, "/predict", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var er ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
			assert.Equal(t, serviceName, er.Service)
			assert.Equal(t, http.StatusBadRequest, er.Status)
			assert.Equal(t, tt.stage, er.Stage)
			if tt.stage != "" {
				assert.NotEmpty(t, er.RequestID)
			}
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestPredictHandler_BodyLimit(t *testing.T) {
	s := newServer(t, Options{MaxBodyBytes: 16})
	rec := do(t, s.Handler(), http.MethodPost, "/predict", `{"indicators":{"SafetySecurity":5}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestModelHandler(t *testing.T) {
	s := newServer(t, Options{})
	rec := do(t, s.Handler(), http.MethodGet, "/model", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var m ModelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "core", m.Schema)
	assert.Equal(t, 3, m.K)
	assert.Len(t, m.Features, 4)
	assert.Len(t, m.Scaling, 4)
	assert.Equal(t, "Emerging/Berkembang", m.Labels[1].Name)
	assert.Len(t, m.Digests, 2)
}

func TestHealthHandler_CountsPredictions(t *testing.T) {
	s := newServer(t, Options{})
	do(t, s.Handler(), http.MethodPost, "/predict", `{"indicators":{"SafetySecurity":5,"Governance":5,"EconomicQuality":5,"LivingConditions":5}}`)
	do(t, s.Handler(), http.MethodPost, "/predict", `{"indicators":{"SafetySecurity":50}}`)

	rec := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var h map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "ok", h["status"])
	assert.Equal(t, 1.0, h["predictions"])
	assert.Equal(t, 1.0, h["rejected"])
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	t.Cleanup(func() { SetLogger(nil) })

	s := newServer(t, Options{})
	do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Contains(t, buf.String(), "GET /healthz 200")
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	s := newServer(t, Options{Addr: addr, ShutdownTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
