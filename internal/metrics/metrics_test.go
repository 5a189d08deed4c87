package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()
	r.Image(ResultUploaded)
	r.Image(ResultUploaded)
	r.Image(ResultMissing)
	r.Document(KindSet, ResultWritten)
	r.Document(KindPart, ResultFailed)
	r.SetFinished()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.images.WithLabelValues(ResultUploaded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.images.WithLabelValues(ResultMissing)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.documents.WithLabelValues(KindSet, ResultWritten)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.documents.WithLabelValues(KindPart, ResultFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sets))
	assert.Equal(t, 2, testutil.CollectAndCount(r.images))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Image(ResultFailed)
		r.Document(KindPart, ResultWritten)
		r.SetFinished()
	})
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.Push("http://127.0.0.1:1", "job", "run"))
}

func TestPush(t *testing.T) {
	var (
		mu   sync.Mutex
		path string
		body string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		data, _ := io.ReadAll(req.Body)
		mu.Lock()
		path = req.URL.Path
		body = string(data)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRecorder()
	r.Image(ResultUploaded)
	require.NoError(t, r.Push(srv.URL, "question_publisher", "run-1"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/metrics/job/question_publisher/run_id/run-1", path)
	assert.NotEmpty(t, body)
}

func TestPush_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewRecorder().Push(srv.URL, "question_publisher", "run-1")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "500"))
}
