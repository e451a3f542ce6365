package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/schema-scout/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spySubmitter records calls and returns a scripted response.
type spySubmitter struct {
	mu    sync.Mutex
	calls []Request
	resp  *models.ProcessResponse
	err   error
	delay time.Duration
}

func (s *spySubmitter) Submit(ctx context.Context, req Request) (*models.ProcessResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.resp, s.err
}

func (s *spySubmitter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func validStore() *Store {
	store := NewStore()
	store.SetFile(&File{Name: "schema.json", Content: []byte(`{"orders":{"columns":[]}}`)})
	store.SetQuery("find user orders")
	return store
}

func TestSubmit_ValidationFailure(t *testing.T) {
	tests := []struct {
		name  string
		file  *File
		query string
	}{
		{"missing file", nil, "anything"},
		{"empty query", &File{Name: "schema.json"}, ""},
		{"whitespace query", &File{Name: "schema.json"}, "   \t  "},
		{"both missing", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			if tt.file != nil {
				store.SetFile(tt.file)
			}
			store.SetQuery(tt.query)

			// Track whether loading ever becomes true.
			loadingSeen := false
			unsub := store.Subscribe(func(s State) {
				if s.Loading {
					loadingSeen = true
				}
			})
			defer unsub()

			spy := &spySubmitter{}
			controller := NewController(store, spy)

			final := <-controller.Submit(context.Background())

			assert.Equal(t, ValidationMessage, final.Err)
			assert.False(t, loadingSeen, "loading must never become true")
			assert.Zero(t, spy.callCount(), "no request may be issued")
			assert.Nil(t, final.Result)
		})
	}
}

func TestSubmit_Success(t *testing.T) {
	want := models.ProcessingResult{
		"orders": {
			Columns:        []models.Column{{Name: "order_id", Type: "integer"}},
			RelevanceScore: 0.42,
		},
	}

	store := validStore()
	spy := &spySubmitter{resp: &models.ProcessResponse{Success: true, Result: want}}
	controller := NewController(store, spy)

	final := <-controller.Submit(context.Background())

	assert.Equal(t, want, final.Result)
	assert.Empty(t, final.Err)
	assert.False(t, final.Loading)
	assert.Equal(t, PhaseSuccess, final.Phase())
	require.Equal(t, 1, spy.callCount())
}

func TestSubmit_PassesFormFields(t *testing.T) {
	store := validStore()
	store.SetOutputFormat(FormatYAML)
	store.SetThreshold(0.3)

	spy := &spySubmitter{resp: &models.ProcessResponse{Success: true}}
	controller := NewController(store, spy)
	<-controller.Submit(context.Background())

	require.Equal(t, 1, spy.callCount())
	req := spy.calls[0]
	assert.Equal(t, "schema.json", req.FileName)
	assert.Equal(t, "find user orders", req.Query)
	assert.Equal(t, "yaml", req.OutputFormat)
	assert.InDelta(t, 0.3, req.Threshold, 1e-9)
}

func TestSubmit_ServerReportedError(t *testing.T) {
	store := validStore()

	// Seed a prior result; a server-reported failure must not clear it.
	prior := models.ProcessingResult{"users": {RelevanceScore: 0.5}}
	store.mutate(func(s *State) { s.Result = prior })

	spy := &spySubmitter{resp: &models.ProcessResponse{Success: false, Error: "schema document contains no tables"}}
	controller := NewController(store, spy)

	final := <-controller.Submit(context.Background())

	assert.Equal(t, "schema document contains no tables", final.Err)
	assert.Equal(t, prior, final.Result, "prior result must remain unchanged")
	assert.False(t, final.Loading)
	assert.Equal(t, PhaseFailure, final.Phase())
}

func TestSubmit_TransportError(t *testing.T) {
	store := validStore()
	spy := &spySubmitter{err: errors.New("connection refused")}
	controller := NewController(store, spy)

	final := <-controller.Submit(context.Background())

	assert.Equal(t, "Error processing schema: connection refused", final.Err)
	assert.False(t, final.Loading)
}

func TestSubmit_LoadingTransitions(t *testing.T) {
	store := validStore()
	spy := &spySubmitter{
		resp:  &models.ProcessResponse{Success: true, Result: models.ProcessingResult{}},
		delay: 10 * time.Millisecond,
	}
	controller := NewController(store, spy)

	var phases []Phase
	var mu sync.Mutex
	unsub := store.Subscribe(func(s State) {
		mu.Lock()
		phases = append(phases, s.Phase())
		mu.Unlock()
	})
	defer unsub()

	final := <-controller.Submit(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, phases, PhaseLoading)
	assert.Equal(t, PhaseSuccess, final.Phase())
}

func TestMockSubmitter_DefaultDelay(t *testing.T) {
	start := time.Now()
	resp, err := (&MockSubmitter{}).Submit(context.Background(), Request{})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.GreaterOrEqual(t, time.Since(start), DefaultMockDelay)
}

func TestSubmit_MockScenario(t *testing.T) {
	store := NewStore()
	store.SetFile(&File{Name: "schema.json", Content: []byte(`{}`)})
	store.SetQuery("find user orders")

	controller := NewController(store, &MockSubmitter{Delay: 5 * time.Millisecond})

	final := <-controller.Submit(context.Background())

	require.Empty(t, final.Err)
	require.Len(t, final.Result, 2)
	assert.InDelta(t, 0.85, final.Result["orders"].RelevanceScore, 1e-9)
	assert.InDelta(t, 0.65, final.Result["users"].RelevanceScore, 1e-9)
	assert.Equal(t, MockResult(), final.Result)
}

func TestSetFile_ClearsError(t *testing.T) {
	store := NewStore()
	controller := NewController(store, &spySubmitter{})

	<-controller.Submit(context.Background())
	require.Equal(t, ValidationMessage, store.State().Err)

	store.SetFile(&File{Name: "schema.yaml", Content: []byte("orders:\n")})
	assert.Empty(t, store.State().Err)
}

func TestSetThreshold_ClampAndStep(t *testing.T) {
	store := NewStore()

	store.SetThreshold(0.25)
	assert.InDelta(t, 0.3, store.State().Threshold, 1e-9)

	store.SetThreshold(-1)
	assert.Zero(t, store.State().Threshold)

	store.SetThreshold(7)
	assert.InDelta(t, 1.0, store.State().Threshold, 1e-9)
}

func TestSetFileFromPath_ExtensionFilter(t *testing.T) {
	store := NewStore()

	err := store.SetFileFromPath("/tmp/schema.txt")
	var unsupported *UnsupportedFileError
	assert.ErrorAs(t, err, &unsupported)
}
