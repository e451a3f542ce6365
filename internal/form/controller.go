// controller.go - Submission controller
package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/schema-scout/backend/internal/models"
)

// ValidationMessage is the error set when required fields are missing.
const ValidationMessage = "Please provide both a schema file and a query"

// errorPrefix prefixes transport and decoding failures.
const errorPrefix = "Error processing schema: "

// Request carries the form fields of one submission.
type Request struct {
	FileName     string
	FileContent  []byte
	Query        string
	OutputFormat string
	Threshold    float64
}

// Submitter performs the actual processing call. The HTTP and mock
// variants both implement it.
type Submitter interface {
	Submit(ctx context.Context, req Request) (*models.ProcessResponse, error)
}

// Controller validates the form, runs submissions, and applies the
// terminal state transition. Overlapping submissions are not cancelled;
// whichever completes last wins, and the UI trigger is expected to be
// disabled while Loading is set.
type Controller struct {
	store     *Store
	submitter Submitter
}

// NewController creates a controller over the store.
func NewController(store *Store, submitter Submitter) *Controller {
	return &Controller{store: store, submitter: submitter}
}

// Submit starts an asynchronous submission. The returned channel
// delivers the final state snapshot once the submission settles; it is
// buffered, so the caller may ignore it.
func (c *Controller) Submit(ctx context.Context) <-chan State {
	done := make(chan State, 1)

	st := c.store.State()
	if st.File == nil || strings.TrimSpace(st.Query) == "" {
		// Validation failure: no I/O, loading never set.
		c.store.mutate(func(s *State) {
			s.Err = ValidationMessage
		})
		done <- c.store.State()
		close(done)
		return done
	}

	c.store.mutate(func(s *State) {
		s.Loading = true
		s.Err = ""
	})

	req := Request{
		FileName:     st.File.Name,
		FileContent:  st.File.Content,
		Query:        st.Query,
		OutputFormat: string(st.OutputFormat),
		Threshold:    st.Threshold,
	}

	go func() {
		defer close(done)

		resp, err := c.submitter.Submit(ctx, req)

		c.store.mutate(func(s *State) {
			switch {
			case err != nil:
				s.Err = errorPrefix + err.Error()
			case resp.Success:
				s.Result = resp.Result
				s.Err = ""
			default:
				// Server-reported failure: message verbatim, prior
				// result left in place.
				s.Err = resp.Error
			}
			s.Loading = false
		})

		done <- c.store.State()
	}()

	return done
}

// HTTPSubmitter posts the multipart form to a running server.
type HTTPSubmitter struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSubmitter creates a submitter against the given base URL.
func NewHTTPSubmitter(baseURL string) *HTTPSubmitter {
	return &HTTPSubmitter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  http.DefaultClient,
	}
}

// Submit issues a single POST /api/process-schema with fields file,
// query, output_format, and threshold, and decodes the success-flag
// response body. Status codes are not inspected; an undecodable body is
// the only transport-level failure after the request itself.
func (s *HTTPSubmitter) Submit(ctx context.Context, req Request) (*models.ProcessResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", req.FileName)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(req.FileContent); err != nil {
		return nil, err
	}
	if err := writer.WriteField("query", req.Query); err != nil {
		return nil, err
	}
	if err := writer.WriteField("output_format", req.OutputFormat); err != nil {
		return nil, err
	}
	if err := writer.WriteField("threshold", strconv.FormatFloat(req.Threshold, 'f', -1, 64)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/api/process-schema", &body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	httpResp, err := s.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	var resp models.ProcessResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

// DefaultMockDelay is the simulated processing time used when a
// MockSubmitter's Delay is left unset.
const DefaultMockDelay = 150 * time.Millisecond

// MockSubmitter simulates processing: it waits a fixed delay and
// returns a hardcoded two-table result. It never reports an error.
type MockSubmitter struct {
	Delay time.Duration // zero means DefaultMockDelay
}

// Submit waits out the delay, then returns the canned payload.
func (m *MockSubmitter) Submit(ctx context.Context, req Request) (*models.ProcessResponse, error) {
	delay := m.Delay
	if delay == 0 {
		delay = DefaultMockDelay
	}
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &models.ProcessResponse{Success: true, Result: MockResult()}, nil
}

// MockResult returns the canned two-table payload the mock path serves.
func MockResult() models.ProcessingResult {
	return models.ProcessingResult{
		"orders": {
			Columns: []models.Column{
				{Name: "order_id", Type: "integer", Description: "Unique order identifier"},
				{Name: "user_id", Type: "integer", Description: "Reference to users table"},
				{Name: "order_date", Type: "date", Description: "Date when order was placed"},
				{Name: "total_amount", Type: "decimal", Description: "Total order amount"},
			},
			RelevanceScore: 0.85,
		},
		"users": {
			Columns: []models.Column{
				{Name: "user_id", Type: "integer", Description: "Unique user identifier"},
				{Name: "username", Type: "string", Description: "User's display name"},
				{Name: "email", Type: "string", Description: "User's email address"},
			},
			RelevanceScore: 0.65,
		},
	}
}
