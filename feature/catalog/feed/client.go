package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// FetchError reports a feed that was unreachable or answered non-success.
// It aborts the owning supplier's ingestion run; other suppliers in the same
// batch are unaffected.
type FetchError struct {
	Supplier string
	Status   int
	Body     string
	Err      error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s feed: %v", e.Supplier, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s feed: status %d: %s", e.Supplier, e.Status, e.Body)
	}
	return fmt.Sprintf("%s feed: status %d", e.Supplier, e.Status)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// maxErrorBody bounds how much of an upstream error response is kept.
const maxErrorBody = 512

// fetchJSON performs a GET against the feed URL and returns the body.
// There is deliberately no per-request timeout beyond the context: the feeds
// stream large documents and the caller owns cancellation.
func fetchJSON(ctx context.Context, client *http.Client, supplier, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Supplier: supplier, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Supplier: supplier, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Supplier: supplier, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return nil, &FetchError{Supplier: supplier, Status: resp.StatusCode, Body: snippet}
	}

	return body, nil
}

// wrapperKeys are the known list-wrapper properties, in lookup order.
// Suppliers have shipped all of these at one point or another.
var wrapperKeys = []string{"products", "data", "items", "results", "ProductList", "productList"}

// unwrapRecords extracts the record list from a feed response body.
// The body may be a bare JSON array, an object wrapping the array under a
// known key, or a single record object (returned as a one-element list).
func unwrapRecords(body []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("response is neither array nor object: %w", err)
	}

	for _, key := range wrapperKeys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &records); err == nil {
			return records, nil
		}
	}

	// A single product object; wrap it in a list.
	return []json.RawMessage{json.RawMessage(body)}, nil
}
