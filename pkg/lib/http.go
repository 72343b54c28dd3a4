package lib

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

var BuildVersion = "dev"

var UserAgent = "orbit-producthunt/" + BuildVersion

// MaxResponseBytes bounds how much of a response body is read.
var MaxResponseBytes int64 = 10 << 20

type RequestDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
	// Body is the raw response body, used to classify API errors.
	Body []byte
}

func (e *StatusError) Error() string {
	truncatedBody, _ := LimitStringLength(string(e.Body), 256)
	return fmt.Sprintf("unexpected status code %d from %s, response: %s", e.StatusCode, e.URL, truncatedBody)
}

// DecodeJSON executes the request and decodes a 2xx JSON response body into T.
// An empty body decodes to the zero value.
func DecodeJSON[T any](client RequestDoer, request *http.Request) (T, error) {
	var result T

	response, err := client.Do(request)
	if err != nil {
		return result, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, MaxResponseBytes+1))
	if err != nil {
		return result, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseBytes {
		return result, fmt.Errorf("response body from %s exceeds %d bytes", request.URL, MaxResponseBytes)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return result, &StatusError{
			StatusCode: response.StatusCode,
			URL:        request.URL.String(),
			Body:       body,
		}
	}

	if len(body) == 0 {
		return result, nil
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("decode response: %w", err)
	}

	return result, nil
}

func LimitStringLength(s string, max int) (string, bool) {
	asRunes := []rune(s)

	if len(asRunes) > max {
		return string(asRunes[:max]), true
	}

	return s, false
}
