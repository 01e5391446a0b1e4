// Package testkit drives REST API tests from JSON scenario files.
//
// Each scenario file describes one request and what must come back:
//
//	{
//	  "name": "signup rejects a short name",
//	  "requestMethod": "POST",
//	  "requestUrl": "/api/auth/signup",
//	  "requestBody": {"name": "Bob", "email": "bob@example.com"},
//	  "expectedCode": 400,
//	  "expectedBody": {"success": false, "errors": {"name": "…"}}
//	}
//
// expectedBody is matched as a subset: every key it names must be present
// with an equal value, extra keys in the response are ignored.
//
//	func TestAPI(t *testing.T) {
//	    handler := kernel.NewHTTPKernel(kernel.Deps{DB: db}).Handler()
//	    testkit.RunDir(t, handler, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod string            `json:"requestMethod"` // GET, POST, PUT, PATCH, DELETE
	RequestURL    string            `json:"requestUrl"`
	RequestBody   json.RawMessage   `json:"requestBody"`
	RawBody       *string           `json:"rawBody"` // sent verbatim, for malformed-JSON cases
	Headers       map[string]string `json:"headers"`

	ExpectedCode int             `json:"expectedCode"`
	ExpectedBody json.RawMessage `json:"expectedBody"`
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", path, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", path, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", path, err)
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	if s.RawBody != nil && len(s.RequestBody) > 0 {
		return fmt.Errorf("requestBody and rawBody are mutually exclusive")
	}
	return nil
}

// LoadAllFromDir loads every *.json file in dir as a Scenario.
// Files that fail to parse are collected as errors.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}
