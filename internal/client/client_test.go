package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/flakeprobe/flakeprobe/internal/config"
)

// ClientTestSuite tests the probe client against stub servers.
type ClientTestSuite struct {
	suite.Suite
}

func (s *ClientTestSuite) newClient(baseURL string) *Client {
	cfg := config.Default()
	cfg.Server.BaseURL = baseURL
	return New(cfg)
}

// TestCheckHealthOK tests a healthy liveness response.
func (s *ClientTestSuite) TestCheckHealthOK() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodGet, r.Method)
		s.Equal("/healthz", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","message":"ready"}`))
	}))
	defer server.Close()

	health, err := s.newClient(server.URL).CheckHealth(context.Background())
	s.Require().NoError(err)
	s.Equal("ok", health.Status)
	s.Equal("ready", health.Message)
}

// TestCheckHealthServerError tests a failing liveness response.
func (s *ClientTestSuite) TestCheckHealthServerError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unreachable", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).CheckHealth(context.Background())
	s.Require().Error(err)

	var protoErr *ProtocolError
	s.Require().ErrorAs(err, &protoErr)
	s.Equal(http.StatusInternalServerError, protoErr.StatusCode)
	s.Contains(protoErr.Body, "database unreachable")
}

// TestCheckHealthConnectionRefused tests an unreachable server.
func (s *ClientTestSuite) TestCheckHealthConnectionRefused() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := s.newClient(server.URL).CheckHealth(context.Background())
	s.Require().Error(err)

	var transportErr *TransportError
	s.ErrorAs(err, &transportErr)
}

// TestCheckHealthMalformedBody tests an undecodable liveness body.
func (s *ClientTestSuite) TestCheckHealthMalformedBody() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).CheckHealth(context.Background())
	s.Require().Error(err)

	var shapeErr *ShapeError
	s.ErrorAs(err, &shapeErr)
}

// TestQueryFlakyTests tests a successful statistics query.
func (s *ClientTestSuite) TestQueryFlakyTests() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/query", r.URL.Path)
		s.Equal("application/json", r.Header.Get("Content-Type"))

		var req graphQLRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
		s.Contains(req.Query, "flakyTests")
		s.Equal(float64(10), req.Variables["limit"])
		s.Equal("MCP Server Tests", req.Variables["projectID"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"flakyTests":[
			{"testID":"t1","testName":"LoginTest","passRate":0.6,"failureRate":0.4,"runCount":10,"lastFailure":"2024-01-01"},
			{"testID":"t2","testName":"SearchTest","passRate":1,"failureRate":0,"runCount":25,"lastFailure":null}
		]}}`))
	}))
	defer server.Close()

	records, err := s.newClient(server.URL).QueryFlakyTests(context.Background(), 10, "MCP Server Tests")
	s.Require().NoError(err)
	s.Require().Len(records, 2)

	s.Equal("LoginTest", records[0].TestName)
	s.InDelta(0.4, records[0].FailureRate, 1e-9)
	s.Equal(10, records[0].RunCount)
	s.Require().NotNil(records[0].LastFailure)
	s.Equal("2024-01-01", *records[0].LastFailure)

	s.Equal("SearchTest", records[1].TestName)
	s.Nil(records[1].LastFailure)
}

// TestQueryFlakyTestsEmpty tests a project with no recorded tests.
func (s *ClientTestSuite) TestQueryFlakyTestsEmpty() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"flakyTests":[]}}`))
	}))
	defer server.Close()

	records, err := s.newClient(server.URL).QueryFlakyTests(context.Background(), 10, "Empty Project")
	s.Require().NoError(err)
	s.Empty(records)
}

// TestQueryFlakyTestsMissingField tests a response without data.flakyTests.
func (s *ClientTestSuite) TestQueryFlakyTestsMissingField() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"somethingElse":[]}}`))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).QueryFlakyTests(context.Background(), 10, "P")
	s.Require().Error(err)

	var shapeErr *ShapeError
	s.Require().ErrorAs(err, &shapeErr)
	s.Contains(shapeErr.Reason, "data.flakyTests")
	s.Contains(shapeErr.Raw, "somethingElse")
}

// TestQueryFlakyTestsNullData tests a response with a null data field.
func (s *ClientTestSuite) TestQueryFlakyTestsNullData() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).QueryFlakyTests(context.Background(), 10, "P")
	s.Require().Error(err)

	var shapeErr *ShapeError
	s.ErrorAs(err, &shapeErr)
}

// TestQueryFlakyTestsGraphQLErrors tests a response carrying errors.
func (s *ClientTestSuite) TestQueryFlakyTestsGraphQLErrors() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"unknown project","path":["flakyTests"]}]}`))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).QueryFlakyTests(context.Background(), 10, "Unknown")
	s.Require().Error(err)

	var shapeErr *ShapeError
	s.Require().ErrorAs(err, &shapeErr)
	s.Contains(shapeErr.Reason, "unknown project")
}

// TestQueryFlakyTestsHTTPError tests a non-2xx statistics response.
func (s *ClientTestSuite) TestQueryFlakyTestsHTTPError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).QueryFlakyTests(context.Background(), 10, "P")
	s.Require().Error(err)

	var protoErr *ProtocolError
	s.Require().ErrorAs(err, &protoErr)
	s.Equal(http.StatusBadRequest, protoErr.StatusCode)
}

// TestQueryFlakyTestsMalformedJSON tests an unparseable statistics body.
func (s *ClientTestSuite) TestQueryFlakyTestsMalformedJSON() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":`))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL).QueryFlakyTests(context.Background(), 10, "P")
	s.Require().Error(err)

	var shapeErr *ShapeError
	s.ErrorAs(err, &shapeErr)
}

// TestBaseURLTrailingSlash tests that a trailing slash does not double up.
func (s *ClientTestSuite) TestBaseURLTrailingSlash() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/healthz", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok","message":"ready"}`))
	}))
	defer server.Close()

	_, err := s.newClient(server.URL + "/").CheckHealth(context.Background())
	s.NoError(err)
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
