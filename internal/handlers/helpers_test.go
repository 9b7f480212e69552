package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// handlerSuite holds the echo instance and request helpers shared by the handler suites.
type handlerSuite struct {
	suite.Suite
	e      *echo.Echo
	userID uuid.UUID
}

func (s *handlerSuite) setupEcho() {
	s.e = echo.New()
	s.e.Validator = NewValidator()
	s.userID = uuid.New()
}

// newContext builds a request context. A nil body sends no payload; a string
// is sent verbatim; anything else is JSON encoded.
func (s *handlerSuite) newContext(method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		s.Require().NoError(err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	if payload != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.Set(TraceIDContextKey, "test-trace-id")
	return c, rec
}

// authedContext is newContext with the authenticated user set.
func (s *handlerSuite) authedContext(method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := s.newContext(method, target, body)
	c.Set(UserIDContextKey, s.userID)
	return c, rec
}

func (s *handlerSuite) withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func (s *handlerSuite) assertError(rec *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	s.Equal(status, rec.Code)

	var body ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(code, body.Error.Code)
	s.Equal("test-trace-id", body.Error.TraceID)
	return body
}

// decodeData unmarshals the data field of a SuccessResponse into dst.
func (s *handlerSuite) decodeData(rec *httptest.ResponseRecorder, dst interface{}) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &envelope))
	s.Require().NoError(json.Unmarshal(envelope.Data, dst))
}

func (s *handlerSuite) expectStatus(rec *httptest.ResponseRecorder, status int) {
	s.Require().Equal(status, rec.Code, rec.Body.String())
}
