// Package testutils wires a Fiber app to mock-backed repositories for
// handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"github.com/finledger/accounts/internal/fixtures/mocks"
	accountsvc "github.com/finledger/accounts/pkg/service/account"
	transactionsvc "github.com/finledger/accounts/pkg/service/transaction"
	"github.com/finledger/accounts/webapi"
	"github.com/finledger/accounts/webapi/common"
)

// HandlerTestSuite builds the full route table on top of mock repositories
// so handler behavior can be exercised without a database.
type HandlerTestSuite struct {
	suite.Suite
	App *fiber.App
	UoW *mocks.UnitOfWork
}

func (s *HandlerTestSuite) SetupTest() {
	s.UoW = mocks.NewUnitOfWork()
	logger := slog.Default()
	s.App = webapi.New(
		accountsvc.NewService(s.UoW, logger),
		transactionsvc.NewService(s.UoW, logger),
	)
}

// MakeRequest performs an in-process HTTP request against the test app.
func (s *HandlerTestSuite) MakeRequest(method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// DecodeData decodes the envelope body and returns its data payload.
func (s *HandlerTestSuite) DecodeData(resp *http.Response) any {
	defer resp.Body.Close() //nolint:errcheck
	var envelope common.Response
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}
