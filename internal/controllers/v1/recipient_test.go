package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/grovesmith/backend/internal/controllers/v1"
	"github.com/grovesmith/backend/internal/events"
	"github.com/grovesmith/backend/internal/models"
	"github.com/grovesmith/backend/internal/theme"
	"github.com/grovesmith/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecipientsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestRecipientsDBClosed() {
	r := createTestRecipient(suite.T(), v1.RecipientEditable{})

	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestRecipient(t, v1.RecipientEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/recipients", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.RecipientListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
		{
			"Distribution fails",
			func(t *testing.T) {
				createTestDistribution(t, r.ID, v1.DistributionEditable{SaveAmount: amount(5)}, http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

func (suite *TestSuiteStandard) TestRecipientsCreate() {
	r := createTestRecipient(suite.T(), v1.RecipientEditable{
		Name:            "  Sam  ",
		AllowanceAmount: amount(10),
		AvatarURL:       "https://example.com/sam.png",
	})

	suite.Assert().Equal("Sam", r.Name)
	suite.Assert().True(amount(10).Equal(r.AllowanceAmount))
	suite.Assert().True(r.Active)
	suite.Assert().False(r.Archived)
	suite.Assert().True(r.TotalBalance.IsZero())
	suite.Assert().Equal(theme.For(r.ID.String()), r.Theme)
	suite.Assert().Len(r.Trophies, 7)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/recipients/%s", r.ID), r.Links.Self)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/recipients/%s/reset?confirm=yes-reset-this-account", r.ID), r.Links.Reset)

	for _, tr := range r.Trophies {
		suite.Assert().False(tr.Earned, "Trophy %s is earned for an empty account", tr.ID)
	}
}

func (suite *TestSuiteStandard) TestRecipientsCreateFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Not a list", `{"name": "Sam"}`, http.StatusBadRequest},
		{"Broken JSON", `[{"name": "Sam"`, http.StatusBadRequest},
		{"Wrong type", `[{"name": 42}]`, http.StatusBadRequest},
		{"Empty name", []v1.RecipientEditable{{Name: "   "}}, http.StatusBadRequest},
		{"Negative allowance", []v1.RecipientEditable{{Name: "Sam", AllowanceAmount: amount(-1)}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/recipients", tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestRecipientsCreatePartialFailure() {
	body := []v1.RecipientEditable{{Name: "Sam"}, {Name: ""}, {Name: "Alex"}}

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/recipients", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.RecipientCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 3)
	suite.Assert().NotNil(response.Data[0].Data)
	suite.Assert().NotNil(response.Data[1].Error)
	suite.Assert().NotNil(response.Data[2].Data)
}

func (suite *TestSuiteStandard) TestRecipientsUnauthenticated() {
	tests := []struct {
		name   string
		header map[string]string
	}{
		{"No token", map[string]string{"Authorization": ""}},
		{"Not a bearer token", map[string]string{"Authorization": "Basic dXNlcjpwYXNz"}},
		{"Invalid token", map[string]string{"Authorization": "Bearer not-a-token"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, "http://example.com/v1/recipients", "", tt.header)
			test.AssertHTTPStatus(t, &recorder, http.StatusUnauthorized)
		})
	}
}

func (suite *TestSuiteStandard) TestRecipientsList() {
	createTestRecipient(suite.T(), v1.RecipientEditable{Name: "Sam"})
	archived := createTestRecipient(suite.T(), v1.RecipientEditable{Name: "Alex"})

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/recipients/%s/archive", archived.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	tests := []struct {
		name  string
		query string
		names []string
	}{
		{"Default", "", []string{"Sam"}},
		{"Without archived", "?archived=false", []string{"Sam"}},
		{"With archived", "?archived=true", []string{"Alex", "Sam"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, "http://example.com/v1/recipients"+tt.query, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.RecipientListResponse
			test.DecodeResponse(t, &recorder, &response)

			names := []string{}
			for _, r := range response.Data {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/recipients?archived=maybe", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

// TestRecipientsOwnership verifies that managers can only access their own recipients.
func (suite *TestSuiteStandard) TestRecipientsOwnership() {
	r := createTestRecipient(suite.T(), v1.RecipientEditable{})
	other := as(suite.T(), uuid.NewString())

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, ""},
		{http.MethodPatch, ""},
		{http.MethodOptions, ""},
		{http.MethodGet, "/distributions"},
		{http.MethodGet, "/transactions"},
		{http.MethodGet, "/give"},
		{http.MethodGet, "/causes"},
		{http.MethodGet, "/undistributed"},
		{http.MethodPost, "/archive"},
		{http.MethodPost, "/reset?confirm=yes-reset-this-account"},
	}

	for _, tt := range paths {
		suite.T().Run(tt.method+" "+tt.path, func(t *testing.T) {
			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/recipients/%s%s", r.ID, tt.path), `{"name": "Mine"}`, other)
			test.AssertHTTPStatus(t, &recorder, http.StatusNotFound)
		})
	}

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/recipients", "", other)
	var response v1.RecipientListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 0)
}

// TestRecipientsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestRecipientsOptions() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Recipient with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Recipient exists", createTestRecipient(suite.T(), v1.RecipientEditable{}).ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/recipients", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH", r.Header().Get("allow"))
			}
		})
	}
}

// TestRecipientsGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestRecipientsGetSingle() {
	r := createTestRecipient(suite.T(), v1.RecipientEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Recipient", r.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No Recipient with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodPatch},
		{"PATCH No Recipient with this ID", uuid.New().String(), http.StatusNotFound, http.MethodPatch},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/recipients/%s", tt.id), "")

			var recipient v1.RecipientResponse
			test.DecodeResponse(t, &recorder, &recipient)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestRecipientsUpdate() {
	r := createTestRecipient(suite.T(), v1.RecipientEditable{Name: "Sam", AllowanceAmount: amount(10), AvatarURL: "https://example.com/sam.png"})
	path := fmt.Sprintf("http://example.com/v1/recipients/%s", r.ID)

	tests := []struct {
		name      string
		body      any
		status    int
		recipient v1.RecipientEditable // Expected profile after the update
	}{
		{"Name only", `{"name": "Samantha"}`, http.StatusOK, v1.RecipientEditable{Name: "Samantha", AllowanceAmount: amount(10), AvatarURL: "https://example.com/sam.png"}},
		{"Allowance only", `{"allowanceAmount": "12.5"}`, http.StatusOK, v1.RecipientEditable{Name: "Samantha", AllowanceAmount: amount(12.5), AvatarURL: "https://example.com/sam.png"}},
		{"Remove avatar", `{"avatarUrl": ""}`, http.StatusOK, v1.RecipientEditable{Name: "Samantha", AllowanceAmount: amount(12.5)}},
		{"Empty name", `{"name": " "}`, http.StatusBadRequest, v1.RecipientEditable{Name: "Samantha", AllowanceAmount: amount(12.5)}},
		{"Zero allowance", `{"allowanceAmount": 0}`, http.StatusBadRequest, v1.RecipientEditable{Name: "Samantha", AllowanceAmount: amount(12.5)}},
		{"Broken JSON", `{"name": 2`, http.StatusBadRequest, v1.RecipientEditable{Name: "Samantha", AllowanceAmount: amount(12.5)}},
		{"Empty body", "", http.StatusBadRequest, v1.RecipientEditable{Name: "Samantha", AllowanceAmount: amount(12.5)}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPatch, path, tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)

			updated := getRecipient(t, r.ID)
			assert.Equal(t, tt.recipient.Name, updated.Name)
			assert.True(t, tt.recipient.AllowanceAmount.Equal(updated.AllowanceAmount), "Allowance is %s", updated.AllowanceAmount)
			assert.Equal(t, tt.recipient.AvatarURL, updated.AvatarURL)
		})
	}
}

func (suite *TestSuiteStandard) TestRecipientsArchive() {
	r := createTestRecipient(suite.T(), v1.RecipientEditable{})

	recorder := test.Request(suite.T(), http.MethodPost, r.Links.Archive, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RecipientResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().True(response.Data.Archived)

	// Archived recipients can still be read directly
	suite.Assert().True(getRecipient(suite.T(), r.ID).Archived)

	recorder = test.Request(suite.T(), http.MethodPost, r.Links.Unarchive, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().False(response.Data.Archived)
}

func (suite *TestSuiteStandard) TestRecipientsBalances() {
	r := createTestRecipient(suite.T(), v1.RecipientEditable{})
	createTestDistribution(suite.T(), r.ID, v1.DistributionEditable{
		GiveAmount:   amount(30),
		SpendAmount:  amount(10),
		SaveAmount:   amount(60),
		InvestAmount: amount(20),
	})

	r = getRecipient(suite.T(), r.ID)
	suite.Assert().True(amount(30).Equal(r.Balances.Give))
	suite.Assert().True(amount(10).Equal(r.Balances.Spend))
	suite.Assert().True(amount(60).Equal(r.Balances.Save))
	suite.Assert().True(amount(20).Equal(r.Balances.Invest))
	suite.Assert().True(amount(120).Equal(r.TotalBalance))

	// The default dividend rate is 5%
	suite.Assert().True(amount(1).Equal(r.ProjectedDividend), "Projected dividend is %s", r.ProjectedDividend)

	earned := map[string]bool{}
	for _, tr := range r.Trophies {
		earned[tr.ID] = tr.Earned
	}
	suite.Assert().Equal(map[string]bool{
		"first-saver":    true,
		"generous-giver": true,
		"smart-investor": true,
		"wise-spender":   true,
		"big-saver":      true,
		"champion-giver": true,
		"goal-achiever":  true,
	}, earned)
}

func (suite *TestSuiteStandard) TestRecipientsReset() {
	r := createTestRecipient(suite.T(), v1.RecipientEditable{Name: "Sam"})
	createTestDistribution(suite.T(), r.ID, v1.DistributionEditable{GiveAmount: amount(20), SaveAmount: amount(5)})
	c := createTestCause(suite.T(), r.ID, v1.CauseEditable{})

	recorder := test.Request(suite.T(), http.MethodPost, c.Links.Allocations, `{"amount": "10"}`)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	tests := []struct {
		name  string
		query string
	}{
		{"No confirmation", ""},
		{"Wrong confirmation", "?confirm=yes"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, fmt.Sprintf("http://example.com/v1/recipients/%s/reset%s", r.ID, tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)

			var response v1.ResetResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Equal(t, "the confirmation for the account reset was incorrect", *response.Error)
			assert.True(t, amount(25).Equal(getRecipient(t, r.ID).TotalBalance), "Balances must not change")
		})
	}

	publisher := &events.Recorder{}
	recorder = test.RequestWith(suite.T(), publisher, http.MethodPost, r.Links.Reset, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ResetResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal("Sam's account has been reset", response.Message)

	suite.Assert().True(getRecipient(suite.T(), r.ID).TotalBalance.IsZero())

	recorder = test.Request(suite.T(), http.MethodGet, r.Links.Transactions, "")
	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &transactions)
	suite.Assert().Len(transactions.Data, 0)

	recorder = test.Request(suite.T(), http.MethodGet, r.Links.Distributions, "")
	var distributions v1.DistributionListResponse
	test.DecodeResponse(suite.T(), &recorder, &distributions)
	suite.Assert().Len(distributions.Data, 0)

	recorder = test.Request(suite.T(), http.MethodGet, c.Links.Self, "")
	var cause v1.CauseResponse
	test.DecodeResponse(suite.T(), &recorder, &cause)
	suite.Assert().True(cause.Data.CurrentAmount.IsZero())

	published := publisher.Events()
	suite.Require().Len(published, 1)
	suite.Assert().Equal(events.AccountReset, published[0].Type)
	suite.Assert().Equal(test.ManagerID, published[0].ManagerID)
	suite.Assert().Equal(r.ID, published[0].RecipientID)
}

func (suite *TestSuiteStandard) TestRecipientsUndistributed() {
	r := createTestRecipient(suite.T(), v1.RecipientEditable{AllowanceAmount: amount(10)})

	recorder := test.Request(suite.T(), http.MethodGet, r.Links.Undistributed, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UndistributedResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.NotNil(suite.T(), response.Data)
	suite.Assert().True(amount(10).Equal(response.Data.AllowanceAmount))

	// Only full weeks are owed
	suite.Assert().Equal(int64(0), response.Data.WeeksSinceCreated)
	suite.Assert().True(response.Data.UndistributedAmount.IsZero(), "Undistributed amount is %s", response.Data.UndistributedAmount)
	suite.Assert().Equal(int64(0), response.Data.WeeksPending)
}
