package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/grovesmith/backend/internal/controllers/v1"
	"github.com/grovesmith/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRoot() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RootResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Equal("http://example.com/v1/me", response.Links.Me)
	suite.Assert().Equal("http://example.com/v1/recipients", response.Links.Recipients)
	suite.Assert().Equal("http://example.com/v1/themes", response.Links.Themes)
}

func (suite *TestSuiteStandard) TestOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"/v1", "OPTIONS, GET"},
		{"/v1/me", "OPTIONS, GET"},
		{"/v1/themes", "OPTIONS, GET"},
		{"/v1/recipients", "OPTIONS, GET, POST"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, "http://example.com"+tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusNoContent)
			assert.Equal(t, tt.allow, recorder.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestMe() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/me", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(test.ManagerID, response.Data.ID)
	suite.Assert().Equal("parent@example.com", response.Data.Email)
	suite.Assert().Equal("Alex Doe", response.Data.FullName)
	suite.Assert().False(response.Data.CreatedAt.IsZero())
}

func (suite *TestSuiteStandard) TestMeDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/me", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestThemes() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/themes", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ThemeListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Require().Len(response.Data, 10)
	suite.Assert().Equal("sunset", response.Data[0].ID)
	suite.Assert().True(response.Data[0].Unlocked)

	for _, theme := range response.Data[1:] {
		suite.Assert().False(theme.Unlocked, "theme %s is locked", theme.ID)
	}
}

func (suite *TestSuiteStandard) TestThemesUnauthenticated() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/themes", "", map[string]string{"Authorization": ""})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}
