package handlers

import (
	"net/http"

	"github.com/taskdesk/taskdesk-api/internal/constants"
	"github.com/taskdesk/taskdesk-api/internal/dto"
	apierrors "github.com/taskdesk/taskdesk-api/internal/errors"
	"github.com/taskdesk/taskdesk-api/internal/models"
)

func (suite *HandlerTestSuite) TestRegister() {
	w := suite.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "New Person",
		"email":    "New@Example.com",
		"password": "supersecret",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.NotContains(w.Body.String(), "passwordHash")

	var resp dto.AuthResponse
	suite.decode(w, &resp)
	suite.Equal("new@example.com", resp.User.Email)
	suite.Equal(models.RoleMember, resp.User.Role)
	suite.NotEmpty(resp.Token)
	suite.NotEmpty(w.Result().Cookies())
}

func (suite *HandlerTestSuite) TestRegister_Errors() {
	w := suite.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Dup", "email": "mel@example.com", "password": "supersecret",
	})
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(apierrors.ErrCodeConflict, suite.errorCode(w))

	w = suite.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Short", "email": "short@example.com", "password": "123",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "noname@example.com", "password": "supersecret",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestLoginProfileLogoutWithSession() {
	w := suite.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "mel@example.com", "password": "password1",
	})
	suite.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	w = suite.do(http.MethodGet, "/api/auth/profile", "", nil, cookies...)
	suite.Require().Equal(http.StatusOK, w.Code)
	var profile dto.UserDTO
	suite.decode(w, &profile)
	suite.Equal(suite.member.ID, profile.ID)

	w = suite.do(http.MethodPost, "/api/auth/logout", "", nil, cookies...)
	suite.Require().Equal(http.StatusOK, w.Code)
	cleared := w.Result().Cookies()
	suite.Require().NotEmpty(cleared)
	suite.Equal(constants.SessionCookieName, cleared[0].Name)

	w = suite.do(http.MethodGet, "/api/auth/profile", "", nil, cleared...)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	w := suite.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "mel@example.com", "password": "wrong-one",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "mel@example.com"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestProfile_RequiresAuth() {
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodGet, "/api/auth/profile", "", nil).Code)
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodGet, "/api/auth/profile", "garbage", nil).Code)
}

func (suite *HandlerTestSuite) TestUpdateProfile() {
	w := suite.do(http.MethodPut, "/api/auth/profile", suite.memberToken, map[string]string{
		"name":            "Melody",
		"profileImageUrl": "https://img.example.com/mel.png",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.AuthResponse
	suite.decode(w, &resp)
	suite.Equal("Melody", resp.User.Name)
	suite.Equal("https://img.example.com/mel.png", resp.User.ProfileImageURL)
	suite.NotEmpty(resp.Token)

	w = suite.do(http.MethodPut, "/api/auth/profile", suite.memberToken, map[string]string{"email": "ada@example.com"})
	suite.Equal(http.StatusConflict, w.Code)
}
