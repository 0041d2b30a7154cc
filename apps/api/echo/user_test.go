package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldad2003/pharmverse-edu-hub/core/user"
	"github.com/eldad2003/pharmverse-edu-hub/tests"
)

func Test_authApi_login(t *testing.T) {
	app := setup(t)
	testutil.RegisterStudent(t, app.usrRepo, "amina", "pw1", "Pharm D2")

	path := "/v1/auth/login"
	invalidCreds := marchallObj(t, httpErr{Error: user.ErrInvalidCredentials.Error()})

	tests := []httpTest{
		{
			name:     "admin wrong password",
			body:     marchallObj(t, user.LoginRequest{Role: "admin", Password: "nope", YearGroup: "Pharm D1"}),
			wantCode: http.StatusBadRequest,
			wantData: invalidCreds,
		},
		{
			name:     "admin missing year group",
			body:     marchallObj(t, user.LoginRequest{Role: "admin", Password: "admin123"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "please select a year group"}),
		},
		{
			name:     "admin unknown year group",
			body:     marchallObj(t, user.LoginRequest{Role: "admin", Password: "admin123", YearGroup: "Pharm D9"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "unknown year group"}),
		},
		{
			name:     "student wrong password",
			body:     marchallObj(t, user.LoginRequest{Role: "student", Username: "amina", Password: "pw2"}),
			wantCode: http.StatusBadRequest,
			wantData: invalidCreds,
		},
		{
			name:     "unknown role",
			body:     marchallObj(t, user.LoginRequest{Role: "root", Username: "amina", Password: "pw1"}),
			wantCode: http.StatusBadRequest,
			wantData: invalidCreds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("admin", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, path, marchallObj(t, user.LoginRequest{Role: "admin", Password: "admin123", YearGroup: "Pharm D4"}))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, user.SessionInfo{Username: "Admin", YearGroup: "Pharm D4", Role: "admin"}, resp.Session)
	})

	t.Run("student", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, path, marchallObj(t, user.LoginRequest{Role: "student", Username: "amina", Password: "pw1"}))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, user.SessionInfo{Username: "amina", YearGroup: "Pharm D2", Role: "student"}, resp.Session)
	})
}

func Test_authApi_register(t *testing.T) {
	app := setup(t)
	path := "/v1/auth/register"

	newStudent := func(uname, pwd, confirm, yg string) []byte {
		return marchallObj(t, user.NewStudent{Username: uname, Password: pwd, PasswordConfirm: confirm, YearGroup: yg})
	}

	tests := []httpTest{
		{
			name:     "password mismatch",
			body:     newStudent("amina", "a", "b", "Pharm D2"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "passwords do not match"}),
		},
		{
			name:     "missing year group",
			body:     newStudent("amina", "a", "a", ""),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "please select a year group"}),
		},
		{
			name:     "blank username",
			body:     newStudent("  ", "a", "a", "Pharm D2"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "this field is required"}),
		},
		{
			name:     "unknown year group",
			body:     newStudent("amina", "a", "a", "Pharm D8"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"yearGroup": "unknown year group"}),
		},
		{
			name:     "registered",
			body:     newStudent("amina", "a", "a", "Pharm D2"),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, SuccessResponse{Success: "Registration successful. You can now login with your credentials."}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	creds, err := app.usrRepo.QueryAllCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []user.Credential{{Username: "amina", Password: "a", YearGroup: "Pharm D2", Role: "student"}}, creds)
	assert.Equal(t, 0, app.deps.Sessions.Len(), "registering does not log in")
}

func Test_authApi_registerThenLogin(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodPost, "/v1/auth/register",
		[]byte(`{"username":"  kofi ","password":"pw","passwordConfirm":"pw","yearGroup":"Pharm D5"}`))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, uname := range []string{"  kofi ", "kofi"} {
		t.Run(uname, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/auth/login",
				marchallObj(t, user.LoginRequest{Role: "student", Username: uname, Password: "pw"}))
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, user.SessionInfo{Username: "kofi", YearGroup: "Pharm D5", Role: "student"}, resp.Session)
		})
	}
}

func Test_authApi_sessionAndLogout(t *testing.T) {
	app := setup(t)
	testutil.RegisterStudent(t, app.usrRepo, "kofi", "pw", "Pharm D3")
	token := app.studentToken(t, "kofi", "pw")
	other := app.studentToken(t, "kofi", "pw")

	runHTTPTests(t, app, []httpTest{
		{
			name:     "no token",
			method:   http.MethodGet,
			path:     "/v1/auth/session",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "invalid token",
			method:   http.MethodGet,
			path:     "/v1/auth/session",
			token:    "not.a.token",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "session",
			method:   http.MethodGet,
			path:     "/v1/auth/session",
			token:    token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, user.SessionInfo{Username: "kofi", YearGroup: "Pharm D3", Role: "student"}),
		},
		{
			name:     "logout",
			method:   http.MethodPost,
			path:     "/v1/auth/logout",
			token:    token,
			wantCode: http.StatusNoContent,
		},
		{
			name:     "token of a closed session",
			method:   http.MethodGet,
			path:     "/v1/timetable",
			token:    token,
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "session closed"}),
		},
		{
			name:     "logout twice",
			method:   http.MethodPost,
			path:     "/v1/auth/logout",
			token:    token,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "other sessions are untouched",
			method:   http.MethodGet,
			path:     "/v1/auth/session",
			token:    other,
			wantCode: http.StatusOK,
		},
	})
	assert.Equal(t, 1, app.deps.Sessions.Len())
}
