package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	testutil "github.com/classflow/backend/tests"
)

func Test_studentApi_login(t *testing.T) {
	std := testutil.CreateStudent(t, stdRepo, "Login Test", "21103001", "login@test.test", "LePassword123!", true)
	naughty := testutil.CreateStudent(t, stdRepo, "Deactivated", "21103002", "deactivated@test.test", "LePassword123!", false)

	tests := []httpTest{
		{
			name: "empty body", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown student", body: []byte(`{"username": "nobody", "password": "LePassword123!"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: []byte(`{"username": "` + std.Username + `", "password": "nope"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", body: []byte(`{"username": "` + naughty.Username + `", "password": "LePassword123!"}`),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name: "login with username", body: []byte(`{"username": "` + std.Username + `", "password": "LePassword123!"}`),
			wantCode: http.StatusOK,
		},
		{
			name: "login with email", body: []byte(`{"username": "` + std.Email + `", "password": "LePassword123!"}`),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/students/login", tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != http.StatusOK {
					t.Fatalf("failed! code = %v; body = %v", rec.Code, rec.Body.String())
				}
				var res struct {
					Token string `json:"token"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("unmarshaling response: %v", err)
				}
				if res.Token == "" {
					t.Error("token is empty")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_me(t *testing.T) {
	std := testutil.CreateStudent(t, stdRepo, "Me Test", "21103003", "me@test.test", "LePassword123!", true)

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "get own profile", token: getToken(t, std), wantCode: http.StatusOK, wantData: marchallObj(t, std)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/students/me", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
