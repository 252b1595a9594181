package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signupURL = "https://backend.example.pe/auth/v1/signup"

func newMockedClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	return NewClient("https://backend.example.pe/", "anon-key", &http.Client{Transport: transport}), transport
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	client, transport := newMockedClient(t)
	transport.RegisterResponder(http.MethodPost, signupURL, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "anon-key", req.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", req.Header.Get("Authorization"))

		var body SignUpRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "ana@muni.gob.pe", body.Email)
		assert.Equal(t, "12345678", body.Metadata["dni"])

		return httpmock.NewStringResponse(http.StatusOK, `{"id":"u-1","email":"ana@muni.gob.pe","aud":"authenticated"}`), nil
	})

	user, err := client.SignUp(context.Background(), SignUpRequest{
		Email:    "ana@muni.gob.pe",
		Password: "secreto",
		Metadata: map[string]any{"role": "sereno", "dni": "12345678"},
	})
	require.NoError(t, err)
	assert.Equal(t, &User{ID: "u-1", Email: "ana@muni.gob.pe"}, user)
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestSignUpSessionResponse(t *testing.T) {
	t.Parallel()

	client, transport := newMockedClient(t)
	transport.RegisterResponder(http.MethodPost, signupURL,
		httpmock.NewStringResponder(http.StatusOK, `{"access_token":"x","user":{"id":"u-2","email":"b@muni.gob.pe"}}`))

	user, err := client.SignUp(context.Background(), SignUpRequest{Email: "b@muni.gob.pe", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "u-2", user.ID)
}

func TestSignUpErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "gotrue msg", status: http.StatusUnprocessableEntity, body: `{"code":422,"msg":"User already registered"}`, wantMsg: "User already registered"},
		{name: "oauth style", status: http.StatusBadRequest, body: `{"error":"invalid_request","error_description":"Password too short"}`, wantMsg: "Password too short"},
		{name: "no body", status: http.StatusInternalServerError, body: ``, wantMsg: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, transport := newMockedClient(t)
			transport.RegisterResponder(http.MethodPost, signupURL, httpmock.NewStringResponder(tt.status, tt.body))

			_, err := client.SignUp(context.Background(), SignUpRequest{Email: "a@b.pe", Password: "secreto"})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Contains(t, apiErr.Message, tt.wantMsg)
		})
	}
}

func TestSignUpWithoutUserID(t *testing.T) {
	t.Parallel()

	client, transport := newMockedClient(t)
	transport.RegisterResponder(http.MethodPost, signupURL, httpmock.NewStringResponder(http.StatusOK, `{}`))

	_, err := client.SignUp(context.Background(), SignUpRequest{Email: "a@b.pe", Password: "secreto"})
	assert.Error(t, err)
}

func TestSignUpNotConfigured(t *testing.T) {
	t.Parallel()

	_, err := NewClient("", "", nil).SignUp(context.Background(), SignUpRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
