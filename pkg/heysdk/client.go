package heysdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient talks to the public endpoints and creates Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with a 10 second request timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignupRequest is the signup form.
type SignupRequest struct {
	Email           string
	Name            string
	Password        string
	ConfirmPassword string
}

// Signup creates an account and returns a session for it.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	form := url.Values{
		"email":            {req.Email},
		"name":             {req.Name},
		"password":         {req.Password},
		"confirm_password": {req.ConfirmPassword},
	}

	var sess SessionResponse
	if err := c.postForm(ctx, "/v1/signup", form, &sess, http.StatusCreated); err != nil {
		return nil, err
	}
	return newSession(c, &sess), nil
}

// Login authenticates with email and password.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	form := url.Values{
		"email":    {email},
		"password": {password},
	}

	var sess SessionResponse
	if err := c.postForm(ctx, "/v1/login", form, &sess, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, &sess), nil
}

// NewSessionFromToken wraps an access token obtained elsewhere.
func (c *SDKClient) NewSessionFromToken(accessToken, scope string, expiresIn int) *Session {
	return newSession(c, &SessionResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Scope:       scope,
	})
}

func (c *SDKClient) postForm(ctx context.Context, path string, form url.Values, target any, expected int) error {
	resp, err := c.doRequest(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, expected)
}
