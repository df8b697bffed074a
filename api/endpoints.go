package api

import (
	"context"
	"fmt"

	"github.com/gradlink/clientcore/session"
)

// Envelope is the response wrapper used by the GradLink API.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the data section of a successful login response.
type LoginResult struct {
	User  *session.User `json:"user"`
	Token string        `json:"token"`
}

// ProfileUpdate is the partial user record sent to PATCH /users/me.
// Nil fields are omitted and left unchanged server-side.
type ProfileUpdate struct {
	Name           *string `json:"name,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	AvatarURL      *string `json:"avatar_url,omitempty"`
	GraduationYear *int    `json:"graduation_year,omitempty"`
}

// UploadResult is the response of the image upload endpoint.
type UploadResult struct {
	URL string `json:"url"`
}

// Login authenticates against POST /auth/login. The request is sent without
// the stored bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := Post[Envelope[*LoginResult]](c, ctx, "/auth/login",
		LoginRequest{Email: email, Password: password},
		WithRequestAuth(&AuthConfig{}),
	)
	if err != nil {
		// Decoded error envelopes carry the server's message.
		if resp != nil && resp.Data.Message != "" {
			return nil, fmt.Errorf("%s: %w", resp.Data.Message, err)
		}
		return nil, err
	}
	if !resp.Data.Success || resp.Data.Data == nil {
		return nil, fmt.Errorf("api: login rejected: %s", resp.Data.Message)
	}
	return resp.Data.Data, nil
}

// Me fetches the authoritative user record from GET /auth/me.
func (c *Client) Me(ctx context.Context) (*session.User, error) {
	resp, err := Get[Envelope[*session.User]](c, ctx, "/auth/me")
	if err != nil {
		return nil, err
	}
	return resp.Data.Data, nil
}

// UpdateProfile applies a partial profile update via PATCH /users/me and
// returns the updated record subset.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*session.User, error) {
	resp, err := Patch[Envelope[*session.User]](c, ctx, "/users/me", update)
	if err != nil {
		return nil, err
	}
	if !resp.Data.Success {
		return nil, fmt.Errorf("api: profile update rejected: %s", resp.Data.Message)
	}
	return resp.Data.Data, nil
}

// UploadImage uploads an image via multipart POST /uploads and returns the
// hosted URL.
func (c *Client) UploadImage(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	body := &MultipartBody{
		Files: []FileField{{
			FieldName:   "image",
			FileName:    fileName,
			ContentType: contentType,
			Data:        data,
		}},
	}
	resp, err := Post[Envelope[*UploadResult]](c, ctx, "/uploads", body)
	if err != nil {
		return "", err
	}
	if !resp.Data.Success || resp.Data.Data == nil {
		return "", fmt.Errorf("api: upload rejected: %s", resp.Data.Message)
	}
	return resp.Data.Data.URL, nil
}
