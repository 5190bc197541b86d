package catalog

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var body struct {
		AccessToken      string `json:"access_token"`
		AccessTokenCamel string `json:"accessToken"`
		Data             struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: username, Password: password}, &body); err != nil {
		return "", err
	}
	switch {
	case body.AccessToken != "":
		return body.AccessToken, nil
	case body.AccessTokenCamel != "":
		return body.AccessTokenCamel, nil
	case body.Data.Token != "":
		return body.Data.Token, nil
	}
	return "", &APIError{Status: http.StatusBadGateway, Message: "login response carried no token"}
}
