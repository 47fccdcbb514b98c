package api

import "context"

// LoginResult is the payload a successful login returns. Token is a bearer
// JWT; the remaining fields seed the client-side identity.
type LoginResult struct {
	Token       string `json:"token"`
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
}

// Login authenticates with email and password. It is the only call made
// without a bearer token, and the only 401/403 that does not trip the
// auth-failure hook. A 403 carrying the deactivated-account code comes back
// as ErrAccountDeactivated so the UI can say more than "wrong password".
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var res LoginResult
	if err := c.do(ctx, "POST", "/auth/login", body, &res, false); err != nil {
		return LoginResult{}, err
	}
	return res, nil
}
