package auth

import (
	"context"
	"fmt"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
)

// OTPService is the auth-service contract.
type OTPService interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, code string) (*VerifyResult, error)
}

type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

func (c *Client) SendOTP(ctx context.Context, phone string) error {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	body := map[string]string{"phoneNumber": phone}
	if err := c.api.Post(ctx, "/auth/send-otp", body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("send OTP rejected: %s", resp.Message)
	}
	return nil
}

func (c *Client) VerifyOTP(ctx context.Context, phone, code string) (*VerifyResult, error) {
	var result VerifyResult
	body := map[string]string{"phoneNumber": phone, "otp": code}
	if err := c.api.Post(ctx, "/auth/verify-otp", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
