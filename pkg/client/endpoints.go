package client

import (
	"context"
	"net/url"
	"strconv"
)

type validateLicenseRequest struct {
	Key string `json:"key"`
}

type paymentInitiateRequest struct {
	Tier  string `json:"tier"`
	Email string `json:"email"`
}

type paymentVerifyRequest struct {
	TransactionID string `json:"transaction_id"`
	Tier          string `json:"tier"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type webhookRegisterRequest struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

type backupScheduleRequest struct {
	Schedule      string `json:"schedule"`
	RetentionDays int    `json:"retention_days"`
}

// ValidateLicense checks a license key with the licensing service.
func (c *Client) ValidateLicense(ctx context.Context, key string) (string, error) {
	return c.do(ctx, MethodPost, "/api/v1/license/validate", validateLicenseRequest{Key: key})
}

// GetLicenseStatus returns the current license status for this installation.
func (c *Client) GetLicenseStatus(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/license/check", nil)
}

// GetTiers lists every available license tier.
func (c *Client) GetTiers(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/tiers", nil)
}

// GetTier returns the details of a single tier.
func (c *Client) GetTier(ctx context.Context, name string) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/tier/"+url.PathEscape(name), nil)
}

// InitiatePayment starts a payment flow for the given tier.
func (c *Client) InitiatePayment(ctx context.Context, tier, email string) (string, error) {
	return c.do(ctx, MethodPost, "/api/v1/payment/initiate", paymentInitiateRequest{Tier: tier, Email: email})
}

// VerifyPayment confirms a completed payment and collects the issued license.
func (c *Client) VerifyPayment(ctx context.Context, transactionID, tier string) (string, error) {
	return c.do(ctx, MethodPost, "/api/v1/payment/verify", paymentVerifyRequest{TransactionID: transactionID, Tier: tier})
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	return c.do(ctx, MethodPost, "/api/v1/auth/register", credentialsRequest{Email: email, Password: password})
}

// Login authenticates a user and returns a session token payload.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.do(ctx, MethodPost, "/api/v1/auth/login", credentialsRequest{Email: email, Password: password})
}

// GetProfile fetches the profile of the configured user.
func (c *Client) GetProfile(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/user/profile", nil)
}

// Enable2FA turns on two-factor authentication for the configured user.
func (c *Client) Enable2FA(ctx context.Context) (string, error) {
	return c.do(ctx, MethodPost, "/api/v1/user/2fa/enable", nil)
}

// GetSecurityCheck reports the current security posture of the system.
func (c *Client) GetSecurityCheck(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/security/check", nil)
}

// RegisterWebhook subscribes a callback URL to the given events.
func (c *Client) RegisterWebhook(ctx context.Context, callbackURL string, events []string) (string, error) {
	return c.do(ctx, MethodPost, "/api/v1/webhooks/register", webhookRegisterRequest{URL: callbackURL, Events: events})
}

// ListWebhooks returns every registered webhook.
func (c *Client) ListWebhooks(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/webhooks", nil)
}

// DeleteWebhook removes a webhook by ID.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) (string, error) {
	return c.do(ctx, MethodDelete, "/api/v1/webhooks/"+url.PathEscape(webhookID), nil)
}

// GetAnalytics returns the analytics dashboard payload.
func (c *Client) GetAnalytics(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/analytics/dashboard", nil)
}

// GetAuditLog returns up to limit recent audit log entries.
func (c *Client) GetAuditLog(ctx context.Context, limit int) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/analytics/audit?limit="+strconv.Itoa(limit), nil)
}

// ScheduleBackup creates an automated backup schedule.
func (c *Client) ScheduleBackup(ctx context.Context, schedule string, retentionDays int) (string, error) {
	return c.do(ctx, MethodPost, "/api/v1/backup/schedule", backupScheduleRequest{Schedule: schedule, RetentionDays: retentionDays})
}

// ListBackups lists the configured backup schedules.
func (c *Client) ListBackups(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/backup/list", nil)
}

// ListApps lists the marketplace catalog.
func (c *Client) ListApps(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/marketplace/apps", nil)
}

// InstallApp installs a marketplace app by ID.
func (c *Client) InstallApp(ctx context.Context, appID string) (string, error) {
	return c.do(ctx, MethodPost, "/api/v1/marketplace/app/"+url.PathEscape(appID)+"/install", nil)
}

// GetSystemStatus returns the overall system status.
func (c *Client) GetSystemStatus(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/system/status", nil)
}

// GetSystemHealth returns per-component health information.
func (c *Client) GetSystemHealth(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/system/health", nil)
}

// GetRateLimit reports the caller's current rate limit allowance.
func (c *Client) GetRateLimit(ctx context.Context) (string, error) {
	return c.do(ctx, MethodGet, "/api/v1/rate-limit/status", nil)
}
