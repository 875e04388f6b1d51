// Package aegis provides a Go SDK for the Aegis OS API.
//
// This package re-exports the core client functionality from pkg/client,
// providing a clean API for Go applications to call the licensing, account,
// and system endpoints of an Aegis OS server.
//
// # Quick Start
//
//	client, err := aegis.New(aegis.Config{
//	    BaseURL: "https://api.aegis-os.dev",
//	    APIKey:  os.Getenv("AEGIS_API_KEY"),
//	    UserID:  "user-123",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Validate a license key
//	body, err := client.ValidateLicense(ctx, "AEGIS-GAMER-2024-ABCDEF123456")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Responses are raw JSON text; unmarshal the ones you care about.
//	var result aegis.ValidationResult
//	if err := json.Unmarshal([]byte(body), &result); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("valid=%v tier=%s\n", result.Valid, result.Tier)
//
// Every method performs exactly one HTTP request and returns the response
// body as text regardless of HTTP status code. The server reports
// application-level errors inside the body, so callers should inspect it
// even when err is nil.
package aegis

import (
	"github.com/aegis-os/sdk-go/pkg/client"
)

// Re-export core types from the client package.
type (
	// Config controls how the client contacts the Aegis OS API.
	Config = client.Config

	// Client is a thin handle over the Aegis OS HTTP API.
	Client = client.Client

	// Method is the HTTP verb used for an API call.
	Method = client.Method

	// License describes a validated license grant.
	License = client.License

	// ValidationResult is the full response of a license validation call.
	ValidationResult = client.ValidationResult

	// User is an Aegis account profile.
	User = client.User

	// Webhook is a registered event callback.
	Webhook = client.Webhook

	// SystemStatus summarizes the service status endpoint.
	SystemStatus = client.SystemStatus

	// SystemHealth is the per-component health report.
	SystemHealth = client.SystemHealth

	// Tier describes a single license plan.
	Tier = client.Tier

	// PaymentIntent is the response of an initiated payment.
	PaymentIntent = client.PaymentIntent

	// AuthToken is issued on registration and login.
	AuthToken = client.AuthToken
)

// Re-export constants.
const (
	// EnvBaseURL is the environment variable for the API base URL.
	EnvBaseURL = client.EnvBaseURL

	// EnvAPIKey is the environment variable for the API key.
	EnvAPIKey = client.EnvAPIKey

	// EnvUserID is the environment variable for the user identifier.
	EnvUserID = client.EnvUserID

	// DefaultBaseURL is the production Aegis OS API endpoint.
	DefaultBaseURL = client.DefaultBaseURL

	// MethodGet issues a GET request.
	MethodGet = client.MethodGet

	// MethodPost issues a POST request.
	MethodPost = client.MethodPost

	// MethodDelete issues a DELETE request.
	MethodDelete = client.MethodDelete
)

// New creates a new Aegis OS API client with the given configuration.
func New(cfg Config) (*Client, error) {
	return client.New(cfg)
}
