package client

// The Aegis API returns opaque JSON text; these records describe the shapes
// the service emits so callers can unmarshal the responses they care about.
// None of them carry behavior and the client never parses into them itself.

// License describes a validated license grant.
type License struct {
	Tier     string   `json:"tier"`
	Price    uint     `json:"price"`
	Features []string `json:"features"`
	Expires  string   `json:"expires"`
}

// ValidationResult is the full response of a license validation call.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Tier     string   `json:"tier,omitempty"`
	Price    uint     `json:"price,omitempty"`
	Features []string `json:"features,omitempty"`
	Expires  string   `json:"expires,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// User is an Aegis account profile.
type User struct {
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Created      string `json:"created"`
	TwoFAEnabled bool   `json:"two_fa_enabled"`
}

// Webhook is a registered event callback.
type Webhook struct {
	WebhookID string   `json:"webhook_id"`
	URL       string   `json:"url"`
	Events    []string `json:"events"`
	Created   string   `json:"created"`
	Active    bool     `json:"active"`
}

// SystemStatus summarizes the service status endpoint.
type SystemStatus struct {
	Status      string   `json:"status"`
	UptimeHours uint64   `json:"uptime_hours"`
	Version     string   `json:"version"`
	Editions    []string `json:"editions"`
}

// SystemHealth is the per-component health report.
type SystemHealth struct {
	Status        string            `json:"status"`
	Components    map[string]string `json:"components"`
	UptimePercent float64           `json:"uptime_percent"`
}

// Tier describes a single license plan.
type Tier struct {
	Name        string   `json:"tier"`
	Price       uint     `json:"price"`
	Features    []string `json:"features"`
	Description string   `json:"description,omitempty"`
}

// PaymentIntent is the response of an initiated payment.
type PaymentIntent struct {
	Status        string `json:"status"`
	Tier          string `json:"tier"`
	Amount        uint   `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method"`
}

// AuthToken is issued on registration and login.
type AuthToken struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}
