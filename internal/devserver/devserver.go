// Package devserver implements an in-memory Aegis OS API server for local
// development and end-to-end testing of the SDK. Every endpoint the SDK
// exposes is served here with realistic canned data; nothing is persisted.
package devserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const licenseKeyPrefix = "AEGIS-"

type userRecord struct {
	Email        string
	PasswordHash string
	Role         string
	Created      time.Time
	TwoFAEnabled bool
	TwoFASecret  string
}

type webhookRecord struct {
	URL     string    `json:"url"`
	Events  []string  `json:"events"`
	Created time.Time `json:"created"`
	Active  bool      `json:"active"`
}

type backupRecord struct {
	Schedule      string    `json:"schedule"`
	RetentionDays int       `json:"retention_days"`
	Created       time.Time `json:"created"`
}

// Server holds the mutable in-memory state behind the API.
type Server struct {
	mu          sync.Mutex
	startedAt   time.Time
	users       map[string]*userRecord
	webhooks    map[string]*webhookRecord
	backups     map[string]*backupRecord
	auditLog    []string
	activations int
	downloads   int
	errors      int
}

// NewServer constructs the in-memory state without binding any routes.
// Callers that need middleware register it on their app before Register.
func NewServer() *Server {
	return &Server{
		startedAt: time.Now(),
		users:     make(map[string]*userRecord),
		webhooks:  make(map[string]*webhookRecord),
		backups:   make(map[string]*backupRecord),
	}
}

// New constructs a dev server and mounts its routes on a fresh fiber app.
func New() (*Server, *fiber.App) {
	s := NewServer()
	app := fiber.New(fiber.Config{
		AppName:               "aegis-devserver",
		DisableStartupMessage: true,
	})
	s.Register(app)
	return s, app
}

// Register mounts every API route on the given app.
func (s *Server) Register(app *fiber.App) {
	v1 := app.Group("/api/v1")

	v1.Post("/license/validate", s.validateLicense)
	v1.Get("/license/check", s.checkLicense)
	v1.Get("/tiers", s.listTiers)
	v1.Get("/tier/:name", s.getTier)

	v1.Post("/payment/initiate", s.initiatePayment)
	v1.Post("/payment/verify", s.verifyPayment)

	v1.Post("/auth/register", s.register)
	v1.Post("/auth/login", s.login)
	v1.Get("/user/profile", s.profile)
	v1.Post("/user/2fa/enable", s.enable2FA)

	v1.Get("/security/check", s.securityCheck)

	v1.Post("/webhooks/register", s.registerWebhook)
	v1.Get("/webhooks", s.listWebhooks)
	v1.Delete("/webhooks/:id", s.deleteWebhook)

	v1.Get("/analytics/dashboard", s.analyticsDashboard)
	v1.Get("/analytics/audit", s.auditEntries)

	v1.Post("/backup/schedule", s.scheduleBackup)
	v1.Get("/backup/list", s.listBackups)

	v1.Get("/marketplace/apps", s.listApps)
	v1.Post("/marketplace/app/:id/install", s.installApp)

	v1.Get("/system/status", s.systemStatus)
	v1.Get("/system/health", s.systemHealth)
	v1.Get("/rate-limit/status", s.rateLimitStatus)
}

func (s *Server) audit(event string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditLog = append(s.auditLog, fmt.Sprintf("%s %s", time.Now().Format(time.RFC3339), event))
}

// ----- licensing -----

func (s *Server) validateLicense(c *fiber.Ctx) error {
	var req struct {
		Key string `json:"key"`
	}
	if err := c.BodyParser(&req); err != nil || req.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"valid": false,
			"error": "No license key",
		})
	}

	if strings.HasPrefix(req.Key, licenseKeyPrefix) {
		parts := strings.Split(req.Key, "-")
		if len(parts) >= 3 {
			tier := strings.ToLower(parts[1])
			if info, ok := tierCatalog[tier]; ok {
				s.mu.Lock()
				s.activations++
				s.mu.Unlock()
				s.audit("license_validated " + tier)
				return c.JSON(fiber.Map{
					"valid":    true,
					"tier":     tier,
					"price":    info.Price,
					"features": info.Features,
					"expires":  "2025-12-31",
				})
			}
		}
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"valid": false,
		"error": "Invalid key",
	})
}

func (s *Server) checkLicense(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"licensed": false,
		"tier":     "freemium",
	})
}

func (s *Server) listTiers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"tiers": tierCatalog})
}

func (s *Server) getTier(c *fiber.Ctx) error {
	name := c.Params("name")
	info, ok := tierCatalog[name]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tier not found"})
	}
	return c.JSON(fiber.Map{
		"tier":        name,
		"price":       info.Price,
		"features":    info.Features,
		"description": "Aegis OS " + capitalize(name),
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ----- payments -----

func (s *Server) initiatePayment(c *fiber.Ctx) error {
	var req struct {
		Tier  string `json:"tier"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	info, ok := tierCatalog[req.Tier]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tier"})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email required"})
	}
	return c.JSON(fiber.Map{
		"status":         "ready_for_payment",
		"tier":           req.Tier,
		"amount":         info.Price,
		"currency":       "USD",
		"payment_method": "stripe",
	})
}

func (s *Server) verifyPayment(c *fiber.Ctx) error {
	var req struct {
		TransactionID string `json:"transaction_id"`
		Tier          string `json:"tier"`
	}
	if err := c.BodyParser(&req); err != nil || req.TransactionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Transaction ID required"})
	}
	tier := req.Tier
	if _, ok := tierCatalog[tier]; !ok {
		tier = "basic"
	}
	suffix := sha256.Sum256([]byte(req.TransactionID))
	licenseKey := fmt.Sprintf("%s%s-2024-%s",
		licenseKeyPrefix,
		strings.ToUpper(tier),
		strings.ToUpper(hex.EncodeToString(suffix[:6])))
	s.audit("payment_verified " + tier)
	return c.JSON(fiber.Map{
		"verified":    true,
		"license_key": licenseKey,
		"message":     "Payment verified",
	})
}

// ----- accounts -----

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func issueToken(userID, email string) string {
	sum := sha256.Sum256([]byte(userID + ":" + email + ":" + time.Now().Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])
}

func (s *Server) register(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password required"})
	}

	userID := uuid.NewString()
	s.mu.Lock()
	s.users[userID] = &userRecord{
		Email:        req.Email,
		PasswordHash: hashPassword(req.Password),
		Role:         "user",
		Created:      time.Now(),
	}
	s.mu.Unlock()
	s.audit("user_registered " + req.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user_id": userID,
		"email":   req.Email,
		"token":   issueToken(userID, req.Email),
	})
}

func (s *Server) login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, user := range s.users {
		if user.Email == req.Email && user.PasswordHash == hashPassword(req.Password) {
			return c.JSON(fiber.Map{
				"user_id":         userID,
				"token":           issueToken(userID, req.Email),
				"two_fa_required": user.TwoFAEnabled,
			})
		}
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
}

func (s *Server) profile(c *fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	s.mu.Lock()
	user, ok := s.users[userID]
	s.mu.Unlock()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(fiber.Map{
		"user_id":        userID,
		"email":          user.Email,
		"role":           user.Role,
		"created":        user.Created.Format(time.RFC3339),
		"two_fa_enabled": user.TwoFAEnabled,
	})
}

func (s *Server) enable2FA(c *fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	var secret string
	s.mu.Lock()
	user, ok := s.users[userID]
	if ok {
		secret = uuid.NewString()[:16]
		user.TwoFASecret = secret
		user.TwoFAEnabled = true
	}
	s.mu.Unlock()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	s.audit("2fa_enabled " + userID)
	return c.JSON(fiber.Map{
		"status":  "enabled",
		"secret":  secret,
		"message": "Save this secret in your authenticator app",
	})
}

// ----- security -----

func (s *Server) securityCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"system_secure": true,
		"threat_level":  "LOW",
		"last_scan":     time.Now().Format(time.RFC3339),
		"features": fiber.Map{
			"real_time_scanning":  true,
			"ai_threat_detection": true,
			"firewall":            true,
			"file_integrity":      true,
			"network_monitoring":  true,
		},
	})
}

// ----- webhooks -----

func (s *Server) registerWebhook(c *fiber.Ctx) error {
	var req struct {
		URL    string   `json:"url"`
		Events []string `json:"events"`
	}
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "URL required"})
	}

	webhookID := uuid.NewString()
	s.mu.Lock()
	s.webhooks[webhookID] = &webhookRecord{
		URL:     req.URL,
		Events:  req.Events,
		Created: time.Now(),
		Active:  true,
	}
	s.mu.Unlock()
	s.audit("webhook_registered " + webhookID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"webhook_id": webhookID,
		"status":     "active",
		"events":     req.Events,
	})
}

func (s *Server) listWebhooks(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(fiber.Map{
		"webhooks": s.webhooks,
		"total":    len(s.webhooks),
	})
}

func (s *Server) deleteWebhook(c *fiber.Ctx) error {
	webhookID := c.Params("id")
	s.mu.Lock()
	_, ok := s.webhooks[webhookID]
	if ok {
		delete(s.webhooks, webhookID)
	}
	s.mu.Unlock()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Webhook not found"})
	}
	s.audit("webhook_deleted " + webhookID)
	return c.JSON(fiber.Map{"status": "deleted"})
}

// ----- analytics -----

func (s *Server) analyticsDashboard(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(fiber.Map{
		"timestamp":            time.Now().Format(time.RFC3339),
		"downloads":            s.downloads,
		"activations":          s.activations,
		"errors":               s.errors,
		"active_users":         len(s.users),
		"uptime_percent":       99.95,
		"avg_response_time_ms": 145,
	})
}

func (s *Server) auditEntries(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 0 {
		limit = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.auditLog
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return c.JSON(fiber.Map{
		"audit_log": entries,
		"total":     len(s.auditLog),
	})
}

// ----- backups -----

func (s *Server) scheduleBackup(c *fiber.Ctx) error {
	var req struct {
		Schedule      string `json:"schedule"`
		RetentionDays int    `json:"retention_days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Schedule == "" {
		req.Schedule = "daily"
	}
	if req.RetentionDays <= 0 {
		req.RetentionDays = 30
	}

	backupID := uuid.NewString()
	s.mu.Lock()
	s.backups[backupID] = &backupRecord{
		Schedule:      req.Schedule,
		RetentionDays: req.RetentionDays,
		Created:       time.Now(),
	}
	s.mu.Unlock()
	s.audit("backup_scheduled " + backupID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"backup_id":      backupID,
		"schedule":       req.Schedule,
		"retention_days": req.RetentionDays,
	})
}

func (s *Server) listBackups(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(fiber.Map{
		"backups": s.backups,
		"total":   len(s.backups),
	})
}

// ----- marketplace -----

func (s *Server) listApps(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"apps":  marketplaceApps,
		"total": len(marketplaceApps),
	})
}

func (s *Server) installApp(c *fiber.Ctx) error {
	appID := c.Params("id")
	s.audit("app_installed " + appID)
	return c.JSON(fiber.Map{
		"status":  "installed",
		"app_id":  appID,
		"message": "App installed successfully",
	})
}

// ----- system -----

func (s *Server) systemStatus(c *fiber.Ctx) error {
	editions := tierNames()
	sort.Strings(editions)
	return c.JSON(fiber.Map{
		"name":         "Aegis OS",
		"version":      "1.0",
		"status":       "operational",
		"uptime_hours": uint64(time.Since(s.startedAt).Hours()),
		"editions":     editions,
	})
}

func (s *Server) systemHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"components": fiber.Map{
			"api":              "ok",
			"database":         "ok",
			"cache":            "ok",
			"security_scanner": "ok",
			"ai_engine":        "ok",
			"firewall":         "ok",
		},
		"uptime_percent":     99.95,
		"response_time_ms":   145,
		"error_rate_percent": 0.05,
	})
}

func (s *Server) rateLimitStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"limit":     1000,
		"remaining": 987,
		"reset":     time.Now().Add(time.Hour).Format(time.RFC3339),
		"plan":      "pro",
	})
}
