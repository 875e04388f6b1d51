// aegisctl is a command line wrapper over the Aegis OS API client. Each
// subcommand maps to one API endpoint and prints the raw response body.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aegis-os/sdk-go/pkg/client"
)

var (
	serverURLFlag = flag.String("server", "", fmt.Sprintf("API base URL (default $%s or %s)", client.EnvBaseURL, client.DefaultBaseURL))
	apiKeyFlag    = flag.String("api-key", "", fmt.Sprintf("API key (default $%s)", client.EnvAPIKey))
	userIDFlag    = flag.String("user-id", "", fmt.Sprintf("User ID (default $%s or a generated id)", client.EnvUserID))
	timeoutFlag   = flag.Duration("timeout", 0, "HTTP timeout (e.g. 15s). Defaults to internal value")
	caCertFlag    = flag.String("ca-cert", "", "Path to a CA certificate for the server")
	insecureFlag  = flag.Bool("insecure", false, "Skip TLS certificate verification (development only)")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: aegisctl [flags] <command> [args]

Commands:
  validate <key>                     Validate a license key
  license-status                     Show current license status
  tiers                              List all tiers
  tier <name>                        Show one tier
  pay <tier> <email>                 Initiate payment for a tier
  verify-payment <txid> <tier>       Verify a payment
  register <email> <password>        Register a new account
  login <email> <password>           Log in
  profile                            Show the configured user profile
  enable-2fa                         Enable two-factor authentication
  security                           Run the security check
  webhook-register <url> <event>...  Register a webhook
  webhooks                           List webhooks
  webhook-delete <id>                Delete a webhook
  analytics                          Show the analytics dashboard
  audit [limit]                      Show recent audit log entries
  backup-schedule <schedule> [days]  Schedule automated backups
  backups                            List backup schedules
  apps                               List marketplace apps
  install <app-id>                   Install a marketplace app
  status                             Show system status
  health                             Show system health
  rate-limit                         Show rate limit status

Flags:
`)
	flag.PrintDefaults()
}

func resolveConfig() client.Config {
	cfg := client.Config{
		BaseURL:            strings.TrimSpace(*serverURLFlag),
		APIKey:             *apiKeyFlag,
		UserID:             *userIDFlag,
		CACertPath:         *caCertFlag,
		InsecureSkipVerify: *insecureFlag,
	}
	if *timeoutFlag > 0 {
		cfg.HTTPTimeout = *timeoutFlag
	}
	if cfg.UserID == "" && os.Getenv(client.EnvUserID) == "" {
		cfg.UserID = uuid.NewString()
	}
	return cfg
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	c, err := client.New(resolveConfig())
	if err != nil {
		log.Fatalf("failed to create client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	body, err := run(ctx, c, args[0], args[1:])
	if err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
	fmt.Println(body)
}

func run(ctx context.Context, c *client.Client, command string, args []string) (string, error) {
	switch command {
	case "validate":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: validate <key>")
		}
		return c.ValidateLicense(ctx, args[0])
	case "license-status":
		return c.GetLicenseStatus(ctx)
	case "tiers":
		return c.GetTiers(ctx)
	case "tier":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: tier <name>")
		}
		return c.GetTier(ctx, args[0])
	case "pay":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: pay <tier> <email>")
		}
		return c.InitiatePayment(ctx, args[0], args[1])
	case "verify-payment":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: verify-payment <txid> <tier>")
		}
		return c.VerifyPayment(ctx, args[0], args[1])
	case "register":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: register <email> <password>")
		}
		return c.Register(ctx, args[0], args[1])
	case "login":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: login <email> <password>")
		}
		return c.Login(ctx, args[0], args[1])
	case "profile":
		return c.GetProfile(ctx)
	case "enable-2fa":
		return c.Enable2FA(ctx)
	case "security":
		return c.GetSecurityCheck(ctx)
	case "webhook-register":
		if len(args) < 1 {
			return "", fmt.Errorf("usage: webhook-register <url> <event>...")
		}
		return c.RegisterWebhook(ctx, args[0], args[1:])
	case "webhooks":
		return c.ListWebhooks(ctx)
	case "webhook-delete":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: webhook-delete <id>")
		}
		return c.DeleteWebhook(ctx, args[0])
	case "analytics":
		return c.GetAnalytics(ctx)
	case "audit":
		limit := 100
		if len(args) == 1 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil {
				return "", fmt.Errorf("invalid limit %q: %w", args[0], err)
			}
			limit = parsed
		}
		return c.GetAuditLog(ctx, limit)
	case "backup-schedule":
		if len(args) < 1 {
			return "", fmt.Errorf("usage: backup-schedule <schedule> [retention-days]")
		}
		days := 30
		if len(args) == 2 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil {
				return "", fmt.Errorf("invalid retention days %q: %w", args[1], err)
			}
			days = parsed
		}
		return c.ScheduleBackup(ctx, args[0], days)
	case "backups":
		return c.ListBackups(ctx)
	case "apps":
		return c.ListApps(ctx)
	case "install":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: install <app-id>")
		}
		return c.InstallApp(ctx, args[0])
	case "status":
		return c.GetSystemStatus(ctx)
	case "health":
		return c.GetSystemHealth(ctx)
	case "rate-limit":
		return c.GetRateLimit(ctx)
	default:
		return "", fmt.Errorf("unknown command %q", command)
	}
}
