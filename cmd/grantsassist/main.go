// cmd/grantsassist/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"grantsassist-client/internal/api"
	"grantsassist-client/internal/common/config"
	"grantsassist-client/internal/common/logger"
	"grantsassist-client/internal/credentials"
	"grantsassist-client/internal/models"
	"grantsassist-client/internal/services"
	"grantsassist-client/internal/session"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	creds, cleanup, err := buildCredentialStore(cfg.Credentials)
	if err != nil {
		zapLog.Fatal("credential store init failed", zap.Error(err))
	}
	defer cleanup()

	client, err := api.NewClient(cfg.API, creds, log)
	if err != nil {
		zapLog.Fatal("api client init failed", zap.Error(err))
	}

	sessions := session.NewManager(client, creds, log)

	ctx := context.Background()

	// Metrics server, best effort.
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		if err := http.ListenAndServe(":9090", nil); err != nil {
			zapLog.Warn("metrics server failed", zap.Error(err))
		}
	}()

	if sessions.Restore(ctx) {
		if user := sessions.CurrentUser(); user != nil {
			zapLog.Info("session restored", zap.String("email", user.Email))
		}
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	if err := run(ctx, os.Args[1], os.Args[2:], client, sessions, log); err != nil {
		zapLog.Fatal("command failed", zap.Error(err))
	}
}

func run(ctx context.Context, command string, args []string, client *api.Client, sessions *session.Manager, log logger.Logger) error {
	programs := services.NewProgramsService(client, log)
	applications := services.NewApplicationsService(client, log)
	eligibility := services.NewEligibilityService(client, log)
	profile := services.NewProfileService(client, log)

	switch command {
	case "login":
		if len(args) < 2 {
			return fmt.Errorf("usage: grantsassist login <email> <password>")
		}
		user, err := sessions.SignIn(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("signed in as %s (%s tier)\n", user.Email, user.SubscriptionTier)
		return nil

	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: grantsassist register <email> <password>")
		}
		user, err := sessions.Register(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("registered and signed in as %s\n", user.Email)
		return nil

	case "logout":
		return sessions.SignOut(ctx)

	case "programs":
		filter := models.ProgramFilter{ActiveOnly: true}
		if len(args) > 0 {
			filter.Search = args[0]
		}
		page, err := programs.LoadDiscovery(ctx, filter)
		if err != nil {
			return err
		}
		fmt.Printf("%d programs\n", page.Programs.Total)
		for _, p := range page.Programs.Items {
			fmt.Printf("  %-40s %s\n", p.Name, p.Category)
		}
		if page.Eligibility != nil {
			for _, top := range page.Eligibility.TopMatches() {
				fmt.Printf("  top match: %s (%.0f, %s)\n", top.ProgramID, top.MatchScore, top.MatchLevel())
			}
		}
		return nil

	case "categories":
		resp, err := programs.Categories(ctx)
		if err != nil {
			return err
		}
		for _, c := range resp.Categories {
			fmt.Printf("  %-20s %s\n", c.ID, c.Name)
		}
		return nil

	case "applications":
		resp, err := applications.List(ctx, nil)
		if err != nil {
			return err
		}
		fmt.Printf("%d applications\n", resp.Total)
		for _, a := range resp.Items {
			fmt.Printf("  %-36s %-15s %.0f%%\n", a.ID, a.Status, a.CompletenessScore)
		}
		return nil

	case "apply":
		if len(args) < 1 {
			return fmt.Errorf("usage: grantsassist apply <program-id>")
		}
		app, err := applications.Create(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("created application %s (%s)\n", app.ID, app.Status)
		return nil

	case "submit":
		if len(args) < 1 {
			return fmt.Errorf("usage: grantsassist submit <application-id>")
		}
		app, err := applications.Get(ctx, args[0])
		if err != nil {
			return err
		}
		submitted, err := applications.Submit(ctx, *app, nil)
		if err != nil {
			return err
		}
		fmt.Printf("application %s submitted at %s\n", submitted.ID, deref(submitted.SubmittedAt))
		return nil

	case "eligibility":
		resp, err := eligibility.CheckAll(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d/%d programs eligible\n", resp.EligibleCount, resp.TotalPrograms)
		for _, r := range resp.Items {
			fmt.Printf("  %-36s %5.1f %s\n", r.ProgramID, r.MatchScore, r.MatchLevel())
		}
		return nil

	case "profile":
		p, err := profile.Get(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("profile completeness: %d%%\n", p.CompletenessScore())
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func buildCredentialStore(cfg config.CredentialsConfig) (credentials.Provider, func(), error) {
	if cfg.Store == "redis" {
		store, err := credentials.NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
	return credentials.NewMemoryStore(), func() {}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: grantsassist <command> [args]

commands:
  login <email> <password>
  register <email> <password>
  logout
  programs [search]
  categories
  applications
  apply <program-id>
  submit <application-id>
  eligibility
  profile`)
}
