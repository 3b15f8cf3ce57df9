package auth

import (
	"fmt"
	"unstablenet/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of
// authorization rules. It checks if each default policy exists before adding
// it, making the operation idempotent and safe to run on every start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Anonymous visitors can read everything and submit comments and
	// newsletter subscriptions. Editors additionally manage articles,
	// comments, covers, and uploads. The 'editor' role inherits from
	// 'anonymous', and 'admin' from 'editor'.
	policies := [][]string{
		{"anonymous", "/api/articles", "GET"},
		{"anonymous", "/api/articles/*", "GET"},
		{"anonymous", "/api/comments", "GET"},
		{"anonymous", "/api/comments", "POST"},
		{"anonymous", "/api/subscribers", "POST"},
		{"anonymous", "/api/covers", "GET"},
		{"anonymous", "/api/pages/*", "GET"},
		{"anonymous", "/api/session", "GET"},
		{"anonymous", "/api/auth/login", "POST"},
		{"anonymous", "/api/auth/logout", "POST"},
		{"anonymous", "/auth/login", "GET"},
		{"anonymous", "/auth/callback", "GET"},
		{"anonymous", "/media/*", "GET"},
		{"anonymous", "/sitemap.xml", "GET"},
		{"anonymous", "/robots.txt", "GET"},

		{"editor", "/api/articles", "POST"},
		{"editor", "/api/articles/*", "PUT"},
		{"editor", "/api/articles/*", "DELETE"},
		{"editor", "/api/comments/*", "DELETE"},
		{"editor", "/api/covers", "PUT"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	roles := [][2]string{
		{"editor", "anonymous"},
		{"admin", "editor"},
	}
	for _, g := range roles {
		if has, _ := e.HasRoleForUser(g[0], g[1]); !has {
			if _, err := e.AddRoleForUser(g[0], g[1]); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add role %s -> %s", g[0], g[1]))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
