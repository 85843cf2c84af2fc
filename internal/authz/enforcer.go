// Package authz decides which role may perform which action. The policy is
// embedded and loaded once per process.
package authz

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/lealre/reelstate/internal/auth"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

type Object string

const (
	ObjProgress  Object = "progress"
	ObjWatchlist Object = "watchlist"
	ObjComment   Object = "comment"
	ObjReview    Object = "review"
	ObjUser      Object = "user"
)

type Action string

const (
	ActWrite     Action = "write"
	ActCreate    Action = "create"
	ActReact     Action = "react"
	ActReport    Action = "report"
	ActModerate  Action = "moderate"
	ActDeleteAny Action = "delete_any"
	ActBan       Action = "ban"
	ActList      Action = "list"
)

type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := loadEmbeddedPolicy(enforcer, embeddedPolicy); err != nil {
		return nil, err
	}

	return &Enforcer{enforcer: enforcer}, nil
}

func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch {
		case parts[0] == "p" && len(parts) == 4:
			if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", parts[1:], err)
			}
		case parts[0] == "g" && len(parts) == 3:
			if _, err := enforcer.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("failed to add grouping policy %v: %w", parts[1:], err)
			}
		default:
			return fmt.Errorf("malformed policy line %q", line)
		}
	}
	return nil
}

// Can reports whether the session's role allows act on obj. Anonymous
// sessions are never allowed anything.
func (e *Enforcer) Can(session auth.Session, obj Object, act Action) bool {
	if !session.Authenticated() {
		return false
	}
	role := session.Role
	if role == "" {
		role = auth.RoleUser
	}
	allowed, err := e.enforcer.Enforce(string(role), string(obj), string(act))
	return err == nil && allowed
}

var (
	defaultEnforcer *Enforcer
	defaultOnce     sync.Once
)

// Default returns the process enforcer built from the embedded policy.
func Default() *Enforcer {
	defaultOnce.Do(func() {
		e, err := NewEnforcer()
		if err != nil {
			panic(err)
		}
		defaultEnforcer = e
	})
	return defaultEnforcer
}

func Can(session auth.Session, obj Object, act Action) bool {
	return Default().Can(session, obj, act)
}
