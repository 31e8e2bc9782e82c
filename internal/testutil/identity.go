package testutil

import (
	"context"

	"quetzal-gate/internal/domain"
)

// Admin is the identity used by tests that need an administrator.
var Admin = domain.Identity{UserID: 1, Email: "casa@quetzal.com.br", Name: "Administrador", Role: domain.RoleAdmin}

// Agent is the identity used by tests that need a field agent.
var Agent = domain.Identity{UserID: 2, Email: "vigia1@site.test", Name: "vigia1", Role: domain.RoleFieldAgent}

// AdminCtx returns a context carrying Admin.
func AdminCtx() context.Context {
	return domain.WithIdentity(context.Background(), Admin)
}

// AgentCtx returns a context carrying Agent.
func AgentCtx() context.Context {
	return domain.WithIdentity(context.Background(), Agent)
}
