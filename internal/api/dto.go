package api

import (
	"time"

	"quetzal-gate/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// identitySummary is the user object returned by login and session.
type identitySummary struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"nome"`
	Role  domain.Role `json:"role"`
}

func summaryFromIdentity(id domain.Identity) identitySummary {
	return identitySummary{ID: id.UserID, Email: id.Email, Name: id.Name, Role: id.Role}
}

type recordRequest struct {
	Plate     string           `json:"plate"`
	Driver    *string          `json:"driver"`
	Direction domain.Direction `json:"direction"`
	Timestamp *time.Time       `json:"timestamp"`
}

type recordResponse struct {
	ID        int64            `json:"id"`
	Plate     string           `json:"plate"`
	Driver    *string          `json:"driver"`
	Direction domain.Direction `json:"direction"`
	Timestamp time.Time        `json:"timestamp"`
	UserID    int64            `json:"user_id"`
	UserName  string           `json:"user_name"`
	CreatedAt time.Time        `json:"created_at"`
}

func recordToAPI(r domain.Record) recordResponse {
	return recordResponse{
		ID:        r.ID,
		Plate:     r.Plate,
		Driver:    r.Driver,
		Direction: r.Direction,
		Timestamp: r.EventAt,
		UserID:    r.AuthorID,
		UserName:  r.AuthorName,
		CreatedAt: r.CreatedAt,
	}
}

func recordsToAPI(recs []domain.Record) []recordResponse {
	out := make([]recordResponse, len(recs))
	for i, r := range recs {
		out[i] = recordToAPI(r)
	}
	return out
}

type accountRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"nome"`
	Role     domain.Role `json:"role"`
	Active   *bool       `json:"active"`
}

type accountResponse struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"nome"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
}

func accountToAPI(a domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}
}

func accountsToAPI(as []domain.Account) []accountResponse {
	out := make([]accountResponse, len(as))
	for i, a := range as {
		out[i] = accountToAPI(a)
	}
	return out
}

type auditResponse struct {
	ID        int64     `json:"id"`
	ActorID   *int64    `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func auditToAPI(entries []domain.AuditEntry) []auditResponse {
	out := make([]auditResponse, len(entries))
	for i, e := range entries {
		out[i] = auditResponse{
			ID:        e.ID,
			ActorID:   e.ActorID,
			ActorName: e.ActorName,
			Action:    e.Action,
			Target:    e.Target,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}
