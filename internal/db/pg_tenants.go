package db

import (
	"context"
	"errors"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ TENANT

func (s *pgStore) findTenant(ctx context.Context, column, value string) (*model.Tenant, error) {
	if value == "" {
		return nil, notFound("tenant", value)
	}
	var r tenantRow
	err := s.get(ctx, "find tenant", &r, tenantsTable.selectFrom()+" WHERE "+column+" = $1", value)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("tenant", value)
	}
	if err != nil {
		return nil, err
	}
	t, err := tenantFromRow(r)
	if err != nil {
		return nil, backendErr("decode tenant", err)
	}
	return &t, nil
}

func (s *pgStore) FindTenantByID(ctx context.Context, id string) (*model.Tenant, error) {
	return s.findTenant(ctx, "id", id)
}

func (s *pgStore) FindTenantByDomain(ctx context.Context, domain string) (*model.Tenant, error) {
	return s.findTenant(ctx, "domain", normalizeHost(domain))
}

func (s *pgStore) FindTenantBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	return s.findTenant(ctx, "subdomain", normalizeHost(subdomain))
}

func (s *pgStore) GetTenants(ctx context.Context) ([]model.Tenant, error) {
	var rows []tenantRow
	if err := s.selectRows(ctx, "list tenants", &rows, tenantsTable.selectFrom()+" ORDER BY created_at, id"); err != nil {
		return nil, err
	}
	out := make([]model.Tenant, 0, len(rows))
	for _, r := range rows {
		t, err := tenantFromRow(r)
		if err != nil {
			return nil, backendErr("decode tenant", err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *pgStore) CreateTenant(ctx context.Context, t model.Tenant) (*model.Tenant, error) {
	if err := prepareTenant(&t, now()); err != nil {
		return nil, err
	}
	row, err := tenantToRow(t)
	if err != nil {
		return nil, backendErr("encode tenant", err)
	}
	if _, err := s.namedExec(ctx, "create tenant", tenantsTable.insert(), row); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *pgStore) UpdateTenant(ctx context.Context, id string, patch model.TenantPatch) (*model.Tenant, error) {
	t, err := s.FindTenantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTenantPatch(t, patch, now())
	row, err := tenantToRow(*t)
	if err != nil {
		return nil, backendErr("encode tenant", err)
	}
	if err := s.updateRow(ctx, "tenant", tenantsTable, id, row); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *pgStore) DeleteTenant(ctx context.Context, id string) error {
	return s.deleteScoped(ctx, "tenant", tenantsTable, id, "")
}

// @ USER

func (s *pgStore) FindUserByID(ctx context.Context, id, tenantID string) (*model.User, error) {
	var r userRow
	q, args := scoped(usersTable.selectFrom()+" WHERE id = $1", tenantID, id)
	err := s.get(ctx, "find user", &r, q, args...)
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	u := userFromRow(r)
	return &u, nil
}

func (s *pgStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var r userRow
	err := s.get(ctx, "find user by email", &r, usersTable.selectFrom()+" WHERE lower(email) = $1", normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("user", email)
	}
	if err != nil {
		return nil, err
	}
	u := userFromRow(r)
	return &u, nil
}

func (s *pgStore) GetUsersByTenant(ctx context.Context, tenantID string) ([]model.User, error) {
	var rows []userRow
	q := usersTable.selectFrom() + " WHERE tenant_id = $1 ORDER BY created_at, id"
	if err := s.selectRows(ctx, "list users", &rows, q, tenantID); err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, userFromRow(r))
	}
	return out, nil
}

func (s *pgStore) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
	if err := prepareUser(&u, now()); err != nil {
		return nil, err
	}
	if _, err := s.namedExec(ctx, "create user", usersTable.insert(), userToRow(u)); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) UpdateUser(ctx context.Context, id string, patch model.UserPatch, tenantID string) (*model.User, error) {
	u, err := s.FindUserByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	applyUserPatch(u, patch, now())
	if err := s.updateRow(ctx, "user", usersTable, id, userToRow(*u)); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *pgStore) DeleteUser(ctx context.Context, id, tenantID string) error {
	if err := s.requireOwned(ctx, "user", usersTable, id, tenantID); err != nil {
		return err
	}
	if _, err := s.exec(ctx, "delete user sessions", "DELETE FROM user_sessions WHERE user_id = $1", id); err != nil {
		return err
	}
	return s.deleteScoped(ctx, "user", usersTable, id, tenantID)
}

// @ SESSION

func (s *pgStore) CreateSession(ctx context.Context, sess model.Session) (*model.Session, error) {
	if err := prepareSession(&sess, now()); err != nil {
		return nil, err
	}
	if _, err := s.namedExec(ctx, "create session", sessionsTable.insert(), sessionToRow(sess)); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *pgStore) FindSessionByToken(ctx context.Context, token string) (*model.Session, error) {
	var r sessionRow
	q := sessionsTable.selectFrom() + " WHERE token = $1 AND expires_at > $2"
	err := s.get(ctx, "find session", &r, q, token, now())
	if errors.Is(err, ErrNotFound) {
		return nil, notFound("session", "<token>")
	}
	if err != nil {
		return nil, err
	}
	sess := sessionFromRow(r)
	return &sess, nil
}

func (s *pgStore) DeleteSession(ctx context.Context, token string) error {
	n, err := s.exec(ctx, "delete session", "DELETE FROM user_sessions WHERE token = $1", token)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("session", "<token>")
	}
	return nil
}

func (s *pgStore) DeleteUserSessions(ctx context.Context, userID string) (int, error) {
	n, err := s.exec(ctx, "delete user sessions", "DELETE FROM user_sessions WHERE user_id = $1", userID)
	return int(n), err
}

func (s *pgStore) DeleteExpiredSessions(ctx context.Context, at time.Time) (int, error) {
	n, err := s.exec(ctx, "delete expired sessions", "DELETE FROM user_sessions WHERE expires_at <= $1", at.UTC())
	return int(n), err
}

// @ AUDIT

func (s *pgStore) CreateAuditLog(ctx context.Context, l model.AuditLog) (*model.AuditLog, error) {
	if err := prepareAuditLog(&l, now()); err != nil {
		return nil, err
	}
	row, err := auditLogToRow(l)
	if err != nil {
		return nil, backendErr("encode audit log", err)
	}
	if _, err := s.namedExec(ctx, "create audit log", auditLogsTable.insert(), row); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *pgStore) GetAuditLogsByTenant(ctx context.Context, tenantID string, limit int) ([]model.AuditLog, error) {
	var rows []auditLogRow
	q := auditLogsTable.selectFrom() + " WHERE tenant_id = $1 ORDER BY created_at DESC, id DESC"
	args := []any{tenantID}
	if limit > 0 {
		q += " LIMIT $2"
		args = append(args, limit)
	}
	if err := s.selectRows(ctx, "list audit logs", &rows, q, args...); err != nil {
		return nil, err
	}
	out := make([]model.AuditLog, 0, len(rows))
	for _, r := range rows {
		l, err := auditLogFromRow(r)
		if err != nil {
			return nil, backendErr("decode audit log", err)
		}
		out = append(out, l)
	}
	return out, nil
}
