package db

import (
	"context"
	"sort"
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ TENANT

// checkTenantUnique rejects a domain or subdomain already claimed by another
// tenant. Empty values never collide.
func checkTenantUnique(d *document, t model.Tenant) error {
	for _, other := range d.Tenants {
		if other.ID == t.ID {
			continue
		}
		if t.Domain != "" && other.Domain == t.Domain {
			return conflict("tenant", "domain", t.Domain)
		}
		if t.Subdomain != "" && other.Subdomain == t.Subdomain {
			return conflict("tenant", "subdomain", t.Subdomain)
		}
	}
	return nil
}

func (s *docStore) findTenant(op, key string, match func(model.Tenant) bool) (*model.Tenant, error) {
	var out *model.Tenant
	err := s.read(op, func(d *document) error {
		i := indexOf(d.Tenants, match)
		if i < 0 {
			return notFound("tenant", key)
		}
		t := cloneTenant(d.Tenants[i])
		out = &t
		return nil
	})
	return out, err
}

func (s *docStore) FindTenantByID(_ context.Context, id string) (*model.Tenant, error) {
	return s.findTenant("find tenant", id, func(t model.Tenant) bool { return t.ID == id })
}

func (s *docStore) FindTenantByDomain(_ context.Context, domain string) (*model.Tenant, error) {
	domain = normalizeHost(domain)
	return s.findTenant("find tenant by domain", domain, func(t model.Tenant) bool {
		return domain != "" && t.Domain == domain
	})
}

func (s *docStore) FindTenantBySubdomain(_ context.Context, subdomain string) (*model.Tenant, error) {
	subdomain = normalizeHost(subdomain)
	return s.findTenant("find tenant by subdomain", subdomain, func(t model.Tenant) bool {
		return subdomain != "" && t.Subdomain == subdomain
	})
}

func (s *docStore) GetTenants(_ context.Context) ([]model.Tenant, error) {
	var out []model.Tenant
	err := s.read("list tenants", func(d *document) error {
		out = cloneAll(d.Tenants, cloneTenant)
		return nil
	})
	byCreated(out, func(t model.Tenant) time.Time { return t.CreatedAt }, func(t model.Tenant) string { return t.ID })
	return out, err
}

func (s *docStore) CreateTenant(_ context.Context, t model.Tenant) (*model.Tenant, error) {
	if err := prepareTenant(&t, now()); err != nil {
		return nil, err
	}
	err := s.write("create tenant", func(d *document) error {
		if indexOf(d.Tenants, func(o model.Tenant) bool { return o.ID == t.ID }) >= 0 {
			return conflict("tenant", "id", t.ID)
		}
		if err := checkTenantUnique(d, t); err != nil {
			return err
		}
		d.Tenants = append(d.Tenants, cloneTenant(t))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *docStore) UpdateTenant(_ context.Context, id string, patch model.TenantPatch) (*model.Tenant, error) {
	var out model.Tenant
	err := s.write("update tenant", func(d *document) error {
		i := indexOf(d.Tenants, func(t model.Tenant) bool { return t.ID == id })
		if i < 0 {
			return notFound("tenant", id)
		}
		t := d.Tenants[i]
		applyTenantPatch(&t, patch, now())
		if err := checkTenantUnique(d, t); err != nil {
			return err
		}
		d.Tenants[i] = t
		out = cloneTenant(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *docStore) DeleteTenant(_ context.Context, id string) error {
	return s.write("delete tenant", func(d *document) error {
		var n int
		d.Tenants, n = removeWhere(d.Tenants, func(t model.Tenant) bool { return t.ID == id })
		if n == 0 {
			return notFound("tenant", id)
		}
		return nil
	})
}

// @ USER

func checkEmailUnique(d *document, u model.User) error {
	for _, other := range d.Users {
		if other.ID != u.ID && normalizeEmail(other.Email) == u.Email {
			return conflict("user", "email", u.Email)
		}
	}
	return nil
}

func (s *docStore) FindUserByID(_ context.Context, id, tenantID string) (*model.User, error) {
	var out *model.User
	err := s.read("find user", func(d *document) error {
		i := indexOf(d.Users, func(u model.User) bool { return u.ID == id && owned(tenantID, u.TenantID) })
		if i < 0 {
			return notFound("user", id)
		}
		u := cloneUser(d.Users[i])
		out = &u
		return nil
	})
	return out, err
}

func (s *docStore) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	email = normalizeEmail(email)
	var out *model.User
	err := s.read("find user by email", func(d *document) error {
		i := indexOf(d.Users, func(u model.User) bool { return normalizeEmail(u.Email) == email })
		if i < 0 {
			return notFound("user", email)
		}
		u := cloneUser(d.Users[i])
		out = &u
		return nil
	})
	return out, err
}

func (s *docStore) GetUsersByTenant(_ context.Context, tenantID string) ([]model.User, error) {
	var out []model.User
	err := s.read("list users", func(d *document) error {
		out = cloneAll(filter(d.Users, func(u model.User) bool { return u.TenantID == tenantID }), cloneUser)
		return nil
	})
	byCreated(out, func(u model.User) time.Time { return u.CreatedAt }, func(u model.User) string { return u.ID })
	return out, err
}

func (s *docStore) CreateUser(_ context.Context, u model.User) (*model.User, error) {
	if err := prepareUser(&u, now()); err != nil {
		return nil, err
	}
	err := s.write("create user", func(d *document) error {
		if indexOf(d.Users, func(o model.User) bool { return o.ID == u.ID }) >= 0 {
			return conflict("user", "id", u.ID)
		}
		if err := checkEmailUnique(d, u); err != nil {
			return err
		}
		d.Users = append(d.Users, cloneUser(u))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *docStore) UpdateUser(_ context.Context, id string, patch model.UserPatch, tenantID string) (*model.User, error) {
	var out model.User
	err := s.write("update user", func(d *document) error {
		i := indexOf(d.Users, func(u model.User) bool { return u.ID == id && owned(tenantID, u.TenantID) })
		if i < 0 {
			return notFound("user", id)
		}
		u := d.Users[i]
		applyUserPatch(&u, patch, now())
		if err := checkEmailUnique(d, u); err != nil {
			return err
		}
		d.Users[i] = u
		out = cloneUser(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *docStore) DeleteUser(_ context.Context, id, tenantID string) error {
	return s.write("delete user", func(d *document) error {
		if indexOf(d.Users, func(u model.User) bool { return u.ID == id && owned(tenantID, u.TenantID) }) < 0 {
			return notFound("user", id)
		}
		d.UserSessions, _ = removeWhere(d.UserSessions, func(ss model.Session) bool { return ss.UserID == id })
		d.Users, _ = removeWhere(d.Users, func(u model.User) bool { return u.ID == id })
		return nil
	})
}

// @ SESSION

func (s *docStore) CreateSession(_ context.Context, sess model.Session) (*model.Session, error) {
	if err := prepareSession(&sess, now()); err != nil {
		return nil, err
	}
	err := s.write("create session", func(d *document) error {
		if indexOf(d.UserSessions, func(o model.Session) bool { return o.Token == sess.Token || o.ID == sess.ID }) >= 0 {
			return conflict("session", "token", "<token>")
		}
		d.UserSessions = append(d.UserSessions, sess)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *docStore) FindSessionByToken(_ context.Context, token string) (*model.Session, error) {
	at := now()
	var out *model.Session
	err := s.read("find session", func(d *document) error {
		i := indexOf(d.UserSessions, func(ss model.Session) bool {
			return ss.Token == token && ss.ExpiresAt.After(at)
		})
		if i < 0 {
			return notFound("session", "<token>")
		}
		ss := d.UserSessions[i]
		out = &ss
		return nil
	})
	return out, err
}

func (s *docStore) DeleteSession(_ context.Context, token string) error {
	return s.write("delete session", func(d *document) error {
		var n int
		d.UserSessions, n = removeWhere(d.UserSessions, func(ss model.Session) bool { return ss.Token == token })
		if n == 0 {
			return notFound("session", "<token>")
		}
		return nil
	})
}

func (s *docStore) DeleteUserSessions(_ context.Context, userID string) (int, error) {
	var n int
	err := s.write("delete user sessions", func(d *document) error {
		d.UserSessions, n = removeWhere(d.UserSessions, func(ss model.Session) bool { return ss.UserID == userID })
		return nil
	})
	return n, err
}

func (s *docStore) DeleteExpiredSessions(_ context.Context, at time.Time) (int, error) {
	var n int
	err := s.write("delete expired sessions", func(d *document) error {
		d.UserSessions, n = removeWhere(d.UserSessions, func(ss model.Session) bool { return !ss.ExpiresAt.After(at) })
		return nil
	})
	return n, err
}

// @ AUDIT

func (s *docStore) CreateAuditLog(_ context.Context, l model.AuditLog) (*model.AuditLog, error) {
	if err := prepareAuditLog(&l, now()); err != nil {
		return nil, err
	}
	err := s.write("create audit log", func(d *document) error {
		if indexOf(d.AuditLogs, func(o model.AuditLog) bool { return o.ID == l.ID }) >= 0 {
			return conflict("audit log", "id", l.ID)
		}
		d.AuditLogs = append(d.AuditLogs, cloneAuditLog(l))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *docStore) GetAuditLogsByTenant(_ context.Context, tenantID string, limit int) ([]model.AuditLog, error) {
	var out []model.AuditLog
	err := s.read("list audit logs", func(d *document) error {
		out = cloneAll(filter(d.AuditLogs, func(l model.AuditLog) bool { return l.TenantID == tenantID }), cloneAuditLog)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
