package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	adminauthsvc "github.com/ivankudzin/svcmarket/internal/services/adminauth"
)

const adminSessionPrefix = "admin_sessions:"

type SessionRepo struct {
	client *goredis.Client
}

func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) Create(ctx context.Context, session adminauthsvc.SessionRecord, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(session.SID) == "" || session.AdminID <= 0 || ttl <= 0 {
		return adminauthsvc.ErrInvalidInput
	}

	key := sessionKey(session.SID)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"admin_id": session.AdminID,
		"email":    session.Email,
		"name":     session.Name,
		"role":     session.Role,
	})
	pipe.Expire(ctx, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create admin session: %w", err)
	}

	return nil
}

// Touch reads the session and slides its expiry forward, so an admin stays
// signed in while actively working.
func (r *SessionRepo) Touch(ctx context.Context, sid string, ttl time.Duration) (adminauthsvc.SessionRecord, error) {
	if r.client == nil {
		return adminauthsvc.SessionRecord{}, fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" {
		return adminauthsvc.SessionRecord{}, adminauthsvc.ErrInvalidInput
	}

	values, err := r.client.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return adminauthsvc.SessionRecord{}, fmt.Errorf("get admin session: %w", err)
	}
	if len(values) == 0 {
		return adminauthsvc.SessionRecord{}, adminauthsvc.ErrSessionNotFound
	}

	adminID, err := strconv.ParseInt(values["admin_id"], 10, 64)
	if err != nil || adminID <= 0 {
		return adminauthsvc.SessionRecord{}, adminauthsvc.ErrSessionNotFound
	}

	if ttl > 0 {
		_ = r.client.Expire(ctx, sessionKey(sid), ttl).Err()
	}

	return adminauthsvc.SessionRecord{
		SID:     sid,
		AdminID: adminID,
		Email:   values["email"],
		Name:    values["name"],
		Role:    values["role"],
	}, nil
}

func (r *SessionRepo) Delete(ctx context.Context, sid string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(sid) == "" {
		return adminauthsvc.ErrInvalidInput
	}

	if err := r.client.Del(ctx, sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("delete admin session: %w", err)
	}

	return nil
}

func sessionKey(sid string) string {
	return adminSessionPrefix + sid
}
