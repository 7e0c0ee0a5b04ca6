package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "test_session", time.Hour, false), mr
}

func requestWithCookie(name, value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: name, Value: value})
	return req
}

func TestSessionRoundTrip(t *testing.T) {
	sm, _ := newManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.Authenticated() {
		t.Fatal("fresh session must be anonymous")
	}

	sess.SetIdentity(Identity{UserID: 7, Username: "ayse", Role: "ADMIN", Token: "jwt"})
	rec := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value == "" {
		t.Fatalf("expected one session cookie, got %v", cookies)
	}

	restored, err := sm.Load(ctx, requestWithCookie("test_session", cookies[0].Value))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !restored.Authenticated() {
		t.Fatal("restored session must be authenticated")
	}
	if got := restored.Identity(); got.UserID != 7 || got.Username != "ayse" {
		t.Fatalf("identity mismatch: %+v", got)
	}
}

func TestSessionCorruptPayloadTreatedAsAnonymous(t *testing.T) {
	sm, mr := newManager(t)
	ctx := context.Background()

	mr.Set("session:broken-id", "{not json")

	sess, err := sm.Load(ctx, requestWithCookie("test_session", "broken-id"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.Authenticated() {
		t.Fatal("corrupt payload must not authenticate")
	}
	if mr.Exists("session:broken-id") {
		t.Fatal("corrupt key should have been removed")
	}
}

func TestSessionUnknownCookieStartsFresh(t *testing.T) {
	sm, _ := newManager(t)

	sess, err := sm.Load(context.Background(), requestWithCookie("test_session", "expired-id"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.Authenticated() {
		t.Fatal("unknown session id must be anonymous")
	}
	if sess.ID != "expired-id" {
		t.Fatalf("cookie id should be reused, got %q", sess.ID)
	}
}

func TestSessionDestroyIsIdempotent(t *testing.T) {
	sm, mr := newManager(t)
	ctx := context.Background()

	sess, _ := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	sess.SetIdentity(Identity{UserID: 3, Username: "mehmet", Token: "jwt"})
	rec := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	sm.Destroy(sess)
	if err := sm.Commit(ctx, httptest.NewRecorder(), sess); err != nil {
		t.Fatalf("commit after destroy: %v", err)
	}
	if mr.Exists("session:" + sess.ID) {
		t.Fatal("destroyed session must be deleted from redis")
	}

	// second logout must not fail
	sm.Destroy(sess)
	rec2 := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec2, sess); err != nil {
		t.Fatalf("second destroy commit: %v", err)
	}
	cookies := rec2.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected clearing cookie, got %v", cookies)
	}
	if sess.Identity() != nil {
		t.Fatal("identity must be cleared")
	}
}

func TestAuthenticatedRequiresUserID(t *testing.T) {
	sess := &Session{}
	sess.SetIdentity(Identity{Username: "ghost"})
	if sess.Authenticated() {
		t.Fatal("identity without user id must not authenticate")
	}
}
