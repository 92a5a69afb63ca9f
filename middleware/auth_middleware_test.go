package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gradkart/database"
	"gradkart/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

func setupTestDB(t *testing.T) {
	// Use in-memory database for tests
	if err := db.InitDB(":memory:"); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
}

func cleanupTestDB(t *testing.T) {
	db.CloseDB()
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", AuthMiddleware(), ApprovedMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/guarded", ShutdownGuard(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/guarded", ShutdownGuard(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func sessionCookie(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return &http.Cookie{Name: "token", Value: signed}
}

func probe(t *testing.T, r *gin.Engine, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApprovedMiddlewareLetsApprovedUsersThrough(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)
	Init([]byte("test-secret"))

	user, err := models.CreateUser("Rahul", "rahul@test.in", "9000000000", "IIT Delhi", "hash", "email")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := models.SetUserStatus(user.ID, models.UserApproved); err != nil {
		t.Fatalf("SetUserStatus failed: %v", err)
	}

	w := probe(t, testRouter(), sessionCookie(t, user.ID))
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for approved user, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBlockedWinsOverApproved(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)
	Init([]byte("test-secret"))

	user, err := models.CreateUser("Rahul", "rahul@test.in", "9000000000", "IIT Delhi", "hash", "email")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := models.SetUserStatus(user.ID, models.UserApproved); err != nil {
		t.Fatalf("SetUserStatus failed: %v", err)
	}
	if err := models.BlockUser(user.ID, "Spam listings"); err != nil {
		t.Fatalf("BlockUser failed: %v", err)
	}

	w := probe(t, testRouter(), sessionCookie(t, user.ID))
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for blocked user, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["redirect"] != "/blocked" {
		t.Errorf("Expected redirect /blocked even though approved, got %v", body["redirect"])
	}
}

func TestPendingUserIsGated(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)
	Init([]byte("test-secret"))

	user, err := models.CreateUser("Rahul", "rahul@test.in", "9000000000", "IIT Delhi", "hash", "email")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	w := probe(t, testRouter(), sessionCookie(t, user.ID))
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for pending user, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/pending") {
		t.Errorf("Expected pending redirect, got %s", w.Body.String())
	}
}

func TestMissingTokenRejected(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)
	Init([]byte("test-secret"))

	w := probe(t, testRouter(), nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", w.Code)
	}
}

func TestShutdownGuardBlocksWritesOnly(t *testing.T) {
	setupTestDB(t)
	defer cleanupTestDB(t)
	Init([]byte("test-secret"))

	if err := models.SetShutdownSettings(models.ShutdownSettings{Enabled: true, Message: "Back soon"}); err != nil {
		t.Fatalf("SetShutdownSettings failed: %v", err)
	}
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 for write during shutdown, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected reads to pass during shutdown, got %d", w.Code)
	}
}
