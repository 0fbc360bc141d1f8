package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signTestToken(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	key := []byte("test-secret")
	handler := AuthMiddleware(key)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, email, err := GetUserFromContext(r)
		if err != nil {
			t.Errorf("контекст не содержит данных сотрудника: %v", err)
		}
		if userID != 7 || email != "kasir@toko.id" {
			t.Errorf("данные сотрудника: got %d %s", userID, email)
		}
		w.WriteHeader(http.StatusOK)
	}))

	tokenString := signTestToken(t, key, jwt.MapClaims{
		"user_id": 7,
		"email":   "kasir@toko.id",
		"role":    "KASIR",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("статус с валидным токеном: got %d want %d", rr.Code, http.StatusOK)
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	handler := AuthMiddleware([]byte("test-secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/products", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("статус без токена: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsWrongKey(t *testing.T) {
	handler := AuthMiddleware([]byte("test-secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tokenString := signTestToken(t, []byte("other-key"), jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("статус с токеном на другом ключе: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole(t *testing.T) {
	key := []byte("test-secret")
	handler := AuthMiddleware(key)(RequireRole("ADMIN")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	// Кассиру доступ запрещен
	tokenString := signTestToken(t, key, jwt.MapClaims{
		"user_id": 7,
		"email":   "kasir@toko.id",
		"role":    "KASIR",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest("GET", "/api/backup", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("статус для кассира: got %d want %d", rr.Code, http.StatusForbidden)
	}

	// Администратору доступ разрешен
	tokenString = signTestToken(t, key, jwt.MapClaims{
		"user_id": 1,
		"email":   "admin@toko.id",
		"role":    "ADMIN",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req = httptest.NewRequest("GET", "/api/backup", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("статус для администратора: got %d want %d", rr.Code, http.StatusOK)
	}
}
