//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"gorm.io/gorm"

	"shared-finance-go/internal/app"
	"shared-finance-go/internal/config"
	"shared-finance-go/internal/db"
	"shared-finance-go/internal/repository/inmemory"
	"shared-finance-go/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	client *http.Client
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.Nop()
	cfg := config.Config{
		Env:  "test",
		HTTP: config.HTTPConfig{RequestTimeout: 5 * time.Second},
		DB:   config.DBConfig{Driver: config.DBDriverPostgres, DSN: dsn},
		Auth: config.AuthConfig{JWTSecret: "e2e-secret", TokenTTL: time.Hour},
		Cache: config.CacheConfig{
			Driver: config.CacheDriverMemory,
			TTL:    time.Minute,
		},
		App: config.AppConfig{TimeZone: "UTC"},
	}

	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Prepare(dbConn, cfg.DB.Driver, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	router, err := app.NewRouter(cfg, dbConn, app.Caches{
		Accounts:   inmemory.NewInMemoryAccountsCache(),
		Categories: inmemory.NewInMemoryCategoriesCache(),
	}, log)
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	return &testEnv{
		server: httptest.NewServer(router),
		db:     dbConn,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE expenses, credit_payments, subcategories, categories, account_members, accounts, users CASCADE",
	).Error
}

func (e *testEnv) requestJSON(t *testing.T, method, path, token string, payload interface{}, out interface{}) int {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			t.Fatalf("decode %s %s (%d): %v: %s", method, path, resp.StatusCode, err, string(respBody))
		}
	}
	return resp.StatusCode
}

type errorEnvelope struct {
	Error struct {
		Kind    string `json:"kind"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type sessionResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

type accountResponse struct {
	ID        string `json:"id"`
	AccessKey string `json:"access_key"`
}

type idResponse struct {
	ID string `json:"id"`
}

type creditPaymentResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Installments     int    `json:"installments"`
	InstallmentsPaid int    `json:"installments_paid"`
}

type expenseEnvelope struct {
	Expense struct {
		ID            string                 `json:"id"`
		Amount        float64                `json:"amount"`
		DayName       string                 `json:"day_name"`
		Month         int                    `json:"month"`
		Year          int                    `json:"year"`
		CreditPayment *creditPaymentResponse `json:"credit_payment"`
	} `json:"expense"`
}

type statisticsResponse struct {
	TotalAmount                  float64            `json:"totalAmount"`
	TotalAmountsForCategories    map[string]float64 `json:"totalAmountsForCategories"`
	TotalAmountsForSubcategories map[string]float64 `json:"totalAmountsForSubcategories"`
}

func register(t *testing.T, env *testEnv, name string) sessionResponse {
	t.Helper()

	var session sessionResponse
	status := env.requestJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    name + "@example.com",
		"password": "secret-password",
	}, &session)
	if status != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", name, status)
	}
	return session
}

func accountPath(accountID, suffix string) string {
	return fmt.Sprintf("/api/accounts/%s%s", accountID, suffix)
}

func TestE2EHealthAndAuth(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	var health map[string]string
	if status := env.requestJSON(t, http.MethodGet, "/api/health", "", nil, &health); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if health["status"] != "ok" {
		t.Fatalf("expected ok, got %q", health["status"])
	}

	var errResp errorEnvelope
	if status := env.requestJSON(t, http.MethodGet, "/api/auth/me", "", nil, &errResp); status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if errResp.Error.Code != "invalid_token" {
		t.Fatalf("expected invalid_token, got %q", errResp.Error.Code)
	}

	session := register(t, env, "ana")
	var login sessionResponse
	status := env.requestJSON(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "secret-password",
	}, &login)
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", status)
	}
	if login.User.ID != session.User.ID {
		t.Fatalf("expected same user, got %q and %q", login.User.ID, session.User.ID)
	}

	status = env.requestJSON(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "ana",
		"email":    "ana@example.com",
		"password": "secret-password",
	}, &errResp)
	if status != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", status)
	}
}

func TestE2EExpensesAndCreditPayments(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	owner := register(t, env, "ana")
	member := register(t, env, "bruno")

	var account accountResponse
	if status := env.requestJSON(t, http.MethodPost, "/api/accounts", owner.Token, map[string]string{"name": "Casa"}, &account); status != http.StatusCreated {
		t.Fatalf("create account: expected 201, got %d", status)
	}
	if status := env.requestJSON(t, http.MethodPost, "/api/accounts/join", member.Token, map[string]string{"access_key": account.AccessKey}, nil); status != http.StatusOK {
		t.Fatalf("join account: expected 200, got %d", status)
	}

	var category, subcategory idResponse
	if status := env.requestJSON(t, http.MethodPost, accountPath(account.ID, "/categories"), owner.Token, map[string]string{"name": "Hogar"}, &category); status != http.StatusCreated {
		t.Fatalf("create category: expected 201, got %d", status)
	}
	if status := env.requestJSON(t, http.MethodPost, accountPath(account.ID, "/categories/"+category.ID+"/subcategories"), owner.Token, map[string]string{"name": "Muebles"}, &subcategory); status != http.StatusCreated {
		t.Fatalf("create subcategory: expected 201, got %d", status)
	}

	now := time.Now().UnixMilli()
	var created expenseEnvelope
	status := env.requestJSON(t, http.MethodPost, accountPath(account.ID, "/expenses"), owner.Token, map[string]interface{}{
		"amount":              300,
		"complete_date":       now,
		"installments":        3,
		"name_credit_payment": "TV",
		"categoryId":          category.ID,
		"subcategoryId":       subcategory.ID,
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create expense: expected 201, got %d", status)
	}
	payment := created.Expense.CreditPayment
	if payment == nil || payment.InstallmentsPaid != 1 || payment.Installments != 3 || payment.Name != "TV" {
		t.Fatalf("unexpected credit payment: %+v", payment)
	}

	var paid expenseEnvelope
	for i := 0; i < 2; i++ {
		status = env.requestJSON(t, http.MethodPost, accountPath(account.ID, "/credit-payments/"+payment.ID+"/pay"), owner.Token, map[string]interface{}{
			"amount":        300,
			"complete_date": now,
		}, &paid)
		if status != http.StatusCreated {
			t.Fatalf("pay installment: expected 201, got %d", status)
		}
	}
	if paid.Expense.CreditPayment == nil || paid.Expense.CreditPayment.InstallmentsPaid != 3 {
		t.Fatalf("expected 3 installments paid, got %+v", paid.Expense.CreditPayment)
	}

	var errResp errorEnvelope
	status = env.requestJSON(t, http.MethodPatch, accountPath(account.ID, "/expenses/"+created.Expense.ID), member.Token, map[string]interface{}{"amount": 1}, &errResp)
	if status != http.StatusForbidden {
		t.Fatalf("member update: expected 403, got %d", status)
	}

	var stats statisticsResponse
	status = env.requestJSON(t, http.MethodGet, accountPath(account.ID, "/expenses/statistics?categories="+category.ID), owner.Token, nil, &stats)
	if status != http.StatusOK {
		t.Fatalf("statistics: expected 200, got %d", status)
	}
	if stats.TotalAmount != 900 || stats.TotalAmountsForSubcategories["Muebles"] != 900 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}

	status = env.requestJSON(t, http.MethodGet, accountPath(account.ID, "/expenses/statistics?subcategories="+subcategory.ID), owner.Token, nil, &errResp)
	if status != http.StatusBadRequest {
		t.Fatalf("statistics without categories: expected 400, got %d", status)
	}

	if status := env.requestJSON(t, http.MethodDelete, accountPath(account.ID, "/credit-payments/"+payment.ID), owner.Token, nil, nil); status != http.StatusOK {
		t.Fatalf("delete credit payment: expected 200, got %d", status)
	}

	var remaining int64
	if err := env.db.Table("expenses").Where("credit_payment_id = ?", payment.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("count expenses: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected linked expenses removed, got %d", remaining)
	}
}
