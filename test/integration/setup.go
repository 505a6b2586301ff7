package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"victus-storefront/internal/config"
	"victus-storefront/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a migrated test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL container, connects to it and applies the
// embedded migrations.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Enabled:         true,
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		pool.Close()
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB removes every recorded checkout attempt.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	if _, err := pool.Exec(context.Background(), "DELETE FROM checkout_attempts"); err != nil {
		t.Logf("failed to clean checkout_attempts: %v", err)
	}
}

// FakeBackend is an in-process stand-in for the storefront REST backend.
// It serves one customer cart and numbers orders from 1000.
type FakeBackend struct {
	Server *httptest.Server

	mu          sync.Mutex
	orders      map[string]string
	nextOrderID atomic.Int64
	Calls       map[string]int

	// FailOrderLookup makes GET /orders/{id} answer 503.
	FailOrderLookup atomic.Bool
}

// NewFakeBackend starts a fake backend that is closed with the test.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	fb := &FakeBackend{
		orders: make(map[string]string),
		Calls:  make(map[string]int),
	}
	fb.nextOrderID.Store(1000)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/carts/user/{email}", func(w http.ResponseWriter, r *http.Request) {
		fb.count("get_cart")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Cart not found"}`))
	})
	mux.HandleFunc("POST /api/carts", func(w http.ResponseWriter, r *http.Request) {
		fb.count("create_cart")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"cartId":5,"email":"ana@example.com","totalPrice":0,"isActive":true}`))
	})
	mux.HandleFunc("POST /api/cart-products", func(w http.ResponseWriter, r *http.Request) {
		fb.count("add_cart_product")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("PUT /api/carts/{id}/calculate-total", func(w http.ResponseWriter, r *http.Request) {
		fb.count("calculate_total")
		_, _ = w.Write([]byte(`{"cart_id":5,"total_price":150,"item_count":3}`))
	})
	mux.HandleFunc("POST /api/orders/from-cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		fb.count("create_order_from_cart")
		id := fb.nextOrderID.Add(1)
		body := `{"orderId":` + itoa(id) + `,"email":"ana@example.com","totalPrice":150,"orderStatus":"PENDING","orderProducts":[]}`
		fb.mu.Lock()
		fb.orders[itoa(id)] = body
		fb.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Order created","order_id":` + itoa(id) + `,"total_price":150,"order_status":"PENDING"}`))
	})
	mux.HandleFunc("GET /api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		fb.count("get_order")
		if fb.FailOrderLookup.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fb.mu.Lock()
		body, ok := fb.orders[r.PathValue("id")]
		fb.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Order not found"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	})

	fb.Server = httptest.NewServer(mux)
	t.Cleanup(fb.Server.Close)
	return fb
}

// BaseURL is the value for BACKEND_BASE_URL.
func (fb *FakeBackend) BaseURL() string {
	return fb.Server.URL + "/api"
}

// CallCount returns how often the named endpoint was hit.
func (fb *FakeBackend) CallCount(name string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.Calls[name]
}

func (fb *FakeBackend) count(name string) {
	fb.mu.Lock()
	fb.Calls[name]++
	fb.mu.Unlock()
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
