//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	mysqlstore "luxe_haven/internal/storage/mysql"
)

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=frontdesk",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/frontdesk?parseTime=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestStore_MySQL_DurableAndTransient(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	s := mysqlstore.New(db, "device-1")
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	other := mysqlstore.New(db, "device-2")

	if err := s.Set(ctx, "accessToken", "tok-1", 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "accessToken", "tok-2", 0); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := s.Get(ctx, "accessToken")
	if err != nil || !ok || v != "tok-2" {
		t.Fatalf("get: %q %v %v", v, ok, err)
	}
	if _, ok, _ := other.Get(ctx, "accessToken"); ok {
		t.Fatalf("origins must not share keys")
	}

	if err := s.Set(ctx, "bookingData", `{"roomId":"r1"}`, time.Second); err != nil {
		t.Fatalf("set ttl: %v", err)
	}
	time.Sleep(1500 * time.Millisecond)
	if _, ok, _ := s.Get(ctx, "bookingData"); ok {
		t.Fatalf("expired value should be invisible")
	}
	if n, err := s.Purge(ctx); err != nil || n != 1 {
		t.Fatalf("purge: n=%d err=%v", n, err)
	}

	if err := s.Del(ctx, "accessToken", "refreshToken", "user"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "accessToken"); ok {
		t.Fatalf("expected deleted")
	}
}
