package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/stagebook/pkg/metrics"
)

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Open creates the KV backend named by driver. The result records operation
// latency and errors in metrics.
func Open(ctx context.Context, driver string, opts ...Option) (KV, error) {
	o := openOptions{
		mongoURI:        "mongodb://localhost:27017",
		mongoDatabase:   "stagebook",
		mongoCollection: "kv",
	}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		kv  KV
		err error
	)
	switch driver {
	case DriverMemory, "":
		driver = DriverMemory
		kv = NewMemoryKV()
	case DriverBadger:
		kv, err = OpenBadgerKV(o.path)
	case DriverSQLite:
		if err = ensureParent(o.path); err == nil {
			kv, err = OpenSQLiteKV(ctx, o.path)
		}
	case DriverMongo:
		kv, err = OpenMongoKV(ctx, o.mongoURI, o.mongoDatabase, o.mongoCollection)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if err != nil {
		return nil, err
	}
	return &instrumentedKV{next: kv, driver: driver}, nil
}

func ensureParent(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}

// instrumentedKV records per-operation metrics around another KV.
type instrumentedKV struct {
	next   KV
	driver string
}

func (i *instrumentedKV) observe(op string, start time.Time, err error) {
	metrics.RecordStoreOperation(i.driver, op, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordStoreError(i.driver, op)
	}
}

func (i *instrumentedKV) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := i.next.Get(ctx, key)
	i.observe("get", start, err)
	return v, ok, err
}

func (i *instrumentedKV) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := i.next.Set(ctx, key, value)
	i.observe("set", start, err)
	return err
}

func (i *instrumentedKV) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Remove(ctx, key)
	i.observe("remove", start, err)
	return err
}

func (i *instrumentedKV) Close() error {
	return i.next.Close()
}
