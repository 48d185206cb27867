package supervisor_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/stagebook/internal/supervisor"
	"github.com/okian/stagebook/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.InitWith(io.Discard, logger.FormatText); err != nil {
		panic(err)
	}
}

// flaky fails on its first run and then blocks until stopped.
type flaky struct {
	runs atomic.Int32
}

func (f *flaky) Serve(ctx context.Context) error {
	if f.runs.Add(1) == 1 {
		return errors.New("boom")
	}
	<-ctx.Done()
	return nil
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestTree(t *testing.T) {
	Convey("Given a supervisor tree", t, func() {
		tree := supervisor.NewTree(slog.New(slog.NewTextHandler(io.Discard, nil)), supervisor.TreeConfig{
			FailureBackoff: 10 * time.Millisecond,
		})
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		Convey("When a ticker and a failing service are supervised", func() {
			var ticks atomic.Int32
			tree.AddWorker(supervisor.NewTicker("sampler", 5*time.Millisecond, func(context.Context) {
				ticks.Add(1)
			}))
			f := &flaky{}
			tree.AddAPI(f)
			done := tree.ServeBackground(ctx)

			Convey("Then the ticker runs and the failed service is restarted", func() {
				So(waitFor(func() bool { return ticks.Load() >= 3 }), ShouldBeTrue)
				So(waitFor(func() bool { return f.runs.Load() >= 2 }), ShouldBeTrue)
				cancel()
				select {
				case <-done:
				case <-time.After(3 * time.Second):
					t.Fatal("tree did not stop")
				}
			})
		})
	})
}

func TestHTTPServer(t *testing.T) {
	Convey("Given an HTTP server service on a free port", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("pong"))
		})
		svc := supervisor.NewHTTPServer(&http.Server{Addr: "127.0.0.1:0", Handler: mux, ReadHeaderTimeout: time.Second}, time.Second, logger.Get())
		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		Convey("When it is ready", func() {
			var addr string
			select {
			case addr = <-svc.Ready():
			case <-time.After(3 * time.Second):
				t.Fatal("server never became ready")
			}

			Convey("Then it answers requests and stops on cancel", func() {
				resp, err := http.Get("http://" + addr + "/ping")
				So(err, ShouldBeNil)
				body, _ := io.ReadAll(resp.Body)
				_ = resp.Body.Close()
				So(string(body), ShouldEqual, "pong")

				cancel()
				select {
				case err := <-errCh:
					So(err, ShouldBeNil)
				case <-time.After(3 * time.Second):
					t.Fatal("server did not stop")
				}
			})
		})
	})

	Convey("Given an HTTP server on an invalid address", t, func() {
		svc := supervisor.NewHTTPServer(&http.Server{Addr: "256.0.0.1:99999", ReadHeaderTimeout: time.Second}, time.Second, logger.Get())

		Convey("Then Serve fails fast", func() {
			So(svc.Serve(context.Background()), ShouldNotBeNil)
		})
	})
}
