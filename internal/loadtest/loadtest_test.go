package loadtest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/herodex/internal/adapters/http/api"
	repository "github.com/okian/herodex/internal/adapters/repository"
	service "github.com/okian/herodex/internal/app"
	"github.com/okian/herodex/internal/domain/compare"
	"github.com/okian/herodex/internal/domain/hero"
	"github.com/okian/herodex/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

var roster = []hero.Entity{
	{ID: 1, Name: "Thinker", Powerstats: hero.Statline{Intelligence: 100, Strength: 18, Speed: 23, Durability: 28, Power: 32, Combat: 32}},
	{ID: 2, Name: "Brawler", Powerstats: hero.Statline{Intelligence: 90, Strength: 55, Speed: 43, Durability: 80, Power: 62, Combat: 82}},
	{ID: 3, Name: "Even", Powerstats: hero.Statline{Intelligence: 50, Strength: 50, Speed: 50, Durability: 50, Power: 50, Combat: 50}},
	{ID: 7, Name: "Odd", Powerstats: hero.Statline{Intelligence: 50, Strength: 49, Speed: 51, Durability: 50, Power: 0, Combat: 100}},
}

func newHerodex(t *testing.T) *httptest.Server {
	t.Helper()
	_ = logger.Init(logger.WithWriter(io.Discard))
	store, err := repository.NewMemoryStore(roster)
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	svc := service.New(service.WithStore(store), service.WithLogger(logger.Get()))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc, api.WithLogger(logger.Get())).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newFakeHerodex serves the catalog and the compare error contract, and
// hands every well-formed pair to pair.
func newFakeHerodex(t *testing.T, pair http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","heroes":4}`))
	})
	mux.HandleFunc("GET /api/heroes", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(roster)
	})
	mux.HandleFunc("GET /api/heroes/compare", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()
		switch {
		case q.Get("id2") == "":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"bad_request","message":"both hero IDs are required and must be valid"}`))
		case q.Get("id2") == "1000007":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"not_found","message":"hero not found"}`))
		default:
			pair(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newLyingHerodex answers every pair with the same fixed result.
func newLyingHerodex(t *testing.T) *httptest.Server {
	return newFakeHerodex(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id1":1,"id2":2,"categories":[],"overall_winner":1}`))
	})
}

// newBrokenHerodex answers every pair with a server error.
func newBrokenHerodex(t *testing.T) *httptest.Server {
	return newFakeHerodex(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":"internal_error","message":"internal error"}`))
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running herodex service", t, func() {
		srv := newHerodex(t)

		Convey("When a load run compares random pairs", func() {
			stats, err := Run(context.Background(), &Config{
				BaseURL:  srv.URL,
				Requests: 50,
				Workers:  4,
				Timeout:  5 * time.Second,
				Seed:     42,
			})

			Convey("Then every answer agrees with the catalog", func() {
				So(err, ShouldBeNil)
				So(stats.HeroesFetched, ShouldEqual, len(roster))
				So(stats.Pairs, ShouldEqual, 50)
				So(stats.Requests, ShouldEqual, 100)
				So(stats.Successful, ShouldEqual, 100)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Mismatches, ShouldEqual, 0)
			})
		})

		Convey("When the rate is capped", func() {
			stats, err := Run(context.Background(), &Config{
				BaseURL:  srv.URL,
				Requests: 5,
				Workers:  1,
				RPS:      1000,
				Timeout:  5 * time.Second,
				Seed:     7,
			})
			So(err, ShouldBeNil)
			So(stats.Requests, ShouldEqual, 10)
		})
	})

	Convey("Given a service that answers compare wrongly", t, func() {
		srv := newLyingHerodex(t)

		stats, err := Run(context.Background(), &Config{
			BaseURL:  srv.URL,
			Requests: 10,
			Workers:  2,
			Timeout:  5 * time.Second,
			Seed:     1,
			Verbose:  true,
		})

		Convey("Then the run reports mismatches", func() {
			So(errors.Is(err, ErrMismatch), ShouldBeTrue)
			So(stats.Mismatches, ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a service that fails every comparison", t, func() {
		srv := newBrokenHerodex(t)

		stats, err := Run(context.Background(), &Config{
			BaseURL:  srv.URL,
			Requests: 20,
			Workers:  4,
			Timeout:  5 * time.Second,
			Seed:     3,
		})

		Convey("Then the run fails and counts every request as failed", func() {
			So(errors.Is(err, ErrRequestsFailed), ShouldBeTrue)
			So(errors.Is(err, ErrMismatch), ShouldBeFalse)
			So(stats.Failed, ShouldEqual, 20)
			So(stats.Successful, ShouldEqual, 0)
			So(stats.Mismatches, ShouldEqual, 0)
		})
	})

	Convey("Given nothing listening", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		_, err := Run(context.Background(), &Config{
			BaseURL:  srv.URL,
			Requests: 1,
			Workers:  1,
			Timeout:  time.Second,
		})
		So(err, ShouldNotBeNil)
	})

	Convey("Given an invalid configuration", t, func() {
		_, err := Run(context.Background(), &Config{BaseURL: "http://x", Requests: 0, Workers: 1, Timeout: time.Second})
		So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
	})
}

func TestGeneratePairs(t *testing.T) {
	Convey("Given a roster", t, func() {
		Convey("When generating with the same seed twice", func() {
			a := GeneratePairs(roster, 30, 99)
			b := GeneratePairs(roster, 30, 99)

			Convey("Then the pairs are identical", func() {
				So(a, ShouldResemble, b)
				So(a, ShouldHaveLength, 30)
			})

			Convey("Then every tenth pair is a self comparison", func() {
				for i := selfPairEvery - 1; i < len(a); i += selfPairEvery {
					So(a[i].ID1, ShouldEqual, a[i].ID2)
				}
			})
		})

		Convey("When the roster is empty", func() {
			So(GeneratePairs(nil, 10, 1), ShouldBeEmpty)
		})
	})
}

func TestVerification(t *testing.T) {
	Convey("Given the expected comparison of two heroes", t, func() {
		want := Expect(roster[0], roster[1])

		Convey("Then it renders every category in order", func() {
			So(want.Categories, ShouldHaveLength, 6)
			So(want.Categories[0].Name, ShouldEqual, "intelligence")
			So(compare.Winner(want.Overall), ShouldEqual, compare.Second)
		})

		Convey("Then its mirror equals the reverse comparison", func() {
			So(Verify(Mirror(want), Expect(roster[1], roster[0])), ShouldBeNil)
		})

		Convey("When a category winner differs", func() {
			got := Expect(roster[0], roster[1])
			got.Categories[3].Winner = Winner(compare.Tie)
			So(errors.Is(Verify(want, got), ErrMismatch), ShouldBeTrue)
		})

		Convey("When the overall winner differs", func() {
			got := Expect(roster[0], roster[1])
			got.Overall = Winner(compare.First)
			So(errors.Is(Verify(want, got), ErrMismatch), ShouldBeTrue)
		})
	})
}

func TestWinnerDecoding(t *testing.T) {
	Convey("Given wire winners", t, func() {
		var c Comparison
		err := json.Unmarshal([]byte(`{"categories":[{"winner":1},{"winner":2},{"winner":"tie"}],"overall_winner":"tie"}`), &c)
		So(err, ShouldBeNil)
		So(compare.Winner(c.Categories[0].Winner), ShouldEqual, compare.First)
		So(compare.Winner(c.Categories[1].Winner), ShouldEqual, compare.Second)
		So(compare.Winner(c.Categories[2].Winner), ShouldEqual, compare.Tie)
		So(compare.Winner(c.Overall), ShouldEqual, compare.Tie)

		var w Winner
		So(errors.Is(w.UnmarshalJSON([]byte(`"draw"`)), ErrBadWinner), ShouldBeTrue)
	})
}
