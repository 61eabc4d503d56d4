package cmd

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/herodex/internal/domain/compare"
	"github.com/okian/herodex/internal/domain/hero"
	. "github.com/smartystreets/goconvey/convey"
)

const catalogJSON = `[
  {"id": 1, "name": "Thinker", "image": "t.jpg",
   "powerstats": {"intelligence": 100, "strength": 18, "speed": 23, "durability": 28, "power": 32, "combat": 32}},
  {"id": 2, "name": "Brawler", "image": "b.jpg",
   "powerstats": {"intelligence": 90, "strength": 55, "speed": 43, "durability": 80, "power": 62, "combat": 82}}
]`

func execute(args ...string) (string, error) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDuel(t *testing.T) {
	Convey("Given a catalog file", t, func() {
		path := filepath.Join(t.TempDir(), "heroes.json")
		So(os.WriteFile(path, []byte(catalogJSON), 0o600), ShouldBeNil)

		Convey("When two heroes duel", func() {
			out, err := execute("--catalog", path, "1", "2")

			Convey("Then every category and the overall winner are printed", func() {
				So(err, ShouldBeNil)
				for _, c := range hero.Categories() {
					So(out, ShouldContainSubstring, string(c))
				}
				So(out, ShouldContainSubstring, "Thinker (#1)")
				So(out, ShouldContainSubstring, "overall: Brawler (1-5)")
			})
		})

		Convey("When a hero duels itself", func() {
			out, err := execute("-c", path, "2", "2")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "overall: tie (0-0)")
		})

		Convey("When an id is malformed", func() {
			_, err := execute("-c", path, "1", "abc")
			So(errors.Is(err, compare.ErrValidation), ShouldBeTrue)
		})

		Convey("When a hero is unknown", func() {
			_, err := execute("-c", path, "1", "404")
			So(errors.Is(err, hero.ErrNotFound), ShouldBeTrue)
		})

		Convey("When only one id is given", func() {
			_, err := execute("-c", path, "1")
			So(err, ShouldNotBeNil)
		})

		Convey("When listing", func() {
			out, err := execute("list", "-c", path)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Thinker")
			So(out, ShouldContainSubstring, "Brawler")
		})
	})

	Convey("Given a catalog served over HTTP", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(catalogJSON))
		}))
		defer srv.Close()

		out, err := execute("--catalog", srv.URL+"/heroes.json", "2", "1")
		So(err, ShouldBeNil)
		So(out, ShouldContainSubstring, "overall: Brawler (5-1)")
	})

	Convey("Given a missing catalog", t, func() {
		_, err := execute("-c", filepath.Join(t.TempDir(), "nope.json"), "1", "2")
		So(err, ShouldNotBeNil)
	})
}
