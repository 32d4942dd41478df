package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fermano/TennisPulse/internal/adapters/http/api"
	"github.com/fermano/TennisPulse/internal/adapters/registry"
	"github.com/fermano/TennisPulse/internal/aggregate"
	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/internal/domain/window"
)

// Mock implementations for testing
type mockDeps struct {
	enqueueSuccess bool
	enqueued       []model.MatchCompletedEvent

	wins        []aggregate.WinsEntry
	performance []aggregate.PerformanceEntry
	dashboard   aggregate.Dashboard
	timeline    aggregate.Timeline
	reg         *registry.Registry
}

func (m *mockDeps) Enqueue(ctx context.Context, event model.MatchCompletedEvent) bool {
	if m.enqueueSuccess {
		m.enqueued = append(m.enqueued, event)
		return true
	}
	return false
}

func (m *mockDeps) TopWins(ctx context.Context, w window.Window, limit int) ([]aggregate.WinsEntry, error) {
	if limit < len(m.wins) {
		return m.wins[:limit], nil
	}
	return m.wins, nil
}

func (m *mockDeps) TopPerformance(ctx context.Context, w window.Window, limit int) ([]aggregate.PerformanceEntry, error) {
	return m.performance, nil
}

func (m *mockDeps) Highlights(ctx context.Context, w window.Window) (aggregate.Dashboard, error) {
	return m.dashboard, nil
}

func (m *mockDeps) Timeline(ctx context.Context, playerID string, w window.Window) (aggregate.Timeline, error) {
	tl := m.timeline
	tl.PlayerID = playerID
	tl.Window = w
	return tl, nil
}

func (m *mockDeps) Registry() *registry.Registry {
	return m.reg
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestServer(t *testing.T, deps *mockDeps) *http.ServeMux {
	t.Helper()
	if deps.reg == nil {
		reg, err := registry.Open(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("open registry: %v", err)
		}
		t.Cleanup(func() { reg.Close() })
		deps.reg = reg
	}
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"records": 0}}, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestPostEvents(t *testing.T) {
	Convey("Given the events endpoint", t, func() {
		deps := &mockDeps{enqueueSuccess: true}
		mux := newTestServer(t, deps)

		body := `{"matchId":"m1","winnerId":"p1","finalScore":"6-4 6-4","playerStats":[{"playerId":"p1","firstServeIn":70}]}`

		Convey("A valid event is accepted", func() {
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusAccepted)
			So(deps.enqueued, ShouldHaveLength, 1)
			So(deps.enqueued[0].MatchID, ShouldEqual, "m1")
		})

		Convey("Malformed JSON is rejected", func() {
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader("{nope"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A missing matchId is rejected", func() {
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"winnerId":"p1"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Backpressure yields 429", func() {
			deps.enqueueSuccess = false
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
		})

		Convey("GET is not routed", func() {
			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRankings(t *testing.T) {
	Convey("Given the ranking endpoints", t, func() {
		deps := &mockDeps{
			wins: []aggregate.WinsEntry{
				{PlayerID: "p1", PlayerName: "Ana", Wins: 4},
				{PlayerID: "p2", PlayerName: "Bruno", Wins: 2},
			},
			performance: []aggregate.PerformanceEntry{
				{PlayerID: "p1", PlayerName: "Ana", AverageScore: 2.5, Matches: 3},
			},
		}
		mux := newTestServer(t, deps)

		Convey("Wins ranking returns entries", func() {
			req := httptest.NewRequest(http.MethodGet, "/rankings/wins?window=CURRENT_YEAR&limit=10", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			var out []aggregate.WinsEntry
			So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
			So(out, ShouldHaveLength, 2)
			So(out[0].PlayerName, ShouldEqual, "Ana")
		})

		Convey("Limit defaults when absent", func() {
			req := httptest.NewRequest(http.MethodGet, "/rankings/wins", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
		})

		Convey("An unknown window is rejected", func() {
			req := httptest.NewRequest(http.MethodGet, "/rankings/wins?window=LAST_CENTURY", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A limit above the cap is rejected", func() {
			req := httptest.NewRequest(http.MethodGet, "/rankings/performance?limit=5000", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A non-numeric limit is rejected", func() {
			req := httptest.NewRequest(http.MethodGet, "/rankings/performance?limit=abc", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Performance ranking returns entries", func() {
			req := httptest.NewRequest(http.MethodGet, "/rankings/performance?limit=5", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			var out []aggregate.PerformanceEntry
			So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
			So(out[0].AverageScore, ShouldAlmostEqual, 2.5)
		})
	})
}

func TestHighlightsEndpoint(t *testing.T) {
	Convey("Given the highlights endpoint", t, func() {
		deps := &mockDeps{
			dashboard: aggregate.Dashboard{
				Window: window.AllTime,
				Highlights: map[string]aggregate.Highlight{
					aggregate.CategoryBestServe: {PlayerID: "p1", PlayerName: "Ana", Score: 91},
				},
			},
		}
		mux := newTestServer(t, deps)

		Convey("The dashboard is returned as JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/highlights?window=ALL_TIME", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			var out aggregate.Dashboard
			So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
			So(out.Highlights[aggregate.CategoryBestServe].PlayerName, ShouldEqual, "Ana")
		})

		Convey("An unknown window is rejected", func() {
			req := httptest.NewRequest(http.MethodGet, "/highlights?window=nope", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestTimelineEndpoint(t *testing.T) {
	Convey("Given the timeline endpoint", t, func() {
		deps := &mockDeps{}
		mux := newTestServer(t, deps)

		Convey("The player id is taken from the path", func() {
			req := httptest.NewRequest(http.MethodGet, "/players/p42/timeline?window=LAST_6_MONTHS", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			var out aggregate.Timeline
			So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
			So(out.PlayerID, ShouldEqual, "p42")
			So(out.Window, ShouldEqual, window.Last6Months)
		})
	})
}

func TestRegistryEndpoints(t *testing.T) {
	Convey("Given the registry endpoints", t, func() {
		deps := &mockDeps{enqueueSuccess: true}
		mux := newTestServer(t, deps)

		postJSON := func(path, body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("Clubs and players can be created and fetched", func() {
			rec := postJSON("/clubs", `{"name":"Centre Court","city":"Porto"}`)
			So(rec.Code, ShouldEqual, http.StatusCreated)
			var club registry.Club
			So(json.Unmarshal(rec.Body.Bytes(), &club), ShouldBeNil)
			So(club.ID, ShouldNotBeEmpty)

			rec = postJSON("/players", `{"name":"Ana Silva","handedness":"LEFT"}`)
			So(rec.Code, ShouldEqual, http.StatusCreated)
			var player registry.Player
			So(json.Unmarshal(rec.Body.Bytes(), &player), ShouldBeNil)

			req := httptest.NewRequest(http.MethodGet, "/players/"+player.ID, nil)
			getRec := httptest.NewRecorder()
			mux.ServeHTTP(getRec, req)
			So(getRec.Code, ShouldEqual, http.StatusOK)

			Convey("And a match can run its lifecycle", func() {
				rec = postJSON("/players", `{"name":"Bruno Costa"}`)
				var player2 registry.Player
				So(json.Unmarshal(rec.Body.Bytes(), &player2), ShouldBeNil)

				rec = postJSON("/matches", `{"clubId":"`+club.ID+`","player1Id":"`+player.ID+`","player2Id":"`+player2.ID+`"}`)
				So(rec.Code, ShouldEqual, http.StatusCreated)
				var match registry.Match
				So(json.Unmarshal(rec.Body.Bytes(), &match), ShouldBeNil)
				So(match.Status, ShouldEqual, registry.StatusScheduled)

				statusBody := `{"status":"COMPLETED","winnerId":"` + player.ID + `","finalScore":"7-6 6-4"}`
				req := httptest.NewRequest(http.MethodPut, "/matches/"+match.ID+"/status", strings.NewReader(statusBody))
				putRec := httptest.NewRecorder()
				mux.ServeHTTP(putRec, req)
				So(putRec.Code, ShouldEqual, http.StatusOK)

				var updated registry.Match
				So(json.Unmarshal(putRec.Body.Bytes(), &updated), ShouldBeNil)
				So(updated.Status, ShouldEqual, registry.StatusCompleted)
				So(updated.WinnerID, ShouldEqual, player.ID)
			})
		})

		Convey("Completing a match without an outcome is a bad request", func() {
			club := postJSON("/clubs", `{"name":"C"}`)
			var c registry.Club
			So(json.Unmarshal(club.Body.Bytes(), &c), ShouldBeNil)
			p1 := postJSON("/players", `{"name":"A"}`)
			var a registry.Player
			So(json.Unmarshal(p1.Body.Bytes(), &a), ShouldBeNil)
			p2 := postJSON("/players", `{"name":"B"}`)
			var b registry.Player
			So(json.Unmarshal(p2.Body.Bytes(), &b), ShouldBeNil)
			m := postJSON("/matches", `{"clubId":"`+c.ID+`","player1Id":"`+a.ID+`","player2Id":"`+b.ID+`"}`)
			var match registry.Match
			So(json.Unmarshal(m.Body.Bytes(), &match), ShouldBeNil)

			req := httptest.NewRequest(http.MethodPut, "/matches/"+match.ID+"/status", strings.NewReader(`{"status":"COMPLETED"}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Fetching a missing club is a 404", func() {
			req := httptest.NewRequest(http.MethodGet, "/clubs/nope", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A soft-deleted player disappears from reads", func() {
			rec := postJSON("/players", `{"name":"Temp"}`)
			var player registry.Player
			So(json.Unmarshal(rec.Body.Bytes(), &player), ShouldBeNil)

			req := httptest.NewRequest(http.MethodDelete, "/players/"+player.ID, nil)
			delRec := httptest.NewRecorder()
			mux.ServeHTTP(delRec, req)
			So(delRec.Code, ShouldEqual, http.StatusNoContent)

			req = httptest.NewRequest(http.MethodGet, "/players/"+player.ID, nil)
			getRec := httptest.NewRecorder()
			mux.ServeHTTP(getRec, req)
			So(getRec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		deps := &mockDeps{}
		mux := newTestServer(t, deps)

		Convey("Service stats come back as JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusOK)
			var out map[string]interface{}
			So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
			So(out, ShouldContainKey, "records")
		})
	})
}
