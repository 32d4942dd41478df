package registry

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fermano/TennisPulse/internal/domain/model"
)

type capturePublisher struct {
	events []model.MatchCompletedEvent
}

func (p *capturePublisher) PublishMatchCompleted(ctx context.Context, event model.MatchCompletedEvent) error {
	p.events = append(p.events, event)
	return nil
}

func openTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.db")
	r, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("open registry: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestClubCRUD(t *testing.T) {
	ctx := context.Background()
	r := openTestRegistry(t)

	club, err := r.CreateClub(ctx, Club{Name: "Riverside TC", City: "Lisbon", Country: "PT", DefaultSurface: "CLAY"})
	if err != nil {
		t.Fatalf("create club: %v", err)
	}
	if club.ID == "" {
		t.Fatal("expected generated club id")
	}

	got, err := r.GetClub(ctx, club.ID)
	if err != nil {
		t.Fatalf("get club: %v", err)
	}
	if got.Name != "Riverside TC" || got.City != "Lisbon" {
		t.Errorf("unexpected club: %+v", got)
	}

	got.Name = "Riverside Tennis Club"
	updated, err := r.UpdateClub(ctx, got)
	if err != nil {
		t.Fatalf("update club: %v", err)
	}
	if updated.Name != "Riverside Tennis Club" {
		t.Errorf("update not applied: %+v", updated)
	}

	clubs, err := r.ListClubs(ctx)
	if err != nil {
		t.Fatalf("list clubs: %v", err)
	}
	if len(clubs) != 1 {
		t.Fatalf("expected 1 club, got %d", len(clubs))
	}

	if err := r.DeleteClub(ctx, club.ID); err != nil {
		t.Fatalf("delete club: %v", err)
	}
	if _, err := r.GetClub(ctx, club.ID); !errors.Is(err, ErrClubNotFound) {
		t.Errorf("expected ErrClubNotFound after delete, got %v", err)
	}
}

func TestPlayerCRUDAndNameLookup(t *testing.T) {
	ctx := context.Background()
	r := openTestRegistry(t)

	player, err := r.CreatePlayer(ctx, Player{Name: "Ana Silva", Handedness: "LEFT"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	if name := r.PlayerName(ctx, player.ID); name != "Ana Silva" {
		t.Errorf("expected player name, got %q", name)
	}
	if name := r.PlayerName(ctx, "no-such-id"); name != UnknownName {
		t.Errorf("expected %q for missing player, got %q", UnknownName, name)
	}

	if err := r.DeletePlayer(ctx, player.ID); err != nil {
		t.Fatalf("delete player: %v", err)
	}
	if name := r.PlayerName(ctx, player.ID); name != UnknownName {
		t.Errorf("expected %q for deleted player, got %q", UnknownName, name)
	}
}

func setupMatchFixture(t *testing.T, r *Registry) (club Club, p1, p2 Player) {
	t.Helper()
	ctx := context.Background()
	var err error
	club, err = r.CreateClub(ctx, Club{Name: "Centre Court"})
	if err != nil {
		t.Fatalf("create club: %v", err)
	}
	p1, err = r.CreatePlayer(ctx, Player{Name: "Ana"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	p2, err = r.CreatePlayer(ctx, Player{Name: "Bruno"})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	return club, p1, p2
}

func TestMatchLifecycle(t *testing.T) {
	ctx := context.Background()
	pub := &capturePublisher{}
	r := openTestRegistry(t, WithPublisher(pub))
	club, p1, p2 := setupMatchFixture(t, r)

	match, err := r.CreateMatch(ctx, club.ID, p1.ID, p2.ID)
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if match.Status != StatusScheduled {
		t.Errorf("expected SCHEDULED, got %s", match.Status)
	}

	match, err = r.UpdateMatchStatus(ctx, match.ID, StatusUpdate{Status: StatusInProgress})
	if err != nil {
		t.Fatalf("start match: %v", err)
	}
	if match.StartTime.IsZero() {
		t.Error("start time should be stamped when match goes in progress")
	}

	// Completing without outcome is rejected.
	_, err = r.UpdateMatchStatus(ctx, match.ID, StatusUpdate{Status: StatusCompleted})
	if !errors.Is(err, ErrMissingOutcome) {
		t.Fatalf("expected ErrMissingOutcome, got %v", err)
	}

	stats := []model.PlayerStats{
		{PlayerID: p1.ID, FirstServeIn: 68},
		{PlayerID: p2.ID, FirstServeIn: 55},
	}
	match, err = r.UpdateMatchStatus(ctx, match.ID, StatusUpdate{
		Status:     StatusCompleted,
		WinnerID:   p1.ID,
		FinalScore: "6-4 7-5",
		Stats:      stats,
	})
	if err != nil {
		t.Fatalf("complete match: %v", err)
	}
	if match.WinnerID != p1.ID || match.FinalScore != "6-4 7-5" {
		t.Errorf("outcome not recorded: %+v", match)
	}
	if match.EndTime.IsZero() {
		t.Error("end time should be stamped on completion")
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	event := pub.events[0]
	if event.MatchID != match.ID || event.WinnerID != p1.ID || len(event.PlayerStats) != 2 {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestMatchCompletedWithoutStatsDoesNotPublish(t *testing.T) {
	ctx := context.Background()
	pub := &capturePublisher{}
	r := openTestRegistry(t, WithPublisher(pub))
	club, p1, p2 := setupMatchFixture(t, r)

	match, err := r.CreateMatch(ctx, club.ID, p1.ID, p2.ID)
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	_, err = r.UpdateMatchStatus(ctx, match.ID, StatusUpdate{
		Status:     StatusCompleted,
		WinnerID:   p1.ID,
		FinalScore: "6-0 6-0",
	})
	if err != nil {
		t.Fatalf("complete match: %v", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("statless completion must not publish, got %d events", len(pub.events))
	}
}

func TestMatchCancelClearsOutcome(t *testing.T) {
	ctx := context.Background()
	r := openTestRegistry(t)
	club, p1, p2 := setupMatchFixture(t, r)

	match, err := r.CreateMatch(ctx, club.ID, p1.ID, p2.ID)
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	match, err = r.UpdateMatchStatus(ctx, match.ID, StatusUpdate{Status: StatusCancelled})
	if err != nil {
		t.Fatalf("cancel match: %v", err)
	}
	if match.WinnerID != "" || match.FinalScore != "" {
		t.Errorf("cancelled match should carry no outcome: %+v", match)
	}
	if match.EndTime.IsZero() {
		t.Error("cancellation should stamp the end time")
	}
}

func TestWinCountsBetween(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)
	current := base
	r := openTestRegistry(t, WithClock(func() time.Time { return current }))
	club, p1, p2 := setupMatchFixture(t, r)

	complete := func(winnerID string, at time.Time) {
		t.Helper()
		current = at
		match, err := r.CreateMatch(ctx, club.ID, p1.ID, p2.ID)
		if err != nil {
			t.Fatalf("create match: %v", err)
		}
		_, err = r.UpdateMatchStatus(ctx, match.ID, StatusUpdate{
			Status:     StatusCompleted,
			WinnerID:   winnerID,
			FinalScore: "6-3 6-3",
		})
		if err != nil {
			t.Fatalf("complete match: %v", err)
		}
	}

	complete(p1.ID, base)
	complete(p1.ID, base.AddDate(0, 0, 5))
	complete(p2.ID, base.AddDate(0, 0, 10))
	complete(p2.ID, base.AddDate(0, 2, 0)) // outside the window below

	counts, err := r.WinCountsBetween(ctx, base, base.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("win counts: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 winners, got %d", len(counts))
	}
	if counts[0].PlayerID != p1.ID || counts[0].Wins != 2 {
		t.Errorf("expected p1 first with 2 wins, got %+v", counts[0])
	}
	if counts[1].PlayerID != p2.ID || counts[1].Wins != 1 {
		t.Errorf("expected p2 with 1 win, got %+v", counts[1])
	}
	if counts[0].PlayerName != "Ana" {
		t.Errorf("expected resolved winner name, got %q", counts[0].PlayerName)
	}

	// Unbounded window sees everything.
	counts, err = r.WinCountsBetween(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("win counts: %v", err)
	}
	var total int64
	for _, wc := range counts {
		total += wc.Wins
	}
	if total != 4 {
		t.Errorf("expected 4 wins total, got %d", total)
	}
}
