package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/padel-tournament/db"
	"github.com/Dosada05/padel-tournament/db/migrations"
	"github.com/Dosada05/padel-tournament/models"
	"github.com/Dosada05/padel-tournament/repositories"
)

func repos(t *testing.T) map[string]repositories.TournamentRepository {
	t.Helper()
	conn, err := db.OpenLibSQL(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrations.Run(conn, migrations.SQLite); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return map[string]repositories.TournamentRepository{
		"memory": repositories.NewMemoryTournamentRepository(),
		"libsql": repositories.NewLibSQLTournamentRepository(conn),
	}
}

func sample(id string, created time.Time) *models.Tournament {
	gid := "group-1"
	score1, score2 := 6, 3
	winner := "a"
	return &models.Tournament{
		ID:   id,
		Name: "Open " + id,
		Teams: []models.Team{
			{ID: "a", Name: "Galan & Lebron"},
			{ID: "b", Name: "Coello & Tapia"},
		},
		Groups: []*models.Group{{
			ID:      gid,
			Name:    "Unique Group",
			TeamIDs: []string{"a", "b"},
			Matches: []*models.Match{{
				ID: "group-1-match-0-1", Team1ID: "a", Team2ID: "b",
				Team1Score: &score1, Team2Score: &score2, WinnerID: &winner,
				IsCompleted: true, Round: models.RoundGroup, GroupID: &gid,
			}},
		}},
		IsStarted: true,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestTournamentRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, repositories.ErrTournamentNotFound) {
				t.Fatalf("GetByID missing: err = %v", err)
			}

			older, newer := sample("t1", base), sample("t2", base.Add(time.Hour))
			for _, tour := range []*models.Tournament{older, newer} {
				if err := repo.Save(ctx, tour); err != nil {
					t.Fatalf("Save: %v", err)
				}
			}

			got, err := repo.GetByID(ctx, "t1")
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			m := got.Groups[0].Matches[0]
			if got.Name != "Open t1" || m.Winner() != "a" || *m.Team1Score != 6 || *m.GroupID != "group-1" {
				t.Errorf("loaded tournament differs: %+v", got)
			}

			// Saving again replaces the document.
			older.IsCompleted = true
			older.Name = "Renamed"
			if err := repo.Save(ctx, older); err != nil {
				t.Fatalf("Save update: %v", err)
			}

			all, err := repo.List(ctx, repositories.ListTournamentsFilter{})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(all) != 2 || all[0].ID != "t2" {
				t.Fatalf("List order = %v, want newest first", all)
			}

			done := true
			completed, err := repo.List(ctx, repositories.ListTournamentsFilter{Completed: &done})
			if err != nil {
				t.Fatalf("List completed: %v", err)
			}
			if len(completed) != 1 || completed[0].Name != "Renamed" {
				t.Errorf("completed = %v", completed)
			}

			page, err := repo.List(ctx, repositories.ListTournamentsFilter{Limit: 1, Offset: 1})
			if err != nil {
				t.Fatalf("List page: %v", err)
			}
			if len(page) != 1 || page[0].ID != "t1" {
				t.Errorf("page = %v", page)
			}

			if err := repo.Delete(ctx, "t1"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := repo.Delete(ctx, "t1"); !errors.Is(err, repositories.ErrTournamentNotFound) {
				t.Errorf("second Delete: err = %v", err)
			}
			if err := repo.Ping(ctx); err != nil {
				t.Errorf("Ping: %v", err)
			}
		})
	}
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryTournamentRepository()
	tour := sample("t1", time.Now())
	if err := repo.Save(ctx, tour); err != nil {
		t.Fatal(err)
	}

	tour.Name = "changed after save"
	got, _ := repo.GetByID(ctx, "t1")
	if got.Name != "Open t1" {
		t.Errorf("store shares memory with caller: %q", got.Name)
	}
}
