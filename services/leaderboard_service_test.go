// file: services/leaderboard_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"FrostCTF/models"
)

func newLeaderboardFixture(t *testing.T) (*LeaderboardService, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewLeaderboardService(db, rdb, zerolog.Nop()), db, mr
}

// seedSolve 直接落一条解题记录，绕开提交流程
func seedSolve(t *testing.T, db *gorm.DB, userID, challengeID, eventID uint32, points int, at time.Time) {
	t.Helper()
	err := db.Create(&models.Completion{
		ChallengeID:  challengeID,
		UserID:       userID,
		EventID:      eventID,
		PointsEarned: points,
		CompletedAt:  at,
	}).Error
	if err != nil {
		t.Fatalf("seed completion: %v", err)
	}
}

func seedUsers(t *testing.T, db *gorm.DB, names ...string) []models.User {
	t.Helper()
	users := make([]models.User, 0, len(names))
	for _, name := range names {
		u := models.User{Username: name, Password: "secret1"}
		if err := db.Create(&u).Error; err != nil {
			t.Fatalf("seed user %s: %v", name, err)
		}
		users = append(users, u)
	}
	return users
}

func TestStandingsOrdering(t *testing.T) {
	svc, db, _ := newLeaderboardFixture(t)
	ctx := context.Background()

	users := seedUsers(t, db, "alice", "bob", "carol")
	base := time.Now().Add(-time.Hour)

	// alice 150 分，bob 200 分，carol 150 分但比 alice 先完成
	seedSolve(t, db, users[0].ID, 1, 1, 100, base.Add(30*time.Minute))
	seedSolve(t, db, users[0].ID, 2, 1, 50, base.Add(40*time.Minute))
	seedSolve(t, db, users[1].ID, 1, 1, 200, base.Add(10*time.Minute))
	seedSolve(t, db, users[2].ID, 3, 1, 150, base.Add(5*time.Minute))

	entries, err := svc.Standings(ctx, 0, 10)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	// 总分降序；同分按最后解题时间早者在前
	wantOrder := []string{"bob", "carol", "alice"}
	for i, want := range wantOrder {
		if entries[i].Username != want {
			t.Errorf("rank %d = %q, want %q", i+1, entries[i].Username, want)
		}
		if entries[i].Rank != uint(i+1) {
			t.Errorf("entry %d rank = %d", i, entries[i].Rank)
		}
	}
	if entries[0].Score != 200 || entries[2].SolvedCount != 2 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestStandingsEventFilter(t *testing.T) {
	svc, db, _ := newLeaderboardFixture(t)
	ctx := context.Background()

	users := seedUsers(t, db, "alice", "bob")
	now := time.Now()
	seedSolve(t, db, users[0].ID, 1, 1, 100, now)
	seedSolve(t, db, users[1].ID, 2, 2, 300, now)

	entries, err := svc.Standings(ctx, 1, 10)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(entries) != 1 || entries[0].Username != "alice" {
		t.Fatalf("event standings = %+v, want only alice", entries)
	}
}

func TestStandingsCache(t *testing.T) {
	svc, db, _ := newLeaderboardFixture(t)
	ctx := context.Background()

	users := seedUsers(t, db, "alice")
	seedSolve(t, db, users[0].ID, 1, 1, 100, time.Now())

	first, err := svc.Standings(ctx, 0, 10)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}

	// 缓存命中期间，直接写库的新数据不可见
	seedSolve(t, db, users[0].ID, 2, 1, 50, time.Now())
	cached, err := svc.Standings(ctx, 0, 10)
	if err != nil {
		t.Fatalf("cached standings: %v", err)
	}
	if cached[0].Score != first[0].Score {
		t.Fatalf("cache miss: score = %d, want %d", cached[0].Score, first[0].Score)
	}

	// 失效后回源，看到最新成绩
	svc.InvalidateCache(ctx)
	fresh, err := svc.Standings(ctx, 0, 10)
	if err != nil {
		t.Fatalf("fresh standings: %v", err)
	}
	if fresh[0].Score != 150 {
		t.Fatalf("score after invalidate = %d, want 150", fresh[0].Score)
	}
}

func TestRecentSolves(t *testing.T) {
	svc, db, _ := newLeaderboardFixture(t)
	ctx := context.Background()

	users := seedUsers(t, db, "alice")
	category := models.Category{Name: "web"}
	db.Create(&category)
	ch1 := models.Challenge{Title: "题一", CategoryID: category.ID, EventID: 1, Description: "d", State: models.ChallengeStateVisible, Flag: "f", Points: 100}
	ch2 := models.Challenge{Title: "题二", CategoryID: category.ID, EventID: 1, Description: "d", State: models.ChallengeStateVisible, Flag: "f", Points: 200}
	db.Create(&ch1)
	db.Create(&ch2)

	now := time.Now()
	seedSolve(t, db, users[0].ID, ch1.ID, 1, 100, now.Add(-10*time.Minute))
	seedSolve(t, db, users[0].ID, ch2.ID, 1, 200, now)

	feed, err := svc.RecentSolves(ctx, 10)
	if err != nil {
		t.Fatalf("recent solves: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("feed = %d entries, want 2", len(feed))
	}
	// 最新的在前
	if feed[0].ChallengeTitle != "题二" || feed[1].ChallengeTitle != "题一" {
		t.Fatalf("feed order = %+v", feed)
	}
}
