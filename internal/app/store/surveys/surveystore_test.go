package surveystore_test

import (
	"errors"
	"testing"
	"time"

	surveystore "github.com/dalemusser/youthportal/internal/app/store/surveys"
	"github.com/dalemusser/youthportal/internal/testutil"
)

func TestStore_CreateAndGetFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "uid-1", testutil.CompleteAnswers())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected an id to be assigned")
	}

	got, err := store.GetFirstByUser(ctx, "uid-1")
	if err != nil {
		t.Fatalf("GetFirstByUser failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("id: got %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
	if got.YouthAgeGroup != "Core Youth (18-24 yrs.old)" {
		t.Errorf("answers not round-tripped: youth_age_group=%q", got.YouthAgeGroup)
	}
}

func TestStore_Create_RequiresUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "", testutil.CompleteAnswers()); err == nil {
		t.Error("expected error for missing user id")
	}
}

func TestStore_GetFirstByUser_ReturnsOldest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	older := testutil.CompleteAnswers()
	older.FirstName = "Older"
	newer := testutil.CompleteAnswers()
	newer.FirstName = "Newer"

	now := time.Now().UTC()
	fx.CreateSurvey(ctx, "uid-2", newer, now)
	fx.CreateSurvey(ctx, "uid-2", older, now.Add(-time.Hour))

	got, err := store.GetFirstByUser(ctx, "uid-2")
	if err != nil {
		t.Fatalf("GetFirstByUser failed: %v", err)
	}
	if got.FirstName != "Older" {
		t.Errorf("expected oldest survey, got first_name=%q", got.FirstName)
	}
}

func TestStore_GetFirstByUser_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetFirstByUser(ctx, "nobody"); !errors.Is(err, surveystore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_UpdateAnswers_InPlace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "uid-3", testutil.CompleteAnswers())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ans := testutil.CompleteAnswers()
	ans.WorkStatus = "Employed"
	updated, err := store.UpdateAnswers(ctx, created.ID, ans)
	if err != nil {
		t.Fatalf("UpdateAnswers failed: %v", err)
	}
	if updated.WorkStatus != "Employed" {
		t.Errorf("work_status: got %q", updated.WorkStatus)
	}
	if updated.UserID != "uid-3" {
		t.Errorf("user_id must survive an update, got %q", updated.UserID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt.Truncate(time.Millisecond)) {
		t.Errorf("created_at changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}

	n, err := store.CountByUser(ctx, "uid-3")
	if err != nil {
		t.Fatalf("CountByUser failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected a single survey after update, got %d", n)
	}
}

func TestStore_ListAllAndDeleteByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := surveystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, uid := range []string{"a", "a", "b"} {
		if _, err := store.Create(ctx, uid, testutil.CompleteAnswers()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 surveys, got %d", len(all))
	}

	n, err := store.DeleteByUser(ctx, "a")
	if err != nil {
		t.Fatalf("DeleteByUser failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}
	if left, _ := store.CountByUser(ctx, "b"); left != 1 {
		t.Errorf("other owner's survey must remain, got %d", left)
	}
}
