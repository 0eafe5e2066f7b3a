package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/candorlabs/expertscope/core"
	"github.com/candorlabs/expertscope/storage"
)

func TestProfileBasics(t *testing.T) {
	profileRepo, interviewRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() {
		interviewRepo.Close()
		profileRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()

	record := &core.ProfileRecord{
		Name:           "Dana Whitfield",
		CurrentCompany: "Google",
		CurrentTitle:   "VP Engineering",
		Active:         true,
	}

	added, err := profileRepo.AddProfiles(ctx, record)
	if err != nil {
		t.Fatalf("Failed to add profile: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(added))
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	retrieved, err := profileRepo.GetProfile(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if retrieved.Name != "Dana Whitfield" {
		t.Fatalf("Expected 'Dana Whitfield', got '%s'", retrieved.Name)
	}

	_, err = profileRepo.GetProfile(ctx, core.ID(99999))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func seedSearchProfiles(t *testing.T, ctx context.Context, repo storage.ProfileRepository) {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)

	profiles := []*core.ProfileRecord{
		{
			Name:           "Current Google VP",
			CurrentCompany: "Google",
			CurrentTitle:   "VP Engineering",
			Active:         true,
		},
		{
			Name:           "Former Google Director",
			CurrentCompany: "Snowflake",
			CurrentTitle:   "Staff Engineer",
			History: []core.Employment{
				{Company: "Google", Title: "Director", Start: now.AddDate(-6, 0, 0), End: now.AddDate(-2, 0, 0)},
			},
		},
		{
			Name:           "Unrelated Profile",
			CurrentCompany: "Stripe",
			CurrentTitle:   "Account Executive",
		},
	}

	if _, err := repo.AddProfiles(ctx, profiles...); err != nil {
		t.Fatalf("Failed to seed profiles: %v", err)
	}
}

func TestSearchRanked_Ordering(t *testing.T) {
	profileRepo, interviewRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { interviewRepo.Close(); profileRepo.Close(); backend.Close() }()

	ctx := context.Background()
	seedSearchProfiles(t, ctx, profileRepo)

	matches, err := profileRepo.SearchRanked(ctx, []string{"Google"}, []string{"VP"}, core.EmploymentAny, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matches))
	}
	if matches[0].Record.Name != "Current Google VP" {
		t.Fatalf("Expected current employee first, got '%s'", matches[0].Record.Name)
	}
	if matches[0].Score <= matches[1].Score {
		t.Fatalf("Expected descending scores, got %f then %f", matches[0].Score, matches[1].Score)
	}
}

func TestSearchRanked_StatusFilter(t *testing.T) {
	profileRepo, interviewRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { interviewRepo.Close(); profileRepo.Close(); backend.Close() }()

	ctx := context.Background()
	seedSearchProfiles(t, ctx, profileRepo)

	// Former: only the historical match qualifies, current employees are out.
	matches, err := profileRepo.SearchRanked(ctx, []string{"Google"}, nil, core.EmploymentFormer, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Record.Name != "Former Google Director" {
		t.Fatalf("Expected former employee, got '%s'", matches[0].Record.Name)
	}

	// Current: only the current position qualifies.
	matches, err = profileRepo.SearchRanked(ctx, []string{"Google"}, nil, core.EmploymentCurrent, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match, got %d", len(matches))
	}
	if matches[0].Record.Name != "Current Google VP" {
		t.Fatalf("Expected current employee, got '%s'", matches[0].Record.Name)
	}
}

func TestSearchRanked_EmptyResultIsValid(t *testing.T) {
	profileRepo, interviewRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { interviewRepo.Close(); profileRepo.Close(); backend.Close() }()

	ctx := context.Background()
	seedSearchProfiles(t, ctx, profileRepo)

	matches, err := profileRepo.SearchRanked(ctx, []string{"Nonexistent Corp"}, nil, core.EmploymentAny, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("Expected no matches, got %d", len(matches))
	}
}

func TestSearchRanked_NoCriteria(t *testing.T) {
	profileRepo, interviewRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { interviewRepo.Close(); profileRepo.Close(); backend.Close() }()

	_, err = profileRepo.SearchRanked(context.Background(), nil, nil, core.EmploymentAny, 10)
	if !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery, got %v", err)
	}
}

func TestSearchRanked_DuplicateCompaniesSum(t *testing.T) {
	profileRepo, interviewRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { interviewRepo.Close(); profileRepo.Close(); backend.Close() }()

	ctx := context.Background()
	seedSearchProfiles(t, ctx, profileRepo)

	single, err := profileRepo.SearchRanked(ctx, []string{"Google"}, nil, core.EmploymentAny, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	double, err := profileRepo.SearchRanked(ctx, []string{"Google", "Google"}, nil, core.EmploymentAny, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(single) == 0 || len(double) == 0 {
		t.Fatal("Expected matches for both searches")
	}
	if double[0].Score <= single[0].Score {
		t.Fatalf("Expected duplicate criteria to sum: %f vs %f", double[0].Score, single[0].Score)
	}
}

func TestAddProfiles_DuplicateId(t *testing.T) {
	profileRepo, interviewRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { interviewRepo.Close(); profileRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := profileRepo.AddProfiles(ctx, &core.ProfileRecord{Name: "Dana Whitfield"})
	if err != nil {
		t.Fatalf("Failed to add profile: %v", err)
	}

	_, err = profileRepo.AddProfiles(ctx, &core.ProfileRecord{Id: added[0].Id, Name: "Impostor"})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	// The stored record must be untouched.
	retrieved, err := profileRepo.GetProfile(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if retrieved.Name != "Dana Whitfield" {
		t.Fatalf("Expected original record, got '%s'", retrieved.Name)
	}
}

func TestBackend_ClosedRejectsTransactions(t *testing.T) {
	profileRepo, interviewRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}

	interviewRepo.Close()
	profileRepo.Close()
	backend.Close()

	_, err = profileRepo.GetProfile(context.Background(), core.ID(1))
	if !errors.Is(err, storage.ErrStorageClosed) {
		t.Fatalf("Expected ErrStorageClosed, got %v", err)
	}
}

func TestProfileUpdateAndDelete(t *testing.T) {
	profileRepo, interviewRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer func() { interviewRepo.Close(); profileRepo.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := profileRepo.AddProfiles(ctx, &core.ProfileRecord{Name: "Marcus Oyelaran", CurrentCompany: "Stripe"})
	if err != nil {
		t.Fatalf("Failed to add profile: %v", err)
	}

	added[0].CurrentTitle = "Director of Product"
	if _, err := profileRepo.UpdateProfiles(ctx, added[0]); err != nil {
		t.Fatalf("Failed to update profile: %v", err)
	}

	retrieved, err := profileRepo.GetProfile(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if retrieved.CurrentTitle != "Director of Product" {
		t.Fatalf("Expected updated title, got '%s'", retrieved.CurrentTitle)
	}

	if err := profileRepo.DeleteProfiles(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete profile: %v", err)
	}
	if _, err := profileRepo.GetProfile(ctx, added[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}
}
