package seed

import (
	"context"
	"path/filepath"
	"testing"

	"edustack/internal/auth"
	"edustack/internal/repository"
	"edustack/internal/store"
)

func TestRunSeedsOnce(t *testing.T) {
	ctx := context.Background()
	db, err := store.NewDB(ctx, store.DriverSQLite, filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := store.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	repo := repository.NewRepository(db.Client)

	seeded, err := Run(ctx, repo)
	if err != nil || !seeded {
		t.Fatalf("first Run = %v, %v", seeded, err)
	}
	seeded, err = Run(ctx, repo)
	if err != nil || seeded {
		t.Fatalf("second Run = %v, %v", seeded, err)
	}

	stats, err := repo.DashboardStats(ctx)
	if err != nil {
		t.Fatalf("DashboardStats: %v", err)
	}
	if stats.TotalInstitutions != 2 || stats.TotalStudents != 5 || stats.TotalFaculty != 4 || stats.TotalClasses != 3 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	if len(stats.RecentAttendance) != 4 {
		t.Fatalf("attendance rows = %d", len(stats.RecentAttendance))
	}
	tt, err := repo.ListTimetable(ctx)
	if err != nil || len(tt) != 4 {
		t.Fatalf("timetable = %d, %v", len(tt), err)
	}

	admin, err := repo.GetUserByUsername(ctx, AdminUsername)
	if err != nil || admin == nil {
		t.Fatalf("admin = %v, %v", admin, err)
	}
	if !auth.CheckPassword(admin.PasswordHash, AdminPassword) {
		t.Fatal("admin password does not verify")
	}
	if admin.InstitutionID == nil || *admin.InstitutionID != 1 {
		t.Fatalf("admin institution = %v", admin.InstitutionID)
	}
}
