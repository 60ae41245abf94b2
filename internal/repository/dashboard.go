package repository

import (
	"context"

	"edustack/internal/model"
)

// DashboardStats counts the main record kinds and attaches the latest
// attendance. The reads are not taken in one snapshot.
func (r *Repository) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var (
		stats model.DashboardStats
		err   error
	)
	counts := []struct {
		table string
		dst   *int64
	}{
		{"students", &stats.TotalStudents},
		{"faculty", &stats.TotalFaculty},
		{"classes", &stats.TotalClasses},
		{"institutions", &stats.TotalInstitutions},
	}
	for _, c := range counts {
		if *c.dst, err = r.count(ctx, c.table); err != nil {
			return model.DashboardStats{}, err
		}
	}
	if stats.RecentAttendance, err = r.RecentAttendance(ctx, model.RecentAttendanceLimit); err != nil {
		return model.DashboardStats{}, err
	}
	return stats, nil
}
