package model

const (
	DefaultRole             = "user"
	DefaultInstitutionType  = "university"
	DefaultAttendanceStatus = "present"

	// RecentAttendanceLimit caps DashboardStats.RecentAttendance.
	RecentAttendanceLimit = 10
)

var InstitutionTypes = []string{"university", "college", "school"}

var AttendanceStatuses = []string{"present", "absent", "late"}

// Weekdays are the days a timetable slot may fall on. Sunday is not a teaching day.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
