package model

// User is an account able to sign in to the dashboard.
type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	PasswordHash  string `json:"-"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	Role          string `json:"role"`
	InstitutionID *int64 `json:"institutionId"`
}

// Institution is a university, college or school.
type Institution struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Type    string `json:"type"`
}

// Student is enrolled at one institution.
type Student struct {
	ID               int64  `json:"id"`
	FullName         string `json:"fullName"`
	EnrollmentNumber string `json:"enrollmentNumber"`
	Email            string `json:"email"`
	Department       string `json:"department"`
	Semester         int64  `json:"semester"`
	InstitutionID    int64  `json:"institutionId"`
}

// Faculty is a teaching staff member of one institution.
type Faculty struct {
	ID            int64  `json:"id"`
	FullName      string `json:"fullName"`
	EmployeeID    string `json:"employeeId"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	InstitutionID int64  `json:"institutionId"`
}

// Class is a course section taught at one institution.
type Class struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Subject       string `json:"subject"`
	Department    string `json:"department"`
	Semester      int64  `json:"semester"`
	InstitutionID int64  `json:"institutionId"`
}

// Attendance records one student's presence in one class on one date.
// Duplicates for the same (student, class, date) are allowed.
type Attendance struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"studentId"`
	ClassID   int64  `json:"classId"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	MarkedBy  *int64 `json:"markedBy"`
}

// Timetable is a weekly slot for a class taught by a faculty member.
type Timetable struct {
	ID            int64  `json:"id"`
	ClassID       int64  `json:"classId"`
	FacultyID     int64  `json:"facultyId"`
	Subject       string `json:"subject"`
	DayOfWeek     string `json:"dayOfWeek"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Room          string `json:"room"`
	InstitutionID int64  `json:"institutionId"`
}

// DashboardStats is the aggregate shown on the dashboard landing page.
type DashboardStats struct {
	TotalStudents     int64        `json:"totalStudents"`
	TotalFaculty      int64        `json:"totalFaculty"`
	TotalClasses      int64        `json:"totalClasses"`
	TotalInstitutions int64        `json:"totalInstitutions"`
	RecentAttendance  []Attendance `json:"recentAttendance"`
}
