// Package seed loads demo data into an empty database.
package seed

import (
	"context"
	"fmt"
	"log"

	"edustack/internal/auth"
	"edustack/internal/model"
)

// Store is what seeding writes through.
type Store interface {
	ListInstitutions(ctx context.Context) ([]model.Institution, error)
	CreateInstitution(ctx context.Context, in model.Institution) (model.Institution, error)
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	CreateStudent(ctx context.Context, st model.Student) (model.Student, error)
	CreateFaculty(ctx context.Context, f model.Faculty) (model.Faculty, error)
	CreateClass(ctx context.Context, c model.Class) (model.Class, error)
	CreateAttendance(ctx context.Context, a model.Attendance) (model.Attendance, error)
	CreateTimetable(ctx context.Context, t model.Timetable) (model.Timetable, error)
}

// Admin credentials of the seeded account.
const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
)

// Run inserts the demo data set unless institutions already exist. It
// reports whether anything was written.
func Run(ctx context.Context, s Store) (bool, error) {
	existing, err := s.ListInstitutions(ctx)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	w := &writer{ctx: ctx, s: s}
	nit := w.institution(model.Institution{Name: "National Institute of Technology", Address: "123 University Road, Tech City", Phone: "+1-555-0100", Email: "admin@nit.edu", Type: "university"})
	cce := w.institution(model.Institution{Name: "City College of Engineering", Address: "456 College Ave, Metro City", Phone: "+1-555-0200", Email: "info@cce.edu", Type: "college"})

	w.admin(nit)

	alice := w.student(model.Student{FullName: "Alice Johnson", EnrollmentNumber: "STU-2024-001", Email: "alice@nit.edu", Department: "Computer Science", Semester: 3, InstitutionID: nit})
	bob := w.student(model.Student{FullName: "Bob Williams", EnrollmentNumber: "STU-2024-002", Email: "bob@nit.edu", Department: "Electrical Engineering", Semester: 5, InstitutionID: nit})
	carol := w.student(model.Student{FullName: "Carol Davis", EnrollmentNumber: "STU-2024-003", Email: "carol@cce.edu", Department: "Mechanical Engineering", Semester: 2, InstitutionID: cce})
	w.student(model.Student{FullName: "David Martinez", EnrollmentNumber: "STU-2024-004", Email: "david@nit.edu", Department: "Computer Science", Semester: 7, InstitutionID: nit})
	w.student(model.Student{FullName: "Emma Brown", EnrollmentNumber: "STU-2024-005", Email: "emma@cce.edu", Department: "Civil Engineering", Semester: 4, InstitutionID: cce})

	chen := w.faculty(model.Faculty{FullName: "Dr. Sarah Chen", EmployeeID: "FAC-001", Email: "sarah.chen@nit.edu", Department: "Computer Science", Designation: "Professor", InstitutionID: nit})
	miller := w.faculty(model.Faculty{FullName: "Dr. James Miller", EmployeeID: "FAC-002", Email: "james.miller@nit.edu", Department: "Electrical Engineering", Designation: "Associate Professor", InstitutionID: nit})
	garcia := w.faculty(model.Faculty{FullName: "Dr. Maria Garcia", EmployeeID: "FAC-003", Email: "maria.garcia@cce.edu", Department: "Mechanical Engineering", Designation: "Assistant Professor", InstitutionID: cce})
	w.faculty(model.Faculty{FullName: "Dr. Robert Lee", EmployeeID: "FAC-004", Email: "robert.lee@cce.edu", Department: "Civil Engineering", Designation: "Professor", InstitutionID: cce})

	cs := w.class(model.Class{Name: "CS-301", Subject: "Data Structures & Algorithms", Department: "Computer Science", Semester: 3, InstitutionID: nit})
	ee := w.class(model.Class{Name: "EE-501", Subject: "Power Systems", Department: "Electrical Engineering", Semester: 5, InstitutionID: nit})
	me := w.class(model.Class{Name: "ME-201", Subject: "Thermodynamics", Department: "Mechanical Engineering", Semester: 2, InstitutionID: cce})

	w.attendance(model.Attendance{StudentID: alice, ClassID: cs, Date: "2026-02-18", Status: "present", MarkedBy: &chen})
	w.attendance(model.Attendance{StudentID: alice, ClassID: cs, Date: "2026-02-19", Status: "present", MarkedBy: &chen})
	w.attendance(model.Attendance{StudentID: bob, ClassID: ee, Date: "2026-02-18", Status: "absent", MarkedBy: &miller})
	w.attendance(model.Attendance{StudentID: carol, ClassID: me, Date: "2026-02-19", Status: "present", MarkedBy: &garcia})

	w.timetable(model.Timetable{ClassID: cs, FacultyID: chen, Subject: "Data Structures & Algorithms", DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:30", Room: "Room 101", InstitutionID: nit})
	w.timetable(model.Timetable{ClassID: cs, FacultyID: chen, Subject: "Data Structures & Algorithms", DayOfWeek: "Wednesday", StartTime: "09:00", EndTime: "10:30", Room: "Room 101", InstitutionID: nit})
	w.timetable(model.Timetable{ClassID: ee, FacultyID: miller, Subject: "Power Systems", DayOfWeek: "Tuesday", StartTime: "11:00", EndTime: "12:30", Room: "Room 205", InstitutionID: nit})
	w.timetable(model.Timetable{ClassID: me, FacultyID: garcia, Subject: "Thermodynamics", DayOfWeek: "Thursday", StartTime: "14:00", EndTime: "15:30", Room: "Lab 3", InstitutionID: cce})

	if w.err != nil {
		return false, fmt.Errorf("seed: %w", w.err)
	}
	log.Printf("seed: demo data loaded (login %s/%s)", AdminUsername, AdminPassword)
	return true, nil
}

// writer stops at the first failure; later calls are no-ops returning 0.
type writer struct {
	ctx context.Context
	s   Store
	err error
}

func (w *writer) institution(in model.Institution) int64 {
	if w.err != nil {
		return 0
	}
	in, w.err = w.s.CreateInstitution(w.ctx, in)
	return in.ID
}

func (w *writer) admin(institutionID int64) {
	if w.err != nil {
		return
	}
	hash, err := auth.HashPassword(AdminPassword)
	if err != nil {
		w.err = err
		return
	}
	_, w.err = w.s.CreateUser(w.ctx, model.User{
		Username:      AdminUsername,
		PasswordHash:  hash,
		Email:         "admin@erp.com",
		FullName:      "System Administrator",
		Role:          "admin",
		InstitutionID: &institutionID,
	})
}

func (w *writer) student(st model.Student) int64 {
	if w.err != nil {
		return 0
	}
	st, w.err = w.s.CreateStudent(w.ctx, st)
	return st.ID
}

func (w *writer) faculty(f model.Faculty) int64 {
	if w.err != nil {
		return 0
	}
	f, w.err = w.s.CreateFaculty(w.ctx, f)
	return f.ID
}

func (w *writer) class(c model.Class) int64 {
	if w.err != nil {
		return 0
	}
	c, w.err = w.s.CreateClass(w.ctx, c)
	return c.ID
}

func (w *writer) attendance(a model.Attendance) {
	if w.err != nil {
		return
	}
	_, w.err = w.s.CreateAttendance(w.ctx, a)
}

func (w *writer) timetable(t model.Timetable) {
	if w.err != nil {
		return
	}
	_, w.err = w.s.CreateTimetable(w.ctx, t)
}
