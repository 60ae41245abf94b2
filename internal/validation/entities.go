package validation

import (
	"strings"

	"edustack/internal/model"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Registration is a validated sign-up request. Password is still plaintext;
// hashing belongs to the auth service.
type Registration struct {
	User     model.User
	Password string
}

type registrationInput struct {
	Username      string `json:"username" validate:"required,max=64"`
	Password      string `json:"password" validate:"required,max=72"`
	Email         string `json:"email" validate:"required,email"`
	FullName      string `json:"fullName" validate:"required"`
	Role          string `json:"role" validate:"required,max=32"`
	InstitutionID Int    `json:"institutionId" validate:"omitempty,whole,min=1"`
}

// ParseRegistration validates a register body. Username uniqueness is
// checked by the caller against the store.
func (v *Validator) ParseRegistration(data []byte) (Registration, error) {
	var in registrationInput
	if err := decode(data, &in); err != nil {
		return Registration{}, err
	}
	in.Username = strings.TrimSpace(in.Username)
	in.Role = withDefault(in.Role, model.DefaultRole)
	if err := v.check(&in); err != nil {
		return Registration{}, err
	}
	return Registration{
		User: model.User{
			Username:      in.Username,
			Email:         in.Email,
			FullName:      in.FullName,
			Role:          in.Role,
			InstitutionID: in.InstitutionID.Ptr(),
		},
		Password: in.Password,
	}, nil
}

// Credentials is a login request.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

func (v *Validator) ParseLogin(data []byte) (Credentials, error) {
	var in Credentials
	if err := v.parse(data, &in); err != nil {
		return Credentials{}, err
	}
	in.Username = strings.TrimSpace(in.Username)
	return in, nil
}

type institutionInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Type    string `json:"type" validate:"required,oneof=university college school"`
}

func (v *Validator) ParseInstitution(data []byte) (model.Institution, error) {
	var in institutionInput
	if err := decode(data, &in); err != nil {
		return model.Institution{}, err
	}
	in.Type = withDefault(in.Type, model.DefaultInstitutionType)
	if err := v.check(&in); err != nil {
		return model.Institution{}, err
	}
	return model.Institution{
		Name:    in.Name,
		Address: in.Address,
		Phone:   in.Phone,
		Email:   in.Email,
		Type:    in.Type,
	}, nil
}

type studentInput struct {
	FullName         string `json:"fullName" validate:"required"`
	EnrollmentNumber string `json:"enrollmentNumber" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Department       string `json:"department" validate:"required"`
	Semester         Int    `json:"semester" validate:"required,whole,min=1"`
	InstitutionID    Int    `json:"institutionId" validate:"required,whole,min=1"`
}

func (v *Validator) ParseStudent(data []byte) (model.Student, error) {
	var in studentInput
	if err := v.parse(data, &in); err != nil {
		return model.Student{}, err
	}
	return model.Student{
		FullName:         in.FullName,
		EnrollmentNumber: strings.TrimSpace(in.EnrollmentNumber),
		Email:            in.Email,
		Department:       in.Department,
		Semester:         in.Semester.Value(),
		InstitutionID:    in.InstitutionID.Value(),
	}, nil
}

type facultyInput struct {
	FullName      string `json:"fullName" validate:"required"`
	EmployeeID    string `json:"employeeId" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Department    string `json:"department" validate:"required"`
	Designation   string `json:"designation" validate:"required"`
	InstitutionID Int    `json:"institutionId" validate:"required,whole,min=1"`
}

func (v *Validator) ParseFaculty(data []byte) (model.Faculty, error) {
	var in facultyInput
	if err := v.parse(data, &in); err != nil {
		return model.Faculty{}, err
	}
	return model.Faculty{
		FullName:      in.FullName,
		EmployeeID:    strings.TrimSpace(in.EmployeeID),
		Email:         in.Email,
		Department:    in.Department,
		Designation:   in.Designation,
		InstitutionID: in.InstitutionID.Value(),
	}, nil
}

type classInput struct {
	Name          string `json:"name" validate:"required"`
	Subject       string `json:"subject" validate:"required"`
	Department    string `json:"department" validate:"required"`
	Semester      Int    `json:"semester" validate:"required,whole,min=1"`
	InstitutionID Int    `json:"institutionId" validate:"required,whole,min=1"`
}

func (v *Validator) ParseClass(data []byte) (model.Class, error) {
	var in classInput
	if err := v.parse(data, &in); err != nil {
		return model.Class{}, err
	}
	return model.Class{
		Name:          in.Name,
		Subject:       in.Subject,
		Department:    in.Department,
		Semester:      in.Semester.Value(),
		InstitutionID: in.InstitutionID.Value(),
	}, nil
}

type attendanceInput struct {
	StudentID Int    `json:"studentId" validate:"required,whole,min=1"`
	ClassID   Int    `json:"classId" validate:"required,whole,min=1"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
	MarkedBy  Int    `json:"markedBy" validate:"omitempty,whole,min=1"`
}

func (v *Validator) ParseAttendance(data []byte) (model.Attendance, error) {
	var in attendanceInput
	if err := decode(data, &in); err != nil {
		return model.Attendance{}, err
	}
	in.Status = withDefault(in.Status, model.DefaultAttendanceStatus)
	if err := v.check(&in); err != nil {
		return model.Attendance{}, err
	}
	return model.Attendance{
		StudentID: in.StudentID.Value(),
		ClassID:   in.ClassID.Value(),
		Date:      in.Date,
		Status:    in.Status,
		MarkedBy:  in.MarkedBy.Ptr(),
	}, nil
}

type timetableInput struct {
	ClassID       Int    `json:"classId" validate:"required,whole,min=1"`
	FacultyID     Int    `json:"facultyId" validate:"required,whole,min=1"`
	Subject       string `json:"subject" validate:"required"`
	DayOfWeek     string `json:"dayOfWeek" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday"`
	StartTime     string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime       string `json:"endTime" validate:"required,datetime=15:04"`
	Room          string `json:"room" validate:"required"`
	InstitutionID Int    `json:"institutionId" validate:"required,whole,min=1"`
}

func (v *Validator) ParseTimetable(data []byte) (model.Timetable, error) {
	var in timetableInput
	if err := v.parse(data, &in); err != nil {
		return model.Timetable{}, err
	}
	return model.Timetable{
		ClassID:       in.ClassID.Value(),
		FacultyID:     in.FacultyID.Value(),
		Subject:       in.Subject,
		DayOfWeek:     in.DayOfWeek,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Room:          in.Room,
		InstitutionID: in.InstitutionID.Value(),
	}, nil
}

func withDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
