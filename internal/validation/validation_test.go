package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"edustack/internal/common"
	"edustack/internal/model"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var vErr *common.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *common.ValidationError, got %T (%v)", err, err)
	}
	return vErr.Field
}

func TestParseStudentCoercesNumericStrings(t *testing.T) {
	v := New()
	st, err := v.ParseStudent([]byte(`{
		"fullName": "Alice Johnson",
		"enrollmentNumber": "STU-2024-001",
		"email": "alice@nit.edu",
		"department": "Computer Science",
		"semester": "3",
		"institutionId": 1
	}`))
	if err != nil {
		t.Fatalf("ParseStudent: %v", err)
	}
	if st.Semester != 3 || st.InstitutionID != 1 {
		t.Fatalf("unexpected numbers %+v", st)
	}
}

func TestNumericFieldsFailClosed(t *testing.T) {
	v := New()
	for _, semester := range []string{`"three"`, `3.5`, `"3.0"`, `true`, `[3]`, `1e2`} {
		t.Run(semester, func(t *testing.T) {
			body := fmt.Sprintf(`{"name":"CS-301","subject":"DSA","department":"CS","semester":%s,"institutionId":1}`, semester)
			_, err := v.ParseClass([]byte(body))
			if got := fieldOf(t, err); got != "semester" {
				t.Fatalf("field = %q, want semester", got)
			}
			if !strings.Contains(err.Error(), "whole number") {
				t.Fatalf("message %q does not mention whole number", err.Error())
			}
		})
	}
}

func TestMissingRequiredFieldIsReported(t *testing.T) {
	v := New()
	cases := []struct {
		name  string
		parse func([]byte) error
		body  string
		field string
	}{
		{
			name:  "institution name",
			parse: func(b []byte) error { _, err := v.ParseInstitution(b); return err },
			body:  `{"address":"123 University Road","phone":"+1-555-0100","email":"admin@nit.edu"}`,
			field: "name",
		},
		{
			name:  "student empty enrollment",
			parse: func(b []byte) error { _, err := v.ParseStudent(b); return err },
			body:  `{"fullName":"Bob","enrollmentNumber":"","email":"bob@nit.edu","department":"EE","semester":5,"institutionId":1}`,
			field: "enrollmentNumber",
		},
		{
			name:  "faculty institution",
			parse: func(b []byte) error { _, err := v.ParseFaculty(b); return err },
			body:  `{"fullName":"Dr. Chen","employeeId":"FAC-001","email":"chen@nit.edu","department":"CS","designation":"Professor"}`,
			field: "institutionId",
		},
		{
			name:  "class subject",
			parse: func(b []byte) error { _, err := v.ParseClass(b); return err },
			body:  `{"name":"CS-301","department":"CS","semester":3,"institutionId":1}`,
			field: "subject",
		},
		{
			name:  "attendance student",
			parse: func(b []byte) error { _, err := v.ParseAttendance(b); return err },
			body:  `{"classId":1,"date":"2026-02-18"}`,
			field: "studentId",
		},
		{
			name:  "timetable null faculty",
			parse: func(b []byte) error { _, err := v.ParseTimetable(b); return err },
			body:  `{"classId":1,"facultyId":null,"subject":"DSA","dayOfWeek":"Monday","startTime":"09:00","endTime":"10:30","room":"101","institutionId":1}`,
			field: "facultyId",
		},
		{
			name:  "registration password",
			parse: func(b []byte) error { _, err := v.ParseRegistration(b); return err },
			body:  `{"username":"admin","email":"admin@erp.com","fullName":"Admin"}`,
			field: "password",
		},
		{
			name:  "login username",
			parse: func(b []byte) error { _, err := v.ParseLogin(b); return err },
			body:  `{"password":"admin123"}`,
			field: "username",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.parse([]byte(tc.body))
			if got := fieldOf(t, err); got != tc.field {
				t.Fatalf("field = %q, want %q (%v)", got, tc.field, err)
			}
		})
	}
}

func TestDefaultsApplied(t *testing.T) {
	v := New()
	inst, err := v.ParseInstitution([]byte(`{"name":"NIT","address":"Road 1","phone":"555","email":"a@nit.edu"}`))
	if err != nil {
		t.Fatalf("ParseInstitution: %v", err)
	}
	if inst.Type != model.DefaultInstitutionType {
		t.Fatalf("type = %q", inst.Type)
	}

	att, err := v.ParseAttendance([]byte(`{"studentId":"1","classId":"2","date":"2026-02-18","markedBy":""}`))
	if err != nil {
		t.Fatalf("ParseAttendance: %v", err)
	}
	if att.Status != model.DefaultAttendanceStatus || att.MarkedBy != nil {
		t.Fatalf("unexpected attendance %+v", att)
	}

	reg, err := v.ParseRegistration([]byte(`{"username":" neo ","password":"secret","email":"neo@erp.com","fullName":"Neo"}`))
	if err != nil {
		t.Fatalf("ParseRegistration: %v", err)
	}
	if reg.User.Role != model.DefaultRole || reg.User.Username != "neo" || reg.User.InstitutionID != nil {
		t.Fatalf("unexpected registration %+v", reg.User)
	}
}

func TestEnumValuesMatchModel(t *testing.T) {
	v := New()
	for _, typ := range model.InstitutionTypes {
		body := fmt.Sprintf(`{"name":"X","address":"Y","phone":"1","email":"x@y.edu","type":%q}`, typ)
		if _, err := v.ParseInstitution([]byte(body)); err != nil {
			t.Errorf("type %q rejected: %v", typ, err)
		}
	}
	for _, status := range model.AttendanceStatuses {
		body := fmt.Sprintf(`{"studentId":1,"classId":1,"date":"2026-02-18","status":%q}`, status)
		if _, err := v.ParseAttendance([]byte(body)); err != nil {
			t.Errorf("status %q rejected: %v", status, err)
		}
	}
	for _, day := range model.Weekdays {
		body := fmt.Sprintf(`{"classId":1,"facultyId":1,"subject":"S","dayOfWeek":%q,"startTime":"09:00","endTime":"10:30","room":"R","institutionId":1}`, day)
		if _, err := v.ParseTimetable([]byte(body)); err != nil {
			t.Errorf("day %q rejected: %v", day, err)
		}
	}
}

func TestEnumAndFormatViolations(t *testing.T) {
	v := New()
	_, err := v.ParseInstitution([]byte(`{"name":"X","address":"Y","phone":"1","email":"x@y.edu","type":"academy"}`))
	if got := fieldOf(t, err); got != "type" {
		t.Fatalf("field = %q, want type", got)
	}

	_, err = v.ParseAttendance([]byte(`{"studentId":1,"classId":1,"date":"2026-02-18","status":"sick"}`))
	if got := fieldOf(t, err); got != "status" {
		t.Fatalf("field = %q, want status", got)
	}

	_, err = v.ParseAttendance([]byte(`{"studentId":1,"classId":1,"date":"18/02/2026"}`))
	if got := fieldOf(t, err); got != "date" {
		t.Fatalf("field = %q, want date", got)
	}
	if !strings.Contains(err.Error(), "YYYY-MM-DD") {
		t.Fatalf("message %q should name the format", err.Error())
	}

	_, err = v.ParseTimetable([]byte(`{"classId":1,"facultyId":1,"subject":"S","dayOfWeek":"Sunday","startTime":"09:00","endTime":"10:30","room":"R","institutionId":1}`))
	if got := fieldOf(t, err); got != "dayOfWeek" {
		t.Fatalf("field = %q, want dayOfWeek", got)
	}

	_, err = v.ParseTimetable([]byte(`{"classId":1,"facultyId":1,"subject":"S","dayOfWeek":"Monday","startTime":"9am","endTime":"10:30","room":"R","institutionId":1}`))
	if got := fieldOf(t, err); got != "startTime" {
		t.Fatalf("field = %q, want startTime", got)
	}

	_, err = v.ParseStudent([]byte(`{"fullName":"A","enrollmentNumber":"E","email":"not-an-email","department":"D","semester":1,"institutionId":1}`))
	if got := fieldOf(t, err); got != "email" {
		t.Fatalf("field = %q, want email", got)
	}
}

func TestWrongJSONTypeNamesField(t *testing.T) {
	v := New()
	_, err := v.ParseFaculty([]byte(`{"fullName":42,"employeeId":"F","email":"f@x.edu","department":"D","designation":"P","institutionId":1}`))
	if got := fieldOf(t, err); got != "fullName" {
		t.Fatalf("field = %q, want fullName", got)
	}
}

func TestMalformedBody(t *testing.T) {
	v := New()
	for _, body := range []string{``, `   `, `{"name":`, `[1,2]`, `"text"`} {
		_, err := v.ParseInstitution([]byte(body))
		if got := fieldOf(t, err); got != "" {
			t.Fatalf("body %q: field = %q, want none", body, got)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID("42"); err != nil || id != 42 {
		t.Fatalf("ParseID(42) = %d, %v", id, err)
	}
	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		if _, err := ParseID(raw); fieldOf(t, err) != "id" {
			t.Fatalf("ParseID(%q) should fail on id", raw)
		}
	}
}

func TestIntDecoding(t *testing.T) {
	cases := []struct {
		raw   string
		want  *int64
		valid bool
	}{
		{`7`, ptr(7), true},
		{`"7"`, ptr(7), true},
		{`" 12 "`, ptr(12), true},
		{`null`, nil, true},
		{`""`, nil, true},
		{`"x7"`, nil, false},
		{`7.25`, nil, false},
	}
	for _, tc := range cases {
		var i Int
		if err := i.UnmarshalJSON([]byte(tc.raw)); err != nil {
			t.Fatalf("UnmarshalJSON(%s) returned %v", tc.raw, err)
		}
		if i.invalid == tc.valid {
			t.Fatalf("UnmarshalJSON(%s) invalid = %v", tc.raw, i.invalid)
		}
		got := i.Ptr()
		if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
			t.Fatalf("UnmarshalJSON(%s) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func ptr(n int64) *int64 { return &n }

func TestExplicitZeroFailsMinimum(t *testing.T) {
	v := New()
	cases := []struct {
		name  string
		parse func([]byte) error
		body  string
		field string
	}{
		{
			name:  "class semester",
			parse: func(b []byte) error { _, err := v.ParseClass(b); return err },
			body:  `{"name":"CS-301","subject":"DSA","department":"CS","semester":0,"institutionId":1}`,
			field: "semester",
		},
		{
			name:  "student semester as string",
			parse: func(b []byte) error { _, err := v.ParseStudent(b); return err },
			body:  `{"fullName":"Alice","enrollmentNumber":"STU-1","email":"a@nit.edu","department":"CS","semester":"0","institutionId":1}`,
			field: "semester",
		},
		{
			name:  "registration institution",
			parse: func(b []byte) error { _, err := v.ParseRegistration(b); return err },
			body:  `{"username":"neo","password":"secret","email":"neo@erp.com","fullName":"Neo","institutionId":0}`,
			field: "institutionId",
		},
		{
			name:  "attendance marked by",
			parse: func(b []byte) error { _, err := v.ParseAttendance(b); return err },
			body:  `{"studentId":1,"classId":1,"date":"2026-02-18","markedBy":0}`,
			field: "markedBy",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.parse([]byte(tc.body))
			if got := fieldOf(t, err); got != tc.field {
				t.Fatalf("field = %q, want %q (%v)", got, tc.field, err)
			}
			if want := tc.field + " must be 1 or greater"; !strings.HasSuffix(err.Error(), want) {
				t.Fatalf("message = %q, want %q", err.Error(), want)
			}
		})
	}
}

func TestOptionalIntegersMayBeAbsent(t *testing.T) {
	v := New()
	reg, err := v.ParseRegistration([]byte(`{"username":"neo","password":"secret","email":"neo@erp.com","fullName":"Neo","institutionId":null}`))
	if err != nil || reg.User.InstitutionID != nil {
		t.Fatalf("null institutionId = %v, %v", reg.User.InstitutionID, err)
	}
	a, err := v.ParseAttendance([]byte(`{"studentId":1,"classId":1,"date":"2026-02-18","markedBy":"2"}`))
	if err != nil || a.MarkedBy == nil || *a.MarkedBy != 2 {
		t.Fatalf("markedBy = %v, %v", a.MarkedBy, err)
	}
}

func TestLargeIntegersAreAccepted(t *testing.T) {
	v := New()
	st, err := v.ParseStudent([]byte(`{"fullName":"Alice","enrollmentNumber":"STU-1","email":"a@nit.edu","department":"CS","semester":"9999999999","institutionId":9999999999}`))
	if err != nil {
		t.Fatalf("ParseStudent: %v", err)
	}
	if st.Semester != 9999999999 || st.InstitutionID != 9999999999 {
		t.Fatalf("unexpected numbers %+v", st)
	}
	if id, err := ParseID("9999999999"); err != nil || id != 9999999999 {
		t.Fatalf("ParseID = %d, %v", id, err)
	}
}
