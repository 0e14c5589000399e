package board

import "tableflip.dev/campusboard/pkg/notice"

// Seed data written on first run, one collection at a time.

func seedNotices() []notice.Notice {
	return []notice.Notice{
		{ID: 101, Title: "Library Renovation", Description: "The main library will be closed for renovation from Feb 15 to Feb 20.", Category: "public", Department: notice.All, Date: "2026-02-10"},
		{ID: 102, Title: "Mid-Sem Exam Schedule", Description: "The tentative schedule for mid-semester exams is now available on the portal.", Category: "academic", Department: notice.All, Date: "2026-02-12", Urgent: true},
		{ID: 103, Title: "TechSymposium Registration", Description: "Last date to register for the annual TechSymposium is Feb 25th.", Category: "student", Department: "cs", Date: "2026-02-14"},
	}
}

func seedEvents() []notice.Event {
	return []notice.Event{
		{ID: 201, Title: "Guest Lecture: AI Ethics", Description: "Dr. Sarah Connor regarding the future of AI.", Category: "academic", Department: "cs", Date: "2026-02-18", Time: "14:00", Venue: "Auditorium A"},
		{ID: 202, Title: "Cultural Fest Auditions", Description: "Open for all years. Bring your ID card.", Category: "student", Department: notice.All, Date: "2026-02-20", Time: "10:00", Venue: "Student Centerbox"},
		{ID: 203, Title: "Faculty Meeting", Description: "Mandatory meeting for all HODs.", Category: "faculty", Department: "admin", Date: "2026-02-22", Time: "09:00", Venue: "Conference Room"},
	}
}

func seedUsers() []notice.User {
	return []notice.User{
		{ID: 1, Name: "System Admin", Username: "admin", Password: "password", Role: notice.RoleAdmin, Department: "admin"},
		{ID: 2, Name: "Dr. Smith", Username: "faculty", Password: "password", Role: notice.RoleFaculty, Department: "cs"},
		{ID: 3, Name: "John Doe", Username: "student", Password: "password", Role: notice.RoleStudent, Department: "cs"},
	}
}
