package util

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUsernameTaken        = errors.New("username already registered")
	ErrUserNotFound         = errors.New("user not found")
	ErrStudentNotFound      = errors.New("student not found")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrAlreadyEnrolled      = errors.New("student already enrolled")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrClassroomNotFound    = errors.New("classroom not found")
	ErrRequestNotFound      = errors.New("request not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrRequestResolved      = errors.New("request already resolved")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrMissingSubject       = errors.New("subject id is required")
	ErrUnreadableCSV        = errors.New("csv file is unreadable")
	ErrInvalidDay           = errors.New("invalid schedule day")
	ErrInvalidStatus        = errors.New("invalid request status")
)
