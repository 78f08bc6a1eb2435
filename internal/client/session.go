package client

import (
	"context"

	"school-store/internal/domain/dto"
	"school-store/internal/domain/models"
)

// Screen is the closed set of top-level states the UI can be in. The screen
// is decided once from the role at login; there is no other way to reach a
// dashboard.
type Screen int

const (
	ScreenLoggedOut Screen = iota
	ScreenStudentHome
	ScreenTeacherHome
)

func (s Screen) String() string {
	switch s {
	case ScreenStudentHome:
		return "student-home"
	case ScreenTeacherHome:
		return "teacher-home"
	default:
		return "logged-out"
	}
}

// Session holds the authenticated profile for the lifetime of the process.
// The balance inside it is always the backend's last-reported value; nothing
// here ever computes a balance locally.
type Session struct {
	api  *Client
	user *dto.UserDTO
}

func NewSession(api *Client) *Session {
	return &Session{api: api}
}

func (s *Session) LogIn(ctx context.Context, username, password string) error {
	user, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	s.user = &user
	return nil
}

func (s *Session) LogOut(ctx context.Context) error {
	err := s.api.Logout(ctx)
	s.user = nil
	return err
}

// Refresh replaces the held profile with a fresh /auth/me response. Called
// after any operation that may have moved the balance.
func (s *Session) Refresh(ctx context.Context) error {
	if s.user == nil {
		return nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		return err
	}

	s.user = &user
	return nil
}

func (s *Session) User() (dto.UserDTO, bool) {
	if s.user == nil {
		return dto.UserDTO{}, false
	}
	return *s.user, true
}

func (s *Session) Balance() int {
	if s.user == nil {
		return 0
	}
	return s.user.PointsBalance
}

func (s *Session) Screen() Screen {
	if s.user == nil {
		return ScreenLoggedOut
	}
	if s.user.Role == string(models.RoleTeacher) {
		return ScreenTeacherHome
	}
	return ScreenStudentHome
}
