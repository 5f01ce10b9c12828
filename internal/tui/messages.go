package tui

import "github.com/andy/boutiquebill/internal/domain"

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// LoggedInMsg is sent once the login screen has authenticated a user
type LoggedInMsg struct {
	User *domain.User
}

// LoggedOutMsg is sent after the stored user has been cleared
type LoggedOutMsg struct{}

// sessionCheckMsg reports the user stored from an earlier session, if any
type sessionCheckMsg struct {
	user *domain.User
	err  error
}

// Results of preview actions
type exportedMsg struct {
	path string
	err  error
}

type sentMsg struct {
	link string
	err  error
}

type copiedMsg struct {
	err error
}
