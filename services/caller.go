package services

import "hostel_complaints_go/models"

// Caller is the identity an operation runs on behalf of.
// Handlers build it from the authenticated session.
type Caller struct {
	UserID   string
	Name     string
	IsAdmin  bool
	HostelID *string
}

// CallerFromUser builds a Caller from a loaded user record
func CallerFromUser(user *models.User) *Caller {
	if user == nil {
		return nil
	}
	return &Caller{
		UserID:   user.ID,
		Name:     user.Name,
		IsAdmin:  user.IsAdmin(),
		HostelID: user.HostelID,
	}
}

// requireCaller fails with ErrUnauthenticated when no identity was resolved
func requireCaller(caller *Caller) error {
	if caller == nil || caller.UserID == "" {
		return ErrUnauthenticated
	}
	return nil
}

// requireAdmin fails with ErrUnauthenticated or ErrForbidden
func requireAdmin(caller *Caller) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if !caller.IsAdmin {
		return ErrForbidden
	}
	return nil
}
