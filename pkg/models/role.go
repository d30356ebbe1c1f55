package models

import "fmt"

// Role is the closed set of permission tags gating endpoint access.
type Role string

const (
	RoleStudent Role = "student"
	RoleAlumni  Role = "alumni"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

// ParseRole validates a role string coming from the outside. The empty
// string defaults to student, matching the registration contract.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleStudent, nil
	case RoleStudent, RoleAlumni, RoleMentor, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// MentorRoles lists the roles surfaced as mentors in listings.
func MentorRoles() []Role {
	return []Role{RoleAlumni, RoleMentor}
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsMentor reports whether the role receives the mentor dashboard
// and the mentorship request inbox.
func (r Role) IsMentor() bool { return r == RoleMentor || r == RoleAlumni }

// CanReply reports whether the role may answer questions. Mentors and
// alumni additionally need admin verification, checked at the handler.
func (r Role) CanReply() bool {
	return r == RoleMentor || r == RoleAlumni || r == RoleAdmin
}

// CanCreateRoadmap reports whether the role may publish roadmaps.
func (r Role) CanCreateRoadmap() bool {
	return r == RoleMentor || r == RoleAlumni || r == RoleAdmin
}

// CanRequestMentorship reports whether the role may initiate a
// mentorship request. Only students do.
func (r Role) CanRequestMentorship() bool { return r == RoleStudent }
