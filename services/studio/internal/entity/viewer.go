package entity

// Viewer is the caller as seen by access checks. The zero value is anonymous.
type Viewer struct {
	UserID string
	Role   UserRole
}

func (v Viewer) IsAnonymous() bool { return v.UserID == "" }

func (v Viewer) IsAdmin() bool { return v.UserID != "" && v.Role == RoleAdmin }

// CanEdit reports whether v may change m: its uploader or an admin.
func (v Viewer) CanEdit(m *Media) bool {
	if m == nil || v.IsAnonymous() {
		return false
	}
	return v.IsAdmin() || m.UploadedBy == v.UserID
}
