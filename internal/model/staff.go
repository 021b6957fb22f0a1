package model

// StaffLoginRequest is the payload for the admission staff login.
type StaffLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
