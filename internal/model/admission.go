package model

import "time"

// Admission is a submitted application.
type Admission struct {
	ID        int       `json:"id"`
	FullName  string    `json:"full_name"`
	BirthDate string    `json:"birth_date"`
	Gender    string    `json:"gender"`
	Address   string    `json:"address"`
	CCCD      string    `json:"cccd"`
	Major     string    `json:"major"`
	CreatedAt time.Time `json:"created_at"`
}

// AdmissionForm is the multipart form posted by the admission page.
// Attachments arrive separately under the "files" field.
type AdmissionForm struct {
	FullName  string `form:"full_name" json:"full_name" binding:"required,max=150"`
	BirthDate string `form:"birth_date" json:"birth_date" binding:"required,birthdate"`
	Gender    string `form:"gender" json:"gender" binding:"required,max=20"`
	Address   string `form:"address" json:"address" binding:"required,max=255"`
	CCCD      string `form:"cccd" json:"cccd" binding:"required,cccd"`
	Major     string `form:"major" json:"major" binding:"required,max=150"`
}

// ToAdmission copies the form into a new record.
func (f AdmissionForm) ToAdmission() *Admission {
	return &Admission{
		FullName:  f.FullName,
		BirthDate: f.BirthDate,
		Gender:    f.Gender,
		Address:   f.Address,
		CCCD:      f.CCCD,
		Major:     f.Major,
	}
}

// AdmissionInfo is written as info.json next to the stored attachments.
type AdmissionInfo struct {
	AdmissionForm
	ID          int      `json:"id"`
	SubmittedAt string   `json:"submitted_at"`
	Files       []string `json:"files"`
}

// AdmissionResult is the response body of POST /api/admission.
type AdmissionResult struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
}

// StoredFile is one attachment persisted in an admission folder.
type StoredFile struct {
	OriginalName string `json:"original_name"`
	Path         string `json:"path"`
}

// AdmissionMailJob is the payload pushed to the admission mail queue.
type AdmissionMailJob struct {
	Admission Admission    `json:"admission"`
	Files     []StoredFile `json:"files"`
	Attempt   int          `json:"attempt"`
}
