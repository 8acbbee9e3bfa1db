package models

// ResumeDocument is a resume copied into temporary storage for the duration of one
// screening request.
type ResumeDocument struct {
	FileName   string `json:"file_name"`
	StoredName string `json:"stored_name"`
	Path       string `json:"path"`
}
