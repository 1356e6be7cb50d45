package dto

type ContactStatusRequest struct {
	Status string `json:"status" form:"status"`
}

type ContactNotesRequest struct {
	AdminNotes string `json:"admin_notes" form:"admin_notes"`
}
