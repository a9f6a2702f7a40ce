package dto

import (
	"time"

	"main/model"
)

type CreateNoteRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateNoteRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type AddLabelRequest struct {
	LabelID string `json:"label_id" binding:"required"`
}

type AddCollaboratorRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type NoteResponse struct {
	NoteID        string    `json:"note_id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	LabelIDs      []string  `json:"label_ids"`
	Collaborators []string  `json:"collaborators"`
	IsArchived    bool      `json:"is_archived"`
	IsDeleted     bool      `json:"is_deleted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		NoteID:        note.NoteID,
		UserID:        note.UserID,
		Title:         note.Title,
		Description:   note.Description,
		LabelIDs:      note.LabelIDs,
		Collaborators: note.Collaborators,
		IsArchived:    note.IsArchived,
		IsDeleted:     note.IsDeleted,
		CreatedAt:     note.CreatedAt,
		UpdatedAt:     note.UpdatedAt,
	}
}

func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
