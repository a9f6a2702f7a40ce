package model

import "time"

type Note struct {
	NoteID        string    `bson:"note_id" json:"note_id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Title         string    `bson:"title" json:"title" binding:"required"`
	Description   string    `bson:"description" json:"description" binding:"required"`
	LabelIDs      []string  `bson:"label_ids" json:"label_ids"`
	Collaborators []string  `bson:"collaborators" json:"collaborators"`
	IsArchived    bool      `bson:"is_archived" json:"is_archived"`
	IsDeleted     bool      `bson:"is_deleted" json:"is_deleted"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// HasLabel reports membership in the label set.
func (n *Note) HasLabel(labelID string) bool {
	for _, id := range n.LabelIDs {
		if id == labelID {
			return true
		}
	}
	return false
}

// HasCollaborator reports membership in the collaborator set.
func (n *Note) HasCollaborator(userID string) bool {
	for _, id := range n.Collaborators {
		if id == userID {
			return true
		}
	}
	return false
}
