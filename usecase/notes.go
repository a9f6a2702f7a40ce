package usecase

import (
	"context"
	"strings"

	"main/model"
	"main/utils"
)

// NotesStore is the document-store contract the notes service runs on.
// *repository.NotesRepo is the Mongo implementation.
type NotesStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetNote(ctx context.Context, noteID string) (*model.Note, error)
	GetAllNotes(ctx context.Context) ([]*model.Note, error)
	GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error)
	GetNotesByLabel(ctx context.Context, labelID string) ([]*model.Note, error)
	UpdateNote(ctx context.Context, noteID, title, description string) (*model.Note, error)
	AddLabel(ctx context.Context, noteID, labelID string) (*model.Note, error)
	RemoveLabel(ctx context.Context, noteID, labelID string) (*model.Note, error)
	AddCollaborator(ctx context.Context, noteID, collaboratorID string) (*model.Note, error)
	RemoveCollaborator(ctx context.Context, noteID, collaboratorID string) (*model.Note, error)
	SetArchived(ctx context.Context, noteID string, archived bool) (*model.Note, error)
	SoftDeleteNote(ctx context.Context, noteID string) (*model.Note, error)
	HardDeleteNote(ctx context.Context, noteID string) error
}

// UserFinder resolves user identities when sharing notes.
type UserFinder interface {
	FindUser(ctx context.Context, userID string) (*model.User, error)
}

type NotesService struct {
	NotesRepo NotesStore
	UsersRepo UserFinder
}

func (svc *NotesService) validateNote(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", utils.ValidationError("note title is required")
	}
	if len(title) > 200 {
		return "", "", utils.ValidationError("note title exceeds maximum length")
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return "", "", utils.ValidationError("note description is required")
	}
	if len(description) > 50000 {
		return "", "", utils.ValidationError("note description exceeds maximum length")
	}

	return title, description, nil
}

// CreateNote creates a note owned by ownerID with empty label and
// collaborator sets.
func (svc *NotesService) CreateNote(ctx context.Context, ownerID, title, description string) (*model.Note, error) {
	title, description, err := svc.validateNote(title, description)
	if err != nil {
		return nil, err
	}

	note := &model.Note{
		NoteID:        utils.GenerateID(),
		UserID:        ownerID,
		Title:         title,
		Description:   description,
		LabelIDs:      []string{},
		Collaborators: []string{},
	}

	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	utils.TrackNoteOperation("create")
	return note, nil
}

// GetNote returns the note if the caller owns it or collaborates on it
func (svc *NotesService) GetNote(ctx context.Context, noteID, actorID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := authorize(note, actorID); err != nil {
		return nil, err
	}
	return note, nil
}

// GetAllNotes lists every stored note, archived included but
// soft-deleted excluded
func (svc *NotesService) GetAllNotes(ctx context.Context) ([]*model.Note, error) {
	return svc.NotesRepo.GetAllNotes(ctx)
}

// GetUserNotes lists notes the user owns or collaborates on
func (svc *NotesService) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	return svc.NotesRepo.GetUserNotes(ctx, userID)
}

// GetNotesByLabel lists notes carrying the label
func (svc *NotesService) GetNotesByLabel(ctx context.Context, labelID string) ([]*model.Note, error) {
	return svc.NotesRepo.GetNotesByLabel(ctx, labelID)
}

// UpdateNote replaces title and description only
func (svc *NotesService) UpdateNote(ctx context.Context, noteID, actorID, title, description string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := authorize(note, actorID); err != nil {
		return nil, err
	}

	title, description, err = svc.validateNote(title, description)
	if err != nil {
		return nil, err
	}

	return svc.NotesRepo.UpdateNote(ctx, noteID, title, description)
}

// AddLabel is an idempotent set-insert: when the label is already
// present no write is issued and the unchanged note is returned.
func (svc *NotesService) AddLabel(ctx context.Context, noteID, labelID, actorID string) (*model.Note, error) {
	labelID = strings.TrimSpace(labelID)
	if labelID == "" {
		return nil, utils.ValidationError("label id is required")
	}

	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := authorize(note, actorID); err != nil {
		return nil, err
	}

	if note.HasLabel(labelID) {
		return note, nil
	}

	return svc.NotesRepo.AddLabel(ctx, noteID, labelID)
}

// RemoveLabel removes a label unconditionally; an absent label is a
// no-op returning the unchanged note
func (svc *NotesService) RemoveLabel(ctx context.Context, noteID, labelID, actorID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := authorize(note, actorID); err != nil {
		return nil, err
	}

	return svc.NotesRepo.RemoveLabel(ctx, noteID, labelID)
}

// AddCollaborator shares the note with an existing user. Only the owner
// may manage collaborators, and the owner itself is never added.
func (svc *NotesService) AddCollaborator(ctx context.Context, noteID, collaboratorID, actorID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(note, actorID); err != nil {
		return nil, err
	}

	if collaboratorID == note.UserID {
		return nil, utils.ValidationError("owner cannot be a collaborator")
	}

	// The collaborator has to resolve to a real account.
	if _, err := svc.UsersRepo.FindUser(ctx, collaboratorID); err != nil {
		return nil, err
	}

	if note.HasCollaborator(collaboratorID) {
		return note, nil
	}

	return svc.NotesRepo.AddCollaborator(ctx, noteID, collaboratorID)
}

// RemoveCollaborator unshares the note; removing an absent collaborator
// is a no-op
func (svc *NotesService) RemoveCollaborator(ctx context.Context, noteID, collaboratorID, actorID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(note, actorID); err != nil {
		return nil, err
	}

	return svc.NotesRepo.RemoveCollaborator(ctx, noteID, collaboratorID)
}

// ToggleArchive flips the archive flag
func (svc *NotesService) ToggleArchive(ctx context.Context, noteID, actorID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := authorize(note, actorID); err != nil {
		return nil, err
	}

	return svc.NotesRepo.SetArchived(ctx, noteID, !note.IsArchived)
}

// SoftDelete marks the note deleted without removing the document
func (svc *NotesService) SoftDelete(ctx context.Context, noteID, actorID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(note, actorID); err != nil {
		return nil, err
	}

	return svc.NotesRepo.SoftDeleteNote(ctx, noteID)
}

// HardDelete physically removes the note
func (svc *NotesService) HardDelete(ctx context.Context, noteID, actorID string) error {
	note, err := svc.NotesRepo.GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(note, actorID); err != nil {
		return err
	}

	return svc.NotesRepo.HardDeleteNote(ctx, noteID)
}

// authorize admits the owner and collaborators
func authorize(note *model.Note, actorID string) error {
	if note.UserID == actorID || note.HasCollaborator(actorID) {
		return nil
	}
	return utils.AuthError("not authorized for this note")
}

// authorizeOwner admits the owner only: sharing and deletion stay with
// the account that created the note
func authorizeOwner(note *model.Note, actorID string) error {
	if note.UserID == actorID {
		return nil
	}
	return utils.AuthError("only the owner may do this")
}
