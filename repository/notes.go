package repository

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client, dbName string) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(dbName).Collection("notes"),
	}
}

// CreateNote inserts a new note
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		utils.TrackError("db")
		return utils.TransientError("insert note", err)
	}
	return nil
}

// GetNote retrieves a specific note, soft-deleted ones included
func (r *NotesRepo) GetNote(ctx context.Context, noteID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, bson.M{"note_id": noteID}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("note")
		}
		utils.TrackError("db")
		return nil, utils.TransientError("find note", err)
	}
	return &note, nil
}

// GetAllNotes lists every note that is not soft-deleted, archived included
func (r *NotesRepo) GetAllNotes(ctx context.Context) ([]*model.Note, error) {
	return r.findNotes(ctx, bson.M{"is_deleted": false})
}

// GetUserNotes lists notes the user owns or collaborates on
func (r *NotesRepo) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	return r.findNotes(ctx, bson.M{
		"is_deleted": false,
		"$or": []bson.M{
			{"user_id": userID},
			{"collaborators": userID},
		},
	})
}

// GetNotesByLabel lists notes carrying a label
func (r *NotesRepo) GetNotesByLabel(ctx context.Context, labelID string) ([]*model.Note, error) {
	return r.findNotes(ctx, bson.M{
		"is_deleted": false,
		"label_ids":  labelID,
	})
}

func (r *NotesRepo) findNotes(ctx context.Context, filter bson.M) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("db")
		return nil, utils.TransientError("find notes", err)
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		utils.TrackError("db")
		return nil, utils.TransientError("decode notes", err)
	}
	return notes, nil
}

// UpdateNote replaces title and description, leaving labels,
// collaborators and flags untouched
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID, title, description string) (*model.Note, error) {
	update := bson.M{
		"$set": bson.M{
			"title":       title,
			"description": description,
			"updated_at":  time.Now(),
		},
	}
	return r.findOneAndUpdate(ctx, noteID, update, "update")
}

// AddLabel inserts a label into the note's label set. The $addToSet
// write is atomic, so concurrent adders of the same label collapse to a
// single membership.
func (r *NotesRepo) AddLabel(ctx context.Context, noteID, labelID string) (*model.Note, error) {
	update := bson.M{
		"$addToSet": bson.M{"label_ids": labelID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	return r.findOneAndUpdate(ctx, noteID, update, "label_add")
}

// RemoveLabel removes a label; removing an absent label is a no-op
func (r *NotesRepo) RemoveLabel(ctx context.Context, noteID, labelID string) (*model.Note, error) {
	update := bson.M{
		"$pull": bson.M{"label_ids": labelID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return r.findOneAndUpdate(ctx, noteID, update, "label_remove")
}

// AddCollaborator inserts a user into the note's collaborator set
func (r *NotesRepo) AddCollaborator(ctx context.Context, noteID, collaboratorID string) (*model.Note, error) {
	update := bson.M{
		"$addToSet": bson.M{"collaborators": collaboratorID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	return r.findOneAndUpdate(ctx, noteID, update, "collaborator_add")
}

// RemoveCollaborator removes a user; removing an absent one is a no-op
func (r *NotesRepo) RemoveCollaborator(ctx context.Context, noteID, collaboratorID string) (*model.Note, error) {
	update := bson.M{
		"$pull": bson.M{"collaborators": collaboratorID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	return r.findOneAndUpdate(ctx, noteID, update, "collaborator_remove")
}

// SetArchived sets the archive flag
func (r *NotesRepo) SetArchived(ctx context.Context, noteID string, archived bool) (*model.Note, error) {
	update := bson.M{
		"$set": bson.M{
			"is_archived": archived,
			"updated_at":  time.Now(),
		},
	}
	return r.findOneAndUpdate(ctx, noteID, update, "archive")
}

// SoftDeleteNote marks the note deleted; the document stays in place
func (r *NotesRepo) SoftDeleteNote(ctx context.Context, noteID string) (*model.Note, error) {
	update := bson.M{
		"$set": bson.M{
			"is_deleted": true,
			"updated_at": time.Now(),
		},
	}
	return r.findOneAndUpdate(ctx, noteID, update, "soft_delete")
}

// HardDeleteNote physically removes the note
func (r *NotesRepo) HardDeleteNote(ctx context.Context, noteID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"note_id": noteID})
	if err != nil {
		utils.TrackError("db")
		return utils.TransientError("delete note", err)
	}
	if result.DeletedCount == 0 {
		return utils.NotFoundError("note")
	}

	utils.TrackNoteOperation("hard_delete")
	return nil
}

// CountNotes counts all notes, soft-deleted ones excluded
func (r *NotesRepo) CountNotes(ctx context.Context) (int64, error) {
	timer := utils.TrackDBOperation("count", "notes")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"is_deleted": false})
	if err != nil {
		utils.TrackError("db")
		return 0, utils.TransientError("count notes", err)
	}
	return count, nil
}

func (r *NotesRepo) findOneAndUpdate(ctx context.Context, noteID string, update bson.M, op string) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"note_id": noteID}, update, opts).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError("note")
		}
		utils.TrackError("db")
		return nil, utils.TransientError("update note", err)
	}

	utils.TrackNoteOperation(op)
	return &note, nil
}
