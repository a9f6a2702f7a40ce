package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	note, err := notesService.CreateNote(c.Request.Context(), c.GetString("user_id"), req.Title, req.Description)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Created(c, dto.ToNoteResponse(note))
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	note, err := notesService.GetNote(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func GetUserNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	notes, err := notesService.GetUserNotes(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func GetAllNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	notes, err := notesService.GetAllNotes(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func GetNotesByLabelHandler(c *gin.Context, notesService *usecase.NotesService) {
	notes, err := notesService.GetNotesByLabel(c.Request.Context(), c.Param("labelId"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	note, err := notesService.UpdateNote(c.Request.Context(), c.Param("id"), c.GetString("user_id"), req.Title, req.Description)
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func AddLabelHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req dto.AddLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	note, err := notesService.AddLabel(c.Request.Context(), c.Param("id"), req.LabelID, c.GetString("user_id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func RemoveLabelHandler(c *gin.Context, notesService *usecase.NotesService) {
	note, err := notesService.RemoveLabel(c.Request.Context(), c.Param("id"), c.Param("labelId"), c.GetString("user_id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func AddCollaboratorHandler(c *gin.Context, notesService *usecase.NotesService) {
	var req dto.AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	note, err := notesService.AddCollaborator(c.Request.Context(), c.Param("id"), req.UserID, c.GetString("user_id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func RemoveCollaboratorHandler(c *gin.Context, notesService *usecase.NotesService) {
	note, err := notesService.RemoveCollaborator(c.Request.Context(), c.Param("id"), c.Param("userId"), c.GetString("user_id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func ArchiveNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	note, err := notesService.ToggleArchive(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func SoftDeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	note, err := notesService.SoftDelete(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func HardDeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	if err := notesService.HardDelete(c.Request.Context(), c.Param("id"), c.GetString("user_id")); err != nil {
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "note deleted permanently"})
}
