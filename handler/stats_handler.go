package handler

import (
	"log"

	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	userRepo  *repository.UserRepo
	notesRepo *repository.NotesRepo
}

func NewStatsHandler(userRepo *repository.UserRepo, notesRepo *repository.NotesRepo) *StatsHandler {
	return &StatsHandler{
		userRepo:  userRepo,
		notesRepo: notesRepo,
	}
}

// GetServiceStats reports process and store counters for a small
// single-instance deployment.
func (h *StatsHandler) GetServiceStats(c *gin.Context) {
	ctx := c.Request.Context()

	userCount, err := h.userRepo.CountUsers(ctx)
	if err != nil {
		log.Printf("Error counting users: %v", err)
		utils.Error(c, err)
		return
	}

	noteCount, err := h.notesRepo.CountNotes(ctx)
	if err != nil {
		log.Printf("Error counting notes: %v", err)
		utils.Error(c, err)
		return
	}

	utils.Success(c, gin.H{
		"users":          userCount,
		"notes":          noteCount,
		"uptime_seconds": int64(utils.GetUptime().Seconds()),
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
	})
}
