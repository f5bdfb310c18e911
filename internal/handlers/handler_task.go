package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/solvikcrm/solvik_crm/internal/core/ports/services"
	"github.com/solvikcrm/solvik_crm/internal/dto"
	"github.com/solvikcrm/solvik_crm/internal/middleware"
)

// taskHandler handles HTTP requests related to tasks.
type taskHandler struct {
	taskService portssvc.TaskSvcFacade
}

// registerTaskRoutes registers routes related to tasks.
func registerTaskRoutes(rg *gin.RouterGroup, taskService portssvc.TaskSvcFacade) {
	h := &taskHandler{taskService: taskService}

	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.listTasks)
		tasks.GET("/upcoming", h.listUpcomingTasks)
		tasks.GET("/overdue", h.listOverdueTasks)
		tasks.GET("/:id", h.getTaskByID)
		tasks.POST("", h.createTask)
		tasks.PUT("/:id", h.updateTask)
		tasks.PUT("/:id/toggle", h.toggleTaskCompletion)
		tasks.DELETE("/:id", h.deleteTask)
	}
}

// listTasks godoc
// @Summary List tasks
// @Description Retrieves the tasks visible to the caller, open tasks first
// @Tags tasks
// @Produce json
// @Success 200 {object} dto.ListTasksResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tasks [get]
func (h *taskHandler) listTasks(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "Failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTasksResponse(tasks))
}

// listUpcomingTasks godoc
// @Summary List upcoming tasks
// @Description Retrieves visible open tasks due within the next days (default 7)
// @Tags tasks
// @Produce json
// @Param days query int false "Window in days" default(7)
// @Success 200 {object} dto.ListTasksResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tasks/upcoming [get]
func (h *taskHandler) listUpcomingTasks(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.Query("days"))

	tasks, err := h.taskService.ListUpcomingTasks(c.Request.Context(), p, days)
	if err != nil {
		respondError(c, err, "Failed to list upcoming tasks")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTasksResponse(tasks))
}

// listOverdueTasks godoc
// @Summary List overdue tasks
// @Description Retrieves visible open tasks whose due date has passed
// @Tags tasks
// @Produce json
// @Success 200 {object} dto.ListTasksResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /tasks/overdue [get]
func (h *taskHandler) listOverdueTasks(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListOverdueTasks(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "Failed to list overdue tasks")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTasksResponse(tasks))
}

// getTaskByID godoc
// @Summary Get a task
// @Description Retrieves one task; ids outside the caller's scope read as not found
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *taskHandler) getTaskByID(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve task")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// createTask godoc
// @Summary Create a task
// @Description Creates a task owned by the caller; requires admin or sales role
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body dto.CreateTaskRequest true "Task details"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /tasks [post]
func (h *taskHandler) createTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTask", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), p, req)
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskResponse(task))
}

// updateTask godoc
// @Summary Update a task
// @Description Updates a visible task; requires admin or sales role
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} dto.TaskResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *taskHandler) updateTask(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTask", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// toggleTaskCompletion godoc
// @Summary Toggle task completion
// @Description Flips the completed flag of a visible task, recording a completed or reopened audit entry
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{id}/toggle [put]
func (h *taskHandler) toggleTaskCompletion(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleTaskCompletion(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to toggle task completion")
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskResponse(task))
}

// deleteTask godoc
// @Summary Delete a task
// @Description Deletes a visible task; requires admin or sales role
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Task not found"
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *taskHandler) deleteTask(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), p, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete task")
		return
	}
	c.Status(http.StatusNoContent)
}
