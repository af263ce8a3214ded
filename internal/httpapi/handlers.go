package httpapi

import (
	"net/http"
	"time"

	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready == nil || !s.ready.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "initializing"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, msgRouteNotFound)
}

// ---- tasks

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateTaskInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.tasks.CreateTask(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err, msgTaskNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Task created successfully",
		"data":    task,
	})
}

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.ListTasks(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, msgTaskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data":  tasks,
		"count": len(tasks),
	})
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	id, err := s.validator.ParseTaskID(r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err, msgTaskNotFound)
		return
	}

	task, err := s.tasks.GetTask(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, msgTaskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": task})
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := s.validator.ParseTaskID(r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err, msgTaskNotFound)
		return
	}

	var in domain.UpdateTaskInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := s.tasks.UpdateTask(r.Context(), id, in)
	if err != nil {
		s.writeServiceError(w, r, err, msgTaskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Task updated successfully",
		"data":    task,
	})
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	id, err := s.validator.ParseTaskID(r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err, msgTaskNotFound)
		return
	}

	if err := s.tasks.DeleteTask(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err, msgTaskNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// ---- database browser

func (s *Server) handleDatabaseSchema(w http.ResponseWriter, r *http.Request) {
	info, err := s.database.Schema(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, msgTableNotFound)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.database.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, msgTableNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleDatabaseTable(w http.ResponseWriter, r *http.Request) {
	data, err := s.database.TableData(r.Context(), r.PathValue("tableName"))
	if err != nil {
		s.writeServiceError(w, r, err, msgTableNotFound)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

type queryRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleDatabaseQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.database.ExecuteQuery(r.Context(), req.Query)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeExecution) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":   msgQueryFailed,
				"message": apperrors.GetUserMessage(err),
			})
			return
		}
		s.writeServiceError(w, r, err, msgTableNotFound)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDatabaseClear(w http.ResponseWriter, r *http.Request) {
	result, err := s.database.Clear(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, msgTableNotFound)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
