package server

import (
	"net/http"

	"github.com/anika2711garg/Planix-sub000/internal/service"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch users")
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

func (s *Server) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	user, err := s.svc.Users.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to create user")
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

func (s *Server) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}
	var req service.UpdateUserRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	user, err := s.svc.Users.Update(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err, "Failed to update user")
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

func (s *Server) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user")
	if !ok {
		return
	}
	if err := s.svc.Users.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Failed to delete user")
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "User deleted"})
}

func (s *Server) availableUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.Available(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch available users")
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

func (s *Server) listTeamsHandler(w http.ResponseWriter, r *http.Request) {
	teams, err := s.svc.Teams.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch teams")
		return
	}
	respondWithJSON(w, http.StatusOK, teams)
}

func (s *Server) createTeamHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTeamRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	team, err := s.svc.Teams.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to create team")
		return
	}
	respondWithJSON(w, http.StatusCreated, team)
}

func (s *Server) updateTeamHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "team")
	if !ok {
		return
	}
	var req service.UpdateTeamRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	team, err := s.svc.Teams.Update(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err, "Failed to update team")
		return
	}
	respondWithJSON(w, http.StatusOK, team)
}

func (s *Server) deleteTeamHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "team")
	if !ok {
		return
	}
	if err := s.svc.Teams.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Failed to delete team")
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Team deleted"})
}

func (s *Server) teamMembersHandler(w http.ResponseWriter, r *http.Request) {
	teamID, ok := requiredQueryID(w, r, "teamId", "Team ID is required")
	if !ok {
		return
	}
	team, err := s.svc.Teams.Members(r.Context(), teamID)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch team members")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"success": true, "team": team})
}

func (s *Server) addTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	var req service.AddMemberRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	user, err := s.svc.Teams.AddMember(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to add user to team")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "User added to team successfully",
		"user":    user,
	})
}

func (s *Server) removeTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	var req service.RemoveMemberRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	user, err := s.svc.Teams.RemoveMember(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to remove user from team")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "User removed from team successfully",
		"user":    user,
	})
}

func (s *Server) listSprintsHandler(w http.ResponseWriter, r *http.Request) {
	sprints, err := s.svc.Sprints.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch sprints")
		return
	}
	respondWithJSON(w, http.StatusOK, sprints)
}

func (s *Server) createSprintHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSprintRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	sprint, err := s.svc.Sprints.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to create sprint")
		return
	}
	respondWithJSON(w, http.StatusCreated, sprint)
}

func (s *Server) updateSprintHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "sprint")
	if !ok {
		return
	}
	var req service.UpdateSprintRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	sprint, err := s.svc.Sprints.Update(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err, "Failed to update sprint")
		return
	}
	respondWithJSON(w, http.StatusOK, sprint)
}

func (s *Server) deleteSprintHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "sprint")
	if !ok {
		return
	}
	if err := s.svc.Sprints.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Failed to delete sprint")
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Sprint deleted"})
}

func (s *Server) listBacklogHandler(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Backlog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch backlog items")
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

func (s *Server) createBacklogItemHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBacklogItemRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	item, err := s.svc.Backlog.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to create backlog item")
		return
	}
	respondWithJSON(w, http.StatusCreated, item)
}

func (s *Server) updateBacklogItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "backlog item")
	if !ok {
		return
	}
	var req service.UpdateBacklogItemRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	item, err := s.svc.Backlog.Update(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err, "Failed to update backlog item")
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

func (s *Server) deleteBacklogItemHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "backlog item")
	if !ok {
		return
	}
	if err := s.svc.Backlog.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Failed to delete backlog item")
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Backlog item deleted"})
}

func (s *Server) listSprintTasksHandler(w http.ResponseWriter, r *http.Request) {
	sprintID, ok := requiredQueryID(w, r, "sprintId", "Sprint ID is required")
	if !ok {
		return
	}
	items, err := s.svc.Backlog.SprintTasks(r.Context(), sprintID)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch sprint tasks")
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

func (s *Server) createSprintTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSprintTaskRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	item, err := s.svc.Backlog.CreateSprintTask(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to create task")
		return
	}
	respondWithJSON(w, http.StatusCreated, item)
}

func (s *Server) listTaskCompletionsHandler(w http.ResponseWriter, r *http.Request) {
	completions, err := s.svc.TaskCompletions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch task completions")
		return
	}
	respondWithJSON(w, http.StatusOK, completions)
}

func (s *Server) createTaskCompletionHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTaskCompletionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	tc, err := s.svc.TaskCompletions.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to create task completion")
		return
	}
	respondWithJSON(w, http.StatusCreated, tc)
}

func (s *Server) updateTaskCompletionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "task completion")
	if !ok {
		return
	}
	var req service.UpdateTaskCompletionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	tc, err := s.svc.TaskCompletions.Update(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err, "Failed to update task completion")
		return
	}
	respondWithJSON(w, http.StatusOK, tc)
}

func (s *Server) deleteTaskCompletionHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "task completion")
	if !ok {
		return
	}
	if err := s.svc.TaskCompletions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Failed to delete task completion")
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Task completion deleted"})
}

func (s *Server) listNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryID(w, r, "userId")
	if !ok {
		return
	}
	notifications, err := s.svc.Notifications.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch notifications")
		return
	}
	respondWithJSON(w, http.StatusOK, notifications)
}

func (s *Server) createNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateNotificationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	n, err := s.svc.Notifications.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to create notification")
		return
	}
	respondWithJSON(w, http.StatusCreated, n)
}

func (s *Server) updateNotificationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "notification")
	if !ok {
		return
	}
	var req service.UpdateNotificationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	n, err := s.svc.Notifications.Update(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err, "Failed to update notification")
		return
	}
	respondWithJSON(w, http.StatusOK, n)
}

func (s *Server) markNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "notification")
	if !ok {
		return
	}
	if err := s.svc.Notifications.MarkRead(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Failed to mark notification as read")
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Notification marked as read"})
}

func (s *Server) deleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "notification")
	if !ok {
		return
	}
	if err := s.svc.Notifications.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Failed to delete notification")
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Notification deleted"})
}

func (s *Server) listVelocityHandler(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.svc.Velocity.List(r.Context())
	if err != nil {
		s.writeError(w, r, err, "Failed to fetch velocity metrics")
		return
	}
	respondWithJSON(w, http.StatusOK, metrics)
}

func (s *Server) createVelocityHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateVelocityRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	m, err := s.svc.Velocity.Create(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err, "Failed to create velocity metric")
		return
	}
	respondWithJSON(w, http.StatusCreated, m)
}

func (s *Server) updateVelocityHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "velocity metric")
	if !ok {
		return
	}
	var req service.UpdateVelocityRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	m, err := s.svc.Velocity.Update(r.Context(), id, req)
	if err != nil {
		s.writeError(w, r, err, "Failed to update velocity metric")
		return
	}
	respondWithJSON(w, http.StatusOK, m)
}

func (s *Server) deleteVelocityHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "velocity metric")
	if !ok {
		return
	}
	if err := s.svc.Velocity.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "Failed to delete velocity metric")
		return
	}
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Velocity metric deleted"})
}
