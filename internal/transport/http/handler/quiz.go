package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docfolio/internal/app"
	"docfolio/internal/transport/http/response"
)

type QuizHandler struct {
	quizService *app.QuizService
}

type GenerateQuizRequest struct {
	Topic      string `json:"topic" binding:"max=256"`
	Difficulty string `json:"difficulty" binding:"max=32"`
	Count      int    `json:"count" binding:"min=0,max=20"`
}

type SubmitQuizResultRequest struct {
	WorkspaceID    string `json:"workspace_id" binding:"max=36"`
	Topic          string `json:"topic" binding:"max=256"`
	Score          int    `json:"score" binding:"min=0"`
	TotalQuestions int    `json:"total_questions" binding:"required,min=1"`
	Difficulty     string `json:"difficulty" binding:"max=32"`
}

func NewQuizHandler(quizService *app.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (h *QuizHandler) Generate(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	questions, err := h.quizService.Generate(c.Request.Context(), app.GenerateQuizInput{
		UserID:      userID,
		WorkspaceID: c.Param("id"),
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		Count:       req.Count,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrWorkspaceNotFound):
			response.Error(c, http.StatusNotFound, response.CodeWorkspaceNotFound, err.Error())
		case errors.Is(err, app.ErrNoDocuments):
			response.Error(c, http.StatusBadRequest, response.CodeNoDocuments, err.Error())
		case errors.Is(err, app.ErrQuizMalformed):
			response.Error(c, http.StatusBadGateway, response.CodeQuizMalformed, err.Error())
		default:
			response.Error(c, http.StatusBadGateway, response.CodeModelFailure, "quiz generation failed: "+err.Error())
		}
		return
	}

	response.OK(c, gin.H{"questions": questions})
}

func (h *QuizHandler) SubmitResult(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req SubmitQuizResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.quizService.SubmitResult(app.SubmitResultInput{
		UserID:         userID,
		WorkspaceID:    req.WorkspaceID,
		Topic:          req.Topic,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		Difficulty:     req.Difficulty,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "submit quiz result failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *QuizHandler) ListHistory(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	results, err := h.quizService.ListHistory(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list quiz history failed")
		return
	}

	response.OK(c, results)
}
