package reply

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-reply/backend/internal/model/reply"
	"github.com/zhouzirui/z-reply/backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

var errGeneratorNotConfigured = errors.New("reply generator is not configured")

// Generator drafts a reply for one customer message.
type Generator interface {
	GenerateReply(ctx context.Context, req reply.GenerationRequest) (reply.GenerationResult, error)
}

// Archive lists and appends saved replies.
type Archive interface {
	List(ctx context.Context) ([]reply.SavedReply, error)
	Create(ctx context.Context, in reply.NewReply) (reply.SavedReply, error)
}

// Handler 回复生成与存档的HTTP处理器
type Handler struct {
	archive   Archive
	generator Generator
	logger    zerolog.Logger
}

// New 创建处理器；generator 为 nil 时生成接口在校验通过后返回生成失败。
func New(archive Archive, generator Generator, logger zerolog.Logger) *Handler {
	return &Handler{
		archive:   archive,
		generator: generator,
		logger:    logger,
	}
}

// RegisterRoutes 注册回复相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/replies", h.handleListReplies)
	r.Post("/replies", h.handleCreateReply)
	r.Post("/generate-reply", h.handleGenerateReply)
}

// handleListReplies 列出所有已保存的回复
func (h *Handler) handleListReplies(w http.ResponseWriter, r *http.Request) {
	items, err := h.archive.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "Failed to load replies")
		return
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

// handleCreateReply 保存一条回复
func (h *Handler) handleCreateReply(w http.ResponseWriter, r *http.Request) {
	var payload reply.NewReply
	if !decodeBody(w, r, &payload) {
		return
	}

	saved, err := h.archive.Create(r.Context(), payload)
	if err != nil {
		h.respondServiceError(w, err, "Failed to save reply")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, saved)
}

// handleGenerateReply 调用大模型生成回复草稿
func (h *Handler) handleGenerateReply(w http.ResponseWriter, r *http.Request) {
	var payload reply.GenerationRequest
	if !decodeBody(w, r, &payload) {
		return
	}

	if h.generator == nil {
		if _, err := payload.Validate(); err != nil {
			h.respondServiceError(w, err, "Failed to generate reply")
			return
		}
		h.respondServiceError(w, &reply.GenerationError{Err: errGeneratorNotConfigured}, "Failed to generate reply")
		return
	}

	result, err := h.generator.GenerateReply(r.Context(), payload)
	if err != nil {
		h.respondServiceError(w, err, "Failed to generate reply")
		return
	}
	utils.RespondJSON(w, http.StatusOK, result)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// 字段类型不符按校验错误返回，指明字段
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			utils.RespondFieldError(w, http.StatusBadRequest, typeErr.Field, typeErr.Field+" must be a "+typeErr.Type.String())
			return false
		}
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// respondServiceError maps the reply error kinds onto status codes.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error, message string) {
	var verr *reply.ValidationError
	if errors.As(err, &verr) {
		utils.RespondFieldError(w, http.StatusBadRequest, verr.Field, verr.Message)
		return
	}

	var gerr *reply.GenerationError
	if errors.As(err, &gerr) {
		h.logger.Error().Err(err).Msg("error generating reply")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate reply")
		return
	}

	h.logger.Error().Err(err).Msg(message)
	utils.RespondError(w, http.StatusInternalServerError, message)
}
