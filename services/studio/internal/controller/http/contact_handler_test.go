package http

import (
	"net/http"
	"testing"

	"studio-portfolio/pkg/logger"
	"studio-portfolio/services/studio/internal/entity"
	"studio-portfolio/services/studio/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func contactRouter(uc *MockContactUseCase) *gin.Engine {
	handler := NewContactHandler(uc, logger.NewNop())
	router := setupTestRouter()
	router.POST("/contact", handler.Submit)
	router.GET("/contact", handler.List)
	router.PUT("/contact/:id/handled", handler.MarkHandled)
	return router
}

func TestContactHandler_Submit(t *testing.T) {
	uc := new(MockContactUseCase)
	router := contactRouter(uc)
	uc.On("Submit", mock.MatchedBy(func(msg *entity.ContactMessage) bool {
		return msg.Name == "Jo" && msg.Service == "wedding"
	})).Return(nil)

	w := doJSON(router, http.MethodPost, "/contact", map[string]string{
		"name": "Jo", "email": "jo@mail.test", "service": "wedding", "message": "June date?",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "665f1c2e9b1e8a3d4c5b6a80", decode(t, w)["id"])

	w = doJSON(router, http.MethodPost, "/contact", map[string]string{"name": "Jo", "email": "not-an-email", "message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContactHandler_List(t *testing.T) {
	uc := new(MockContactUseCase)
	router := contactRouter(uc)
	handled := false
	uc.On("List", &handled, 0, 0).Return([]*entity.ContactMessage{{ID: "m1"}}, entity.NewPagination(1, 12, 1), nil)

	w := doJSON(router, http.MethodGet, "/contact?handled=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["items"], 1)

	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodGet, "/contact?handled=perhaps", nil).Code)
}

func TestContactHandler_MarkHandled(t *testing.T) {
	uc := new(MockContactUseCase)
	router := contactRouter(uc)
	uc.On("MarkHandled", "m1", true).Return(nil)
	uc.On("MarkHandled", "m1", false).Return(nil)
	uc.On("MarkHandled", "zzz", true).Return(usecase.ErrInvalidID)

	req, _ := http.NewRequest(http.MethodPut, "/contact/m1/handled", nil)
	w := doRequest(router, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusOK, doJSON(router, http.MethodPut, "/contact/m1/handled", map[string]bool{"handled": false}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, http.MethodPut, "/contact/zzz/handled", map[string]bool{"handled": true}).Code)
	uc.AssertExpectations(t)
}
