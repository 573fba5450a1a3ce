// Package handler 响应映射单元测试
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsense/skillsense-ai/internal/service/types"
)

func TestErrorResponseStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: types.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid argument", err: types.ErrInvalidArgument, wantStatus: http.StatusBadRequest},
		{name: "invalid policy", err: types.ErrInvalidPolicy, wantStatus: http.StatusBadRequest},
		{name: "invalid state", err: types.ErrInvalidState, wantStatus: http.StatusConflict},
		{name: "interview ended", err: types.ErrInterviewEnded, wantStatus: http.StatusConflict},
		{name: "storage conflict", err: types.ErrStorageConflict, wantStatus: http.StatusConflict},
		{name: "upstream failure", err: types.ErrUpstreamFailure, wantStatus: http.StatusBadGateway},
		{name: "unclassified", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
		{
			name:       "wrapped sentinel",
			err:        fmt.Errorf("interview abc: %w", types.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			errorResponse(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
