package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRegisterRejectsInvalidInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/register", Register)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed email", `{"username": "carol", "email": "not-an-email", "password": "longenough"}`, "Invalid email format"},
		{"email without tld", `{"username": "carol", "email": "carol@host", "password": "longenough"}`, "Invalid email format"},
		{"short password", `{"username": "carol", "email": "carol@example.org", "password": "short"}`, "at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}
