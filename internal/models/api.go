package models

import usermodel "github.com/Varun5711/taskflow/internal/models/user"

type AuthResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	User    usermodel.PublicUser `json:"user"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ProfileResponse struct {
	User usermodel.PublicUser `json:"user"`
}
