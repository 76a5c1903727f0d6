package handler

import "github.com/abdelhalimemara/debrah-exp-v5.8/internal/interfaces/http/dto"

// APIResponse is the response envelope with a typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// CountData wraps a bare count
type CountData struct {
	Count int64 `json:"count"`
}
