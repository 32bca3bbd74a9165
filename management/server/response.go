package server

import (
	"net/http"

	"taller/pkg/terrors"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

func NewResponse(code int, msg string, data interface{}) *Response {
	return &Response{
		Code: code,
		Msg:  msg,
		Data: data,
	}
}

func WriteOK(fn func(code int, obj any), data interface{}) {
	fn(http.StatusOK, NewResponse(http.StatusOK, "success", data))
}

func WriteCreated(fn func(code int, obj any), data interface{}) {
	fn(http.StatusCreated, NewResponse(http.StatusCreated, "success", data))
}

// WriteError maps err to its HTTP status: not found sentinels to 404,
// invalid input to 400, anything else to 500.
func WriteError(fn func(code int, obj any), err error) {
	code := http.StatusInternalServerError
	switch {
	case terrors.IsNotFound(err):
		code = http.StatusNotFound
	case terrors.IsInvalid(err):
		code = http.StatusBadRequest
	}
	fn(code, NewResponse(code, err.Error(), nil))
}

func WriteBadRequest(fn func(code int, obj any), msg string) {
	fn(http.StatusBadRequest, NewResponse(http.StatusBadRequest, msg, nil))
}
