package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, gin.H{"key": "value"})

	if w.Code != 200 {
		t.Errorf("status = %d, expected 200", w.Code)
	}
	resp := decode(t, w)
	if resp.Code != 0 || resp.Message != "ok" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, nil)

	if w.Code != 201 {
		t.Errorf("status = %d, expected 201", w.Code)
	}
}

func TestError_AppError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, NewConflict("ride is full"))

	if w.Code != 409 {
		t.Errorf("status = %d, expected 409", w.Code)
	}
	resp := decode(t, w)
	if resp.Code != 409 || resp.Message != "ride is full" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestError_GenericError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("boom"))

	if w.Code != 500 {
		t.Errorf("status = %d, expected 500", w.Code)
	}
}

func TestStatusHelpers(t *testing.T) {
	cases := []struct {
		name string
		fire func(*gin.Context)
		code int
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "m") }, 400},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "m") }, 401},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "m") }, 403},
		{"not found", func(c *gin.Context) { NotFound(c, "m") }, 404},
		{"conflict", func(c *gin.Context) { Conflict(c, "m") }, 409},
		{"server error", func(c *gin.Context) { ServerError(c, "m") }, 500},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		tc.fire(c)

		if w.Code != tc.code {
			t.Errorf("%s: status = %d, expected %d", tc.name, w.Code, tc.code)
		}
		resp := decode(t, w)
		if resp.Code != tc.code {
			t.Errorf("%s: body code = %d, expected %d", tc.name, resp.Code, tc.code)
		}
	}
}
