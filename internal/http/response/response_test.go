package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestListPageTotalPages(t *testing.T) {
	page := ListPage("posts", []int{1, 2}, 21, 2, 10)
	if page["total_pages"] != int64(3) {
		t.Fatalf("total_pages want 3, got %v", page["total_pages"])
	}
	if page["limit"] != 10 || page["page"] != 2 {
		t.Fatalf("unexpected page fields: %v", page)
	}
	if empty := ListPage("posts", nil, 0, 1, 0); empty["total_pages"] != int64(0) {
		t.Fatalf("zero limit should give zero pages, got %v", empty["total_pages"])
	}
}

func TestErrorAlwaysHTTP200WithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Error(c, CodeNotFound, "missing")

	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200, got %d", w.Code)
	}
	var body struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.StatusCode != CodeNotFound || body.Msg != "missing" || body.Data["request_id"] != "req-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRouteNotFoundUsesHTTP404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RouteNotFound(c, "not found")

	if w.Code != http.StatusNotFound {
		t.Fatalf("http status want 404, got %d", w.Code)
	}
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.StatusCode != CodeNotFound || body.Data != nil {
		t.Fatalf("unexpected body without request id: %+v", body)
	}
}
