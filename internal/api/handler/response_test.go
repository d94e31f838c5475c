package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// TestRespondListMeta checks the list envelope's pagination meta, in
// particular that has_more flips when the window has consumed the total.
func TestRespondListMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name               string
		total, page, limit int
		wantHasMore        bool
	}{
		{"first page of many", 45, 1, 20, true},
		{"middle page", 45, 2, 20, true},
		{"last page", 45, 3, 20, false},
		{"exact fit", 40, 2, 20, false},
		{"empty", 0, 1, 20, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)

			respondList(c, []string{}, tc.total, tc.page, tc.limit)

			var body struct {
				Success bool `json:"success"`
				Meta    struct {
					Total   int  `json:"total"`
					Page    int  `json:"page"`
					Limit   int  `json:"limit"`
					HasMore bool `json:"has_more"`
				} `json:"meta"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !body.Success {
				t.Error("success should be true")
			}
			if body.Meta.Total != tc.total || body.Meta.Page != tc.page || body.Meta.Limit != tc.limit {
				t.Errorf("meta = %+v, want total=%d page=%d limit=%d", body.Meta, tc.total, tc.page, tc.limit)
			}
			if body.Meta.HasMore != tc.wantHasMore {
				t.Errorf("has_more = %v, want %v", body.Meta.HasMore, tc.wantHasMore)
			}
		})
	}
}
