package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/notifier/pkg/httpx"
)

// testContext — *gin.Context с query-строкой и path-параметрами.
func testContext(rawQuery string, params ...gin.Param) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, http.NoBody)
	c.Params = params
	return c
}

func TestClampInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"below_lo", 0, 1, 10, 1},
		{"above_hi", 11, 1, 10, 10},
		{"inside", 5, 1, 10, 5},
		{"edges", 10, 1, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := httpx.ClampInt(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("ClampInt(%d,%d,%d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestParseLimitOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rawQuery     string
		defaultLimit int
		wantLimit    int
		wantOffset   int
	}{
		{"defaults", "", 50, 50, 0},
		{"default_above_max_clamped", "", 500, 200, 0},
		{"both", "limit=25&offset=10", 50, 25, 10},
		{"limit_zero_to_min", "limit=0", 50, 1, 0},
		{"limit_above_max", "limit=999", 50, 200, 0},
		{"limit_not_int_uses_default", "limit=foo", 50, 50, 0},
		{"offset_not_int_ignored", "offset=bar", 50, 50, 0},
		{"offset_negative_ignored", "limit=10&offset=-3", 50, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			limit, offset := httpx.ParseLimitOffset(testContext(tt.rawQuery), tt.defaultLimit, 200)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("got limit=%d offset=%d, want %d/%d (query=%q)",
					limit, offset, tt.wantLimit, tt.wantOffset, tt.rawQuery)
			}
		})
	}
}

func TestParseUUIDParam(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got, err := httpx.ParseUUIDParam(testContext("", gin.Param{Key: "id", Value: id.String()}), "id")
	if err != nil || got != id {
		t.Fatalf("got %s, %v; want %s", got, err, id)
	}

	for _, raw := range []string{"", "not-a-uuid", uuid.Nil.String()} {
		if _, err := httpx.ParseUUIDParam(testContext("", gin.Param{Key: "id", Value: raw}), "id"); err == nil {
			t.Fatalf("want error for %q", raw)
		}
	}
}

func TestQueryValues_RepeatedAndCommaSeparated(t *testing.T) {
	t.Parallel()

	c := testContext("access=a:1:1,b:2:2&access=&access=%20c:3:3%20")
	got := httpx.QueryValues(c, "access")
	want := []string{"a:1:1", "b:2:2", "c:3:3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := httpx.QueryValues(c, "missing"); got != nil {
		t.Fatalf("missing key: got %v, want nil", got)
	}
}
