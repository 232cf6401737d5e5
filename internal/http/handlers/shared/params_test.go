package shared

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newParamContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestQueryOptionalInt(t *testing.T) {
	c := newParamContext("/products?bpm_min=120&bpm_max=abc")
	if v, ok := QueryOptionalInt(c, "bpm_min"); !ok || v == nil || *v != 120 {
		t.Fatalf("bpm_min want 120 got %v ok=%v", v, ok)
	}
	if _, ok := QueryOptionalInt(c, "bpm_max"); ok {
		t.Fatalf("non numeric value should fail")
	}
	if v, ok := QueryOptionalInt(c, "page"); !ok || v != nil {
		t.Fatalf("missing value should be nil and ok")
	}
}

func TestQueryBool(t *testing.T) {
	c := newParamContext("/products?include_variations=TRUE&x=0")
	if !QueryBool(c, "include_variations") {
		t.Fatalf("TRUE should be true")
	}
	if QueryBool(c, "x") || QueryBool(c, "missing") {
		t.Fatalf("0 and missing should be false")
	}
}

func TestParamUint(t *testing.T) {
	c := newParamContext("/products/12")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	if v, ok := ParamUint(c, "id"); !ok || v != 12 {
		t.Fatalf("want 12 got %d ok=%v", v, ok)
	}
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	if _, ok := ParamUint(c, "id"); ok {
		t.Fatalf("non numeric id should fail")
	}
	c.Params = gin.Params{{Key: "id", Value: "0"}}
	if _, ok := ParamUint(c, "id"); ok {
		t.Fatalf("zero id should fail")
	}
}
