package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func writeBusiness(err error) (*httptest.ResponseRecorder, bool) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return w, WriteBusiness(c, err)
}

func TestWriteBusiness_RegisteredCode(t *testing.T) {
	err := fmt.Errorf("booking: open: %w", ErrBusiness(CodeClinicNotFound))

	w, ok := writeBusiness(err)
	if !ok {
		t.Fatal("expected a wrapped business error to be written")
	}
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != CodeClinicNotFound || body.Message != "Clinic not found." {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestWriteBusiness_UnknownCodeAndOtherErrors(t *testing.T) {
	if w, ok := writeBusiness(ErrBusiness("something_else")); !ok || w.Code != http.StatusBadRequest {
		t.Fatalf("expected unregistered code to be a 400, got %d", w.Code)
	}
	if _, ok := writeBusiness(errors.New("boom")); ok {
		t.Fatal("expected a plain error to be left to the caller")
	}
}
