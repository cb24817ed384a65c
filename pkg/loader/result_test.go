package loader

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestResultMarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"success", Success(map[string]any{"title": "Hi"}), `{"type":"success","data":{"title":"Hi"}}`},
		{"success nil", Success(nil), `{"type":"success"}`},
		{"redirect", RedirectTo("/login", 302), `{"type":"redirect","location":"/login","status":302}`},
		{"error", Failure(500, errors.New("boom")), `{"type":"error","status":500,"error":"boom"}`},
		{"status change", ChangeStatus(401), `{"type":"changeStatusCode","status":401}`},
		{"unchanged", Unchanged(), `{"type":"unchanged"}`},
	}
	for _, tt := range tests {
		got, err := json.Marshal(tt.result)
		if err != nil {
			t.Fatalf("%s: marshal error: %v", tt.name, err)
		}
		if string(got) != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestResultDefaults(t *testing.T) {
	if r := RedirectTo("/x", 0); r.Status != 302 {
		t.Errorf("redirect default status = %d, want 302", r.Status)
	}
	if r := Failure(0, errors.New("x")); r.Status != 500 {
		t.Errorf("failure default status = %d, want 500", r.Status)
	}
}
