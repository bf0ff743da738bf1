package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"flux-ci/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 0, 0, time.FixedZone("ICT", 7*3600))

	b, err := json.Marshal(response.DateTime(tm))
	if err != nil {
		t.Fatalf("unexpected error marshaling DateTime: %v", err)
	}
	if got, want := string(b), `"2024-05-01T08:30:00Z"`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestNewDateTime(t *testing.T) {
	type body struct {
		Started *response.DateTime `json:"started,omitempty"`
	}

	b, _ := json.Marshal(body{Started: response.NewDateTime(nil)})
	if string(b) != `{}` {
		t.Errorf("nil time: got %s, want {}", b)
	}

	tm := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	b, _ = json.Marshal(body{Started: response.NewDateTime(&tm)})
	if string(b) != `{"started":"2024-05-01T08:30:00Z"}` {
		t.Errorf("set time: got %s", b)
	}
}
