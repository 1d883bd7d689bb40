package rentbook

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/etnz/rentbook/date"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("field order is kept", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("id", "p1")
		w.Append("amount", M(1250.5))
		w.Append("date", date.New(2024, time.January, 5))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"id":"p1","amount":1250.5,"date":"2024-01-05"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional skips zero money and dates", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("rentAmount", Money{}) // a zero amount is still written with Append.
		w.Optional("downPayment", Money{})
		w.Optional("leaseEnd", date.Date{})
		w.Optional("note", "")
		w.Optional("tenantId", "t1")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"rentAmount":0,"tenantId":"t1"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("version", 1)
		w.Embed(json.RawMessage(`{"currency":"USD"}`))
		w.Append("payments", []int{})
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"version":1,"currency":"USD","payments":[]}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("embed from", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("id", "t1")
		w.EmbedFrom(struct {
			Name string `json:"name"`
		}{Name: "Ana"})
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"id":"t1","name":"Ana"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
