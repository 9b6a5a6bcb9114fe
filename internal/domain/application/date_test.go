package application_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/domain/application"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string // canonical YYYY-MM-DD, empty means error expected
		wantErr bool
	}{
		{name: "plain_date", input: "2024-01-10", want: "2024-01-10"},
		{name: "padded", input: "  2024-01-10 ", want: "2024-01-10"},
		{name: "rfc3339_truncates_to_day", input: "2024-01-10T15:04:05Z", want: "2024-01-10"},
		{name: "rfc3339_with_offset", input: "2024-01-10T23:30:00+02:00", want: "2024-01-10"},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "wrong_order", input: "10-01-2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got, err := application.ParseDate(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error for %q, got %v", tt.input, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.String() != tt.want {
				t.Fatalf("got %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := application.NewDate(2024, time.January, 10)

	b, err := json.Marshal(d)

	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if string(b) != `"2024-01-10"` {
		t.Fatalf("got %s", b)
	}

	var back application.Date

	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !back.Equal(d.Time) {
		t.Fatalf("round trip changed value: %v -> %v", d, back)
	}
}

func TestDateUnmarshalAcceptsTimestamp(t *testing.T) {
	var d application.Date

	if err := json.Unmarshal([]byte(`"2024-01-10T09:00:00Z"`), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if d.String() != "2024-01-10" {
		t.Fatalf("got %q", d.String())
	}
}

func TestDateUnmarshalNull(t *testing.T) {
	var d application.Date

	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !d.IsZero() {
		t.Fatalf("null should yield zero date, got %v", d)
	}
}

func TestDateZeroMarshalsEmpty(t *testing.T) {
	b, err := json.Marshal(application.Date{})

	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if string(b) != `""` {
		t.Fatalf("got %s", b)
	}
}

func TestDateScan(t *testing.T) {
	var d application.Date

	if err := d.Scan(time.Date(2024, time.March, 5, 18, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time failed: %v", err)
	}

	if d.String() != "2024-03-05" {
		t.Fatalf("got %q", d.String())
	}

	if err := d.Scan("2024-04-01"); err != nil {
		t.Fatalf("scan string failed: %v", err)
	}

	if d.String() != "2024-04-01" {
		t.Fatalf("got %q", d.String())
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil failed: %v", err)
	}

	if !d.IsZero() {
		t.Fatalf("nil should reset to zero date")
	}

	if err := d.Scan(42); err == nil {
		t.Fatalf("scan of int should fail")
	}
}
