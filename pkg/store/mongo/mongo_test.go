package mongo

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matzehuels/bulletins/pkg/document"
	"github.com/matzehuels/bulletins/pkg/errors"
	"github.com/matzehuels/bulletins/pkg/style"
)

func TestContentBSONRoundTrip(t *testing.T) {
	in := document.Content{
		Page:  &document.Page{Size: "a4", Orientation: "landscape"},
		Style: &style.Config{Heritable: style.Heritable{FontSize: style.Number(14), PrimaryColor: style.String("#111")}},
		Sections: []document.Section{{
			ID: "forecast",
			Blocks: []document.Block{{
				ID: "rain",
				Container: document.Container{
					Style: &style.Config{Local: style.Local{Padding: style.String("8px")}},
					Fields: []document.Field{
						{ID: "total", Config: document.NumberConfig{Min: style.Number(0), Unit: "mm"}, Value: "12.5"},
						{ID: "choice", Config: document.SelectConfig{Options: []document.Option{{Value: "a"}, {Value: "b"}}}},
						{
							ID:                  "note",
							Config:              document.TextConfig{},
							Style:               &style.Config{Heritable: style.Heritable{IconSize: style.Number(1.5)}},
							StyleManuallyEdited: true,
						},
					},
				},
			}},
		}},
	}

	raw, err := contentToBSON(in)
	if err != nil {
		t.Fatalf("contentToBSON() error = %v", err)
	}
	out, err := contentFromBSON(raw)
	if err != nil {
		t.Fatalf("contentFromBSON() error = %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestNewRequiresURI(t *testing.T) {
	if _, err := New(t.Context(), Config{}); err == nil {
		t.Error("New() without URI should fail")
	}
}

type releaseCall struct {
	n       int
	publish bool
}

type fakeWriter struct {
	prev        document.Master
	allocateErr error
	insertErr   error
	inserted    []versionDoc
	released    []releaseCall
}

func (f *fakeWriter) allocate(_ context.Context, _ string, _ bool) (document.Master, error) {
	return f.prev, f.allocateErr
}

func (f *fakeWriter) release(_ context.Context, _ document.Master, n int, publish bool) error {
	f.released = append(f.released, releaseCall{n: n, publish: publish})
	return nil
}

func (f *fakeWriter) insert(_ context.Context, d versionDoc) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, d)
	return nil
}

func TestAddVersion(t *testing.T) {
	prev := document.Master{ID: "m1", Status: document.StatusDraft, CurrentVersion: 2}
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "duplicate key"}}}

	tests := []struct {
		name         string
		w            *fakeWriter
		wantCode     errors.Code
		wantReleased []releaseCall
	}{
		{
			name: "inserted",
			w:    &fakeWriter{prev: prev},
		},
		{
			name:         "insert failure releases the number",
			w:            &fakeWriter{prev: prev, insertErr: fmt.Errorf("connection reset")},
			wantCode:     errors.ErrCodeStorage,
			wantReleased: []releaseCall{{n: 3, publish: true}},
		},
		{
			name:         "duplicate number",
			w:            &fakeWriter{prev: prev, insertErr: dup},
			wantCode:     errors.ErrCodeConflict,
			wantReleased: []releaseCall{{n: 3, publish: true}},
		},
		{
			name:     "allocate failure",
			w:        &fakeWriter{allocateErr: errors.New(errors.ErrCodeConflict, "document %q is archived", "m1")},
			wantCode: errors.ErrCodeConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := addVersion(t.Context(), tt.w, document.NewVersion("m1", "c", document.Content{}), true)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Fatalf("addVersion() code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
			if diff := cmp.Diff(tt.wantReleased, tt.w.released, cmp.AllowUnexported(releaseCall{})); diff != "" {
				t.Errorf("released mismatch (-want +got):\n%s", diff)
			}
			if err == nil {
				if v.Number != 3 {
					t.Errorf("Number = %d, want 3", v.Number)
				}
				if len(tt.w.inserted) != 1 || tt.w.inserted[0].Number != 3 {
					t.Errorf("inserted = %+v, want version 3", tt.w.inserted)
				}
			}
		})
	}
}
