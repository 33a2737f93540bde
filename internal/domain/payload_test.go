package domain

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type recordingVisitor struct {
	visited string
}

func (r *recordingVisitor) VisitNewEntry(context.Context, NewEntryPayload) error {
	r.visited = "new_entry"
	return nil
}

func (r *recordingVisitor) VisitNewDefinition(context.Context, NewDefinitionPayload) error {
	r.visited = "new_definition"
	return nil
}

func (r *recordingVisitor) VisitNewVariant(context.Context, NewVariantPayload) error {
	r.visited = "new_variant"
	return nil
}

func (r *recordingVisitor) VisitEditEntry(context.Context, EditEntryPayload) error {
	r.visited = "edit_entry"
	return nil
}

func (r *recordingVisitor) VisitEditDefinition(context.Context, EditDefinitionPayload) error {
	r.visited = "edit_definition"
	return nil
}

func (r *recordingVisitor) VisitEditVariant(context.Context, EditVariantPayload) error {
	r.visited = "edit_variant"
	return nil
}

func (r *recordingVisitor) VisitDelete(_ context.Context, p DeletePayload) error {
	r.visited = "delete:" + string(p.Kind)
	return nil
}

func TestPayload_AcceptDispatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		payload SubmissionPayload
		want    string
	}{
		{NewEntryPayload{Headword: "focal"}, "new_entry"},
		{NewDefinitionPayload{EntryID: uuid.New()}, "new_definition"},
		{NewVariantPayload{EntryID: uuid.New()}, "new_variant"},
		{EditEntryPayload{EntryID: uuid.New()}, "edit_entry"},
		{EditDefinitionPayload{DefinitionID: uuid.New()}, "edit_definition"},
		{EditVariantPayload{VariantID: uuid.New()}, "edit_variant"},
		{DeletePayload{Kind: SubmissionTypeDeleteVariant, TargetID: uuid.New()}, "delete:DELETE_VARIANT"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			v := &recordingVisitor{}
			if err := tt.payload.Accept(context.Background(), v); err != nil {
				t.Fatalf("Accept: %v", err)
			}
			if v.visited != tt.want {
				t.Errorf("visited %q, want %q", v.visited, tt.want)
			}
		})
	}
}

func TestDecodePayload_NewEntryFromStoredJSON(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"headword":"focal","partOfSpeech":"noun","definition":"word"}`)
	p, err := DecodePayload(SubmissionTypeNewEntry, raw)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	ne, ok := p.(NewEntryPayload)
	if !ok {
		t.Fatalf("expected NewEntryPayload, got %T", p)
	}
	if ne.Headword != "focal" || ne.PartOfSpeech != "noun" {
		t.Errorf("unexpected payload: %+v", ne)
	}
	if ne.Definition == nil || *ne.Definition != "word" {
		t.Errorf("definition = %v, want word", ne.Definition)
	}
	if ne.Example != nil {
		t.Errorf("example should be absent, got %q", *ne.Example)
	}
}

func TestDecodePayload_DeleteRestoresKind(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	raw, err := EncodePayload(DeletePayload{Kind: SubmissionTypeDeleteDefinition, TargetID: id})
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}

	p, err := DecodePayload(SubmissionTypeDeleteDefinition, raw)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if p.Type() != SubmissionTypeDeleteDefinition {
		t.Errorf("Type() = %s, want DELETE_DEFINITION", p.Type())
	}
	if p.(DeletePayload).TargetID != id {
		t.Error("target id lost")
	}
}

func TestDecodePayload_Errors(t *testing.T) {
	t.Parallel()

	if _, err := DecodePayload(SubmissionType("MERGE"), []byte(`{}`)); err == nil {
		t.Error("expected error for unknown type")
	}
	if _, err := DecodePayload(SubmissionTypeNewEntry, []byte(`{not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := EncodePayload(nil); err == nil {
		t.Error("expected error for nil payload")
	}
}

func TestPayloadEntryID(t *testing.T) {
	t.Parallel()

	entryID := uuid.New()
	if got := PayloadEntryID(NewEntryPayload{}); got != nil {
		t.Errorf("NEW_ENTRY has no existing entry, got %v", got)
	}
	if got := PayloadEntryID(EditEntryPayload{EntryID: entryID}); got == nil || *got != entryID {
		t.Errorf("EDIT_ENTRY entry id = %v, want %v", got, entryID)
	}
	if got := PayloadEntryID(DeletePayload{Kind: SubmissionTypeDeleteEntry, TargetID: entryID}); got == nil || *got != entryID {
		t.Errorf("DELETE_ENTRY entry id = %v, want %v", got, entryID)
	}
	if got := PayloadEntryID(DeletePayload{Kind: SubmissionTypeDeleteVariant, TargetID: entryID}); got != nil {
		t.Errorf("DELETE_VARIANT has no entry id, got %v", got)
	}
}
