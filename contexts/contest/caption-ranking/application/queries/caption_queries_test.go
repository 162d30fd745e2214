package queries

import (
	"context"
	"testing"

	"giggles/contexts/contest/caption-ranking/adapters/memory"
	"giggles/contexts/contest/caption-ranking/domain/entities"
)

type currentOnly string

func (c currentOnly) Exists(context.Context, string) (bool, error) { return true, nil }

func (c currentOnly) CurrentID(context.Context) (string, error) { return string(c), nil }

func TestListCurrentWithoutPublishedSubmission(t *testing.T) {
	store := memory.NewStore([]entities.Caption{{CaptionID: "cap_1", SubmissionID: "sub_1"}})
	uc := CaptionQueryUseCase{Repository: store, Submissions: currentOnly("")}

	items, err := uc.ListCurrent(context.Background())
	if err != nil {
		t.Fatalf("list current failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %v", items)
	}
}

func TestListCurrentUsesCurrentSubmission(t *testing.T) {
	store := memory.NewStore([]entities.Caption{
		{CaptionID: "cap_1", SubmissionID: "sub_1"},
		{CaptionID: "cap_2", SubmissionID: "sub_2"},
	})
	uc := CaptionQueryUseCase{Repository: store, Submissions: currentOnly("sub_2")}

	items, err := uc.ListCurrent(context.Background())
	if err != nil {
		t.Fatalf("list current failed: %v", err)
	}
	if len(items) != 1 || items[0].CaptionID != "cap_2" {
		t.Fatalf("expected only cap_2, got %+v", items)
	}
}
