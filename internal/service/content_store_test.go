package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/agencysite/internal/db"
)

func cloudMigrationInput() OfferingInput {
	return OfferingInput{ContentInput: ContentInput{
		Title:    strPtr("Cloud Migration"),
		Slug:     strPtr("cloud-migration"),
		Subtitle: strPtr("Move to the cloud"),
	}}
}

func TestOfferingCreateNormalizesCollections(t *testing.T) {
	svc := NewOfferingService(setupServiceTestDB(t))

	created, err := svc.Create(cloudMigrationInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != db.StatusDraft {
		t.Fatalf("expected draft status, got %q", created.Status)
	}

	stored, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.Challenges == nil || len(stored.Challenges) != 0 {
		t.Fatalf("expected empty challenges, got %#v", stored.Challenges)
	}
	if stored.TechStack == nil || len(stored.TechStack) != 0 {
		t.Fatalf("expected empty tech stack, got %#v", stored.TechStack)
	}
	description := stored.Description.Data()
	if description.Intro == nil || len(description.Intro) != 0 || description.Conclusion != "" {
		t.Fatalf("expected empty description, got %#v", description)
	}
	if stored.Title != "Cloud Migration" || stored.Subtitle != "Move to the cloud" {
		t.Fatalf("unexpected stored record: %#v", stored.ContentBase)
	}
}

func TestOfferingDuplicateSlugLeavesOriginalUntouched(t *testing.T) {
	svc := NewOfferingService(setupServiceTestDB(t))

	original, err := svc.Create(cloudMigrationInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	dup := cloudMigrationInput()
	dup.Title = strPtr("Another Title")
	dup.Slug = strPtr(" Cloud-Migration ")
	_, err = svc.Create(dup)
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
	if !strings.Contains(err.Error(), "cloud-migration") {
		t.Fatalf("expected error to reference the slug, got %q", err.Error())
	}

	stored, err := svc.Get(original.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if stored.Title != "Cloud Migration" {
		t.Fatalf("expected original title to remain, got %q", stored.Title)
	}
}

func TestOfferingUpdateMergesAndDerivesStatus(t *testing.T) {
	svc := NewOfferingService(setupServiceTestDB(t))

	input := cloudMigrationInput()
	input.Challenges = []db.TitledItem{{Title: "Legacy", Description: "Old systems"}}
	created, err := svc.Create(input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(created.ID, OfferingInput{ContentInput: ContentInput{IsPublished: boolPtr(true)}})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != db.StatusPublished {
		t.Fatalf("expected published status, got %q", updated.Status)
	}

	stored, err := svc.GetBySlug("cloud-migration")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}
	if stored.Status != db.StatusPublished || !stored.IsPublished {
		t.Fatalf("expected stored record to be published, got %#v", stored.ContentBase)
	}
	if len(stored.Challenges) != 1 || stored.Challenges[0].Title != "Legacy" {
		t.Fatalf("expected challenges to survive a partial update, got %#v", stored.Challenges)
	}

	unpublished, err := svc.Update(created.ID, OfferingInput{ContentInput: ContentInput{IsPublished: boolPtr(false)}})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if unpublished.Status != db.StatusDraft {
		t.Fatalf("expected draft status, got %q", unpublished.Status)
	}
}

func TestOfferingUpdateRejectsTakenSlug(t *testing.T) {
	svc := NewOfferingService(setupServiceTestDB(t))

	if _, err := svc.Create(cloudMigrationInput()); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	other := cloudMigrationInput()
	other.Slug = strPtr("devops")
	second, err := svc.Create(other)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err = svc.Update(second.ID, OfferingInput{ContentInput: ContentInput{Slug: strPtr("cloud-migration")}})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
	// 仅修改自身其他字段时，保留原 slug 不应触发冲突。
	if _, err := svc.Update(second.ID, OfferingInput{ContentInput: ContentInput{Title: strPtr("DevOps")}}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
}

func TestContentValidation(t *testing.T) {
	svc := NewIndustryService(setupServiceTestDB(t))

	cases := []struct {
		name  string
		input ContentInput
		field string
	}{
		{"missing title", ContentInput{Slug: strPtr("health"), Subtitle: strPtr("x")}, "title"},
		{"missing slug", ContentInput{Title: strPtr("Health"), Subtitle: strPtr("x")}, "slug"},
		{"bad slug", ContentInput{Title: strPtr("Health"), Slug: strPtr("health care"), Subtitle: strPtr("x")}, "slug"},
		{"missing subtitle", ContentInput{Title: strPtr("Health"), Slug: strPtr("health")}, "subtitle"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(IndustryInput{ContentInput: tc.input})
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, verr.Field)
			}
		})
	}
}

func TestSlugUniquenessIsPerEntity(t *testing.T) {
	gdb := setupServiceTestDB(t)
	base := ContentInput{Title: strPtr("Go"), Slug: strPtr("go"), Subtitle: strPtr("Fast")}

	if _, err := NewTechnologyService(gdb).Create(TechnologyInput{ContentInput: base}); err != nil {
		t.Fatalf("technology Create returned error: %v", err)
	}
	if _, err := NewDigitalServiceService(gdb).Create(DigitalServiceInput{ContentInput: base}); err != nil {
		t.Fatalf("digital service Create returned error: %v", err)
	}
	if _, err := NewTechnologyService(gdb).Create(TechnologyInput{ContentInput: base}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestListPublishedOnlyAndDelete(t *testing.T) {
	svc := NewDigitalServiceService(setupServiceTestDB(t))

	draft, err := svc.Create(DigitalServiceInput{ContentInput: ContentInput{Title: strPtr("SEO"), Slug: strPtr("seo"), Subtitle: strPtr("Rank")}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(DigitalServiceInput{ContentInput: ContentInput{Title: strPtr("Ads"), Slug: strPtr("ads"), Subtitle: strPtr("Reach"), IsPublished: boolPtr(true)}}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	published, err := svc.List(true)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(published) != 1 || published[0].Slug != "ads" {
		t.Fatalf("expected only the published record, got %#v", published)
	}

	deleted, err := svc.Delete(draft.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, got %v %v", deleted, err)
	}
	deleted, err = svc.Delete(draft.ID)
	if err != nil || deleted {
		t.Fatalf("expected second delete to report missing, got %v %v", deleted, err)
	}
	if _, err := svc.Get(draft.ID); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}
