package service

import (
	"github.com/agencysite/internal/db"
	"gorm.io/gorm"
)

// OfferingInput represents fields accepted when creating or updating a service.
type OfferingInput struct {
	ContentInput
	Challenges []db.TitledItem     `json:"challenges"`
	Benefits   []db.TitledItem     `json:"benefits"`
	Features   []db.TitledItem     `json:"features"`
	FAQ        []db.FAQItem        `json:"faq"`
	TechStack  []db.TechStackGroup `json:"techStack"`
}

func (in OfferingInput) apply(record *db.ServiceOffering) {
	in.ContentInput.apply(&record.ContentBase)
	setIfProvided(&record.Challenges, in.Challenges)
	setIfProvided(&record.Benefits, in.Benefits)
	setIfProvided(&record.Features, in.Features)
	setIfProvided(&record.FAQ, in.FAQ)
	setIfProvided(&record.TechStack, in.TechStack)
}

// OfferingService provides CRUD access to service pages.
type OfferingService struct {
	store contentStore[db.ServiceOffering, *db.ServiceOffering]
}

// NewOfferingService returns a new OfferingService instance.
func NewOfferingService(gdb *gorm.DB) *OfferingService {
	return &OfferingService{store: contentStore[db.ServiceOffering, *db.ServiceOffering]{db: gdb}}
}

// List returns services, newest first.
func (s *OfferingService) List(publishedOnly bool) ([]db.ServiceOffering, error) {
	return s.store.list(publishedOnly)
}

// Get fetches a service by id.
func (s *OfferingService) Get(id uint) (*db.ServiceOffering, error) {
	return s.store.get(id)
}

// GetBySlug fetches a service by slug.
func (s *OfferingService) GetBySlug(slug string) (*db.ServiceOffering, error) {
	return s.store.getBySlug(slug)
}

// Create validates and inserts a new service.
func (s *OfferingService) Create(input OfferingInput) (*db.ServiceOffering, error) {
	var record db.ServiceOffering
	input.apply(&record)
	if err := s.store.create(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update applies the provided fields to an existing service.
func (s *OfferingService) Update(id uint, input OfferingInput) (*db.ServiceOffering, error) {
	record, err := s.store.get(id)
	if err != nil {
		return nil, err
	}
	input.apply(record)
	if err := s.store.save(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a service and reports whether it existed.
func (s *OfferingService) Delete(id uint) (bool, error) {
	return s.store.delete(id)
}
