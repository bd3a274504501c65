package service

import (
	"github.com/agencysite/internal/db"
	"gorm.io/gorm"
)

// DigitalServiceInput represents fields accepted when creating or updating a digital service.
type DigitalServiceInput struct {
	ContentInput
	Features []db.TitledItem `json:"features"`
	Benefits []db.TitledItem `json:"benefits"`
	Process  []db.TitledItem `json:"process"`
	FAQ      []db.FAQItem    `json:"faq"`
}

func (in DigitalServiceInput) apply(record *db.DigitalService) {
	in.ContentInput.apply(&record.ContentBase)
	setIfProvided(&record.Features, in.Features)
	setIfProvided(&record.Benefits, in.Benefits)
	setIfProvided(&record.Process, in.Process)
	setIfProvided(&record.FAQ, in.FAQ)
}

// DigitalServiceService provides CRUD access to digital service pages.
type DigitalServiceService struct {
	store contentStore[db.DigitalService, *db.DigitalService]
}

// NewDigitalServiceService returns a new DigitalServiceService instance.
func NewDigitalServiceService(gdb *gorm.DB) *DigitalServiceService {
	return &DigitalServiceService{store: contentStore[db.DigitalService, *db.DigitalService]{db: gdb}}
}

func (s *DigitalServiceService) List(publishedOnly bool) ([]db.DigitalService, error) {
	return s.store.list(publishedOnly)
}

func (s *DigitalServiceService) Get(id uint) (*db.DigitalService, error) {
	return s.store.get(id)
}

func (s *DigitalServiceService) GetBySlug(slug string) (*db.DigitalService, error) {
	return s.store.getBySlug(slug)
}

func (s *DigitalServiceService) Create(input DigitalServiceInput) (*db.DigitalService, error) {
	var record db.DigitalService
	input.apply(&record)
	if err := s.store.create(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *DigitalServiceService) Update(id uint, input DigitalServiceInput) (*db.DigitalService, error) {
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

func (s *DigitalServiceService) Delete(id uint) (bool, error) {
	return s.store.delete(id)
}
