package service

import (
	"github.com/agencysite/internal/db"
	"gorm.io/gorm"
)

// IndustryInput represents fields accepted when creating or updating an industry.
type IndustryInput struct {
	ContentInput
	Challenges []db.TitledItem `json:"challenges"`
	Solutions  []db.TitledItem `json:"solutions"`
	Benefits   []db.TitledItem `json:"benefits"`
	FAQ        []db.FAQItem    `json:"faq"`
}

func (in IndustryInput) apply(record *db.Industry) {
	in.ContentInput.apply(&record.ContentBase)
	setIfProvided(&record.Challenges, in.Challenges)
	setIfProvided(&record.Solutions, in.Solutions)
	setIfProvided(&record.Benefits, in.Benefits)
	setIfProvided(&record.FAQ, in.FAQ)
}

// IndustryService provides CRUD access to industry pages.
type IndustryService struct {
	store contentStore[db.Industry, *db.Industry]
}

// NewIndustryService returns a new IndustryService instance.
func NewIndustryService(gdb *gorm.DB) *IndustryService {
	return &IndustryService{store: contentStore[db.Industry, *db.Industry]{db: gdb}}
}

func (s *IndustryService) List(publishedOnly bool) ([]db.Industry, error) {
	return s.store.list(publishedOnly)
}

func (s *IndustryService) Get(id uint) (*db.Industry, error) {
	return s.store.get(id)
}

func (s *IndustryService) GetBySlug(slug string) (*db.Industry, error) {
	return s.store.getBySlug(slug)
}

func (s *IndustryService) Create(input IndustryInput) (*db.Industry, error) {
	var record db.Industry
	input.apply(&record)
	if err := s.store.create(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *IndustryService) Update(id uint, input IndustryInput) (*db.Industry, error) {
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

func (s *IndustryService) Delete(id uint) (bool, error) {
	return s.store.delete(id)
}
