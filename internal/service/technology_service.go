package service

import (
	"github.com/agencysite/internal/db"
	"gorm.io/gorm"
)

// TechnologyInput represents fields accepted when creating or updating a technology.
type TechnologyInput struct {
	ContentInput
	Features  []db.TitledItem     `json:"features"`
	UseCases  []db.TitledItem     `json:"useCases"`
	TechStack []db.TechStackGroup `json:"techStack"`
	FAQ       []db.FAQItem        `json:"faq"`
}

func (in TechnologyInput) apply(record *db.Technology) {
	in.ContentInput.apply(&record.ContentBase)
	setIfProvided(&record.Features, in.Features)
	setIfProvided(&record.UseCases, in.UseCases)
	setIfProvided(&record.TechStack, in.TechStack)
	setIfProvided(&record.FAQ, in.FAQ)
}

// TechnologyService provides CRUD access to technology pages.
type TechnologyService struct {
	store contentStore[db.Technology, *db.Technology]
}

// NewTechnologyService returns a new TechnologyService instance.
func NewTechnologyService(gdb *gorm.DB) *TechnologyService {
	return &TechnologyService{store: contentStore[db.Technology, *db.Technology]{db: gdb}}
}

func (s *TechnologyService) List(publishedOnly bool) ([]db.Technology, error) {
	return s.store.list(publishedOnly)
}

func (s *TechnologyService) Get(id uint) (*db.Technology, error) {
	return s.store.get(id)
}

func (s *TechnologyService) GetBySlug(slug string) (*db.Technology, error) {
	return s.store.getBySlug(slug)
}

func (s *TechnologyService) Create(input TechnologyInput) (*db.Technology, error) {
	var record db.Technology
	input.apply(&record)
	if err := s.store.create(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *TechnologyService) Update(id uint, input TechnologyInput) (*db.Technology, error) {
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

func (s *TechnologyService) Delete(id uint) (bool, error) {
	return s.store.delete(id)
}
