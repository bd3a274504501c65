package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/agencysite/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrHomeBlockUnknown = errors.New("unknown home page block")

// HeroSlide is one slide of the home page carousel.
type HeroSlide struct {
	Image    string `json:"image" validate:"required"`
	Title    string `json:"title" validate:"required,max=160"`
	Subtitle string `json:"subtitle,omitempty" validate:"max=300"`
	CTALabel string `json:"ctaLabel,omitempty" validate:"required_with=CTAURL"`
	CTAURL   string `json:"ctaUrl,omitempty" validate:"required_with=CTALabel"`
}

// ServiceCard is one tile of the services grid.
type ServiceCard struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon,omitempty"`
	Link        string `json:"link" validate:"required"`
}

// QualityIndustry is one entry of the industries showcase.
type QualityIndustry struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"required"`
}

// ImagePair is a side-by-side image block.
type ImagePair struct {
	Left     string `json:"left" validate:"required"`
	LeftAlt  string `json:"leftAlt,omitempty"`
	Right    string `json:"right" validate:"required"`
	RightAlt string `json:"rightAlt,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// HomeContent aggregates all home page blocks.
type HomeContent struct {
	HeroSlides        []HeroSlide       `json:"heroSlides"`
	ServicesGrid      []ServiceCard     `json:"servicesGrid"`
	QualityIndustries []QualityIndustry `json:"qualityIndustries"`
	ImagePairs        []ImagePair       `json:"imagePairs"`
}

type homeBlockList[T any] struct {
	Items []T `json:"items"`
}

// HomePageService stores the independently editable home page blocks.
type HomePageService struct {
	db *gorm.DB
}

// NewHomePageService returns a new HomePageService instance.
func NewHomePageService(gdb *gorm.DB) *HomePageService {
	return &HomePageService{db: gdb}
}

// HomeBlockKeys lists the editable block keys.
func HomeBlockKeys() []string {
	return []string{
		db.HomeBlockHeroSlides,
		db.HomeBlockServicesGrid,
		db.HomeBlockQualityIndustries,
		db.HomeBlockImagePairs,
	}
}

// Content returns every block; missing blocks are empty lists.
func (s *HomePageService) Content() (*HomeContent, error) {
	var blocks []db.HomeBlock
	if err := s.db.Find(&blocks).Error; err != nil {
		return nil, err
	}
	content := &HomeContent{
		HeroSlides:        []HeroSlide{},
		ServicesGrid:      []ServiceCard{},
		QualityIndustries: []QualityIndustry{},
		ImagePairs:        []ImagePair{},
	}
	for _, block := range blocks {
		var err error
		switch block.Key {
		case db.HomeBlockHeroSlides:
			err = json.Unmarshal(block.Payload, &content.HeroSlides)
		case db.HomeBlockServicesGrid:
			err = json.Unmarshal(block.Payload, &content.ServicesGrid)
		case db.HomeBlockQualityIndustries:
			err = json.Unmarshal(block.Payload, &content.QualityIndustries)
		case db.HomeBlockImagePairs:
			err = json.Unmarshal(block.Payload, &content.ImagePairs)
		}
		if err != nil {
			return nil, fmt.Errorf("decode home block %s: %w", block.Key, err)
		}
	}
	return content, nil
}

// Block returns the stored JSON list for key, or an empty list.
func (s *HomePageService) Block(key string) (json.RawMessage, error) {
	if !isHomeBlockKey(key) {
		return nil, fmt.Errorf("%w: %q", ErrHomeBlockUnknown, key)
	}
	var block db.HomeBlock
	err := s.db.Where("block_key = ?", key).First(&block).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return json.RawMessage("[]"), nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(block.Payload), nil
}

// SaveBlock validates raw as the list type of key and replaces the block.
func (s *HomePageService) SaveBlock(key string, raw json.RawMessage) (json.RawMessage, error) {
	var (
		payload []byte
		err     error
	)
	switch key {
	case db.HomeBlockHeroSlides:
		payload, err = decodeHomeBlock[HeroSlide](raw)
	case db.HomeBlockServicesGrid:
		payload, err = decodeHomeBlock[ServiceCard](raw)
	case db.HomeBlockQualityIndustries:
		payload, err = decodeHomeBlock[QualityIndustry](raw)
	case db.HomeBlockImagePairs:
		payload, err = decodeHomeBlock[ImagePair](raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrHomeBlockUnknown, key)
	}
	if err != nil {
		return nil, err
	}

	block := db.HomeBlock{Key: key, Payload: datatypes.JSON(payload)}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "block_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&block).Error; err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

// decodeHomeBlock accepts either a bare JSON array or {"items": [...]} and
// returns the canonical array encoding.
func decodeHomeBlock[T any](raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, invalidField("items", "is required")
	}

	var list homeBlockList[T]
	if trimmed[0] == '[' {
		if err := strictUnmarshal(trimmed, &list.Items); err != nil {
			return nil, invalidField("items", "%s", err.Error())
		}
	} else if err := strictUnmarshal(trimmed, &list); err != nil {
		return nil, invalidField("items", "%s", err.Error())
	}
	if list.Items == nil {
		list.Items = []T{}
	}
	var problems FieldErrors
	for i, item := range list.Items {
		err := validateStruct(item)
		var fields FieldErrors
		if errors.As(err, &fields) {
			for _, fe := range fields {
				problems = append(problems, FieldError{Field: fmt.Sprintf("items[%d].%s", i, fe.Field), Message: fe.Message})
			}
		} else if err != nil {
			return nil, err
		}
	}
	if len(problems) > 0 {
		return nil, problems
	}
	return json.Marshal(list.Items)
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

func isHomeBlockKey(key string) bool {
	for _, k := range HomeBlockKeys() {
		if k == key {
			return true
		}
	}
	return false
}
