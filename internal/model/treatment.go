package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryFace        Category = "FACE"
	CategoryBody        Category = "BODY"
	CategoryInjectables Category = "INJECTABLES"
)

// CategoryChoice pairs a stored category value with its display label.
type CategoryChoice struct {
	Value Category
	Label string
}

var categoryChoices = []CategoryChoice{
	{Value: CategoryFace, Label: "Face"},
	{Value: CategoryBody, Label: "Body"},
	{Value: CategoryInjectables, Label: "Injectables"},
}

// Categories returns the fixed category enum in display order.
func Categories() []CategoryChoice {
	out := make([]CategoryChoice, len(categoryChoices))
	copy(out, categoryChoices)
	return out
}

func (c Category) Valid() bool {
	for _, choice := range categoryChoices {
		if choice.Value == c {
			return true
		}
	}
	return false
}

func (c Category) Label() string {
	for _, choice := range categoryChoices {
		if choice.Value == c {
			return choice.Label
		}
	}
	return string(c)
}

type Treatment struct {
	Base
	Name         string   `json:"name" db:"name"`
	Slug         string   `json:"slug" db:"slug"`
	Description  string   `json:"description" db:"description"`
	WhatToExpect string   `json:"what_to_expect" db:"what_to_expect"`
	PriceRange   string   `json:"price_range" db:"price_range"`
	Duration     string   `json:"duration" db:"duration"`
	Image        string   `json:"image" db:"image"`
	Category     Category `json:"category" db:"category"`
	Featured     bool     `json:"featured" db:"featured"`
	Timestamps
}

func (t Treatment) String() string { return t.Name }

// URL is the public detail page of the treatment.
func (t Treatment) URL() string { return "/treatments/" + t.Slug + "/" }

type TreatmentFAQ struct {
	Base
	TreatmentID uuid.UUID `json:"treatment_id" db:"treatment_id"`
	Question    string    `json:"question" db:"question"`
	Answer      string    `json:"answer" db:"answer"`
	Order       int       `json:"order" db:"sort_order"`
}

type BeforeAfterImage struct {
	Base
	TreatmentID uuid.UUID     `json:"treatment_id" db:"treatment_id"`
	Title       string        `json:"title" db:"title"`
	BeforeImage string        `json:"before_image" db:"before_image"`
	AfterImage  string        `json:"after_image" db:"after_image"`
	PatientAge  sql.NullInt32 `json:"patient_age" db:"patient_age"`
	Sessions    sql.NullInt32 `json:"sessions" db:"sessions"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at" goqu:"skipupdate"`

	Treatment *Treatment `json:"treatment,omitempty" db:"-"`
}

func (i *BeforeAfterImage) Touch(now time.Time) {
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
}
