package inspection

import (
	"errors"
	"time"
)

// CreateInspectionDTO represents the request payload for creating an inspection
type CreateInspectionDTO struct {
	TemplateID  int64     `json:"template_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// Validate validates the CreateInspectionDTO
func (dto CreateInspectionDTO) Validate() error {
	if dto.TemplateID <= 0 {
		return errors.New("template_id is required")
	}
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if dto.ScheduledAt.IsZero() {
		return errors.New("scheduled_at is required")
	}
	return nil
}

// SubmitResultsDTO carries item results recorded during a walkthrough.
type SubmitResultsDTO struct {
	Results []ItemResultDTO `json:"results"`
}

type ItemResultDTO struct {
	ItemID int64  `json:"item_id"`
	Result string `json:"result"`
	Note   string `json:"note"`
}

func (dto SubmitResultsDTO) Validate() error {
	if len(dto.Results) == 0 {
		return errors.New("at least one result is required")
	}
	for _, r := range dto.Results {
		if r.ItemID <= 0 {
			return errors.New("item_id is required for every result")
		}
		if !Result(r.Result).IsValid() {
			return errors.New("result must be one of pass, fail, na")
		}
	}
	return nil
}

type InspectionsResponse struct {
	Inspections []*Inspection `json:"inspections"`
}
