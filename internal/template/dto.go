package template

import "errors"

// CreateTemplateDTO represents the request payload for creating a checklist template
type CreateTemplateDTO struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Items    []CreateItemDTO `json:"items"`
}

type CreateItemDTO struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Weight   int    `json:"weight"`
}

// Validate validates the CreateTemplateDTO
func (dto CreateTemplateDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if len(dto.Items) == 0 {
		return errors.New("at least one checklist item is required")
	}
	for _, item := range dto.Items {
		if item.Text == "" {
			return errors.New("checklist item text is required")
		}
		if item.Weight < 0 {
			return errors.New("checklist item weight cannot be negative")
		}
	}
	return nil
}

// UpdateTemplateDTO represents the request payload for updating a template
type UpdateTemplateDTO struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (dto UpdateTemplateDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}

type TemplatesResponse struct {
	Templates []*ChecklistTemplate `json:"templates"`
}
