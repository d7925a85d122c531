package chatbot

import "errors"

// MessageDTO is a single question for the assistant.
type MessageDTO struct {
	Message string `json:"message"`
}

const maxMessageLength = 2000

func (dto MessageDTO) Validate() error {
	if dto.Message == "" {
		return errors.New("message is required")
	}
	if len(dto.Message) > maxMessageLength {
		return errors.New("message is too long")
	}
	return nil
}

type MessageResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
}
