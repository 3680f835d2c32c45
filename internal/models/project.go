package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Project struct {
	ID           string `json:"id" validate:"required"`
	Title        string `json:"title" validate:"required"`
	StartDate    string `json:"startDate" validate:"datetime=2006-01-02"`
	Deadline     string `json:"deadline" validate:"datetime=2006-01-02"`
	Description  string `json:"description"`
	IsBrokenDown bool   `json:"isBrokenDown"`
}

// NewProject requires a title, a start date and a deadline.
func NewProject(title, startDate, deadline, description string) (Project, error) {
	p := Project{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(title),
		StartDate:   startDate,
		Deadline:    deadline,
		Description: description,
	}
	if p.Title == "" || p.StartDate == "" || p.Deadline == "" {
		return Project{}, fmt.Errorf("project needs a title, start date and deadline")
	}
	if err := Validate(p); err != nil {
		return Project{}, err
	}
	if p.Deadline < p.StartDate {
		return Project{}, fmt.Errorf("deadline %s is before start date %s", p.Deadline, p.StartDate)
	}
	return p, nil
}
