package models

import (
	"strings"
	"time"
)

// Record is a stored employee badge. It is immutable once inserted.
type Record struct {
	ID          string    `json:"_id"`
	EmployeeID  string    `json:"employee_id"`
	Name        string    `json:"name"`
	DOB         string    `json:"dob"`
	JoiningDate string    `json:"joining_date"`
	Post        string    `json:"post"`
	Department  string    `json:"department"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateBadgeDTO is the form posted to /generate_qr.
type CreateBadgeDTO struct {
	Name        string `form:"name"`
	DOB         string `form:"dob"`
	JoiningDate string `form:"joining_date"`
	Post        string `form:"post"`
	Department  string `form:"department"`
	EmployeeID  string `form:"employee_id"` // optional
}

// Validate trims every field and returns a message for the first invalid one, or "".
func (in *CreateBadgeDTO) Validate() string {
	in.Name = strings.TrimSpace(in.Name)
	in.DOB = strings.TrimSpace(in.DOB)
	in.JoiningDate = strings.TrimSpace(in.JoiningDate)
	in.Post = strings.TrimSpace(in.Post)
	in.Department = strings.TrimSpace(in.Department)
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)

	fields := []struct{ name, value string }{
		{"name", in.Name},
		{"dob", in.DOB},
		{"joining_date", in.JoiningDate},
		{"post", in.Post},
		{"department", in.Department},
	}
	for _, f := range fields {
		if f.value == "" {
			return f.name + " is required"
		}
	}
	// each value occupies one line of the badge text
	for _, f := range append(fields, struct{ name, value string }{"employee_id", in.EmployeeID}) {
		if strings.ContainsAny(f.value, "\r\n") {
			return f.name + " must be a single line"
		}
	}
	return ""
}

// BadgeView is the subset of a Record allowed to leave the scan endpoint.
type BadgeView struct {
	Name        string `json:"name"`
	EmployeeID  string `json:"employee_id"`
	Post        string `json:"post"`
	Department  string `json:"department"`
	JoiningDate string `json:"joining_date"`
}

func (r Record) Redact() BadgeView {
	return BadgeView{
		Name:        r.Name,
		EmployeeID:  r.EmployeeID,
		Post:        r.Post,
		Department:  r.Department,
		JoiningDate: r.JoiningDate,
	}
}

type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func NewPagination(page, perPage, total int) Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = total / perPage
		if total%perPage != 0 {
			totalPages++
		}
	}
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
