package validation

import (
	"fmt"
	"regexp"

	"github.com/afriverse/editorial-api/internal/models"
	"github.com/google/uuid"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Limits for author-supplied content fields
const (
	MaxTitleLength = 200
	MaxSlugLength  = 120
	MaxTags        = 10
)

// FieldError represents a single field validation error
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateContentInput validates author-supplied fields for content creation
// and draft edits
func ValidateContentInput(input *models.ContentInput) []FieldError {
	var errs []FieldError

	if input.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else if len(input.Title) > MaxTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", MaxTitleLength)})
	}

	if input.Slug == "" {
		errs = append(errs, FieldError{Field: "slug", Message: "slug is required"})
	} else if len(input.Slug) > MaxSlugLength {
		errs = append(errs, FieldError{Field: "slug", Message: fmt.Sprintf("slug must be at most %d characters", MaxSlugLength)})
	} else if !slugRegex.MatchString(input.Slug) {
		errs = append(errs, FieldError{Field: "slug", Message: "slug must be lowercase letters, digits and hyphens", Value: input.Slug})
	}

	if input.CategoryID == "" {
		errs = append(errs, FieldError{Field: "category_id", Message: "category_id is required"})
	} else if !isValidUUID(input.CategoryID) {
		errs = append(errs, FieldError{Field: "category_id", Message: "invalid UUID format", Value: input.CategoryID})
	}

	if input.Body == "" {
		errs = append(errs, FieldError{Field: "body", Message: "body is required"})
	}

	if len(input.Tags) > MaxTags {
		errs = append(errs, FieldError{Field: "tags", Message: fmt.Sprintf("at most %d tags allowed", MaxTags)})
	}
	for _, tag := range input.Tags {
		if tag == "" {
			errs = append(errs, FieldError{Field: "tags", Message: "tags must not be empty"})
			break
		}
	}

	return errs
}

// ValidateReviewUpdate validates a review PATCH request
func ValidateReviewUpdate(update *models.ReviewUpdate) []FieldError {
	var errs []FieldError

	if update.Priority != nil && !models.ValidPriorities[*update.Priority] {
		errs = append(errs, FieldError{
			Field:   "priority",
			Message: "priority must be one of: low, normal, high, urgent",
			Value:   string(*update.Priority),
		})
	}
	if update.AssignedTo != nil && *update.AssignedTo != "" && !isValidUUID(*update.AssignedTo) {
		errs = append(errs, FieldError{Field: "assigned_to", Message: "invalid UUID format", Value: *update.AssignedTo})
	}

	return errs
}

// isValidUUID checks UUID format
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
