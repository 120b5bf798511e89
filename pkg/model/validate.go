package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// Validate rejects inputs no timetabler can work with. Any failure is an InvalidInputError.
func Validate(modelInput ModelInput) error {
	if err := validate.Struct(modelInput); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			reasons := lo.Map(validationErrors, func(fieldError validator.FieldError, _ int) string {
				return fmt.Sprintf("%v failed on %q", fieldError.Namespace(), fieldError.Tag())
			})
			return InvalidInputError{Reason: strings.Join(reasons, "; ")}
		}
		return InvalidInputError{Reason: err.Error()}
	}

	// Identifiers key every accumulator, so they must be unique per entity kind
	if duplicates := lo.FindDuplicatesBy(modelInput.Courses, func(course Course) string { return course.Id }); len(duplicates) > 0 {
		return InvalidInputError{Reason: fmt.Sprintf("duplicate course id %q", duplicates[0].Id)}
	}
	if duplicates := lo.FindDuplicatesBy(modelInput.Faculty, func(faculty Faculty) string { return faculty.Id }); len(duplicates) > 0 {
		return InvalidInputError{Reason: fmt.Sprintf("duplicate faculty id %q", duplicates[0].Id)}
	}
	if duplicates := lo.FindDuplicatesBy(modelInput.Rooms, func(room Room) string { return room.Id }); len(duplicates) > 0 {
		return InvalidInputError{Reason: fmt.Sprintf("duplicate room id %q", duplicates[0].Id)}
	}

	if hours := modelInput.Constraints.WorkingHours; hours.End < hours.Start {
		return InvalidInputError{Reason: fmt.Sprintf("working hours end %v before start %v", hours.End, hours.Start)}
	}

	return nil
}

// ValidateWindow rejects a batch window without valid start and end dates
func ValidateWindow(window Window) error {
	if !window.Start.IsValid() || !window.End.IsValid() {
		return InvalidInputError{Reason: fmt.Sprintf("window needs valid start and end dates, got %v to %v", window.Start, window.End)}
	}
	return nil
}
