package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/futig/lifestory-backend/internal/config"
	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/go-playground/validator/v10"
)

// Validator validates request payloads and uploads
type Validator struct {
	cfg      config.FileUploadConfig
	validate *validator.Validate
	now      func() time.Time
}

func New(cfg config.FileUploadConfig) *Validator {
	v := &Validator{
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}

	// Report json field names instead of Go field names
	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validation for years that have not happened yet
	_ = v.validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(v.now().Year())
	})

	return v
}

// ValidateStruct runs the struct tag rules and maps the first failure to a domain error
func (v *Validator) ValidateStruct(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s", entity.ErrMissingField, fe.Field())
	case "notfuture":
		return fmt.Errorf("%w: %s cannot be in the future", entity.ErrInvalidParameter, fe.Field())
	case "min", "max":
		return fmt.Errorf("%w: %s must satisfy %s=%s", entity.ErrInvalidParameter, fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Errorf("%w: %s is not a valid %s", entity.ErrInvalidParameter, fe.Field(), fe.Tag())
	}
}

func (v *Validator) ValidateStartSession(req *entity.StartSessionRequest) error {
	if err := v.ValidateStruct(req); err != nil {
		return err
	}

	rel := entity.Relationship{Type: req.Relationship, CustomLabel: req.CustomRelationship}
	return rel.Validate()
}

func (v *Validator) ValidateProfile(req *entity.UpdateProfileRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	return v.ValidateStruct(req)
}

func (v *Validator) ValidateSelectQuestions(req *entity.SelectQuestionsRequest) error {
	if len(req.QuestionIDs) == 0 {
		return fmt.Errorf("%w: question_ids", entity.ErrNoQuestionsSelected)
	}
	return v.ValidateStruct(req)
}

func (v *Validator) ValidateInvite(req *entity.InviteRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	return v.ValidateStruct(req)
}
