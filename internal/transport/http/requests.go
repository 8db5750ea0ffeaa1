package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	apierrors "pulsecli/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// HistogramRequest selects the histogram column and optional segmentation.
type HistogramRequest struct {
	X        string `json:"x" validate:"required"`
	Category string `json:"category"`
}

// CumulativeRequest selects one or two y columns and optional segmentation.
type CumulativeRequest struct {
	Y        []string `json:"y" validate:"required,min=1,max=2,dive,required"`
	Category string   `json:"category"`
}

// ScatterRequest mirrors the scatter builder options.
type ScatterRequest struct {
	X        string   `json:"x" validate:"required"`
	Y        string   `json:"y" validate:"required"`
	Fits     []string `json:"fits" validate:"omitempty,dive,required"`
	XLog     bool     `json:"xlog"`
	YLog     bool     `json:"ylog"`
	Category string   `json:"category"`
	Scale    string   `json:"scale"`
	SizeRef  float64  `json:"sizeref" validate:"gte=0"`
}

// PolyfitRequest selects the fit columns and maximum degree.
type PolyfitRequest struct {
	X      string `json:"x" validate:"required"`
	Y      string `json:"y" validate:"required"`
	Degree int    `json:"degree" validate:"gte=0,lte=12"`
}

// RegressionRequest selects the regression columns and intercept handling.
type RegressionRequest struct {
	X             string `json:"x" validate:"required"`
	Y             string `json:"y" validate:"required"`
	InterceptZero bool   `json:"intercept_zero"`
}

// InteractiveRequest configures the article/response comparison plot.
type InteractiveRequest struct {
	X        string    `json:"x" validate:"required"`
	Y        string    `json:"y" validate:"required"`
	Title    string    `json:"title" validate:"required"`
	TimeAxis bool      `json:"time_axis"`
	EqPos    []float64 `json:"eq_pos" validate:"omitempty,len=2"`
}

// decodeAndValidate parses the JSON body into req and runs struct
// validation, mapping failures to field-level API errors.
func decodeAndValidate(r *http.Request, req any) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return apierrors.ErrInvalidRequest
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]apierrors.ValidationError, len(verrs))
			for i, fe := range verrs {
				details[i] = apierrors.ValidationError{
					Field:   fe.Field(),
					Message: "failed " + fe.Tag() + " validation",
				}
			}
			return apierrors.NewWithDetails(
				apierrors.ErrValidationFailed.StatusCode,
				apierrors.ErrValidationFailed.ErrorCode,
				apierrors.ErrValidationFailed.Message,
				details,
			)
		}
		return apierrors.ErrValidationFailed
	}
	return nil
}
