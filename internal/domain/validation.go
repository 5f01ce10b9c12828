package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Field names a validatable part of an invoice
type Field string

const (
	FieldShopName      Field = "shopName"
	FieldShopAddress   Field = "shopAddress"
	FieldShopLogo      Field = "shopLogo"
	FieldInvoiceNumber Field = "invoiceNumber"
	FieldCustomerName  Field = "customerName"
	FieldCustomerPhone Field = "customerPhone"
	FieldInvoiceDate   Field = "invoiceDate"
	FieldDeliveryDate  Field = "deliveryDate"
	FieldServices      Field = "services"
	FieldAdvance       Field = "advance"
	FieldNotes         Field = "notes"
)

// Length limits for string fields
const (
	MinShopNameLen     = 2
	MinShopAddressLen  = 10
	MinCustomerNameLen = 2
	MinPhoneLen        = 10
	MaxPhoneLen        = 15
)

type ErrorKind string

const (
	ErrKindRequired      ErrorKind = "required"
	ErrKindTooShort      ErrorKind = "too_short"
	ErrKindTooLong       ErrorKind = "too_long"
	ErrKindNegative      ErrorKind = "negative"
	ErrKindMinItems      ErrorKind = "min_items"
	ErrKindInvalidChoice ErrorKind = "invalid_choice"
	ErrKindInvalidImage  ErrorKind = "invalid_image"
)

// FieldError describes one failed rule. Path is the field name, or a dotted
// path such as "services.0.name" for nested values.
type FieldError struct {
	Path    string
	Kind    ErrorKind
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects every FieldError found in one validation pass
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// For returns the first error recorded for path
func (v ValidationErrors) For(path string) (FieldError, bool) {
	for _, fe := range v {
		if fe.Path == path {
			return fe, true
		}
	}
	return FieldError{}, false
}

// ServicePath builds the error path for a field of the i-th service
func ServicePath(i int, field string) string {
	return fmt.Sprintf("%s.%d.%s", FieldServices, i, field)
}

// MeasurementPath builds the error path for a field of a service measurement
func MeasurementPath(service, measurement int, field string) string {
	return fmt.Sprintf("%s.%d.measurements.%d.%s", FieldServices, service, measurement, field)
}

// ParseAmount coerces numeric form input. Empty or unparsable input becomes 0;
// negative numbers are kept so validation can reject them.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return FiniteAmount(v)
}

// FiniteAmount maps NaN and ±Inf to 0. Negative values are kept so that
// validation can reject them.
func FiniteAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ValidateFields checks the given fields and returns every failure found.
// It returns nil when all fields pass.
func (i *Invoice) ValidateFields(fields ...Field) ValidationErrors {
	var errs ValidationErrors
	for _, f := range fields {
		errs = append(errs, i.validateField(f)...)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (i *Invoice) validateField(f Field) ValidationErrors {
	switch f {
	case FieldShopName:
		return minLength(string(f), i.ShopName, MinShopNameLen,
			"Shop name is required.", "Shop name must be at least 2 characters.")
	case FieldShopAddress:
		return minLength(string(f), i.ShopAddress, MinShopAddressLen,
			"Shop address is required.", "Shop address must be at least 10 characters.")
	case FieldShopLogo:
		return imageRule(string(f), i.ShopLogo)
	case FieldInvoiceNumber:
		return minLength(string(f), i.InvoiceNumber, 1,
			"Invoice number is required.", "Invoice number is required.")
	case FieldCustomerName:
		return minLength(string(f), i.CustomerName, MinCustomerNameLen,
			"Customer name is required.", "Customer name must be at least 2 characters.")
	case FieldCustomerPhone:
		return i.validatePhone()
	case FieldInvoiceDate:
		if i.InvoiceDate.IsZero() {
			return ValidationErrors{{Path: string(f), Kind: ErrKindRequired, Message: "Invoice date is required."}}
		}
	case FieldDeliveryDate:
		if i.DeliveryDate.IsZero() {
			return ValidationErrors{{Path: string(f), Kind: ErrKindRequired, Message: "Delivery date is required."}}
		}
	case FieldServices:
		return i.validateServices()
	case FieldAdvance:
		if i.Advance < 0 {
			return ValidationErrors{{Path: string(f), Kind: ErrKindNegative, Message: "Advance must be a non-negative number."}}
		}
	case FieldNotes:
		// free text, always valid
	}
	return nil
}

func (i *Invoice) validatePhone() ValidationErrors {
	path := string(FieldCustomerPhone)
	n := utf8.RuneCountInString(strings.TrimSpace(i.CustomerPhone))
	switch {
	case n == 0:
		return ValidationErrors{{Path: path, Kind: ErrKindRequired, Message: "A valid phone number is required."}}
	case n < MinPhoneLen:
		return ValidationErrors{{Path: path, Kind: ErrKindTooShort, Message: "A valid phone number is required."}}
	case n > MaxPhoneLen:
		return ValidationErrors{{Path: path, Kind: ErrKindTooLong, Message: "Phone number is too long."}}
	}
	return nil
}

func (i *Invoice) validateServices() ValidationErrors {
	if len(i.Services) == 0 {
		return ValidationErrors{{Path: string(FieldServices), Kind: ErrKindMinItems, Message: "At least one service is required."}}
	}

	var errs ValidationErrors
	for si, svc := range i.Services {
		if strings.TrimSpace(svc.Name) == "" {
			errs = append(errs, FieldError{Path: ServicePath(si, "name"), Kind: ErrKindRequired, Message: "Service name is required."})
		}
		if svc.Price < 0 {
			errs = append(errs, FieldError{Path: ServicePath(si, "price"), Kind: ErrKindNegative, Message: "Price must be a non-negative number."})
		}
		errs = append(errs, imageRule(ServicePath(si, "image"), svc.Image)...)

		for mi, m := range svc.Measurements {
			if !m.Name.IsValid() {
				errs = append(errs, FieldError{Path: MeasurementPath(si, mi, "name"), Kind: ErrKindInvalidChoice, Message: "Measurement name is required."})
			}
			if m.Value < 0 {
				errs = append(errs, FieldError{Path: MeasurementPath(si, mi, "value"), Kind: ErrKindNegative, Message: "Measurement must be a non-negative number."})
			}
		}
	}
	return errs
}

func minLength(path, value string, minLen int, requiredMsg, shortMsg string) ValidationErrors {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n == 0 {
		return ValidationErrors{{Path: path, Kind: ErrKindRequired, Message: requiredMsg}}
	}
	if n < minLen {
		return ValidationErrors{{Path: path, Kind: ErrKindTooShort, Message: shortMsg}}
	}
	return nil
}

func imageRule(path string, ref *ImageRef) ValidationErrors {
	if ref == nil || ref.IsImage() {
		return nil
	}
	return ValidationErrors{{Path: path, Kind: ErrKindInvalidImage, Message: fmt.Sprintf("%s is not a PNG, JPEG or GIF image.", ref.Name())}}
}
