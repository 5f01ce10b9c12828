package wizard

import "github.com/andy/boutiquebill/internal/domain"

// Step is a position in the invoice wizard
type Step int

const (
	StepShop Step = iota
	StepCustomer
	StepServices
	StepDetails
	StepPreview
)

// StepCount is the number of wizard steps
const StepCount = int(StepPreview) + 1

// stepFields lists the fields that must validate before leaving each step.
// The preview step has none: it is terminal.
var stepFields = map[Step][]domain.Field{
	StepShop: {
		domain.FieldShopName,
		domain.FieldShopAddress,
		domain.FieldInvoiceNumber,
		domain.FieldShopLogo,
	},
	StepCustomer: {
		domain.FieldCustomerName,
		domain.FieldCustomerPhone,
		domain.FieldInvoiceDate,
		domain.FieldDeliveryDate,
	},
	StepServices: {
		domain.FieldServices,
	},
	StepDetails: {
		domain.FieldAdvance,
		domain.FieldNotes,
	},
}

// Fields returns the fields validated when advancing from s
func (s Step) Fields() []domain.Field {
	return stepFields[s]
}

// String returns the step title
func (s Step) String() string {
	switch s {
	case StepShop:
		return "Shop Info"
	case StepCustomer:
		return "Customer Info"
	case StepServices:
		return "Services & Measurements"
	case StepDetails:
		return "Notes & Payment"
	case StepPreview:
		return "Preview & Send"
	default:
		return "Unknown"
	}
}

// Steps returns every step in order
func Steps() []Step {
	steps := make([]Step, StepCount)
	for i := range steps {
		steps[i] = Step(i)
	}
	return steps
}
