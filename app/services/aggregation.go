package services

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/twincie/schoolpay/app/models"
)

// FeeSummary holds the derived fee position of a single student.
type FeeSummary struct {
	Expected decimal.Decimal
	Paid     decimal.Decimal
	Balance  decimal.Decimal
	Status   models.PaymentStatus
}

// SummarizeStudent computes the expected total over the student's assigned
// categories, the paid total over all of the student's payments, the signed
// balance and the resulting payment status. Pure function over loaded data.
func SummarizeStudent(student *models.Student) FeeSummary {
	expected := decimal.Zero
	for _, category := range student.Categories {
		expected = expected.Add(category.Amount)
	}

	paid := decimal.Zero
	for _, payment := range student.Payments {
		paid = paid.Add(payment.Amount)
	}

	return FeeSummary{
		Expected: expected,
		Paid:     paid,
		Balance:  expected.Sub(paid),
		Status:   ClassifyPayment(expected, paid),
	}
}

// ClassifyPayment applies the status rule: fully paid when paid >= expected,
// partially paid when 0 < paid < expected, not paid when paid == 0. A student
// with no assigned categories satisfies paid >= expected trivially and counts
// as fully paid.
func ClassifyPayment(expected, paid decimal.Decimal) models.PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(expected):
		return models.FullyPaid
	case paid.GreaterThan(decimal.Zero):
		return models.PartiallyPaid
	default:
		return models.NotPaid
	}
}

// AttachSummary fills the derived response fields on the student in place.
func AttachSummary(student *models.Student) {
	summary := SummarizeStudent(student)
	student.TotalExpected = summary.Expected
	student.TotalPaid = summary.Paid
	student.Balance = summary.Balance
	student.PaymentStatus = summary.Status

	names := make([]string, 0, len(student.Categories))
	for _, category := range student.Categories {
		names = append(names, category.Name)
	}
	student.CategoryNames = names
}

// StatusBreakdown holds the share of students in each payment-status bucket,
// as whole percentages.
type StatusBreakdown struct {
	FullyPaid     int `json:"fully_paid"`
	PartiallyPaid int `json:"partially_paid"`
	NotPaid       int `json:"not_paid"`
}

// BreakdownByStatus computes the percentage of students per status bucket.
// Each percentage is rounded independently, so the three values may not sum
// to exactly 100.
func BreakdownByStatus(students []*models.Student) StatusBreakdown {
	var fully, partially, not int
	for _, student := range students {
		switch SummarizeStudent(student).Status {
		case models.FullyPaid:
			fully++
		case models.PartiallyPaid:
			partially++
		default:
			not++
		}
	}

	total := len(students)
	return StatusBreakdown{
		FullyPaid:     percentage(fully, total),
		PartiallyPaid: percentage(partially, total),
		NotPaid:       percentage(not, total),
	}
}

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// CollectionRate computes how much of a category's theoretical total has been
// collected, as a whole percentage: collected / (amount * studentsCount).
// Returns 0 when the denominator is 0.
func CollectionRate(amount decimal.Decimal, studentsCount int, totalCollected decimal.Decimal) int {
	expected := amount.Mul(decimal.NewFromInt(int64(studentsCount)))
	if expected.IsZero() {
		return 0
	}
	rate := totalCollected.Div(expected).Mul(decimal.NewFromInt(100))
	return int(rate.Round(0).IntPart())
}
