package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/twincie/schoolpay/app/models"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func studentWith(categoryAmounts, paymentAmounts []int64) *models.Student {
	student := &models.Student{}
	for _, amount := range categoryAmounts {
		student.Categories = append(student.Categories, &models.Category{Amount: dec(amount)})
	}
	for _, amount := range paymentAmounts {
		student.Payments = append(student.Payments, &models.Payment{Amount: dec(amount)})
	}
	return student
}

func TestClassifyPayment(t *testing.T) {
	tests := []struct {
		name     string
		expected int64
		paid     int64
		want     models.PaymentStatus
	}{
		{"paid equals expected", 5000, 5000, models.FullyPaid},
		{"overpaid", 5000, 6000, models.FullyPaid},
		{"partial", 5000, 2500, models.PartiallyPaid},
		{"nothing paid", 5000, 0, models.NotPaid},
		{"no obligations and nothing paid", 0, 0, models.FullyPaid},
		{"no obligations but paid anyway", 0, 100, models.FullyPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyPayment(dec(tt.expected), dec(tt.paid))
			if got != tt.want {
				t.Errorf("ClassifyPayment(%d, %d) = %s, want %s", tt.expected, tt.paid, got, tt.want)
			}
		})
	}
}

func TestSummarizeStudent(t *testing.T) {
	t.Run("sums categories and payments", func(t *testing.T) {
		student := studentWith([]int64{5000, 3000}, []int64{2000, 1000})
		summary := SummarizeStudent(student)

		if !summary.Expected.Equal(dec(8000)) {
			t.Errorf("Expected = %s, want 8000", summary.Expected)
		}
		if !summary.Paid.Equal(dec(3000)) {
			t.Errorf("Paid = %s, want 3000", summary.Paid)
		}
		if !summary.Balance.Equal(dec(5000)) {
			t.Errorf("Balance = %s, want 5000", summary.Balance)
		}
		if summary.Status != models.PartiallyPaid {
			t.Errorf("Status = %s, want %s", summary.Status, models.PartiallyPaid)
		}
	})

	t.Run("overpayment keeps the balance signed", func(t *testing.T) {
		student := studentWith([]int64{1000}, []int64{1500})
		summary := SummarizeStudent(student)

		if !summary.Balance.Equal(dec(-500)) {
			t.Errorf("Balance = %s, want -500", summary.Balance)
		}
		if summary.Status != models.FullyPaid {
			t.Errorf("Status = %s, want %s", summary.Status, models.FullyPaid)
		}
	})

	t.Run("no relations yields zero totals and fully paid", func(t *testing.T) {
		summary := SummarizeStudent(&models.Student{})

		if !summary.Expected.IsZero() || !summary.Paid.IsZero() {
			t.Errorf("Expected/Paid = %s/%s, want 0/0", summary.Expected, summary.Paid)
		}
		if summary.Status != models.FullyPaid {
			t.Errorf("Status = %s, want %s", summary.Status, models.FullyPaid)
		}
	})
}

func TestAttachSummary(t *testing.T) {
	student := studentWith([]int64{4000}, []int64{1000})
	student.Categories[0].Name = "Tuition"
	AttachSummary(student)

	if !student.TotalExpected.Equal(dec(4000)) || !student.TotalPaid.Equal(dec(1000)) {
		t.Errorf("totals = %s/%s, want 4000/1000", student.TotalExpected, student.TotalPaid)
	}
	if student.PaymentStatus != models.PartiallyPaid {
		t.Errorf("PaymentStatus = %s, want %s", student.PaymentStatus, models.PartiallyPaid)
	}
	if len(student.CategoryNames) != 1 || student.CategoryNames[0] != "Tuition" {
		t.Errorf("CategoryNames = %v, want [Tuition]", student.CategoryNames)
	}
}

func TestBreakdownByStatus(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		breakdown := BreakdownByStatus(nil)
		if breakdown.FullyPaid != 0 || breakdown.PartiallyPaid != 0 || breakdown.NotPaid != 0 {
			t.Errorf("breakdown = %+v, want all zero", breakdown)
		}
	})

	t.Run("one student per bucket rounds independently", func(t *testing.T) {
		students := []*models.Student{
			studentWith([]int64{100}, []int64{100}), // fully paid
			studentWith([]int64{100}, []int64{50}),  // partially paid
			studentWith([]int64{100}, nil),          // not paid
		}
		breakdown := BreakdownByStatus(students)

		if breakdown.FullyPaid != 33 || breakdown.PartiallyPaid != 33 || breakdown.NotPaid != 33 {
			t.Errorf("breakdown = %+v, want 33/33/33", breakdown)
		}
		// The buckets round independently and may not sum to 100.
		if sum := breakdown.FullyPaid + breakdown.PartiallyPaid + breakdown.NotPaid; sum != 99 {
			t.Errorf("sum = %d, want 99", sum)
		}
	})

	t.Run("majority fully paid", func(t *testing.T) {
		students := []*models.Student{
			studentWith([]int64{100}, []int64{100}),
			studentWith([]int64{100}, []int64{200}),
			studentWith([]int64{100}, nil),
			studentWith([]int64{100}, []int64{100}),
		}
		breakdown := BreakdownByStatus(students)

		if breakdown.FullyPaid != 75 || breakdown.PartiallyPaid != 0 || breakdown.NotPaid != 25 {
			t.Errorf("breakdown = %+v, want 75/0/25", breakdown)
		}
	})
}

func TestCollectionRate(t *testing.T) {
	tests := []struct {
		name          string
		amount        int64
		studentsCount int
		collected     int64
		want          int
	}{
		{"sixty percent", 5000, 10, 30000, 60},
		{"fully collected", 5000, 10, 50000, 100},
		{"nothing collected", 5000, 10, 0, 0},
		{"no students assigned", 5000, 0, 0, 0},
		{"zero amount", 0, 10, 0, 0},
		{"rounds to nearest", 3000, 3, 3000, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectionRate(dec(tt.amount), tt.studentsCount, dec(tt.collected))
			if got != tt.want {
				t.Errorf("CollectionRate(%d, %d, %d) = %d, want %d",
					tt.amount, tt.studentsCount, tt.collected, got, tt.want)
			}
		})
	}
}
