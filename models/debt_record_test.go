package models

import (
	"testing"
	"time"
)

func TestRecalculate(t *testing.T) {
	tests := []struct {
		name          string
		amount        float64
		paidAmount    float64
		wantRemaining float64
		wantStatus    DebtStatus
	}{
		{"без платежей", 600000, 0, 600000, DebtStatusPending},
		{"частичная оплата", 600000, 200000, 400000, DebtStatusPartial},
		{"полная оплата", 600000, 600000, 0, DebtStatusPaid},
		{"переплата не дает отрицательный остаток", 600000, 700000, 0, DebtStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := DebtRecord{Amount: tt.amount, PaidAmount: tt.paidAmount}
			record.Recalculate()

			if record.RemainingAmount != tt.wantRemaining {
				t.Errorf("остаток: got %v want %v", record.RemainingAmount, tt.wantRemaining)
			}
			if record.Status != tt.wantStatus {
				t.Errorf("статус: got %v want %v", record.Status, tt.wantStatus)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	// Срок в прошлом и долг не погашен
	record := DebtRecord{Status: DebtStatusPartial, DueDate: &yesterday}
	if !record.IsOverdue(now) {
		t.Error("непогашенный долг с прошедшим сроком должен быть просрочен")
	}

	// Срок еще не наступил
	record = DebtRecord{Status: DebtStatusPending, DueDate: &tomorrow}
	if record.IsOverdue(now) {
		t.Error("долг со сроком в будущем не должен быть просрочен")
	}

	// Погашенный долг не бывает просроченным
	record = DebtRecord{Status: DebtStatusPaid, DueDate: &yesterday}
	if record.IsOverdue(now) {
		t.Error("погашенный долг не должен быть просрочен")
	}

	// Долг без срока не бывает просроченным
	record = DebtRecord{Status: DebtStatusPending}
	if record.IsOverdue(now) {
		t.Error("долг без срока не должен быть просрочен")
	}
}
