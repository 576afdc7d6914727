package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, 2024, date.Year)
		assert.Equal(t, 1, date.Month)
		assert.Equal(t, 15, date.Day)
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "month must be between 1 and 12")
	})
}

func TestGenerateCertificateNumber(t *testing.T) {
	t.Run("Formats registration, date and sequence", func(t *testing.T) {
		num, err := GenerateCertificateNumber("REG/2015/NGO/001", "2024-01-15", 7)
		assert.NoError(t, err)
		assert.Equal(t, "REG/2015/NGO/001/DON/20240115/0007", num)
	})

	t.Run("Pads sequence to four digits", func(t *testing.T) {
		num, err := GenerateCertificateNumber("REG1", "2024-12-01", 1234)
		assert.NoError(t, err)
		assert.Equal(t, "REG1/DON/20241201/1234", num)
	})

	t.Run("Uses donation date not current date", func(t *testing.T) {
		num, err := GenerateCertificateNumber("REG1", "2020-06-30", 1)
		assert.NoError(t, err)
		assert.Contains(t, num, "/DON/20200630/")
	})

	t.Run("Rejects invalid date", func(t *testing.T) {
		_, err := GenerateCertificateNumber("REG1", "15-01-2024", 1)
		assert.Error(t, err)
	})

	t.Run("Rejects negative sequence", func(t *testing.T) {
		_, err := GenerateCertificateNumber("REG1", "2024-01-15", -1)
		assert.Error(t, err)
	})
}

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "Zero"},
		{1, "One"},
		{13, "Thirteen"},
		{20, "Twenty"},
		{45, "Forty Five"},
		{100, "One Hundred"},
		{105, "One Hundred Five"},
		{999, "Nine Hundred Ninety Nine"},
		{1000, "One Thousand"},
		{2500, "Two Thousand Five Hundred"},
		{100000, "One Lakh"},
		{125000, "One Lakh Twenty Five Thousand"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			words, err := NumberToWords(tt.amount)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, words)
		})
	}

	t.Run("Negative amount", func(t *testing.T) {
		_, err := NumberToWords(-1)
		assert.Error(t, err)
	})
}

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		date     Date
		expected string
	}{
		{Date{2024, 1, 15}, "2023-24"},
		{Date{2024, 3, 31}, "2023-24"},
		{Date{2024, 4, 1}, "2024-25"},
		{Date{2024, 12, 31}, "2024-25"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FinancialYear(tt.date))
		})
	}
}
