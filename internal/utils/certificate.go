package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Date represents a calendar date
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDate converts a yyyy-mm-dd formatted string into a Date struct
func ParseDate(dateStr string) (Date, error) {
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year: %v", err)
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("invalid month: %v", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("invalid day: %v", err)
	}

	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	if day < 1 || day > 31 {
		return Date{}, fmt.Errorf("day must be between 1 and 31")
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// GenerateCertificateNumber formats a tax-certificate identifier from the
// NGO registration number, the donation date (not the generation date) and
// the donation's sequence id:
//
//	{registrationNumber}/DON/{YYYYMMDD}/{sequence padded to 4 digits}
func GenerateCertificateNumber(registrationNumber, donationDate string, sequenceID int) (string, error) {
	date, err := ParseDate(donationDate)
	if err != nil {
		return "", fmt.Errorf("invalid donation date: %w", err)
	}
	if sequenceID < 0 {
		return "", fmt.Errorf("sequence id must not be negative")
	}
	return fmt.Sprintf("%s/DON/%04d%02d%02d/%04d", registrationNumber, date.Year, date.Month, date.Day, sequenceID), nil
}

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToWords converts a non-negative integer rupee amount into English
// words using the Indian grouping system (hundred, thousand, lakh, crore).
// Fractional and negative amounts are not supported.
func NumberToWords(amount int64) (string, error) {
	if amount < 0 {
		return "", fmt.Errorf("amount must not be negative")
	}
	if amount == 0 {
		return "Zero", nil
	}
	return strings.TrimSpace(toWords(amount)), nil
}

func toWords(n int64) string {
	switch {
	case n >= 10000000:
		return join(toWords(n/10000000), "Crore", toWords(n%10000000))
	case n >= 100000:
		return join(toWords(n/100000), "Lakh", toWords(n%100000))
	case n >= 1000:
		return join(toWords(n/1000), "Thousand", toWords(n%1000))
	case n >= 100:
		return join(onesWords[n/100], "Hundred", toWords(n%100))
	case n >= 20:
		return join(tensWords[n/10], onesWords[n%10], "")
	default:
		return onesWords[n]
	}
}

func join(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// FinancialYear returns the Indian financial year label (April to March)
// containing the given date, e.g. "2023-24" for 2024-01-15.
func FinancialYear(date Date) string {
	startYear := date.Year
	if date.Month < 4 {
		startYear--
	}
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}
