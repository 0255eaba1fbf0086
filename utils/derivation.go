package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"taxprep/models"
)

// Fixed employer/lender identities used until real document parsing lands.
// The employee/borrower side falls back W-2 -> profile -> placeholder.
var (
	placeholderEmployer = models.TaxParty{
		Name:   "Meridian Logistics Inc.",
		TIN:    "84-2931057",
		Street: "2200 Commerce Park Drive",
		City:   "Columbus",
		State:  "OH",
		Zip:    "43219",
	}

	placeholderLender = models.TaxParty{
		Name:   "First National Home Lending",
		TIN:    "38-5521904",
		Street: "500 Main Street",
		City:   "Springfield",
		State:  "IL",
		Zip:    "62701",
	}

	placeholderBorrowerName = "Taxpayer on file"
)

// 1098 estimate constants: boxes are a fixed function of W-2 wages until
// lender statements are actually parsed.
const (
	mortgageInterestRate   = 0.04
	mortgageInterestCap    = 10000.00
	insurancePremiumRate   = 0.005
	outstandingPrincipalMx = 3.5
)

// BuildStaticW2 fabricates the fixed box-by-box W-2 payload merged with the
// user's profile fields. It stands in for a real OCR step; the record shape
// is the stable contract for swapping in a parsing integration later.
func BuildStaticW2(user *models.User) *models.W2Record {
	const (
		wages              = 65000.00
		federalTaxWithheld = 9750.00
		socialSecurityTax  = 4030.00
		medicareTax        = 942.50
	)

	employee := models.TaxParty{
		Name:   user.FullName(),
		TIN:    user.SSN,
		Street: user.Address.Street,
		City:   user.Address.City,
		State:  user.Address.State,
		Zip:    user.Address.Zip,
	}
	if employee.Name == "" {
		employee.Name = placeholderBorrowerName
	}

	totalWithheld := federalTaxWithheld + socialSecurityTax + medicareTax

	return &models.W2Record{
		Employee: employee,
		Employer: placeholderEmployer,

		Wages:               wages,
		FederalTaxWithheld:  federalTaxWithheld,
		SocialSecurityWages: wages,
		SocialSecurityTax:   socialSecurityTax,
		MedicareWages:       wages,
		MedicareTax:         medicareTax,
		Box12:               []models.W2Box12{},

		TaxableIncome:    wages,
		TotalTaxWithheld: RoundCurrency(totalWithheld),
		NetPay:           RoundCurrency(wages - totalWithheld),

		ExtractedAt:      time.Now(),
		ExtractionMethod: "mock-ocr",
		Confidence:       0.95,
	}
}

// BuildForm1098 derives the mortgage-interest estimate from the current W-2
// snapshot. The boxes are a pure function of wages; identity and address
// fall back from the W-2 record to the profile to a fixed placeholder.
func BuildForm1098(user *models.User, w2 *models.W2Record) *models.Form1098 {
	wages := w2.Wages

	interest := math.Min(wages*mortgageInterestRate, mortgageInterestCap)

	borrower := w2.Employee
	if borrower.Name == "" {
		borrower.Name = user.FullName()
	}
	if borrower.Name == "" {
		borrower.Name = placeholderBorrowerName
	}
	if borrower.TIN == "" {
		borrower.TIN = user.SSN
	}
	if borrower.Street == "" {
		borrower.Street = user.Address.Street
		borrower.City = user.Address.City
		borrower.State = user.Address.State
		borrower.Zip = user.Address.Zip
	}

	now := time.Now()

	return &models.Form1098{
		Borrower: borrower,
		Lender:   placeholderLender,

		MortgageInterestReceived:     RoundCurrency(interest),
		OutstandingMortgagePrincipal: RoundCurrency(wages * outstandingPrincipalMx),
		RefundOverpaidInterest:       0,
		MortgageInsurancePremiums:    RoundCurrency(wages * insurancePremiumRate),
		PointsPaid:                   0,

		PropertyAddress: propertyAddress(borrower),

		FormYear:      now.Year(),
		GeneratedDate: now,
		AccountNumber: fmt.Sprintf("1098-%06d", user.ID),

		CalculationBasis: models.CalculationBasis{
			SourceIncome: wages,
			AssumedRate:  mortgageInterestRate,
			Method:       "wage-derived-estimate",
		},
	}
}

// propertyAddress formats the borrower address as a single line
func propertyAddress(p models.TaxParty) string {
	parts := make([]string, 0, 4)
	if p.Street != "" {
		parts = append(parts, p.Street)
	}
	if p.City != "" {
		parts = append(parts, p.City)
	}
	if p.State != "" {
		parts = append(parts, p.State)
	}
	if p.Zip != "" {
		parts = append(parts, p.Zip)
	}
	if len(parts) == 0 {
		return "Address not provided"
	}
	return strings.Join(parts, ", ")
}

// RoundCurrency rounds to two decimal places
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatCurrency renders an amount as $1,234.56 for display
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	return sign + "$" + b.String() + fracPart
}
