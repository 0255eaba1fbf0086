package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taxprep/models"
)

func TestBuildStaticW2Totals(t *testing.T) {
	user := &models.User{FirstName: "Ada", LastName: "Byron", SSN: "123-45-6789"}

	rec := BuildStaticW2(user)

	assert.Equal(t, 65000.00, rec.Wages)
	assert.Equal(t, 9750.00, rec.FederalTaxWithheld)
	assert.Equal(t, 65000.00, rec.SocialSecurityWages)
	assert.Equal(t, 4030.00, rec.SocialSecurityTax)
	assert.Equal(t, 65000.00, rec.MedicareWages)
	assert.Equal(t, 942.50, rec.MedicareTax)

	assert.Equal(t, 65000.00, rec.TaxableIncome)
	assert.Equal(t, 14722.50, rec.TotalTaxWithheld)
	assert.Equal(t, 50277.50, rec.NetPay)

	assert.Equal(t, "mock-ocr", rec.ExtractionMethod)
	assert.Equal(t, 0.95, rec.Confidence)
	assert.WithinDuration(t, time.Now(), rec.ExtractedAt, time.Minute)
	assert.Nil(t, rec.LastModified)
}

func TestBuildStaticW2BoxesSevenThroughThirteen(t *testing.T) {
	rec := BuildStaticW2(&models.User{})

	assert.Zero(t, rec.SocialSecurityTips)
	assert.Zero(t, rec.AllocatedTips)
	assert.Zero(t, rec.DependentCareBenefits)
	assert.Zero(t, rec.NonqualifiedPlans)
	assert.Empty(t, rec.Box12)
	assert.False(t, rec.StatutoryEmployee)
	assert.False(t, rec.RetirementPlan)
	assert.False(t, rec.ThirdPartySickPay)
}

func TestBuildStaticW2EmployeeFromProfile(t *testing.T) {
	user := &models.User{
		FirstName: "Ada",
		LastName:  "Byron",
		SSN:       "123-45-6789",
		Address:   models.Address{Street: "12 Analytical Row", City: "London", State: "KY", Zip: "40741"},
	}

	rec := BuildStaticW2(user)

	assert.Equal(t, "Ada Byron", rec.Employee.Name)
	assert.Equal(t, "123-45-6789", rec.Employee.TIN)
	assert.Equal(t, "12 Analytical Row", rec.Employee.Street)
	assert.NotEmpty(t, rec.Employer.Name)
	assert.NotEmpty(t, rec.Employer.TIN)
}

func TestBuildStaticW2PlaceholderWhenProfileBlank(t *testing.T) {
	rec := BuildStaticW2(&models.User{})
	assert.Equal(t, placeholderBorrowerName, rec.Employee.Name)
}

func TestBuildForm1098Values(t *testing.T) {
	user := &models.User{FirstName: "Ada", LastName: "Byron"}
	user.ID = 7
	w2 := BuildStaticW2(user)

	form := BuildForm1098(user, w2)

	assert.Equal(t, 2600.00, form.MortgageInterestReceived)
	assert.Equal(t, 325.00, form.MortgageInsurancePremiums)
	assert.Equal(t, 227500.00, form.OutstandingMortgagePrincipal)
	assert.Zero(t, form.PointsPaid)
	assert.Zero(t, form.RefundOverpaidInterest)

	assert.Equal(t, time.Now().Year(), form.FormYear)
	assert.WithinDuration(t, time.Now(), form.GeneratedDate, time.Minute)
	assert.Equal(t, "1098-000007", form.AccountNumber)

	assert.Equal(t, 65000.00, form.CalculationBasis.SourceIncome)
	assert.Equal(t, 0.04, form.CalculationBasis.AssumedRate)
	assert.NotEmpty(t, form.CalculationBasis.Method)
	assert.NotEmpty(t, form.Lender.Name)
}

func TestBuildForm1098CapsInterest(t *testing.T) {
	form := BuildForm1098(&models.User{}, &models.W2Record{Wages: 400000})

	assert.Equal(t, 10000.00, form.MortgageInterestReceived)
	assert.Equal(t, 2000.00, form.MortgageInsurancePremiums)
	assert.Equal(t, 1400000.00, form.OutstandingMortgagePrincipal)
}

func TestBuildForm1098BorrowerFromW2Employee(t *testing.T) {
	w2 := &models.W2Record{
		Wages: 50000,
		Employee: models.TaxParty{
			Name:   "Grace Hopper",
			TIN:    "111-22-3333",
			Street: "1 Navy Way",
			City:   "Arlington",
			State:  "VA",
			Zip:    "22202",
		},
	}

	form := BuildForm1098(&models.User{FirstName: "Ignored"}, w2)

	assert.Equal(t, "Grace Hopper", form.Borrower.Name)
	assert.Equal(t, "111-22-3333", form.Borrower.TIN)
	assert.Contains(t, form.PropertyAddress, "1 Navy Way")
	assert.Contains(t, form.PropertyAddress, "Arlington")
}

func TestBuildForm1098BorrowerFallsBackToProfile(t *testing.T) {
	user := &models.User{
		FirstName: "Grace",
		LastName:  "Hopper",
		SSN:       "111-22-3333",
		Address:   models.Address{Street: "1 Navy Way", City: "Arlington", State: "VA", Zip: "22202"},
	}

	form := BuildForm1098(user, &models.W2Record{Wages: 50000})

	assert.Equal(t, "Grace Hopper", form.Borrower.Name)
	assert.Equal(t, "111-22-3333", form.Borrower.TIN)
	assert.Equal(t, "1 Navy Way", form.Borrower.Street)
}

func TestBuildForm1098PlaceholderWhenNoIdentity(t *testing.T) {
	form := BuildForm1098(&models.User{}, &models.W2Record{Wages: 1000})

	assert.Equal(t, placeholderBorrowerName, form.Borrower.Name)
	assert.Equal(t, "Address not provided", form.PropertyAddress)
}

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 2600.00, RoundCurrency(2600.0))
	assert.Equal(t, 325.12, RoundCurrency(325.123))
	assert.Equal(t, 325.13, RoundCurrency(325.128))
	assert.Equal(t, -2.13, RoundCurrency(-2.134))
	assert.Equal(t, 0.00, RoundCurrency(0))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "$942.50", FormatCurrency(942.5))
	assert.Equal(t, "$2,600.00", FormatCurrency(2600))
	assert.Equal(t, "$227,500.00", FormatCurrency(227500))
	assert.Equal(t, "$1,234,567.89", FormatCurrency(1234567.89))
	assert.Equal(t, "-$45.10", FormatCurrency(-45.1))
}
