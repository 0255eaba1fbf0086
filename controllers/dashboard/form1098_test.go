package dashboardController_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxprep/database"
	"taxprep/models"
)

func extractAndGenerate(t *testing.T, app *fiber.App, token string) map[string]interface{} {
	t.Helper()

	resp, _ := doJSON(t, app, "POST", "/dashboard/extract-w2", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/dashboard/generate-1098", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return body
}

func TestGenerate1098RequiresW2Data(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "dana@example.com")

	resp, body := doJSON(t, app, "POST", "/dashboard/generate-1098", token, nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No W-2 data found! Extract your W-2 before generating a 1098.", body["message"])
}

func TestGenerate1098Values(t *testing.T) {
	app := setupApp(t)
	user, token := createUser(t, "dana@example.com")
	uploadSampleW2(t, app, token)

	body := extractAndGenerate(t, app, token)
	assert.Equal(t, "Form 1098 generated successfully.", body["message"])

	data := dataOf(t, body)
	assert.Equal(t, 2600.00, data["mortgageInterestReceived"], "4 percent of 65000 wages")
	assert.Equal(t, 325.00, data["mortgageInsurancePremiums"])
	assert.Equal(t, 227500.00, data["outstandingMortgagePrincipal"])
	assert.Equal(t, 0.00, data["refundOverpaidInterest"])
	assert.Equal(t, 0.00, data["pointsPaid"])
	assert.Equal(t, fmt.Sprintf("1098-%06d", user.ID), data["accountNumber"])
	assert.Equal(t, float64(time.Now().Year()), data["formYear"])

	borrower := data["borrower"].(map[string]interface{})
	assert.Equal(t, "Dana Whitfield", borrower["name"])
	lender := data["lender"].(map[string]interface{})
	assert.Equal(t, "First National Home Lending", lender["name"])

	basis := data["calculationBasis"].(map[string]interface{})
	assert.Equal(t, 65000.00, basis["sourceIncome"])
	assert.Equal(t, 0.04, basis["assumedRate"])
	assert.Equal(t, "wage-derived-estimate", basis["method"])

	var dbUser models.User
	require.NoError(t, database.Database.Db.First(&dbUser, user.ID).Error)
	assert.Equal(t, models.FormCompleted, dbUser.FormCompletionStatus)
}

func TestGenerate1098CapsInterest(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "dana@example.com")
	uploadSampleW2(t, app, token)

	resp, _ := doJSON(t, app, "POST", "/dashboard/extract-w2", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "PUT", "/dashboard/w2-data", token, fiber.Map{"wages": 400000.00})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/dashboard/generate-1098", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := dataOf(t, body)
	assert.Equal(t, 10000.00, data["mortgageInterestReceived"], "interest is capped")
	assert.Equal(t, 2000.00, data["mortgageInsurancePremiums"])
	assert.Equal(t, 1400000.00, data["outstandingMortgagePrincipal"])
}

func TestGenerate1098OverwritesPreviousEdits(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "dana@example.com")
	uploadSampleW2(t, app, token)
	extractAndGenerate(t, app, token)

	resp, _ := doJSON(t, app, "PUT", "/dashboard/1098-data", token, fiber.Map{
		"propertyAddress": "12 Elm Street, Columbus, OH",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Regeneration rebuilds from the W-2, discarding manual edits
	resp, body := doJSON(t, app, "POST", "/dashboard/generate-1098", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := dataOf(t, body)
	assert.NotEqual(t, "12 Elm Street, Columbus, OH", data["propertyAddress"])
	assert.Nil(t, data["lastModified"])
}

func TestGet1098DataBeforeGenerate(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "dana@example.com")

	resp, body := doJSON(t, app, "GET", "/dashboard/1098-data", token, nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No 1098 data found! Generate the form first.", body["message"])
}

func TestUpdate1098DataMergesFields(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "dana@example.com")
	uploadSampleW2(t, app, token)
	extractAndGenerate(t, app, token)

	resp, body := doJSON(t, app, "PUT", "/dashboard/1098-data", token, fiber.Map{
		"propertyAddress": "12 Elm Street, Columbus, OH",
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Form 1098 updated successfully.", body["message"])

	data := dataOf(t, body)
	assert.Equal(t, "12 Elm Street, Columbus, OH", data["propertyAddress"])
	assert.Equal(t, 2600.00, data["mortgageInterestReceived"], "absent fields keep stored values")
	assert.NotNil(t, data["lastModified"])

	resp, body = doJSON(t, app, "GET", "/dashboard/1098-data", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "12 Elm Street, Columbus, OH", dataOf(t, body)["propertyAddress"])
}

func TestDownload1098RequiresGenerate(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "dana@example.com")

	resp, body := doJSON(t, app, "GET", "/dashboard/download-1098", token, nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No 1098 data found! Generate the form first.", body["message"])
}

func TestDownload1098ReturnsPDF(t *testing.T) {
	app := setupApp(t)
	_, token := createUser(t, "dana@example.com")
	uploadSampleW2(t, app, token)
	extractAndGenerate(t, app, token)

	resp := doRaw(t, app, "GET", "/dashboard/download-1098", token, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t,
		fmt.Sprintf(`attachment; filename="form1098-%d.pdf"`, time.Now().Year()),
		resp.Header.Get("Content-Disposition"))

	pdfBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdfBytes), "%PDF-"))
	assert.Greater(t, len(pdfBytes), 1000)
}

// TestFullFilingFlow walks the whole product path: account creation, login,
// document uploads, extraction, 1098 generation and PDF download.
func TestFullFilingFlow(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/auth/signup", "", fiber.Map{
		"email":     "flow@example.com",
		"password":  "correct-horse-battery",
		"firstName": "Jordan",
		"lastName":  "Reyes",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "flow@example.com",
		"password": "correct-horse-battery",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token := dataOf(t, body)["token"].(string)
	require.NotEmpty(t, token)

	resp, body = doJSON(t, app, "GET", "/dashboard/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.FormNotStarted, dataOf(t, body)["formCompletionStatus"])

	resp, _ = uploadForm(t, app, "/dashboard/upload-w9", "w9Form", "w9.pdf", "application/pdf", samplePDF, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = uploadForm(t, app, "/dashboard/upload-w2", "w2Form", "w2.pdf", "application/pdf", samplePDF, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, "POST", "/dashboard/extract-w2", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jordan Reyes", dataOf(t, body)["employee"].(map[string]interface{})["name"])

	resp, body = doJSON(t, app, "GET", "/dashboard/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.FormInProgress, dataOf(t, body)["formCompletionStatus"])

	resp, body = doJSON(t, app, "POST", "/dashboard/generate-1098", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2600.00, dataOf(t, body)["mortgageInterestReceived"])

	resp, body = doJSON(t, app, "GET", "/dashboard/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.FormCompleted, dataOf(t, body)["formCompletionStatus"])

	raw := doRaw(t, app, "GET", "/dashboard/download-1098", token, "")
	require.Equal(t, fiber.StatusOK, raw.StatusCode)
	pdfBytes, err := io.ReadAll(raw.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdfBytes), "%PDF-"))
}
