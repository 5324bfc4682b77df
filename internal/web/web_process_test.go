package web_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpautz/crossword-times/internal/model"
	"github.com/mpautz/crossword-times/internal/ocr"
)

func TestProcessRendersReviewPage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.OCRStub.Text = "Merrick: 3.45\nMoi - 4.50\nsomething else"

	rr := ts.upload("/process", "2025-03-01", "scores.png", pngScreenshot(t))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#review form[action='/submit']")
	assertContainsElement(t, doc, "#review input[name='date'][value='2025-03-01']")
	assertContainsElement(t, doc, "input[name='time_Merrick'][value='3.45']")
	// Parser output is normalized, 4.50 becomes 4.5
	assertContainsElement(t, doc, "input[name='time_Moi'][value='4.5']")
	assertContainsText(t, doc, "#raw-text pre", "Moi - 4.50")
}

func TestProcessLeavesMissingPlayersEmpty(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.OCRStub.Text = "Merrick: 3.45"

	rr := ts.upload("/process", "2025-03-01", "scores.png", pngScreenshot(t))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	value, _ := doc.Find("input[name='time_Sidney']").Attr("value")
	assert.Empty(t, value)
}

func TestProcessThenSubmitFlow(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.OCRStub.Text = "Merrick: 3.45\nMoi - 4.50"

	rr := ts.upload("/process", "2025-03-01", "scores.png", pngScreenshot(t))
	require.Equal(t, http.StatusOK, rr.Code)

	// The user corrects a misread value before saving
	form := url.Values{
		"date":         {"2025-03-01"},
		"time_Merrick": {"3.45"},
		"time_Moi":     {"4.25"},
	}
	rr = ts.post("/submit", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Saved record 1")
	assertContainsText(t, doc, "#recent tbody", "4.25")
}

func TestProcessPassesPreparedImageToEngine(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.OCRStub.Text = "Merrick: 3.45"

	ts.upload("/process", "2025-03-01", "scores.png", pngScreenshot(t))

	assert.Equal(t, ocr.FormatPNG, ts.app.OCRStub.LastInput.Format)
	assert.NotEmpty(t, ts.app.OCRStub.LastInput.Image)
}

func TestProcessDefaultsDateToToday(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.OCRStub.Text = "Merrick: 3.45"

	rr := ts.upload("/process", "", "scores.png", pngScreenshot(t))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "#review input[name='date'][value='2025-03-01']")
}

func TestProcessWithoutFile(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.upload("/process", "2025-03-01", "", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "Choose a screenshot")
}

func TestProcessRejectsNonImage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.upload("/process", "2025-03-01", "scores.txt", []byte("plain text, not pixels"))
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "not a supported image")
}

func TestProcessProviderFailureStillShowsReviewGrid(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.OCRStub.Err = fmt.Errorf("%w: provider rejected the request", model.ErrOCRFailed)

	rr := ts.upload("/process", "2025-03-01", "scores.png", pngScreenshot(t))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#review .warning", "Could not read times")
	assertContainsElement(t, doc, "input[name='time_Merrick']")
	assertNotContainsElement(t, doc, "#raw-text")
}

func TestProcessNoTimesFoundWarns(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.OCRStub.Text = "a grid with no recognizable times"

	rr := ts.upload("/process", "2025-03-01", "scores.png", pngScreenshot(t))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#review .warning", "No times were found")
	assertContainsText(t, doc, "#raw-text pre", "no recognizable times")
}
