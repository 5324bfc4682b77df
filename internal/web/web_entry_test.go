package web_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualEntrySavesRecord(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.submitTimes("2025-03-01", map[string]string{"Merrick": "3.45"})
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Saved record 1 for 2025-03-01")
	assertContainsText(t, doc, "#recent tbody", "3.45")
}

func TestManualEntryKeepsTypedValues(t *testing.T) {
	ts := newWebTestServer(t)

	// Hand-typed times are stored as typed, trailing zeros included
	rr := ts.submitTimes("2025-03-01", map[string]string{"Merrick": "3.450"})
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#recent tbody", "3.450")
}

func TestManualEntrySkipsBlankFields(t *testing.T) {
	ts := newWebTestServer(t)

	ts.submitTimes("2025-03-01", map[string]string{"Merrick": "3.45", "Moi": "  "})

	rec, err := ts.app.MemStore.GetRecentRecords(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rec, 1)
	assert.Equal(t, map[string]string{"Merrick": "3.45"}, map[string]string(rec[0].Times))
}

func TestManualEntryRejectsBadTime(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"date": {"2025-03-01"}, "time_Merrick": {"fast"}}
	rr := ts.post("/submit", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "Times must be positive numbers")

	recs, err := ts.app.MemStore.GetRecentRecords(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestManualEntryRejectsBadDate(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"date": {"01/03/2025"}, "time_Merrick": {"3.45"}}
	rr := ts.post("/submit", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "YYYY-MM-DD")
}

func TestManualEntryRejectsEmptySubmission(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"date": {"2025-03-01"}}
	rr := ts.post("/submit", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "at least one player")
}

func TestSecondEntryGetsNextID(t *testing.T) {
	ts := newWebTestServer(t)

	ts.submitTimes("2025-03-01", map[string]string{"Merrick": "3.45"})
	rr := ts.submitTimes("2025-03-02", map[string]string{"Moi": "4.5"})

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Saved record 2 for 2025-03-02")
}

func TestFlashClearedAfterDisplay(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.submitTimes("2025-03-01", map[string]string{"Merrick": "3.45"})
	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, ".flash-success")

	// The next page load must not repeat the notice
	rr = ts.get("/")
	doc = parseHTML(rr.Body)
	assertNotContainsElement(t, doc, ".flash-success")
}
