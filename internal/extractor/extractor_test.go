package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yorch/doral-courts/internal/court"
)

func newTestExtractor() *Extractor {
	return New(zap.NewNop().Sugar())
}

func parsePage(t *testing.T, html string) Result {
	t.Helper()
	res, err := newTestExtractor().Parse(strings.NewReader(html))
	require.NoError(t, err)
	return res
}

// courtRow builds one result-table row with the standard labeled cells.
func courtRow(name, class, location, capacity, date, price string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	b.WriteString(`<td class="label-cell" data-title="Facility Description">` + name + `</td>`)
	b.WriteString(`<td class="label-cell" data-title="Class Description">` + class + `</td>`)
	b.WriteString(`<td class="label-cell" data-title="Location Description">` + location + `</td>`)
	b.WriteString(`<td class="label-cell" data-title="Capacity">` + capacity + `</td>`)
	if date != "" {
		b.WriteString(`<td class="label-cell" data-title="Date"><span class="dateblock" data-tooltip="` + date + `">` + date + `</span></td>`)
	}
	if price != "" {
		b.WriteString(`<td class="label-cell" data-title="Price">` + price + `</td>`)
	}
	b.WriteString("</tr>")
	return b.String()
}

func resultTable(rows ...string) string {
	return `<html><body><table id="frwebsearch_output_table"><tbody>` +
		strings.Join(rows, "") + `</tbody></table></body></html>`
}

const availableSlot = `<a class="cart-button success" data-tooltip="Book Now - Court 1"> 8:00 am -  9:00 am</a>`
const bookedSlot = `<a class="cart-button" data-tooltip="Unavailable"><span>9:00 am - 10:00 am</span></a>`

func slotRow(buttons ...string) string {
	return `<tr><td class="cart-blocks" colspan="6">` + strings.Join(buttons, "") + `</td></tr>`
}

func TestExtractNoResultTable(t *testing.T) {
	res := parsePage(t, `<html><body><p>No results found</p></body></html>`)
	assert.Empty(t, res.Courts)
	assert.Zero(t, res.SkippedRows)
}

func TestExtractTableWithoutTbody(t *testing.T) {
	res := parsePage(t, `<html><body><table id="frwebsearch_output_table"></table></body></html>`)
	assert.Empty(t, res.Courts)
}

func TestExtractSingleTennisCourt(t *testing.T) {
	html := resultTable(
		courtRow("Tennis Court 1", "Tennis Court", "Doral Central Park", "4", "06/15/2025", "$10.00"),
		slotRow(availableSlot, bookedSlot),
	)
	res := parsePage(t, html)

	require.Len(t, res.Courts, 1)
	c := res.Courts[0]
	assert.Equal(t, "Tennis Court 1", c.Name)
	assert.Equal(t, court.SportTennis, c.SportType)
	assert.Equal(t, "Doral Central Park", c.Location)
	assert.Equal(t, "4", c.Capacity)
	assert.Equal(t, "06/15/2025", c.Date)
	require.NotNil(t, c.Price)
	assert.Equal(t, "$10.00", *c.Price)

	require.Len(t, c.TimeSlots, 2)
	assert.Equal(t, court.TimeSlot{StartTime: "8:00 am", EndTime: "9:00 am", Status: court.SlotAvailable}, c.TimeSlots[0])
	assert.Equal(t, court.TimeSlot{StartTime: "9:00 am", EndTime: "10:00 am", Status: court.SlotUnavailable}, c.TimeSlots[1])
	assert.Equal(t, court.StatusAvailable, c.AvailabilityStatus)
}

func TestExtractPickleballCourt(t *testing.T) {
	html := resultTable(
		courtRow("Pickleball Court 3", "Pickleball Court", "Doral Legacy Park", "4", "06/15/2025", ""),
		slotRow(bookedSlot),
	)
	res := parsePage(t, html)

	require.Len(t, res.Courts, 1)
	c := res.Courts[0]
	assert.Equal(t, court.SportPickleball, c.SportType)
	assert.Nil(t, c.Price)
	assert.Equal(t, court.StatusFullyBooked, c.AvailabilityStatus)
}

func TestExtractSkipsSparseRows(t *testing.T) {
	html := resultTable(
		`<tr><td class="label-cell" data-title="Facility Description">Ad banner</td></tr>`,
		courtRow("Tennis Court 1", "Tennis Court", "Doral Central Park", "4", "06/15/2025", ""),
	)
	res := parsePage(t, html)

	require.Len(t, res.Courts, 1)
	assert.Equal(t, 1, res.SkippedRows)
}

func TestExtractDefaultsForMissingCells(t *testing.T) {
	// Only four generic labeled cells, none carrying the expected titles.
	html := resultTable(
		`<tr>` + strings.Repeat(`<td class="label-cell" data-title="Other">x</td>`, 4) + `</tr>`,
	)
	res := parsePage(t, html)

	require.Len(t, res.Courts, 1)
	c := res.Courts[0]
	assert.Equal(t, "Unknown Court", c.Name)
	assert.Equal(t, "Unknown Location", c.Location)
	assert.Equal(t, "N/A", c.Capacity)
	assert.Equal(t, time.Now().Format(court.SiteDateLayout), c.Date)
	assert.Equal(t, court.StatusNoSchedule, c.AvailabilityStatus)
}

func TestExtractSportFromName(t *testing.T) {
	html := resultTable(
		courtRow("Doral Tennis Center Court 2", "", "Doral Central Park", "4", "06/15/2025", ""),
	)
	res := parsePage(t, html)

	require.Len(t, res.Courts, 1)
	assert.Equal(t, court.SportTennis, res.Courts[0].SportType)
}

func TestExtractDateFallsBackToCellText(t *testing.T) {
	html := resultTable(
		`<tr>` +
			`<td class="label-cell" data-title="Facility Description">Court 1</td>` +
			`<td class="label-cell" data-title="Class Description">Tennis Court</td>` +
			`<td class="label-cell" data-title="Location Description">Park</td>` +
			`<td class="label-cell" data-title="Date">06/20/2025</td>` +
			`</tr>`,
	)
	res := parsePage(t, html)

	require.Len(t, res.Courts, 1)
	assert.Equal(t, "06/20/2025", res.Courts[0].Date)
}

func TestExtractMalformedTimeRange(t *testing.T) {
	html := resultTable(
		courtRow("Tennis Court 1", "Tennis Court", "Park", "4", "06/15/2025", ""),
		slotRow(`<a class="cart-button success" data-tooltip="Book Now">Invalid time format</a>`),
	)
	res := parsePage(t, html)

	require.Len(t, res.Courts, 1)
	require.Len(t, res.Courts[0].TimeSlots, 1)
	slot := res.Courts[0].TimeSlots[0]
	assert.Equal(t, "Invalid time format", slot.StartTime)
	assert.Equal(t, "", slot.EndTime)
	assert.Equal(t, court.SlotAvailable, slot.Status)
}

func TestExtractSkipsUnavailableButtonWithoutLabel(t *testing.T) {
	html := resultTable(
		courtRow("Tennis Court 1", "Tennis Court", "Park", "4", "06/15/2025", ""),
		slotRow(`<a class="cart-button" data-tooltip="Unavailable"></a>`, bookedSlot),
	)
	res := parsePage(t, html)

	require.Len(t, res.Courts, 1)
	assert.Len(t, res.Courts[0].TimeSlots, 1)
	assert.Equal(t, 1, res.SkippedSlots)
}

func TestExtractSuccessWithoutBookNowIsUnavailable(t *testing.T) {
	html := resultTable(
		courtRow("Tennis Court 1", "Tennis Court", "Park", "4", "06/15/2025", ""),
		slotRow(`<a class="cart-button success" data-tooltip="Waitlist"><span>8:00 am - 9:00 am</span></a>`),
	)
	res := parsePage(t, html)

	require.Len(t, res.Courts, 1)
	require.Len(t, res.Courts[0].TimeSlots, 1)
	assert.Equal(t, court.SlotUnavailable, res.Courts[0].TimeSlots[0].Status)
}

func TestExtractMultipleTables(t *testing.T) {
	html := `<html><body>` +
		`<table id="frwebsearch_output_table"><tbody>` +
		courtRow("Tennis Court 1", "Tennis Court", "Doral Central Park", "4", "06/15/2025", "") +
		slotRow(availableSlot) +
		`</tbody></table>` +
		`<table id="frwebsearch_output_table"><tbody>` +
		courtRow("Pickleball Court 2", "Pickleball Court", "Doral Legacy Park", "4", "06/15/2025", "") +
		slotRow(bookedSlot) +
		`</tbody></table>` +
		`</body></html>`
	res := parsePage(t, html)

	require.Len(t, res.Courts, 2)
	assert.Equal(t, "Tennis Court 1", res.Courts[0].Name)
	assert.Equal(t, court.StatusAvailable, res.Courts[0].AvailabilityStatus)
	assert.Equal(t, "Pickleball Court 2", res.Courts[1].Name)
	assert.Equal(t, court.StatusFullyBooked, res.Courts[1].AvailabilityStatus)
}
