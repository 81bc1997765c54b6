package extractor

import (
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/yorch/doral-courts/internal/court"
)

const (
	// resultTableSelector matches the site's result tables. The page
	// legitimately repeats the same id once per logical result group.
	resultTableSelector = "table#frwebsearch_output_table"

	// minLabeledCells is the threshold below which a row is treated as a
	// malformed or ad row instead of a court row.
	minLabeledCells = 4

	// timeRangeSeparator splits a booking button's displayed time range.
	timeRangeSeparator = " - "

	defaultCourtName = "Unknown Court"
	defaultLocation  = "Unknown Location"
	defaultCapacity  = "N/A"
)

// Result is the outcome of extracting one page. Skipped counts cover rows
// and booking buttons that were abandoned without aborting the page.
type Result struct {
	Courts       []court.Court
	SkippedRows  int
	SkippedSlots int
}

// Extractor converts search-result HTML documents into court records.
type Extractor struct {
	log *zap.SugaredLogger
}

// New creates an Extractor logging through log.
func New(log *zap.SugaredLogger) *Extractor {
	return &Extractor{log: log}
}

// Parse reads and extracts a page. The error covers only an unreadable
// document; extraction itself never fails.
func (e *Extractor) Parse(r io.Reader) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Result{}, err
	}
	return e.Extract(doc), nil
}

// Extract pulls all court records out of one page. Absence of any result
// table yields an empty result, not an error.
func (e *Extractor) Extract(doc *goquery.Document) Result {
	var res Result

	tables := doc.Find(resultTableSelector)
	if tables.Length() == 0 {
		e.log.Debugw("no result tables in document")
		return res
	}
	e.log.Debugw("found result tables", "count", tables.Length())

	tables.Each(func(tableIndex int, table *goquery.Selection) {
		tbody := table.Find("tbody").First()
		if tbody.Length() == 0 {
			e.log.Debugw("result table has no tbody, skipping", "table", tableIndex+1)
			return
		}

		tbody.ChildrenFiltered("tr").Each(func(rowIndex int, row *goquery.Selection) {
			// Booking-control rows follow their court row and are handled
			// from there, not as court rows in their own right.
			if row.Find("td.cart-blocks").Length() > 0 {
				return
			}

			cells := row.Find("td.label-cell")
			if cells.Length() < minLabeledCells {
				e.log.Debugw("row has insufficient labeled cells, skipping",
					"table", tableIndex+1, "row", rowIndex+1, "cells", cells.Length())
				res.SkippedRows++
				return
			}

			c := e.extractCourt(row)
			c.TimeSlots = e.extractTimeSlots(row, &res)
			c.AvailabilityStatus = court.DeriveStatus(c.TimeSlots)

			res.Courts = append(res.Courts, c)
			e.log.Debugw("parsed court",
				"name", c.Name, "sport", c.SportType, "location", c.Location,
				"date", c.Date, "slots", len(c.TimeSlots))
		})
	})

	e.log.Infow("extracted courts from page",
		"courts", len(res.Courts), "skipped_rows", res.SkippedRows, "skipped_slots", res.SkippedSlots)
	return res
}

// extractCourt reads a court row's labeled cells. Every field has an
// explicit default so a sparse row still yields a usable record.
func (e *Extractor) extractCourt(row *goquery.Selection) court.Court {
	name := labeledCellText(row, "Facility Description", defaultCourtName)
	classDescription := labeledCellText(row, "Class Description", "")

	c := court.Court{
		Name:      name,
		SportType: court.InferSport(classDescription, name),
		Location:  labeledCellText(row, "Location Description", defaultLocation),
		Capacity:  labeledCellText(row, "Capacity", defaultCapacity),
		Date:      extractDate(row),
	}

	if priceCell := row.Find(`td[data-title="Price"]`); priceCell.Length() > 0 {
		price := strings.TrimSpace(priceCell.First().Text())
		c.Price = &price
	}
	return c
}

// labeledCellText returns the trimmed text of the row cell carrying the
// given data-title, or fallback when the row has no such cell at all. A
// present-but-empty cell yields its empty text, not the fallback.
func labeledCellText(row *goquery.Selection, title, fallback string) string {
	cell := row.Find(`td[data-title="` + title + `"]`)
	if cell.Length() == 0 {
		return fallback
	}
	return strings.TrimSpace(cell.First().Text())
}

// extractDate resolves the row's date: the date badge's tooltip carries the
// canonical machine-readable value, the cell text is the fallback, and a
// row without a date cell defaults to today.
func extractDate(row *goquery.Selection) string {
	dateCell := row.Find(`td[data-title="Date"]`)
	if dateCell.Length() == 0 {
		return time.Now().Format(court.SiteDateLayout)
	}
	if tooltip, ok := dateCell.Find("span.dateblock").First().Attr("data-tooltip"); ok && tooltip != "" {
		return tooltip
	}
	return strings.TrimSpace(dateCell.First().Text())
}

// extractTimeSlots reads the booking-control row immediately following a
// court row. A missing follow-on row or control container means the court
// simply has no schedule.
func (e *Extractor) extractTimeSlots(row *goquery.Selection, res *Result) []court.TimeSlot {
	next := row.Next()
	if next.Length() == 0 {
		return nil
	}
	cartBlocks := next.Find("td.cart-blocks")
	if cartBlocks.Length() == 0 {
		return nil
	}

	var slots []court.TimeSlot
	cartBlocks.Find("a.cart-button").Each(func(_ int, button *goquery.Selection) {
		slot, ok := e.classifySlot(button)
		if !ok {
			res.SkippedSlots++
			return
		}
		slots = append(slots, slot)
	})
	return slots
}

// classifySlot turns one booking button into a time slot. Available buttons
// carry the success marker class plus a "Book Now" affordance and hold the
// time range as their own text; unavailable buttons hold it in a nested
// label element. A button with no time label at all is skipped since no
// time can be inferred.
func (e *Extractor) classifySlot(button *goquery.Selection) (court.TimeSlot, bool) {
	tooltip, _ := button.Attr("data-tooltip")
	available := button.HasClass("success") && strings.Contains(tooltip, "Book Now")

	var rangeText string
	if available {
		rangeText = strings.TrimSpace(button.Text())
	} else {
		labels := button.Find("span")
		if labels.Length() == 0 {
			e.log.Debugw("booking button has no time label, skipping")
			return court.TimeSlot{}, false
		}
		rangeText = strings.TrimSpace(labels.First().Text())
	}

	slot := court.TimeSlot{Status: court.SlotUnavailable}
	if available {
		slot.Status = court.SlotAvailable
	}
	slot.StartTime, slot.EndTime = splitTimeRange(rangeText)
	return slot, true
}

// splitTimeRange splits "8:00 am - 9:00 am" into its halves. Text without
// the separator is a known source-format quirk: the whole text becomes the
// start time and the end time stays empty.
func splitTimeRange(text string) (start, end string) {
	if before, after, found := strings.Cut(text, timeRangeSeparator); found {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}
	return strings.TrimSpace(text), ""
}
