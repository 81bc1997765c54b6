// Package court provides the domain types for Doral court availability.
//
// A Court is one physical court's availability record for a single date,
// carrying an ordered list of TimeSlots extracted from the reservation site.
// The court's overall availability status is always derived from its slots,
// never set independently.
package court
