package invoice

import (
	"strings"

	"invoice-engine/internal/domain/models"
	"invoice-engine/internal/utils"
)

// HeaderRouteCap limits the routing string printed in the info block.
const HeaderRouteCap = 5

// MergeRoute collapses legs into routing chains. Contiguous legs (destination
// of one equals origin of the next) share a chain joined with "-"; separate
// chains are joined with "//". maxAirports > 0 caps the number of airport
// codes printed; the cap only shortens the string, legs are left untouched.
//
//	[BKK-NRT, NRT-HND]        -> "BKK-NRT-HND"
//	[BKK-NRT, HND-BKK]        -> "BKK-NRT//HND-BKK"
func MergeRoute(legs []models.ItineraryLeg, maxAirports int) string {
	var (
		chains [][]string
		cur    []string
		total  int
	)
	fits := func(n int) bool {
		return maxAirports <= 0 || total+n <= maxAirports
	}

	for _, leg := range legs {
		origin, dest := airportCode(leg.Origin), airportCode(leg.Destination)
		if origin == "" || dest == "" {
			continue
		}
		if len(cur) > 0 && cur[len(cur)-1] == origin {
			if !fits(1) {
				break
			}
			cur = append(cur, dest)
			total++
			continue
		}
		if !fits(2) {
			break
		}
		if len(cur) > 0 {
			chains = append(chains, cur)
		}
		cur = []string{origin, dest}
		total += 2
	}
	if len(cur) > 0 {
		chains = append(chains, cur)
	}

	out := make([]string, 0, len(chains))
	for _, c := range chains {
		out = append(out, strings.Join(c, "-"))
	}
	return strings.Join(out, "//")
}

// FlightSummary lists legs as "TG640 BKK-NRT 12/05/2025" lines for email
// templates. Legs without a flight number still print their airports.
func FlightSummary(legs []models.ItineraryLeg) []string {
	out := make([]string, 0, len(legs))
	for _, leg := range legs {
		parts := make([]string, 0, 3)
		if flight := flightNo(leg); flight != "" {
			parts = append(parts, flight)
		}
		parts = append(parts, airportCode(leg.Origin)+"-"+airportCode(leg.Destination))
		if d := utils.DocDate(leg.Date); d != "" {
			parts = append(parts, d)
		}
		out = append(out, strings.Join(parts, " "))
	}
	return out
}

// flightNo joins carrier and number unless the number already carries the
// carrier prefix ("TG" + "TG640").
func flightNo(leg models.ItineraryLeg) string {
	carrier := strings.ToUpper(strings.TrimSpace(leg.Carrier))
	number := strings.ToUpper(strings.TrimSpace(leg.FlightNumber))
	if carrier != "" && strings.HasPrefix(number, carrier) {
		return number
	}
	return carrier + number
}

func airportCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
