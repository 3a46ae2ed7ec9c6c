// README: Share link codec; one query parameter per request field.
package trip

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	paramCity            = "city"
	paramDays            = "days"
	paramBudget          = "budget"
	paramCurrency        = "currency"
	paramTreatFocus      = "treat_focus"
	paramSpecialRequests = "special_requests"
	paramExclusions      = "exclusions"
	paramNeighborhood    = "neighborhood"
	paramPriceRange      = "price_range"
	paramPace            = "pace"

	listSep = ","
)

// EncodeQuery writes every non-empty field of r. Lists are comma joined, so
// r should be normalized first.
func EncodeQuery(r TripRequest) url.Values {
	q := url.Values{}
	setIf(q, paramCity, r.City)
	if r.Days > 0 {
		q.Set(paramDays, strconv.Itoa(r.Days))
	}
	if r.Budget.Amount != 0 {
		q.Set(paramBudget, strconv.FormatInt(r.Budget.Amount, 10))
	}
	setIf(q, paramCurrency, r.Budget.Currency)
	if len(r.TreatFocus) > 0 {
		q.Set(paramTreatFocus, strings.Join(r.TreatFocus, listSep))
	}
	setIf(q, paramSpecialRequests, r.SpecialRequests)
	setIf(q, paramExclusions, r.Exclusions)
	setIf(q, paramNeighborhood, r.Neighborhood)
	setIf(q, paramPriceRange, r.PriceRange)
	setIf(q, paramPace, r.Pace)
	return q
}

// DecodeQuery is the inverse of EncodeQuery. Absent, empty or unparsable
// parameters keep the form default rather than a zero value. The second
// result reports whether the request is complete enough to submit at once.
func DecodeQuery(q url.Values, defaults Defaults) (TripRequest, bool) {
	r := defaults.Request()
	if v := q.Get(paramCity); v != "" {
		r.City = v
	}
	if n, err := strconv.Atoi(q.Get(paramDays)); err == nil && n > 0 {
		r.Days = n
	}
	if n, err := strconv.ParseInt(q.Get(paramBudget), 10, 64); err == nil && n > 0 {
		r.Budget.Amount = n
	}
	if v := q.Get(paramCurrency); v != "" {
		r.Budget.Currency = v
	}
	if v := q.Get(paramTreatFocus); v != "" {
		r.TreatFocus = strings.Split(v, listSep)
	}
	getIf(q, paramSpecialRequests, &r.SpecialRequests)
	getIf(q, paramExclusions, &r.Exclusions)
	getIf(q, paramNeighborhood, &r.Neighborhood)
	getIf(q, paramPriceRange, &r.PriceRange)
	getIf(q, paramPace, &r.Pace)

	return r, strings.TrimSpace(r.City) != ""
}

// ShareURL appends the encoded request to base, which may already carry a path.
func ShareURL(base string, r TripRequest) string {
	enc := EncodeQuery(r).Encode()
	if enc == "" {
		return base
	}
	if strings.Contains(base, "?") {
		return base + "&" + enc
	}
	return base + "?" + enc
}

func setIf(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func getIf(q url.Values, key string, dst *string) {
	if v := q.Get(key); v != "" {
		*dst = v
	}
}
